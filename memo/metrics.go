/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package memo

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("dirpx.dev/rerender/memo")

var (
	lookups   metric.Int64Counter
	evictions metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		lookups, err = meter.Int64Counter(
			"rerender_memo_lookups_total",
			metric.WithDescription("Memoized renders by outcome (hit, miss, bypass)"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		evictions, err = meter.Int64Counter(
			"rerender_memo_evictions_total",
			metric.WithDescription("Memoization entries dropped on unmount"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordLookup(outcome string) {
	if err := initMetrics(); err != nil {
		return
	}
	lookups.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func recordEviction() {
	if err := initMetrics(); err != nil {
		return
	}
	evictions.Add(context.Background(), 1)
}

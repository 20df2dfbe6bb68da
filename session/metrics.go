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

package session

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for flush operations.
var (
	tracer = otel.Tracer("dirpx.dev/rerender/session")
	meter  = otel.Meter("dirpx.dev/rerender/session")
)

// Metrics for flush operations.
var (
	flushLatency  metric.Float64Histogram
	flushTotal    metric.Int64Counter
	affectedTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		flushLatency, err = meter.Float64Histogram(
			"rerender_flush_duration_seconds",
			metric.WithDescription("Duration of flush cycles including the patch"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		flushTotal, err = meter.Int64Counter(
			"rerender_flush_total",
			metric.WithDescription("Total number of flush cycles"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		affectedTotal, err = meter.Int64Counter(
			"rerender_affected_components",
			metric.WithDescription("Components selected for re-render across flushes"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startFlushSpan creates a span for one flush cycle.
func startFlushSpan(ctx context.Context, force bool, changed int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "rerender.Flush",
		trace.WithAttributes(
			attribute.Bool("rerender.force", force),
			attribute.Int("rerender.changes", changed),
		),
	)
}

// setFlushSpanResult sets the result attributes on a flush span.
func setFlushSpanResult(span trace.Span, affected int, success bool) {
	span.SetAttributes(
		attribute.Int("rerender.affected", affected),
		attribute.Bool("rerender.success", success),
	)
}

// recordFlushMetrics records metrics for one flush cycle.
func recordFlushMetrics(ctx context.Context, duration time.Duration, affected int, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.Bool("success", success),
	)

	flushLatency.Record(ctx, duration.Seconds(), attrs)
	flushTotal.Add(ctx, 1, attrs)
	affectedTotal.Add(ctx, int64(affected))
}

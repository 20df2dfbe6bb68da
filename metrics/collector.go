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

// Package metrics exposes renderer session state as Prometheus metrics.
//
// The Collector reads its values at scrape time, so nothing on the render
// path touches Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/rerender/apis"
)

const namespace = "rerender"

// Source is the session state read by the Collector. *session.Session
// implements it.
type Source interface {
	Registry() apis.Registry
	Cache() apis.Cache
	Stats() apis.FlushStats
}

// Collector is a prometheus.Collector over a Source.
type Collector struct {
	src Source

	paths      *prometheus.Desc
	components *prometheus.Desc
	entries    *prometheus.Desc
	memo       *prometheus.Desc
	flushes    *prometheus.Desc
	failures   *prometheus.Desc
	affected   *prometheus.Desc
}

// Ensure Collector implements prometheus.Collector.
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a Collector reading src.
func NewCollector(src Source) *Collector {
	return &Collector{
		src: src,
		paths: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "registry", "paths"),
			"Number of subscribed paths", nil, nil),
		components: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "registry", "components"),
			"Number of subscribed components", nil, nil),
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "memo", "entries"),
			"Number of memoization entries", nil, nil),
		memo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "memo", "lookups_total"),
			"Memoized renders by outcome", []string{"outcome"}, nil),
		flushes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "flushes_total"),
			"Flush cycles run", nil, nil),
		failures: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "flush_failures_total"),
			"Flush cycles whose patch failed", nil, nil),
		affected: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "affected_components_total"),
			"Components selected for re-render", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.paths
	ch <- c.components
	ch <- c.entries
	ch <- c.memo
	ch <- c.flushes
	ch <- c.failures
	ch <- c.affected
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if reg := c.src.Registry(); reg != nil {
		ch <- prometheus.MustNewConstMetric(c.paths, prometheus.GaugeValue, float64(reg.Count()))
		ch <- prometheus.MustNewConstMetric(c.components, prometheus.GaugeValue, float64(reg.Components()))
	}
	if cache := c.src.Cache(); cache != nil {
		st := cache.Stats()
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(cache.Len()))
		ch <- prometheus.MustNewConstMetric(c.memo, prometheus.CounterValue, float64(st.Hits), "hit")
		ch <- prometheus.MustNewConstMetric(c.memo, prometheus.CounterValue, float64(st.Misses), "miss")
		ch <- prometheus.MustNewConstMetric(c.memo, prometheus.CounterValue, float64(st.Bypasses), "bypass")
	}
	st := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.flushes, prometheus.CounterValue, float64(st.Flushes))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(st.Failures))
	ch <- prometheus.MustNewConstMetric(c.affected, prometheus.CounterValue, float64(st.Affected))
}

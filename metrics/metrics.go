// SPDX-License-Identifier: MIT

// Package metrics exposes solve counters and durations as Prometheus
// collectors. A nil *Collector is valid and records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "metatwin"

// Collector counts solves by kind and status and records their durations.
type Collector struct {
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a Collector and registers it with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "solves_total",
			Help:      "Solved units by kind (fba_linear, fba_quadratic, fva, ...) and status.",
		}, []string{"kind", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of one solved unit.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}, []string{"kind"}),
	}
	for _, col := range []prometheus.Collector{c.solves, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	return c, nil
}

// ObserveSolve records one solved unit.
func (c *Collector) ObserveSolve(kind, status string, d time.Duration) {
	if c == nil {
		return
	}
	c.solves.WithLabelValues(kind, status).Inc()
	c.duration.WithLabelValues(kind).Observe(d.Seconds())
}

// Totals gathers the solve counters from g, keyed "kind/status".
func Totals(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("metrics: gather: %w", err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != Namespace+"_solves_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var kind, status string
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "kind":
					kind = lp.GetValue()
				case "status":
					status = lp.GetValue()
				}
			}
			out[kind+"/"+status] += m.GetCounter().GetValue()
		}
	}

	return out, nil
}

// Package metrics exposes low-cardinality counters for the export
// pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Module provides the registry and the export instruments.
var Module = fx.Module("metrics",
	fx.Provide(NewRegistry),
	fx.Provide(NewExportMetrics),
)

// NewRegistry builds the app registry with standard process/go
// collectors attached.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// ExportMetrics records export attempts and their duration.
type ExportMetrics struct {
	attempts *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewExportMetrics registers the export instruments.
func NewExportMetrics(reg *prometheus.Registry) *ExportMetrics {
	m := &ExportMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_export_attempts_total",
			Help: "Invoice export attempts by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "invoice_export_duration_seconds",
			Help:    "Wall time of a full export (validate, layout, render, persist).",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.attempts, m.duration)
	return m
}

// Observe records one finished export attempt.
func (m *ExportMetrics) Observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the standard exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

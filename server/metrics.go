package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics counts payload loads per operation. Each server owns its registry.
type metrics struct {
	registry *prometheus.Registry

	loadsTotal      *prometheus.CounterVec
	durationSeconds *prometheus.HistogramVec
	reloadsTotal    prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()

	m := &metrics{
		registry: reg,
		loadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wsparam_loads_total",
			Help: "Payload loads by operation and outcome.",
		}, []string{"operation", "outcome"}),
		durationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wsparam_load_duration_seconds",
			Help:    "Time spent decoding and loading a payload.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"operation"}),
		reloadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wsparam_catalog_reloads_total",
			Help: "Catalog replacements.",
		}),
	}

	reg.MustRegister(m.loadsTotal, m.durationSeconds, m.reloadsTotal)
	return m
}

func (m *metrics) observeLoad(operation, outcome string, started time.Time) {
	m.loadsTotal.WithLabelValues(operation, outcome).Inc()
	m.durationSeconds.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package metrics exposes admission counters for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	admissionsTotal   *prometheus.CounterVec
	admissionDuration prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		admissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_admissions_total",
			Help: "Admission requests by outcome.",
		}, []string{"outcome"}),
		admissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "booking_admission_duration_seconds",
			Help:    "End-to-end admission latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.admissionsTotal, m.admissionDuration)
	return m
}

func (m *Metrics) ObserveAdmission(outcome string, d time.Duration) {
	m.admissionsTotal.WithLabelValues(outcome).Inc()
	m.admissionDuration.Observe(d.Seconds())
}

// Handler serves the scrape endpoint for this service's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

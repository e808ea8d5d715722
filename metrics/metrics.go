// Package metrics provides Prometheus instrumentation for the delivery
// planning service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DeliveryMetrics holds every metric the service exports. Each instance
// carries its own registry so tests can construct handlers independently
// without duplicate-registration panics.
type DeliveryMetrics struct {
	registry *prometheus.Registry

	// Planning requests by store and outcome ("ok", "store_not_found",
	// "no_schedule", "no_dates", "bad_request").
	PlanningRequestsTotal *prometheus.CounterVec

	// Time spent computing delivery options.
	PlanningDuration *prometheus.HistogramVec

	// Distinct pickup dates returned per successful request.
	WindowsReturned prometheus.Histogram

	// In-flight HTTP requests.
	RequestsInFlight prometheus.Gauge
}

// New creates the metric set on a fresh registry.
func New() *DeliveryMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &DeliveryMetrics{
		registry: registry,

		PlanningRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "delivery_planning_requests_total",
				Help: "Planning requests by store code and outcome",
			},
			[]string{"store_code", "outcome"},
		),

		PlanningDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "delivery_planning_duration_seconds",
				Help:    "Time spent computing delivery options",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs .. ~1.6s
			},
			[]string{"store_code"},
		),

		WindowsReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "delivery_windows_returned",
				Help:    "Distinct pickup dates returned per successful request",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),

		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "delivery_http_requests_in_flight",
				Help: "HTTP requests currently being served",
			},
		),
	}
}

// RecordPlanning records one planning request.
func (m *DeliveryMetrics) RecordPlanning(storeCode, outcome string, windows int, seconds float64) {
	m.PlanningRequestsTotal.WithLabelValues(storeCode, outcome).Inc()
	m.PlanningDuration.WithLabelValues(storeCode).Observe(seconds)
	if outcome == "ok" {
		m.WindowsReturned.Observe(float64(windows))
	}
}

// Handler serves the /metrics endpoint for this metric set.
func (m *DeliveryMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument wraps an HTTP handler with the in-flight gauge.
func (m *DeliveryMetrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()
		next.ServeHTTP(w, r)
	})
}

// Package metrics provides Prometheus metrics for the ERP backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "qualitec"
	subsystem = "erp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Ranking
	rankingComputations    prometheus.Counter
	rankingComputeDuration prometheus.Histogram
	rankingOrphanIncidents prometheus.Counter

	// Billing
	measurementsClosed prometheus.Counter
}

// New creates a Metrics instance backed by its own registry, so the
// /metrics endpoint does not expose default Go collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequests: auto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		httpRequestDuration: auto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "http_request_duration_milliseconds",
				Help:      "HTTP request duration in milliseconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status_code"},
		),

		rankingComputations: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ranking_computations_total",
			Help:      "Total number of ranking computations served",
		}),
		rankingComputeDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ranking_compute_duration_milliseconds",
			Help:      "Ranking computation duration in milliseconds",
			Buckets:   prometheus.DefBuckets,
		}),
		rankingOrphanIncidents: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ranking_orphan_incidents_total",
			Help:      "Total incidents excluded from rankings because the employee left the active roster",
		}),

		measurementsClosed: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "measurements_closed_total",
			Help:      "Total number of monthly measurements closed for billing",
		}),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(route, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(durationMs)
}

// RecordRankingComputation records one ranking computation and its duration.
func (m *Metrics) RecordRankingComputation(durationMs float64) {
	m.rankingComputations.Inc()
	m.rankingComputeDuration.Observe(durationMs)
}

// RecordOrphanIncidents adds to the orphan incident counter.
func (m *Metrics) RecordOrphanIncidents(count int) {
	if count > 0 {
		m.rankingOrphanIncidents.Add(float64(count))
	}
}

// RecordMeasurementClosed increments the closed measurements counter.
func (m *Metrics) RecordMeasurementClosed() {
	m.measurementsClosed.Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

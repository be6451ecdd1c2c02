// Package obs holds the process-wide Prometheus instrumentation.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Registry *prometheus.Registry

	SweepRuns      *prometheus.CounterVec
	SweepProcessed *prometheus.CounterVec
	SweepDuration  *prometheus.HistogramVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		SweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_sweep_runs_total",
			Help: "Reconciliation sweep executions by job and outcome.",
		}, []string{"job", "outcome"}),
		SweepProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_sweep_processed_total",
			Help: "Reservations processed by reconciliation sweeps.",
		}, []string{"job"}),
		SweepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_sweep_duration_seconds",
			Help:    "Duration of reconciliation sweeps.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(m.SweepRuns, m.SweepProcessed, m.SweepDuration, m.HTTPRequests, m.HTTPDuration)
	return m
}

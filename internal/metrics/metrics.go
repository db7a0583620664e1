// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package metrics exposes Prometheus instrumentation for upstream fetches,
// detail-view composition, search debouncing, and the API surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream source metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream video API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"}, // "random", "search", "comments", "similar", "graph", "analyze"
	)

	UpstreamRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_request_errors_total",
			Help: "Total number of upstream request failures",
		},
		[]string{"source", "error_type"}, // error_type: "transport", "status", "decode", "rejected"
	)

	// Detail orchestration metrics
	DetailLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detail_loads_total",
			Help: "Total number of detail view loads by outcome",
		},
		[]string{"outcome"}, // "ok", "degraded", "superseded", "failed"
	)

	DetailSourceFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detail_source_fallbacks_total",
			Help: "Total number of per-source fallbacks applied during detail loads",
		},
		[]string{"source"}, // "comments", "similarity"
	)

	DetailLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "detail_load_duration_seconds",
			Help:    "Duration of composed detail loads (all sources joined)",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Search debouncer metrics
	SearchSubmitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_submits_total",
			Help: "Total number of raw text-change submissions to the debouncer",
		},
	)

	SearchQueriesIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_queries_issued_total",
			Help: "Total number of queries issued after the quiet window",
		},
		[]string{"kind"}, // "search", "trending"
	)

	SearchStaleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_stale_responses_total",
			Help: "Total number of responses discarded because their query was superseded",
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordUpstreamRequest records one upstream fetch with its outcome.
func RecordUpstreamRequest(source string, duration time.Duration, errorType string) {
	UpstreamRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
	if errorType != "" {
		UpstreamRequestErrors.WithLabelValues(source, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

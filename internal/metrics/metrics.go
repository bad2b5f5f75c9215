// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Document store

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_store_operation_errors_total",
			Help: "Document store operations that returned an error",
		},
		[]string{"backend", "operation", "kind"}, // kind: not_found, timeout, canceled, other
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_store_gc_runs_total",
			Help: "Badger value log GC passes",
		},
		[]string{"result"}, // result: ok, error
	)

	// Catalog

	PageLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_page_loads_total",
			Help: "Pages assembled by the catalog service",
		},
		[]string{"mode", "result"}, // result: more, end, error
	)

	PageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_page_documents",
			Help:    "Documents returned per page query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	MovieCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_movie_cache_lookups_total",
			Help: "Normalized movie cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)

	MovieCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_movie_cache_entries",
			Help: "Normalized movies held in the cache, expired entries included until swept",
		},
	)

	MovieCacheExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_movie_cache_expired_total",
			Help: "Expired movies removed from the cache by the sweeper",
		},
	)

	DecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_document_decode_failures_total",
			Help: "Stored documents skipped because they failed typed decode or validation",
		},
		[]string{"kind"}, // movie, review, missing
	)

	// Auth

	ModeratorChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_moderator_checks_total",
			Help: "Moderator claim checks by outcome",
		},
		[]string{"result"}, // moderator, member, error
	)

	// Circuit breaker

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // success, error, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// HTTP

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_api_active_requests",
			Help: "HTTP requests currently in flight",
		},
	)
)

// ErrorKinder lets packages classify their own errors for the "kind" label
// without this package importing them.
type ErrorKinder interface {
	MetricKind() string
}

// RecordStoreOperation observes one document store call.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, operation, errorKind(err)).Inc()
	}
}

func errorKind(err error) string {
	var k ErrorKinder
	switch {
	case errors.As(err, &k):
		return k.MetricKind()
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

// RecordPageLoad counts one LoadPage call.
func RecordPageLoad(mode string, docs int, more bool, err error) {
	switch {
	case err != nil:
		PageLoads.WithLabelValues(mode, "error").Inc()
		return
	case more:
		PageLoads.WithLabelValues(mode, "more").Inc()
	default:
		PageLoads.WithLabelValues(mode, "end").Inc()
	}
	PageSize.Observe(float64(docs))
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

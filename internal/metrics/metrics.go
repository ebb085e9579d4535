// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Recommendation requests, degraded results and backfills
// - Catalog (TMDB) fetches and the circuit breaker protecting them
// - Corpus size, model generation and refreshes

var (
	// API Endpoint Metrics
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time to produce a recommendation list, including any backfill",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"mode"}, // "explicit", "history", "random"
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_results_count",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	RecommendDegraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_degraded_total",
			Help: "Recommendation requests that degraded to an empty result",
		},
		[]string{"reason"},
	)

	RecommendBackfills = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_backfills_total",
			Help: "Backfill passes triggered by a result shortfall",
		},
		[]string{"outcome"}, // "grew", "no_new_items", "failed"
	)

	// Catalog Metrics
	CatalogFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetches_total",
			Help: "TMDB calls by kind and outcome",
		},
		[]string{"kind", "outcome"}, // kind: "page", "movie"; outcome: "success", "skipped"
	)

	CatalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Duration of a complete multi-page catalog fetch",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	// Corpus / Model Metrics
	CorpusSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_items",
			Help: "Number of items in the live corpus",
		},
	)

	ModelGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_generation",
			Help: "Generation number of the live vector space",
		},
	)

	ModelVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_vocabulary_terms",
			Help: "Number of terms in the live vector space",
		},
	)

	CorpusRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corpus_refreshes_total",
			Help: "Full corpus refreshes by trigger reason",
		},
		[]string{"reason"}, // "absent", "stale", "undersized"
	)

	DatasetOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_operations_total",
			Help: "Dataset store operations by backend, operation and result",
		},
		[]string{"backend", "operation", "result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected", "canceled"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
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
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one completed recommendation request.
// An empty reason means the request was not degraded.
func RecordRecommendation(mode string, results int, reason string, duration time.Duration) {
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendResults.Observe(float64(results))
	if reason != "" {
		RecommendDegraded.WithLabelValues(reason).Inc()
	}
}

// RecordBackfill records the outcome of a backfill pass.
func RecordBackfill(outcome string) {
	RecommendBackfills.WithLabelValues(outcome).Inc()
}

// RecordCatalogFetch records a single TMDB call.
func RecordCatalogFetch(kind string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "skipped"
	}
	CatalogFetches.WithLabelValues(kind, outcome).Inc()
}

// RecordModel publishes the live model's shape.
func RecordModel(generation int64, items, terms int) {
	ModelGeneration.Set(float64(generation))
	CorpusSize.Set(float64(items))
	ModelVocabulary.Set(float64(terms))
}

// RecordRefresh records a full corpus refresh.
func RecordRefresh(reason string) {
	CorpusRefreshes.WithLabelValues(reason).Inc()
}

// RecordDatasetOperation records a load or save against a dataset backend.
func RecordDatasetOperation(backend, operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	DatasetOperations.WithLabelValues(backend, operation, result).Inc()
}

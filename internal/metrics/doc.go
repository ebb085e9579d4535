// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics for Marquee.

Collectors are registered on the default registry with promauto and exposed
at GET /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

The endpoint label is the chi route pattern (/movies/{id}/similar), never
the raw path, so cardinality is bounded by the number of routes.

Recommendations:
  - recommend_duration_seconds{mode}: explicit, history or random
  - recommend_results_count
  - recommend_degraded_total{reason}
  - recommend_backfills_total{outcome}: grew, no_new_items, failed

Catalog and corpus:
  - catalog_fetches_total{kind, outcome}
  - catalog_fetch_duration_seconds
  - corpus_items, model_generation, model_vocabulary_terms
  - corpus_refreshes_total{reason}: absent, stale, undersized
  - dataset_operations_total{backend, operation, result}

Circuit breaker (TMDB client):
  - circuit_breaker_state{name}: 0 closed, 1 half-open, 2 open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

# Example PromQL

	# p95 recommendation latency by mode
	histogram_quantile(0.95, sum by (le, mode) (rate(recommend_duration_seconds_bucket[5m])))

	# share of degraded responses
	sum(rate(recommend_degraded_total[5m])) / sum(rate(recommend_duration_seconds_count[5m]))

All recording functions are safe for concurrent use.
*/
package metrics

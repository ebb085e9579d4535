// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware for the Marquee API.

Both middlewares use the chi signature func(http.Handler) http.Handler and
are installed by the api router:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

RequestID propagates or generates X-Request-ID and stores it in the request
context so every log line written through logging.Ctx carries it.

PrometheusMetrics records api_requests_total, api_request_duration_seconds
and api_active_requests, labelled by chi route pattern.
*/
package middleware

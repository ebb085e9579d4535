// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP interface to the recommendation engine.

# Endpoints

	POST /recommend               recommendations for a preference or history
	GET  /movies/{id}/similar     item-to-item recommendations (?limit=N)
	GET  /health                  model status, never triggers a fetch
	GET  /metrics                 Prometheus metrics

POST /recommend accepts either an explicit preference

	{"genres": ["Action"], "cast": ["Keanu Reeves"], "limit": 5}

or a watch history

	{"history": [{"genres": ["Comedy"], "cast": ["Tom Hanks"],
	              "watch_time": 5400, "timestamp": 1739999999000}],
	 "limit": 5}

and answers with a JSON array of
{title, poster_path, genres, cast, release_date, overview, tmdb_id}.

A request the engine cannot serve, for example because no catalog could be
fetched, still answers 200 with [] and names the reason in the
X-Recommendation-Error header. A body that cannot be parsed answers
500 {"error": "..."}.

# Middleware

Every route passes through request ID propagation, chi RealIP and
Recoverer, go-chi/cors and Prometheus instrumentation. The recommendation
routes are additionally rate limited per client IP with go-chi/httprate.
*/
package api

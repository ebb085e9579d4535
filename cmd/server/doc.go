// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee recommends movies from a TMDB-derived catalog. Each movie's genres
and cast are tokenized into a TF-IDF vector; a request is turned into a
query vector from either an explicit preference or a weighted watch
history, and the catalog is ranked by cosine similarity.

# Startup

 1. Configuration: koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Dataset backend: csv file, BadgerDB or Redis
 4. Catalog source: TMDB client with rate limiting and a circuit breaker
 5. Recommendation session and engine
 6. Supervisor tree: corpus warmup (data layer), HTTP server (api layer)

# Configuration

The most common environment variables:

	TMDB_API_KEY              TMDB v3 API key
	HTTP_PORT                 listen port (default 5000)
	DATASET_BACKEND           csv, badger or redis (default csv)
	DATASET_PATH              csv corpus file (default data/movies.csv)
	DATASET_STRATEGY          time or size (default time)
	DATASET_REFRESH_INTERVAL  maximum corpus age (default 24h)
	DATASET_TARGET_SIZE       minimum corpus size for the size strategy
	LOG_LEVEL, LOG_FORMAT     logging

See package config for the full list.

# Example

	export TMDB_API_KEY=your-api-key
	export LOG_FORMAT=console
	./marquee

	curl -s -X POST localhost:5000/recommend \
	  -d '{"genres":["Science Fiction"],"cast":["Keanu Reeves"],"limit":5}'

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and in-flight requests get SHUTDOWN_TIMEOUT to
complete. Services that do not stop in time are logged.
*/
package main

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/marquee/config.yaml, /etc/marquee/config.yml
 3. Environment variables

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 5000)
  - SERVER_TIMEOUT: Read/write timeout; request work is cut off slightly earlier (default: 30s)
  - SHUTDOWN_TIMEOUT: Graceful shutdown timeout (default: 10s)
  - ENVIRONMENT: development or production

TMDB:
  - TMDB_API_KEY: API key for themoviedb.org
  - TMDB_BASE_URL: API root (default: https://api.themoviedb.org/3)
  - TMDB_TIMEOUT: Per-call timeout (default: 10s)
  - TMDB_REQUEST_DELAY: Minimum spacing between calls (default: 25ms)
  - TMDB_CONCURRENCY: Parallel detail fetches (default: 4)

Dataset:
  - DATASET_BACKEND: csv, badger or redis (default: csv)
  - DATASET_PATH, DATASET_MARKER_PATH: csv backend files
  - BADGER_DIR: badger backend directory
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB: redis backend
  - DATASET_STRATEGY: time or size (default: time)
  - DATASET_REFRESH_INTERVAL: time strategy interval (default: 24h)
  - DATASET_TARGET_SIZE: size strategy target
  - DATASET_INITIAL_PAGES, DATASET_BACKFILL_PAGES: fetch sizes (5, 1)

Recommendation:
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT: result limits (10, 100)
  - RECOMMEND_WARMUP_ON_STARTUP: build the model at startup (default: true)

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated origins (default: *)
  - MAX_BODY_BYTES: request body cap (default: 1MB)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include caller file and line

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validateTMDB validates the catalog client configuration. A missing API
// key is allowed so the service can run from a persisted corpus.
func (c *Config) validateTMDB() error {
	u, err := url.Parse(c.TMDB.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("TMDB_BASE_URL must be an absolute URL, got %q", c.TMDB.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("TMDB_BASE_URL must use http or https, got %q", u.Scheme)
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.RequestDelay < 0 {
		return fmt.Errorf("TMDB_REQUEST_DELAY must be non-negative")
	}
	if c.TMDB.Concurrency < 1 || c.TMDB.Concurrency > 64 {
		return fmt.Errorf("TMDB_CONCURRENCY must be between 1 and 64")
	}
	return nil
}

// validDatasetBackends defines the allowed dataset backends
var validDatasetBackends = map[string]bool{
	"csv":    true,
	"badger": true,
	"redis":  true,
}

// validStrategies defines the allowed staleness strategies
var validStrategies = map[string]bool{
	"time": true,
	"size": true,
}

// validateDataset validates dataset persistence and refresh configuration
func (c *Config) validateDataset() error {
	d := &c.Dataset
	if !validDatasetBackends[d.Backend] {
		return fmt.Errorf("DATASET_BACKEND must be one of: csv, badger, redis")
	}
	switch d.Backend {
	case "csv":
		if d.Path == "" || d.MarkerPath == "" {
			return fmt.Errorf("DATASET_PATH and DATASET_MARKER_PATH are required for the csv backend")
		}
	case "badger":
		if d.BadgerDir == "" {
			return fmt.Errorf("BADGER_DIR is required for the badger backend")
		}
	case "redis":
		if d.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	}

	if !validStrategies[d.Strategy] {
		return fmt.Errorf("DATASET_STRATEGY must be one of: time, size")
	}
	if d.Strategy == "time" && d.RefreshInterval < time.Minute {
		return fmt.Errorf("DATASET_REFRESH_INTERVAL must be at least 1m")
	}
	if d.Strategy == "size" && d.TargetSize < 1 {
		return fmt.Errorf("DATASET_TARGET_SIZE must be positive for the size strategy")
	}
	if d.MinRefreshInterval < 0 {
		return fmt.Errorf("DATASET_MIN_REFRESH_INTERVAL must be non-negative")
	}
	if d.InitialPages < 1 || d.InitialPages > 500 {
		return fmt.Errorf("DATASET_INITIAL_PAGES must be between 1 and 500")
	}
	if d.BackfillPages < 1 || d.BackfillPages > 500 {
		return fmt.Errorf("DATASET_BACKFILL_PAGES must be between 1 and 500")
	}
	if d.FetchTimeout <= 0 {
		return fmt.Errorf("DATASET_FETCH_TIMEOUT must be positive")
	}
	return nil
}

// validateRecommend validates request-level engine settings
func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be positive")
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be >= RECOMMEND_DEFAULT_LIMIT")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateSecurity validates rate limiting and request limits
func (c *Config) validateSecurity() error {
	if c.Security.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

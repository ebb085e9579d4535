// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"
)

// Config contains the engine and session settings.
type Config struct {
	// DefaultLimit is used when a request asks for zero results.
	DefaultLimit int

	// MaxLimit caps the number of results per request.
	MaxLimit int

	// InitialPages is the number of TMDB pages fetched for a full refresh.
	InitialPages int

	// BackfillPages is the minimum number of pages fetched on a shortfall.
	BackfillPages int

	// TargetSize, when positive, raises a full refresh to enough pages to
	// reach that many items.
	TargetSize int

	// MinRefreshInterval spaces out policy-driven refreshes while a model
	// is live, so a policy that the catalog cannot satisfy does not refetch
	// on every request.
	MinRefreshInterval time.Duration

	// FetchTimeout bounds a single refresh or backfill.
	FetchTimeout time.Duration

	// Seed seeds the random fallback. If zero, a fixed default is used.
	Seed int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit:       10,
		MaxLimit:           100,
		InitialPages:       5,
		BackfillPages:      1,
		MinRefreshInterval: time.Minute,
		FetchTimeout:       2 * time.Minute,
		Seed:               42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit, got %d < %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.InitialPages < 1 {
		return fmt.Errorf("initial_pages must be positive, got %d", c.InitialPages)
	}
	if c.BackfillPages < 1 {
		return fmt.Errorf("backfill_pages must be positive, got %d", c.BackfillPages)
	}
	if c.TargetSize < 0 {
		return fmt.Errorf("target_size must be non-negative, got %d", c.TargetSize)
	}
	if c.MinRefreshInterval < 0 {
		return fmt.Errorf("min_refresh_interval must be non-negative, got %v", c.MinRefreshInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %v", c.FetchTimeout)
	}
	return nil
}

// normalizeLimit applies the default and the cap.
func (c *Config) normalizeLimit(limit int) int {
	if limit <= 0 {
		return c.DefaultLimit
	}
	if limit > c.MaxLimit {
		return c.MaxLimit
	}
	return limit
}

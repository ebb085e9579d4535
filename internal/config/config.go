// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in defaults for every setting
//  2. Config File: optional YAML file (config.yaml)
//  3. Environment Variables: override any setting
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// TMDBConfig holds the movie catalog client settings.
type TMDBConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// RequestDelay is the minimum spacing between TMDB calls. Zero disables
	// throttling.
	RequestDelay time.Duration `koanf:"request_delay"`

	// Concurrency bounds parallel movie detail fetches.
	Concurrency int `koanf:"concurrency"`
}

// DatasetConfig selects where the corpus is persisted and when it is
// considered stale.
type DatasetConfig struct {
	// Backend is csv, badger or redis.
	Backend string `koanf:"backend"`

	Path       string `koanf:"path"`
	MarkerPath string `koanf:"marker_path"`
	BadgerDir  string `koanf:"badger_dir"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	KeyPrefix     string `koanf:"key_prefix"`

	// Strategy is time or size.
	Strategy        string        `koanf:"strategy"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	TargetSize      int           `koanf:"target_size"`

	// MinRefreshInterval spaces out policy-driven refreshes while a model
	// is already being served.
	MinRefreshInterval time.Duration `koanf:"min_refresh_interval"`

	InitialPages  int `koanf:"initial_pages"`
	BackfillPages int `koanf:"backfill_pages"`

	// FetchTimeout bounds one refresh or backfill.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
}

// RecommendConfig holds request-level engine settings.
type RecommendConfig struct {
	DefaultLimit int   `koanf:"default_limit"`
	MaxLimit     int   `koanf:"max_limit"`
	Seed         int64 `koanf:"seed"`

	// WarmupOnStartup builds the model when the process starts instead of
	// on the first request.
	WarmupOnStartup bool `koanf:"warmup_on_startup"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration from defaults, an optional config file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

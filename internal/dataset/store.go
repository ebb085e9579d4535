// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
)

var (
	// ErrAbsent means nothing has been persisted yet.
	ErrAbsent = errors.New("dataset: absent")

	// ErrCorrupt means persisted data exists but cannot be decoded.
	ErrCorrupt = errors.New("dataset: corrupt")
)

// Store persists the corpus.
type Store interface {
	// Load returns the persisted corpus, ErrAbsent if none exists, or an
	// error wrapping ErrCorrupt if it cannot be decoded.
	Load(ctx context.Context) ([]catalog.Item, error)

	// Save replaces the persisted corpus.
	Save(ctx context.Context, items []catalog.Item) error
}

// Marker persists the time of the last full refresh.
type Marker interface {
	// LastRefresh returns the recorded refresh time or ErrAbsent.
	LastRefresh(ctx context.Context) (time.Time, error)

	// MarkRefreshed records t as the last refresh time.
	MarkRefreshed(ctx context.Context, t time.Time) error
}

// Backend is a Store and Marker sharing one storage medium.
type Backend interface {
	Store
	Marker

	// Name identifies the backend in logs and metrics.
	Name() string

	// Close releases the underlying storage.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendCSV    = "csv"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config selects and configures a Backend.
type Config struct {
	Backend string

	// csv backend
	Path       string
	MarkerPath string

	// badger backend
	BadgerDir string

	// redis backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// KeyPrefix namespaces keys in the badger and redis backends.
	KeyPrefix string
}

// Open constructs the configured backend.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Backend {
	case "", BackendCSV:
		return NewFileStore(cfg.Path, cfg.MarkerPath), nil
	case BackendBadger:
		return OpenBadgerStore(cfg.BadgerDir, cfg.KeyPrefix)
	case BackendRedis:
		return OpenRedisStore(ctx, RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown dataset backend %q", cfg.Backend)
	}
}

// formatMarker renders t as fractional Unix seconds.
func formatMarker(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', 6, 64)
}

// parseMarker parses a value written by formatMarker.
func parseMarker(s string) (time.Time, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: refresh marker %q", ErrCorrupt, s)
	}
	whole := int64(secs)
	frac := int64((secs - float64(whole)) * 1e9)
	return time.Unix(whole, frac), nil
}

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Snapshotter loads or refreshes a model on demand. *recommend.Session
// satisfies it.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*recommend.Model, error)
}

// WarmupService builds the model once at startup so the first request does
// not pay for the catalog fetch.
//
// On failure it returns an error and the supervisor retries it with
// backoff. Once a model is live it returns suture.ErrDoNotRestart.
// Requests arriving before that still load lazily.
type WarmupService struct {
	session Snapshotter
	timeout time.Duration
	name    string
}

// NewWarmupService creates a warmup service. timeout bounds one attempt; a
// non-positive value leaves the attempt bounded only by the supervisor.
func NewWarmupService(session Snapshotter, timeout time.Duration) *WarmupService {
	return &WarmupService{
		session: session,
		timeout: timeout,
		name:    "corpus-warmup",
	}
}

// Serve implements suture.Service.
func (w *WarmupService) Serve(ctx context.Context) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	model, err := w.session.Snapshot(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Warn().Err(err).Msg("Corpus warmup failed, requests will load lazily")
		return fmt.Errorf("corpus warmup: %w", err)
	}

	logging.Info().
		Int("items", model.Len()).
		Int64("generation", model.Generation).
		Dur("duration", time.Since(start)).
		Msg("Corpus warmed up")

	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer.
func (w *WarmupService) String() string {
	return w.name
}

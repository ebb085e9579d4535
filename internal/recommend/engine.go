// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/rank"
)

// Engine answers recommendation requests against a Session's model.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	session *Session
	logger  zerolog.Logger

	// Random source for the fallback path (protected by rngMu)
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, session *Session, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	return &Engine{
		config:  cfg,
		session: session,
		logger:  logger.With().Str("component", "recommend").Logger(),
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation shuffling
	}, nil
}

// Session returns the engine's session.
func (e *Engine) Session() *Session { return e.session }

// Recommend produces up to req.Limit recommendations. It never returns an
// error: failures degrade to an empty list with Result.Err set.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (res Result) {
	start := time.Now()
	req.Limit = e.config.normalizeLimit(req.Limit)
	res.Mode = queryMode(&req)

	logCtx := e.logger.With().Str("mode", res.Mode).Int("limit", req.Limit)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	logger := logCtx.Logger()

	defer func() {
		if r := recover(); r != nil {
			res.Items = []Recommendation{}
			res.Err = fmt.Errorf("recommendation failed: %v", r)
			logger.Error().Interface("panic", r).Msg("recovered panic in recommendation")
		}

		reason := ""
		if res.Err != nil {
			reason = degradeReason(res.Err)
		}
		metrics.RecordRecommendation(res.Mode, len(res.Items), reason, time.Since(start))
	}()

	model, err := e.session.Snapshot(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("no model available")
		return Result{Items: []Recommendation{}, Mode: res.Mode, Err: err}
	}
	res.Generation = model.Generation

	if res.Mode == ModeRandom {
		res.Items = e.random(model, req.Limit)
		logger.Debug().Int("returned", len(res.Items)).Msg("served random fallback")
		return res
	}

	now := e.session.clock()
	query, _ := buildQuery(model.Space, &req, now)
	seen := make(map[string]struct{}, req.Limit)
	hits := rank.Rank(query, model.Vectors, model.Titles, req.Limit, seen)

	res.Items = make([]Recommendation, 0, req.Limit)
	for _, h := range hits {
		res.Items = append(res.Items, toRecommendation(&model.Items[h.Index]))
	}

	if shortfall := req.Limit - len(res.Items); shortfall > 0 {
		grown, added := e.session.Backfill(ctx, shortfall)
		if added > 0 && grown != nil {
			res.Backfilled = true
			res.Generation = grown.Generation

			// The new model has a new space; the query must be rebuilt in it.
			query, _ = buildQuery(grown.Space, &req, now)
			more := rank.Rank(query, grown.Vectors, grown.Titles, shortfall, seen)
			for _, h := range more {
				res.Items = append(res.Items, toRecommendation(&grown.Items[h.Index]))
			}
		}
		logger.Debug().
			Int("shortfall", shortfall).
			Int("added", added).
			Int("returned", len(res.Items)).
			Msg("backfill pass complete")
	}

	return res
}

// Similar returns the items most similar to the movie with the given TMDB
// ID, from the precomputed similarity matrix.
func (e *Engine) Similar(ctx context.Context, id int64, limit int) ([]Recommendation, error) {
	model, err := e.session.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	i, ok := model.Index(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}

	hits := model.Matrix.Neighbours(i, e.config.normalizeLimit(limit), model.Titles)
	out := make([]Recommendation, 0, len(hits))
	for _, h := range hits {
		out = append(out, toRecommendation(&model.Items[h.Index]))
	}
	return out, nil
}

func (e *Engine) random(model *Model, limit int) []Recommendation {
	e.rngMu.Lock()
	idx := rank.Random(e.rng, model.Len(), limit)
	e.rngMu.Unlock()

	out := make([]Recommendation, 0, len(idx))
	for _, i := range idx {
		out = append(out, toRecommendation(&model.Items[i]))
	}
	return out
}

// degradeReason is a short metric label for a degraded result.
func degradeReason(err error) string {
	if errors.Is(err, ErrModelUnavailable) {
		return "model_unavailable"
	}
	return "internal"
}

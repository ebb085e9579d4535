// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// RecommendComponents holds the recommendation pipeline.
type RecommendComponents struct {
	Backend dataset.Backend
	Session *recommend.Session
	Engine  *recommend.Engine
}

// Close releases the dataset backend.
func (c *RecommendComponents) Close() error {
	return c.Backend.Close()
}

// initRecommend opens the dataset backend and builds the session and
// engine. The backend must be closed by the caller.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initRecommend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	backend, err := dataset.Open(ctx, buildDatasetConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("open dataset backend: %w", err)
	}

	policy, err := dataset.NewPolicy(cfg.Dataset.Strategy, cfg.Dataset.RefreshInterval, cfg.Dataset.TargetSize)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("refresh policy: %w", err)
	}

	if cfg.TMDB.APIKey == "" {
		logger.Warn().Msg("TMDB_API_KEY is not set, catalog fetches will fail and only the persisted corpus is served")
	}
	source := catalog.NewClient(catalog.ClientConfig{
		BaseURL:      cfg.TMDB.BaseURL,
		APIKey:       cfg.TMDB.APIKey,
		Timeout:      cfg.TMDB.Timeout,
		RequestDelay: cfg.TMDB.RequestDelay,
		Concurrency:  cfg.TMDB.Concurrency,
	}, logger)

	engineCfg := buildEngineConfig(cfg)
	session := recommend.NewSession(engineCfg, source, backend, policy, logger)
	engine, err := recommend.NewEngine(engineCfg, session, logger)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}

	logger.Info().
		Str("backend", backend.Name()).
		Str("strategy", cfg.Dataset.Strategy).
		Dur("refresh_interval", cfg.Dataset.RefreshInterval).
		Int("target_size", cfg.Dataset.TargetSize).
		Int("initial_pages", engineCfg.InitialPages).
		Msg("Recommendation engine initialized")

	return &RecommendComponents{
		Backend: backend,
		Session: session,
		Engine:  engine,
	}, nil
}

// addWarmup schedules a startup model build when enabled.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func addWarmup(cfg *config.Config, rc *RecommendComponents, tree *supervisor.SupervisorTree, logger zerolog.Logger) {
	if !cfg.Recommend.WarmupOnStartup {
		logger.Info().Msg("Corpus warmup disabled (RECOMMEND_WARMUP_ON_STARTUP=false), model loads on first request")
		return
	}
	tree.AddDataService(services.NewWarmupService(rc.Session, cfg.Dataset.FetchTimeout))
	logger.Info().Msg("Corpus warmup added to supervisor tree")
}

// buildDatasetConfig maps application config onto the backend selector.
func buildDatasetConfig(cfg *config.Config) dataset.Config {
	return dataset.Config{
		Backend:       cfg.Dataset.Backend,
		Path:          cfg.Dataset.Path,
		MarkerPath:    cfg.Dataset.MarkerPath,
		BadgerDir:     cfg.Dataset.BadgerDir,
		RedisAddr:     cfg.Dataset.RedisAddr,
		RedisPassword: cfg.Dataset.RedisPassword,
		RedisDB:       cfg.Dataset.RedisDB,
		KeyPrefix:     cfg.Dataset.KeyPrefix,
	}
}

// buildEngineConfig creates the engine configuration from app config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		DefaultLimit:       cfg.Recommend.DefaultLimit,
		MaxLimit:           cfg.Recommend.MaxLimit,
		InitialPages:       cfg.Dataset.InitialPages,
		BackfillPages:      cfg.Dataset.BackfillPages,
		TargetSize:         cfg.Dataset.TargetSize,
		MinRefreshInterval: cfg.Dataset.MinRefreshInterval,
		FetchTimeout:       cfg.Dataset.FetchTimeout,
		Seed:               cfg.Recommend.Seed,
	}
}

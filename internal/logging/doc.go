// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package logging provides centralized zerolog-based logging for Marquee.

Every component logs through zerolog: JSON in production, a console writer
for local development. Components receive a zerolog.Logger by value at
construction and tag it with a component field.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Int("port", 5000).Msg("Server starting")
	logging.Err(err).Msg("Dataset persist failed")

	engineLogger := logging.WithComponent("engine")

# Request Correlation

The HTTP middleware stores a request ID in the request context. Ctx and
CtxWith attach it to log lines:

	logging.Ctx(ctx).Info().Msg("Recommendation served")

# slog Bridge

SlogHandler adapts zerolog to slog.Handler so the suture supervisor tree,
which logs through sutureslog, writes into the same stream:

	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook()

# Configuration

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller info (default: false)
*/
package logging

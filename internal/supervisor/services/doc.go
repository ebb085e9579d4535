// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

HTTPServerService adapts the blocking ListenAndServe/Shutdown pair of
*http.Server to suture's context-aware Serve. Cancellation triggers a
graceful shutdown bounded by a configurable timeout.

WarmupService builds the recommendation model once at startup. A failed
attempt is returned as an error so the supervisor retries it with backoff;
a successful one returns suture.ErrDoNotRestart.

	tree.AddDataService(services.NewWarmupService(session, 2*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, 10*time.Second))
*/
package services

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog fetches movie metadata from TMDB and turns it into corpus items.

A fetch walks the popularity-sorted discover listing page by page and
requests the full detail record (with credits) for every listed movie.
Genre and cast names are normalized into lowercase, underscore-joined
tokens, and each item's feature string is built from those tokens.

Fetching is deliberately lossy: a page or movie that fails (bad status,
timeout, malformed body, open circuit) is logged and skipped, so a batch
yields fewer items instead of failing. Only context cancellation aborts a
fetch, in which case the partial result must be discarded by the caller.

All HTTP calls share one rate limiter (the configured inter-request delay)
and one circuit breaker:

	client := catalog.NewClient(catalog.ClientConfig{
	    APIKey:       cfg.TMDB.APIKey,
	    RequestDelay: 250 * time.Millisecond,
	}, logger)
	items, err := client.Fetch(ctx, 1, 5)
*/
package catalog

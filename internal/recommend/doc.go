// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend implements the content-based movie recommendation
// engine.
//
// # Architecture
//
// A Session owns the corpus and a fitted Model: the TF-IDF space, one
// vector per movie and the pairwise similarity matrix. The Engine turns a
// request into a query vector in that space and ranks the corpus against
// it:
//
//   - Explicit queries join the requested genres and cast into one
//     feature string.
//   - History queries average the vectors of previously watched titles,
//     weighted by watch time or, failing that, recency (see HistoryWeight).
//   - Requests with no usable preference get a random sample.
//
// # Refresh and Backfill
//
// The Session loads the persisted corpus on first use and refetches it
// from TMDB when the configured staleness policy says so. When ranking
// yields fewer distinct titles than requested, the Engine asks the Session
// to backfill: the next catalog pages are merged in, the model is refitted,
// and the query is ranked again in the new space without repeating titles
// already returned. Backfill happens at most once per request.
//
// # Usage
//
//	session := recommend.NewSession(cfg, client, backend, policy, logger)
//	engine, err := recommend.NewEngine(cfg, session, logger)
//	if err != nil {
//	    return err
//	}
//
//	res := engine.Recommend(ctx, recommend.Request{
//	    Genres: []string{"Science Fiction"},
//	    Cast:   []string{"Keanu Reeves"},
//	    Limit:  10,
//	})
//	if res.Err != nil {
//	    // degraded: res.Items is empty
//	}
//
// # Thread Safety
//
// Models are immutable once published. A corpus change builds a new Model
// and swaps the Session's pointer, so a request ranks against one
// consistent snapshot while refreshes proceed. Catalog and storage I/O
// never hold the Session lock, and concurrent refreshes or backfills are
// collapsed into a single fetch.
package recommend

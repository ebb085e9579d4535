// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/metrics"
)

// Source supplies catalog items page by page.
type Source interface {
	// Fetch returns the items listed on pages [startPage, startPage+pages).
	// Failed pages and items are skipped. A non-nil error is returned only
	// when ctx ends, and any items returned alongside it must be discarded.
	Fetch(ctx context.Context, startPage, pages int) ([]Item, error)
}

// PagesFor returns the number of listing pages needed to cover n items.
func PagesFor(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Fetch implements Source against the TMDB API.
func (c *Client) Fetch(ctx context.Context, startPage, pages int) ([]Item, error) {
	if startPage < 1 {
		startPage = 1
	}
	start := time.Now()

	var items []Item
	for page := startPage; page < startPage+pages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ids, err := c.Discover(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			metrics.RecordCatalogFetch("page", false)
			c.logger.Warn().Err(err).Int("page", page).Msg("Skipping catalog page")
			continue
		}
		metrics.RecordCatalogFetch("page", true)

		pageItems, err := c.fetchDetails(ctx, ids)
		if err != nil {
			return nil, err
		}
		items = append(items, pageItems...)
	}

	metrics.CatalogFetchDuration.Observe(time.Since(start).Seconds())
	c.logger.Info().
		Int("start_page", startPage).
		Int("pages", pages).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Fetched catalog items")

	return items, nil
}

// fetchDetails fetches details for ids concurrently, preserving listing order.
// Failed movies are dropped; only context cancellation is returned as an error.
func (c *Client) fetchDetails(ctx context.Context, ids []int64) ([]Item, error) {
	results := make([]*Item, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			item, err := c.Movie(gctx, id)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				metrics.RecordCatalogFetch("movie", false)
				c.logger.Warn().Err(err).Int64("movie_id", id).Msg("Skipping movie")
				return nil
			}
			metrics.RecordCatalogFetch("movie", true)
			results[i] = &item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(ids))
	for _, it := range results {
		if it != nil {
			items = append(items, *it)
		}
	}
	return items, nil
}

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package rank scores corpus vectors against a query and selects the best
// distinct titles.
package rank

import (
	"math/rand"
	"sort"

	"github.com/tomtom215/marquee/internal/vectorize"
)

// Hit is one ranked corpus entry.
type Hit struct {
	Index int
	Score float64
}

// Cosine returns the cosine similarity of a and b, or 0 when either has
// zero length.
func Cosine(a, b vectorize.Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// Rank scores every vector against query and returns up to limit hits in
// descending score order. Ties keep corpus order. Hits with a score of zero
// or less are dropped, as are titles already in seen. Emitted titles are
// added to seen so a later pass can continue without repeats. A nil seen
// map disables cross-call tracking.
func Rank(query vectorize.Vector, vectors []vectorize.Vector, titles []string, limit int, seen map[string]struct{}) []Hit {
	if limit <= 0 || query.Norm() == 0 {
		return nil
	}

	scores := make([]float64, len(vectors))
	for i := range vectors {
		scores[i] = Cosine(query, vectors[i])
	}
	return Select(scores, titles, limit, -1, seen)
}

// Select orders indices by descending score and applies the ranking rules
// of Rank. exclude names an index to skip, or -1.
func Select(scores []float64, titles []string, limit, exclude int, seen map[string]struct{}) []Hit {
	if seen == nil {
		seen = make(map[string]struct{})
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	hits := make([]Hit, 0, limit)
	for _, i := range order {
		if len(hits) >= limit {
			break
		}
		if i == exclude || scores[i] <= 0 {
			continue
		}
		if _, dup := seen[titles[i]]; dup {
			continue
		}
		seen[titles[i]] = struct{}{}
		hits = append(hits, Hit{Index: i, Score: scores[i]})
	}
	return hits
}

// Random returns min(limit, n) distinct indices in [0, n), chosen uniformly
// without replacement.
func Random(rng *rand.Rand, n, limit int) []int {
	if limit > n {
		limit = n
	}
	if limit <= 0 {
		return nil
	}
	return rng.Perm(n)[:limit]
}

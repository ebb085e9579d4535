// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/vectorize"
)

const (
	// weightEpsilon keeps the weighted average finite.
	weightEpsilon = 1e-10

	msPerDay = 86_400_000.0
)

// HistoryWeight returns the contribution of one history entry.
//
// Watch time dominates: an entry watched for w seconds weighs 1 + w/60.
// Without watch time, recency decides: 1 + 1/(days+1), so something
// watched today weighs 2 and the weight decays toward 1. A missing
// timestamp counts as now and a future one as today.
func HistoryWeight(e *HistoryEntry, now time.Time) float64 {
	if e.WatchTime > 0 {
		return 1 + e.WatchTime/60
	}

	days := 0.0
	if e.Timestamp > 0 {
		nowMs := float64(now.UnixNano()) / 1e6
		days = (nowMs - e.Timestamp) / msPerDay
		if days < 0 {
			days = 0
		}
	}
	return 1 + 1/(days+1)
}

// explicitFeatures normalizes a one-shot preference into a feature string.
// ok is false when both lists are empty after normalization.
func explicitFeatures(genres, cast []string) (features string, ok bool) {
	g := catalog.NormalizeAll(genres)
	c := catalog.NormalizeAll(cast)
	if len(g) == 0 && len(c) == 0 {
		return "", false
	}
	return catalog.JoinFeatures(g, c), true
}

// buildQuery maps a request into space. mode is ModeRandom when the
// request carries no usable preference.
func buildQuery(space *vectorize.Space, req *Request, now time.Time) (query vectorize.Vector, mode string) {
	if len(req.History) > 0 {
		vectors := make([]vectorize.Vector, 0, len(req.History))
		weights := make([]float64, 0, len(req.History))
		for i := range req.History {
			e := &req.History[i]
			features, ok := explicitFeatures(e.Genres, e.Cast)
			if !ok {
				continue
			}
			vectors = append(vectors, space.Transform(features))
			weights = append(weights, HistoryWeight(e, now))
		}
		if len(vectors) == 0 {
			return vectorize.Vector{}, ModeRandom
		}
		return vectorize.WeightedAverage(vectors, weights, weightEpsilon), ModeHistory
	}

	features, ok := explicitFeatures(req.Genres, req.Cast)
	if !ok {
		return vectorize.Vector{}, ModeRandom
	}
	return space.Transform(features), ModeExplicit
}

// queryMode reports the mode a request will use without needing a space.
func queryMode(req *Request) string {
	if len(req.History) > 0 {
		for i := range req.History {
			if _, ok := explicitFeatures(req.History[i].Genres, req.History[i].Cast); ok {
				return ModeHistory
			}
		}
		return ModeRandom
	}
	if _, ok := explicitFeatures(req.Genres, req.Cast); ok {
		return ModeExplicit
	}
	return ModeRandom
}

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"fmt"
	"time"
)

// Staleness strategies accepted by NewPolicy.
const (
	StrategyTime = "time"
	StrategySize = "size"
)

// Refresh reasons reported by policies.
const (
	ReasonStale      = "stale"
	ReasonUndersized = "undersized"
)

// DefaultRefreshInterval is the age after which the time policy refreshes.
const DefaultRefreshInterval = 24 * time.Hour

// State is what a Policy sees when deciding whether to refresh.
type State struct {
	Items       int
	LastRefresh time.Time
	HasMarker   bool
	Now         time.Time
}

// Policy decides whether the corpus must be refetched. It returns the
// reason for a refresh, or "" when the corpus is fresh.
type Policy interface {
	Stale(s State) string
}

// TimePolicy refreshes when the marker is missing or older than Interval.
type TimePolicy struct {
	Interval time.Duration
}

// Stale implements Policy.
func (p TimePolicy) Stale(s State) string {
	if !s.HasMarker {
		return ReasonStale
	}
	if s.Now.Sub(s.LastRefresh) >= p.Interval {
		return ReasonStale
	}
	return ""
}

// SizePolicy refreshes while the corpus holds fewer than Target items.
type SizePolicy struct {
	Target int
}

// Stale implements Policy.
func (p SizePolicy) Stale(s State) string {
	if s.Items < p.Target {
		return ReasonUndersized
	}
	return ""
}

// NewPolicy builds the policy for strategy.
func NewPolicy(strategy string, interval time.Duration, target int) (Policy, error) {
	switch strategy {
	case "", StrategyTime:
		if interval <= 0 {
			interval = DefaultRefreshInterval
		}
		return TimePolicy{Interval: interval}, nil
	case StrategySize:
		if target <= 0 {
			return nil, fmt.Errorf("size strategy needs a positive target, got %d", target)
		}
		return SizePolicy{Target: target}, nil
	default:
		return nil, fmt.Errorf("unknown staleness strategy %q", strategy)
	}
}

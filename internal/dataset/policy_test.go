// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"testing"
	"time"
)

func TestTimePolicy(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := TimePolicy{Interval: 24 * time.Hour}

	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"no marker", State{Items: 100, Now: now}, ReasonStale},
		{"fresh", State{Items: 100, HasMarker: true, LastRefresh: now.Add(-time.Hour), Now: now}, ""},
		{"just inside interval", State{HasMarker: true, LastRefresh: now.Add(-24*time.Hour + time.Second), Now: now}, ""},
		{"exactly at interval", State{HasMarker: true, LastRefresh: now.Add(-24 * time.Hour), Now: now}, ReasonStale},
		{"old", State{HasMarker: true, LastRefresh: now.Add(-72 * time.Hour), Now: now}, ReasonStale},
		{"small corpus ignored", State{Items: 1, HasMarker: true, LastRefresh: now, Now: now}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Stale(tt.state); got != tt.want {
				t.Errorf("Stale() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSizePolicy(t *testing.T) {
	now := time.Now()
	p := SizePolicy{Target: 100}

	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"empty", State{Now: now}, ReasonUndersized},
		{"below target", State{Items: 99, HasMarker: true, LastRefresh: now, Now: now}, ReasonUndersized},
		{"at target", State{Items: 100, Now: now}, ""},
		{"old but large", State{Items: 500, HasMarker: true, LastRefresh: now.Add(-365 * 24 * time.Hour), Now: now}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Stale(tt.state); got != tt.want {
				t.Errorf("Stale() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy("", 0, 0)
	if err != nil {
		t.Fatalf("NewPolicy() error = %v", err)
	}
	if tp, ok := p.(TimePolicy); !ok || tp.Interval != DefaultRefreshInterval {
		t.Errorf("NewPolicy(\"\") = %#v, want TimePolicy with default interval", p)
	}

	p, err = NewPolicy(StrategySize, 0, 50)
	if err != nil {
		t.Fatalf("NewPolicy(size) error = %v", err)
	}
	if sp, ok := p.(SizePolicy); !ok || sp.Target != 50 {
		t.Errorf("NewPolicy(size) = %#v, want SizePolicy{50}", p)
	}

	if _, err := NewPolicy(StrategySize, 0, 0); err == nil {
		t.Error("NewPolicy(size, target 0) error = nil, want error")
	}
	if _, err := NewPolicy("lunar", 0, 0); err == nil {
		t.Error("NewPolicy(unknown) error = nil, want error")
	}
}

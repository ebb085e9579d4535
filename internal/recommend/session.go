// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/metrics"
)

// reasonAbsent marks a refresh forced by having no corpus at all.
const reasonAbsent = "absent"

// Status describes the live model for health reporting.
type Status struct {
	Loaded      bool      `json:"loaded"`
	Items       int       `json:"items"`
	Terms       int       `json:"terms"`
	Generation  int64     `json:"generation"`
	LastRefresh time.Time `json:"last_refresh,omitempty"`
	NextPage    int       `json:"next_page"`
}

// Session owns the corpus and its fitted model. It loads lazily, refreshes
// according to a staleness policy and grows the corpus on demand.
//
// Network and storage I/O never run under the lock. Concurrent refreshes
// are collapsed into one, as are concurrent backfills of the same size.
type Session struct {
	source  catalog.Source
	backend dataset.Backend
	policy  dataset.Policy
	cfg     *Config
	logger  zerolog.Logger
	now     func() time.Time

	mu          sync.RWMutex
	model       *Model
	generation  int64
	nextPage    int
	loaded      bool
	hasMarker   bool
	lastRefresh time.Time
	lastAttempt time.Time

	group singleflight.Group

	// persistMu orders Save calls; savedGen is the newest generation on disk.
	persistMu sync.Mutex
	savedGen  int64
}

// NewSession creates a session. Nothing is loaded until the first Snapshot.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSession(cfg *Config, source catalog.Source, backend dataset.Backend, policy dataset.Policy, logger zerolog.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Session{
		source:   source,
		backend:  backend,
		policy:   policy,
		cfg:      cfg,
		logger:   logger.With().Str("component", "session").Logger(),
		now:      time.Now,
		nextPage: 1,
	}
}

// SetClock replaces the session's time source.
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Snapshot returns the current model, loading or refreshing the corpus
// first when needed. It returns ErrModelUnavailable when no corpus can be
// obtained.
func (s *Session) Snapshot(ctx context.Context) (*Model, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	if reason := s.refreshDue(); reason != "" {
		// Waiters share the leader's outcome. A failed refresh keeps the
		// current model.
		_, _, _ = s.group.Do("refresh", func() (interface{}, error) {
			// Re-check: another caller may have refreshed while we queued.
			if r := s.refreshDue(); r != "" {
				s.refresh(ctx, r)
			}
			return nil, nil
		})
	}

	s.mu.RLock()
	m := s.model
	s.mu.RUnlock()
	if m == nil {
		return nil, ErrModelUnavailable
	}
	return m, nil
}

// Current returns the live model without loading or refreshing.
func (s *Session) Current() *Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Status reports the session state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Loaded:      s.loaded,
		Generation:  s.generation,
		LastRefresh: s.lastRefresh,
		NextPage:    s.nextPage,
	}
	if s.model != nil {
		st.Items = s.model.Len()
		st.Terms = s.model.Space.Len()
	}
	return st
}

// ensureLoaded reads the persisted corpus and marker once.
func (s *Session) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := s.group.Do("load", func() (interface{}, error) {
		s.mu.RLock()
		loaded := s.loaded
		s.mu.RUnlock()
		if loaded {
			return nil, nil
		}
		return nil, s.load(ctx)
	})
	return err
}

func (s *Session) load(ctx context.Context) error {
	items, err := s.backend.Load(ctx)
	switch {
	case errors.Is(err, dataset.ErrAbsent):
		s.logger.Info().Str("backend", s.backend.Name()).Msg("no persisted corpus")
	case errors.Is(err, dataset.ErrCorrupt):
		s.logger.Warn().Err(err).Str("backend", s.backend.Name()).Msg("persisted corpus is corrupt, treating as absent")
		items = nil
	case err != nil:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn().Err(err).Str("backend", s.backend.Name()).Msg("failed to load corpus, treating as absent")
		items = nil
	}

	last, markerErr := s.backend.LastRefresh(ctx)
	hasMarker := markerErr == nil
	if markerErr != nil && !errors.Is(markerErr, dataset.ErrAbsent) {
		s.logger.Warn().Err(markerErr).Msg("unreadable refresh marker, forcing refresh")
	}

	var m *Model
	if len(items) > 0 {
		m, err = buildModel(items, s.clock())
		if err != nil {
			s.logger.Warn().Err(err).Int("items", len(items)).Msg("persisted corpus has no usable features, treating as absent")
			m = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.hasMarker = hasMarker
	s.lastRefresh = last
	if m != nil {
		s.publishLocked(m)
		s.nextPage = catalog.PagesFor(len(items)) + 1
		s.logger.Info().
			Int("items", m.Len()).
			Int64("generation", m.Generation).
			Time("last_refresh", last).
			Msg("loaded persisted corpus")
	}
	return nil
}

// refreshDue returns the reason a full refresh is needed, or "".
func (s *Session) refreshDue() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	if s.model == nil {
		return reasonAbsent
	}
	reason := s.policy.Stale(dataset.State{
		Items:       s.model.Len(),
		LastRefresh: s.lastRefresh,
		HasMarker:   s.hasMarker,
		Now:         now,
	})
	if reason == "" {
		return ""
	}
	if !s.lastAttempt.IsZero() && now.Sub(s.lastAttempt) < s.cfg.MinRefreshInterval {
		return ""
	}
	return reason
}

// refresh refetches the corpus from the first page and replaces the model.
func (s *Session) refresh(ctx context.Context, reason string) {
	pages := s.cfg.InitialPages
	if n := catalog.PagesFor(s.cfg.TargetSize); n > pages {
		pages = n
	}

	s.mu.Lock()
	s.lastAttempt = s.now()
	s.mu.Unlock()

	s.logger.Info().Str("reason", reason).Int("pages", pages).Msg("refreshing corpus")
	metrics.RecordRefresh(reason)

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	items, err := s.source.Fetch(fetchCtx, 1, pages)
	if err != nil {
		s.logger.Warn().Err(err).Msg("corpus refresh canceled")
		return
	}
	if len(items) == 0 {
		s.logger.Warn().Msg("corpus refresh returned no items, keeping current model")
		return
	}

	now := s.clock()
	m, err := buildModel(items, now)
	if err != nil {
		s.logger.Warn().Err(err).Int("items", len(items)).Msg("refreshed corpus has no usable features, keeping current model")
		return
	}

	s.mu.Lock()
	s.publishLocked(m)
	s.nextPage = pages + 1
	s.lastRefresh = now
	s.hasMarker = true
	s.mu.Unlock()

	s.logger.Info().
		Int("items", m.Len()).
		Int("terms", m.Space.Len()).
		Int64("generation", m.Generation).
		Msg("corpus refreshed")

	s.persist(ctx, m)
	if err := s.backend.MarkRefreshed(ctx, now); err != nil {
		s.logger.Error().Err(err).Str("backend", s.backend.Name()).Msg("failed to write refresh marker")
	}
}

// Backfill fetches at least shortfall more items from the catalog, starting
// at the next unfetched page, and publishes a model over the merged corpus.
// It returns the live model afterwards and the number of items added; a
// failed or empty fetch adds nothing.
func (s *Session) Backfill(ctx context.Context, shortfall int) (*Model, int) {
	pages := s.cfg.BackfillPages
	if n := catalog.PagesFor(shortfall); n > pages {
		pages = n
	}

	type outcome struct {
		model *Model
		added int
	}
	// Keyed by size so a larger shortfall is never served a smaller fetch.
	v, _, _ := s.group.Do("backfill:"+strconv.Itoa(pages), func() (interface{}, error) {
		m, added := s.backfill(ctx, pages)
		return outcome{model: m, added: added}, nil
	})
	out := v.(outcome)
	return out.model, out.added
}

func (s *Session) backfill(ctx context.Context, pages int) (*Model, int) {
	s.mu.RLock()
	start := s.nextPage
	s.mu.RUnlock()

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	items, err := s.source.Fetch(fetchCtx, start, pages)
	if err != nil {
		metrics.RecordBackfill("canceled")
		s.logger.Warn().Err(err).Msg("backfill canceled")
		return s.Current(), 0
	}

	s.mu.Lock()
	if next := start + pages; next > s.nextPage {
		s.nextPage = next
	}
	cur := s.model
	s.mu.Unlock()

	var existing []catalog.Item
	if cur != nil {
		existing = cur.Items
	}
	merged, added := catalog.Merge(existing, items)
	if added == 0 {
		metrics.RecordBackfill("empty")
		s.logger.Debug().Int("start_page", start).Int("pages", pages).Msg("backfill found no new items")
		return cur, 0
	}

	m, err := buildModel(merged, s.clock())
	if err != nil {
		metrics.RecordBackfill("error")
		s.logger.Warn().Err(err).Msg("backfill model build failed")
		return cur, 0
	}

	s.mu.Lock()
	if s.model != cur {
		// A refresh replaced the corpus while we fetched; merge into it
		// instead.
		var base []catalog.Item
		if s.model != nil {
			base = s.model.Items
		}
		merged, added = catalog.Merge(base, items)
		if added == 0 {
			m = s.model
			s.mu.Unlock()
			metrics.RecordBackfill("empty")
			return m, 0
		}
		m, err = buildModel(merged, s.now())
		if err != nil {
			m = s.model
			s.mu.Unlock()
			metrics.RecordBackfill("error")
			return m, 0
		}
	}
	s.publishLocked(m)
	s.mu.Unlock()

	metrics.RecordBackfill("added")
	s.logger.Info().
		Int("start_page", start).
		Int("pages", pages).
		Int("added", added).
		Int("items", m.Len()).
		Int64("generation", m.Generation).
		Msg("corpus backfilled")

	s.persist(ctx, m)
	return m, added
}

// publishLocked assigns the next generation to m and makes it live.
// s.mu must be held for writing.
func (s *Session) publishLocked(m *Model) {
	s.generation++
	m.Generation = s.generation
	s.model = m
	metrics.RecordModel(m.Generation, m.Len(), m.Space.Len())
}

// persist saves m's corpus unless a newer generation is already on disk.
func (s *Session) persist(ctx context.Context, m *Model) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if m.Generation <= s.savedGen {
		s.logger.Debug().
			Int64("generation", m.Generation).
			Int64("saved_generation", s.savedGen).
			Msg("skipping persist of superseded corpus")
		return
	}
	if err := s.backend.Save(ctx, m.Items); err != nil {
		s.logger.Error().Err(err).Str("backend", s.backend.Name()).Int("items", m.Len()).Msg("failed to persist corpus")
		return
	}
	s.savedGen = m.Generation
}

func (s *Session) clock() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

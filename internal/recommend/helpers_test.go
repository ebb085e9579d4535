// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/dataset"
)

type fetchCall struct {
	start, pages int
}

// fakeSource serves fixed catalog pages.
type fakeSource struct {
	mu    sync.Mutex
	pages map[int][]catalog.Item
	calls []fetchCall
	block chan struct{}
	err   error
}

func (f *fakeSource) Fetch(ctx context.Context, start, pages int) ([]catalog.Item, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{start, pages})
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.Item
	for p := start; p < start+pages; p++ {
		out = append(out, f.pages[p]...)
	}
	return out, nil
}

func (f *fakeSource) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

func movie(id int64, title string, genres []string, cast ...string) catalog.Item {
	return catalog.NewItem(id, title, nil, genres, cast, "2001-01-01", "")
}

// actionPage returns n action movies with ids starting at first.
func actionPage(first int64, n int) []catalog.Item {
	items := make([]catalog.Item, 0, n)
	for i := int64(0); i < int64(n); i++ {
		id := first + i
		items = append(items, movie(id, fmt.Sprintf("Action %d", id), []string{"Action"}, fmt.Sprintf("Actor %d", id)))
	}
	return items
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.InitialPages = 1
	cfg.FetchTimeout = 5 * time.Second
	return cfg
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestBackend(t *testing.T) *dataset.FileStore {
	t.Helper()
	dir := t.TempDir()
	return dataset.NewFileStore(filepath.Join(dir, "movies.csv"), filepath.Join(dir, "last_model_refresh.txt"))
}

func newTestSession(t *testing.T, cfg *Config, src catalog.Source, backend dataset.Backend, policy dataset.Policy) (*Session, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSession(cfg, src, backend, policy, zerolog.Nop())
	s.SetClock(clock.Now)
	return s, clock
}

func titlesOf(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

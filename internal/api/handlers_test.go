// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/recommend"
)

// staticSource serves one fixed catalog page.
type staticSource struct {
	items []catalog.Item
}

func (s *staticSource) Fetch(_ context.Context, start, _ int) ([]catalog.Item, error) {
	if start != 1 {
		return nil, nil
	}
	return s.items, nil
}

// hangingSource never answers before the caller gives up.
type hangingSource struct{}

func (hangingSource) Fetch(ctx context.Context, _, _ int) ([]catalog.Item, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func poster(p string) *string { return &p }

func testCatalog() []catalog.Item {
	return []catalog.Item{
		catalog.NewItem(603, "The Matrix", poster("/matrix.jpg"), []string{"Action", "Science Fiction"}, []string{"Keanu Reeves", "Carrie-Anne Moss"}, "1999-03-30", "A hacker learns the truth."),
		catalog.NewItem(604, "The Matrix Reloaded", nil, []string{"Action", "Science Fiction"}, []string{"Keanu Reeves"}, "2003-05-15", "Neo fights on."),
		catalog.NewItem(245891, "John Wick", nil, []string{"Action", "Thriller"}, []string{"Keanu Reeves"}, "2014-10-22", "A retired hitman."),
		catalog.NewItem(8587, "The Lion King", nil, []string{"Animation", "Family"}, []string{"Matthew Broderick"}, "1994-06-23", "A lion cub."),
		catalog.NewItem(13, "Forrest Gump", nil, []string{"Comedy", "Drama"}, []string{"Tom Hanks"}, "1994-06-23", "Life is like a box."),
	}
}

func newTestHandler(t *testing.T, items []catalog.Item) http.Handler {
	t.Helper()

	cfg := recommend.DefaultConfig()
	cfg.InitialPages = 1
	cfg.FetchTimeout = 5 * time.Second

	dir := t.TempDir()
	store := dataset.NewFileStore(filepath.Join(dir, "movies.csv"), filepath.Join(dir, "last_model_refresh.txt"))
	policy, err := dataset.NewPolicy(dataset.StrategyTime, 24*time.Hour, 0)
	if err != nil {
		t.Fatalf("NewPolicy() error = %v", err)
	}

	session := recommend.NewSession(cfg, &staticSource{items: items}, store, policy, zerolog.Nop())
	engine, err := recommend.NewEngine(cfg, session, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
	})
	return NewRouter(NewHandler(engine, 4096), mw).Setup()
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeItems(t *testing.T, rec *httptest.ResponseRecorder) []recommend.Recommendation {
	t.Helper()
	var items []recommend.Recommendation
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("response is not a JSON array: %v (%s)", err, rec.Body.String())
	}
	return items
}

func TestRecommend_Explicit(t *testing.T) {
	h := newTestHandler(t, testCatalog())

	rec := doRequest(h, http.MethodPost, "/recommend", `{"genres":["Science Fiction"],"cast":["Keanu Reeves"],"limit":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if mode := rec.Header().Get(HeaderRecommendationMode); mode != recommend.ModeExplicit {
		t.Errorf("%s = %q, want explicit", HeaderRecommendationMode, mode)
	}

	items := decodeItems(t, rec)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].TMDBID != 603 && items[0].TMDBID != 604 {
		t.Errorf("first item = %q, want a Matrix film", items[0].Title)
	}
	for _, it := range items {
		if it.Title == "The Lion King" || it.Title == "Forrest Gump" {
			t.Errorf("unrelated title %q recommended", it.Title)
		}
	}
}

func TestRecommend_ResponseShape(t *testing.T) {
	h := newTestHandler(t, testCatalog())

	rec := doRequest(h, http.MethodPost, "/recommend", `{"cast":["Carrie-Anne Moss"],"limit":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("got %d items, want 1", len(raw))
	}
	for _, key := range []string{"title", "poster_path", "genres", "cast", "release_date", "overview", "tmdb_id"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("response item missing %q: %v", key, raw[0])
		}
	}
	if raw[0]["poster_path"] != "/matrix.jpg" {
		t.Errorf("poster_path = %v", raw[0]["poster_path"])
	}
}

func TestRecommend_History(t *testing.T) {
	h := newTestHandler(t, testCatalog())

	body := `{"history":[{"genres":["Comedy"],"cast":["Tom Hanks"],"watch_time":5400}],"limit":1}`
	rec := doRequest(h, http.MethodPost, "/recommend", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if mode := rec.Header().Get(HeaderRecommendationMode); mode != recommend.ModeHistory {
		t.Errorf("mode = %q, want history", mode)
	}
	items := decodeItems(t, rec)
	if len(items) != 1 || items[0].Title != "Forrest Gump" {
		t.Errorf("got %v, want [Forrest Gump]", items)
	}
}

func TestRecommend_RandomWhenNoPreference(t *testing.T) {
	h := newTestHandler(t, testCatalog())

	rec := doRequest(h, http.MethodPost, "/recommend", `{"limit":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := len(decodeItems(t, rec)); got != 3 {
		t.Errorf("got %d items, want 3", got)
	}
	if mode := rec.Header().Get(HeaderRecommendationMode); mode != recommend.ModeRandom {
		t.Errorf("mode = %q, want random", mode)
	}
}

func TestRecommend_MalformedBody(t *testing.T) {
	h := newTestHandler(t, testCatalog())

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"invalid json", `{"genres":`, "invalid JSON body"},
		{"wrong type", `{"genres":"Action"}`, "invalid JSON body"},
		{"empty body", ``, "request body is empty"},
		{"negative watch time", `{"history":[{"genres":["Drama"],"watch_time":-1}]}`, "watch_time"},
		{"oversized body", `{"genres":["` + strings.Repeat("a", 5000) + `"]}`, "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, http.MethodPost, "/recommend", tt.body)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body is not JSON: %s", rec.Body.String())
			}
			if !strings.Contains(resp.Error, tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestRecommend_DegradedIsEmptyArray(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := doRequest(h, http.MethodPost, "/recommend", `{"genres":["Action"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
	if rec.Header().Get(HeaderRecommendationError) == "" {
		t.Errorf("missing %s header", HeaderRecommendationError)
	}
}

func TestRecommend_RequestTimeoutBoundsCatalogFetch(t *testing.T) {
	cfg := recommend.DefaultConfig()
	cfg.InitialPages = 1
	cfg.FetchTimeout = time.Minute

	dir := t.TempDir()
	store := dataset.NewFileStore(filepath.Join(dir, "movies.csv"), filepath.Join(dir, "last_model_refresh.txt"))
	policy, err := dataset.NewPolicy(dataset.StrategyTime, 24*time.Hour, 0)
	if err != nil {
		t.Fatalf("NewPolicy() error = %v", err)
	}
	session := recommend.NewSession(cfg, hangingSource{}, store, policy, zerolog.Nop())
	engine, err := recommend.NewEngine(cfg, session, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	h := NewRouter(NewHandler(engine, 4096).WithRequestTimeout(100*time.Millisecond), mw).Setup()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"recommend degrades", http.MethodPost, "/recommend", `{"genres":["Action"]}`, http.StatusOK},
		{"similar unavailable", http.MethodGet, "/movies/603/similar", "", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			rec := doRequest(h, tt.method, tt.path, tt.body)
			if elapsed := time.Since(start); elapsed > 5*time.Second {
				t.Fatalf("request took %v, want it bounded by the 100ms request timeout", elapsed)
			}
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	h := newTestHandler(t, testCatalog())

	tests := []struct {
		name   string
		path   string
		status int
		first  string
	}{
		{"known id", "/movies/603/similar?limit=1", http.StatusOK, "The Matrix Reloaded"},
		{"default limit", "/movies/603/similar", http.StatusOK, "The Matrix Reloaded"},
		{"unknown id", "/movies/999999/similar", http.StatusNotFound, ""},
		{"bad id", "/movies/abc/similar", http.StatusBadRequest, ""},
		{"bad limit", "/movies/603/similar?limit=x", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, http.MethodGet, tt.path, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.first == "" {
				return
			}
			items := decodeItems(t, rec)
			if len(items) == 0 || items[0].Title != tt.first {
				t.Errorf("first = %v, want %q", items, tt.first)
			}
			for _, it := range items {
				if it.TMDBID == 603 {
					t.Error("Similar() returned the query movie itself")
				}
			}
		})
	}
}

func TestSimilar_ModelUnavailable(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := doRequest(h, http.MethodGet, "/movies/603/similar", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, testCatalog())

	var before HealthResponse
	rec := doRequest(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &before); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if before.Status != "starting" || before.Model.Loaded {
		t.Errorf("health before first request = %+v, want starting", before)
	}

	doRequest(h, http.MethodPost, "/recommend", `{"genres":["Drama"]}`)

	var after HealthResponse
	rec = doRequest(h, http.MethodGet, "/health", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if after.Status != "healthy" || after.Model.Items != 5 || after.Model.Generation != 1 {
		t.Errorf("health after load = %+v", after)
	}
}

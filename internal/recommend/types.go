// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/rank"
	"github.com/tomtom215/marquee/internal/vectorize"
)

var (
	// ErrModelUnavailable means no corpus could be loaded or fetched.
	ErrModelUnavailable = errors.New("recommend: model unavailable")

	// ErrUnknownItem means a TMDB ID is not in the current corpus.
	ErrUnknownItem = errors.New("recommend: unknown item")
)

// Query modes reported in Result.Mode.
const (
	ModeExplicit = "explicit"
	ModeHistory  = "history"
	ModeRandom   = "random"
)

// HistoryEntry is one watched title in an implicit preference query.
type HistoryEntry struct {
	Genres []string `json:"genres"`
	Cast   []string `json:"cast"`

	// WatchTime is the time spent watching, in seconds.
	WatchTime float64 `json:"watch_time"`

	// Timestamp is when the title was watched, in Unix milliseconds.
	// Zero means now.
	Timestamp float64 `json:"timestamp"`
}

// Request asks for recommendations. When History is non-empty it takes
// precedence over Genres and Cast.
type Request struct {
	Genres  []string
	Cast    []string
	History []HistoryEntry
	Limit   int
}

// Recommendation is one recommended title as returned to clients.
type Recommendation struct {
	Title       string   `json:"title"`
	PosterPath  *string  `json:"poster_path"`
	Genres      []string `json:"genres"`
	Cast        []string `json:"cast"`
	ReleaseDate string   `json:"release_date"`
	Overview    string   `json:"overview"`
	TMDBID      int64    `json:"tmdb_id"`
}

func toRecommendation(it *catalog.Item) Recommendation {
	return Recommendation{
		Title:       it.Title,
		PosterPath:  it.PosterPath,
		Genres:      it.Genres,
		Cast:        it.Cast,
		ReleaseDate: it.ReleaseDate,
		Overview:    it.Overview,
		TMDBID:      it.ID,
	}
}

// Result is the outcome of Engine.Recommend. A non-nil Err means the
// request degraded to an empty Items list.
type Result struct {
	Items      []Recommendation
	Mode       string
	Generation int64
	Backfilled bool
	Err        error
}

// Model is a fitted corpus snapshot. It is never modified after it is
// published by a Session; a corpus change produces a new Model.
type Model struct {
	Generation int64
	BuiltAt    time.Time
	Items      []catalog.Item
	Titles     []string
	Space      *vectorize.Space
	Vectors    []vectorize.Vector
	Matrix     *rank.Matrix

	byID map[int64]int
}

// buildModel fits a vector space on items. The caller assigns Generation
// before publishing the model.
func buildModel(items []catalog.Item, now time.Time) (*Model, error) {
	docs := make([]string, len(items))
	titles := make([]string, len(items))
	byID := make(map[int64]int, len(items))
	for i := range items {
		docs[i] = items[i].Features
		titles[i] = items[i].Title
		byID[items[i].ID] = i
	}

	space, err := vectorize.Fit(docs)
	if err != nil {
		return nil, err
	}
	vectors := space.TransformAll(docs)

	return &Model{
		BuiltAt: now,
		Items:   items,
		Titles:  titles,
		Space:   space,
		Vectors: vectors,
		Matrix:  rank.NewMatrix(vectors),
		byID:    byID,
	}, nil
}

// Len returns the corpus size.
func (m *Model) Len() int { return len(m.Items) }

// Index returns the corpus position of a TMDB ID.
func (m *Model) Index(id int64) (int, bool) {
	i, ok := m.byID[id]
	return i, ok
}

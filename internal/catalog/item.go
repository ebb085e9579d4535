// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"strings"
	"unicode"
)

// Fallback values for fields missing from a TMDB detail record.
const (
	DefaultTitle       = "Unknown Title"
	DefaultReleaseDate = "Unknown"
	DefaultOverview    = "No description available"
)

// MaxCast is the number of top-billed cast members kept per movie.
const MaxCast = 5

// PageSize is the number of movies TMDB returns per discover page.
const PageSize = 20

// Item is a normalized movie record in the recommendation corpus.
type Item struct {
	// ID is the TMDB movie ID and the corpus deduplication key.
	ID int64 `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// PosterPath is the TMDB poster path, nil when the movie has none.
	PosterPath *string `json:"poster_path"`

	// Genres are normalized genre tokens in TMDB order.
	Genres []string `json:"genres"`

	// Cast are the normalized names of the top-billed cast members.
	Cast []string `json:"cast"`

	// ReleaseDate is the four digit release year or "Unknown".
	ReleaseDate string `json:"release_date"`

	// Overview is the plot summary.
	Overview string `json:"overview"`

	// Features is the space-joined genres+cast text used for vectorization.
	// It is always derived from Genres and Cast.
	Features string `json:"features"`
}

// NewItem builds an Item from raw metadata, applying normalization,
// defaults and feature derivation.
func NewItem(id int64, title string, poster *string, genres, cast []string, releaseDate, overview string) Item {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	if strings.TrimSpace(overview) == "" {
		overview = DefaultOverview
	}
	if poster != nil && *poster == "" {
		poster = nil
	}

	g := NormalizeAll(genres)
	c := NormalizeAll(cast)
	if len(c) > MaxCast {
		c = c[:MaxCast]
	}

	return Item{
		ID:          id,
		Title:       title,
		PosterPath:  poster,
		Genres:      g,
		Cast:        c,
		ReleaseDate: releaseYear(releaseDate),
		Overview:    overview,
		Features:    JoinFeatures(g, c),
	}
}

// releaseYear reduces a TMDB release date (YYYY-MM-DD) to its year.
func releaseYear(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return DefaultReleaseDate
	}
	if len(date) > 4 {
		return date[:4]
	}
	return date
}

// Normalize lowercases a genre or cast name and replaces every whitespace
// rune with an underscore, so the result never contains a space.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}

// NormalizeAll normalizes names in order, dropping names that are empty
// after normalization.
func NormalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if t := Normalize(n); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinFeatures builds the feature string for already-normalized tokens.
func JoinFeatures(genres, cast []string) string {
	tokens := make([]string, 0, len(genres)+len(cast))
	tokens = append(tokens, genres...)
	tokens = append(tokens, cast...)
	return strings.Join(tokens, " ")
}

// Consistent reports whether Features matches Genres and Cast.
func (it *Item) Consistent() bool {
	return it.Features == JoinFeatures(it.Genres, it.Cast)
}

// Merge appends incoming items whose IDs are not already present.
// On an ID collision the existing record wins. The returned slice is a new
// slice; existing is never modified.
func Merge(existing, incoming []Item) (merged []Item, added int) {
	merged = make([]Item, 0, len(existing)+len(incoming))
	seen := make(map[int64]struct{}, len(existing)+len(incoming))

	for i := range existing {
		if _, dup := seen[existing[i].ID]; dup {
			continue
		}
		seen[existing[i].ID] = struct{}{}
		merged = append(merged, existing[i])
	}
	base := len(merged)

	for i := range incoming {
		if _, dup := seen[incoming[i].ID]; dup {
			continue
		}
		seen[incoming[i].ID] = struct{}{}
		merged = append(merged, incoming[i])
	}

	return merged, len(merged) - base
}

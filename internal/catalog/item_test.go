// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "Drama", "drama"},
		{"multi word genre", "Science Fiction", "science_fiction"},
		{"cast name", "Tom Hanks", "tom_hanks"},
		{"surrounding space trimmed", "  Keanu Reeves ", "keanu_reeves"},
		{"tab becomes underscore", "TV\tMovie", "tv_movie"},
		{"already normalized", "tom_hanks", "tom_hanks"},
		{"unicode", "Penélope Cruz", "penélope_cruz"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAll_DropsEmpty(t *testing.T) {
	got := NormalizeAll([]string{"Action", " ", "Tom Cruise", ""})
	want := []string{"action", "tom_cruise"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeAll() = %v, want %v", got, want)
	}
}

func TestNewItem(t *testing.T) {
	poster := "/abc.jpg"
	empty := ""

	tests := []struct {
		name        string
		title       string
		poster      *string
		genres      []string
		cast        []string
		releaseDate string
		overview    string
		want        Item
	}{
		{
			name:        "complete record",
			title:       "Cast Away",
			poster:      &poster,
			genres:      []string{"Adventure", "Drama"},
			cast:        []string{"Tom Hanks", "Helen Hunt"},
			releaseDate: "2000-12-22",
			overview:    "A FedEx executive is stranded.",
			want: Item{
				ID:          1,
				Title:       "Cast Away",
				PosterPath:  &poster,
				Genres:      []string{"adventure", "drama"},
				Cast:        []string{"tom_hanks", "helen_hunt"},
				ReleaseDate: "2000",
				Overview:    "A FedEx executive is stranded.",
				Features:    "adventure drama tom_hanks helen_hunt",
			},
		},
		{
			name:   "missing fields use defaults",
			poster: &empty,
			want: Item{
				ID:          1,
				Title:       DefaultTitle,
				Genres:      []string{},
				Cast:        []string{},
				ReleaseDate: DefaultReleaseDate,
				Overview:    DefaultOverview,
				Features:    "",
			},
		},
		{
			name:   "cast truncated to top five",
			title:  "Ensemble",
			genres: []string{"Comedy"},
			cast:   []string{"A A", "B B", "C C", "D D", "E E", "F F"},
			want: Item{
				ID:          1,
				Title:       "Ensemble",
				Genres:      []string{"comedy"},
				Cast:        []string{"a_a", "b_b", "c_c", "d_d", "e_e"},
				ReleaseDate: DefaultReleaseDate,
				Overview:    DefaultOverview,
				Features:    "comedy a_a b_b c_c d_d e_e",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewItem(1, tt.title, tt.poster, tt.genres, tt.cast, tt.releaseDate, tt.overview)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewItem() = %+v, want %+v", got, tt.want)
			}
			if !got.Consistent() {
				t.Errorf("NewItem() features %q not derived from genres/cast", got.Features)
			}
		})
	}
}

func TestItem_Consistent(t *testing.T) {
	it := Item{Genres: []string{"drama"}, Cast: []string{"tom_hanks"}, Features: "drama tom_hanks"}
	if !it.Consistent() {
		t.Error("Consistent() = false for derived features")
	}
	it.Features = "drama"
	if it.Consistent() {
		t.Error("Consistent() = true for out-of-sync features")
	}
}

func TestMerge_FirstSeenWins(t *testing.T) {
	existing := []Item{
		{ID: 1, Title: "Old One"},
		{ID: 2, Title: "Two"},
	}
	incoming := []Item{
		{ID: 1, Title: "New One"},
		{ID: 3, Title: "Three"},
		{ID: 3, Title: "Three Again"},
	}

	merged, added := Merge(existing, incoming)

	if added != 1 {
		t.Errorf("Merge() added = %d, want 1", added)
	}
	wantTitles := []string{"Old One", "Two", "Three"}
	if len(merged) != len(wantTitles) {
		t.Fatalf("Merge() len = %d, want %d", len(merged), len(wantTitles))
	}
	for i, title := range wantTitles {
		if merged[i].Title != title {
			t.Errorf("merged[%d].Title = %q, want %q", i, merged[i].Title, title)
		}
	}
	if len(existing) != 2 || existing[0].Title != "Old One" {
		t.Error("Merge() modified the existing slice")
	}
}

func TestPagesFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {-3, 0}, {1, 1}, {20, 1}, {21, 2}, {100, 5},
	}
	for _, tt := range tests {
		if got := PagesFor(tt.n); got != tt.want {
			t.Errorf("PagesFor(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

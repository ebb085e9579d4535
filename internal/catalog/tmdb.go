// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
tmdb.go - TMDB REST API Client

Implements the two TMDB v3 calls the catalog needs: the popularity-sorted
discover listing and the per-movie detail record with credits appended.

API Reference: https://developer.themoviedb.org/reference/intro/getting-started
*/

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// ErrNotFound is returned when TMDB has no record for a movie.
var ErrNotFound = errors.New("tmdb: not found")

// maxErrorBody caps how much of an error response body is read into an error.
const maxErrorBody = 64 * 1024

// ClientConfig configures a TMDB client.
type ClientConfig struct {
	// BaseURL is the API root. Default: DefaultBaseURL
	BaseURL string

	// APIKey is the TMDB v3 API key.
	APIKey string

	// Timeout bounds every individual HTTP call. Default: 10s
	Timeout time.Duration

	// RequestDelay is the minimum spacing between any two calls.
	// Zero disables rate limiting.
	RequestDelay time.Duration

	// Concurrency is the number of detail fetches in flight per page. Default: 4
	Concurrency int
}

// Client fetches movie metadata from TMDB. It is safe for concurrent use.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	limiter     *rate.Limiter
	cb          *gobreaker.CircuitBreaker[struct{}]
	concurrency int
	logger      zerolog.Logger
}

// Ensure Client implements Source
var _ Source = (*Client)(nil)

// NewClient creates a TMDB client from cfg, filling zero values with defaults.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	limit := rate.Inf
	if cfg.RequestDelay > 0 {
		limit = rate.Every(cfg.RequestDelay)
	}

	logger = logger.With().Str("component", "catalog").Logger()

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(limit, 1),
		cb:          newBreaker(logger),
		concurrency: cfg.Concurrency,
		logger:      logger,
	}
}

// discoverResponse is the subset of /discover/movie we read.
type discoverResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

// movieDetails is the subset of /movie/{id}?append_to_response=credits we read.
type movieDetails struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
	} `json:"credits"`
}

// Discover returns the movie IDs on one page of the popularity-sorted listing.
func (c *Client) Discover(ctx context.Context, page int) ([]int64, error) {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var resp discoverResponse
	if err := c.get(ctx, "/discover/movie", params, &resp); err != nil {
		return nil, fmt.Errorf("discover page %d: %w", page, err)
	}

	ids := make([]int64, 0, len(resp.Results))
	for _, r := range resp.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// Movie fetches one movie's details and credits and normalizes them into an Item.
func (c *Client) Movie(ctx context.Context, id int64) (Item, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var d movieDetails
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), params, &d); err != nil {
		return Item{}, fmt.Errorf("movie %d: %w", id, err)
	}

	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}
	cast := make([]string, 0, MaxCast)
	for _, m := range d.Credits.Cast {
		if len(cast) == MaxCast {
			break
		}
		cast = append(cast, m.Name)
	}

	return NewItem(id, d.Title, d.PosterPath, genres, cast, d.ReleaseDate, d.Overview), nil
}

// get performs a rate-limited, breaker-guarded GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	return c.guarded(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readBodyForError(resp.Body))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	})
}

// readBodyForError reads a bounded prefix of an error response body.
func readBodyForError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return "(failed to read body)"
	}
	return strings.TrimSpace(string(data))
}

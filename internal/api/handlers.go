// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Response headers describing how a recommendation list was produced.
const (
	HeaderRecommendationError = "X-Recommendation-Error"
	HeaderRecommendationMode  = "X-Recommendation-Mode"
	HeaderModelGeneration     = "X-Model-Generation"
)

// DefaultMaxBodyBytes caps POST bodies when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

// Handler serves the recommendation endpoints.
type Handler struct {
	engine         *recommend.Engine
	maxBodyBytes   int64
	requestTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates a handler backed by engine. maxBodyBytes <= 0 selects
// DefaultMaxBodyBytes.
func NewHandler(engine *recommend.Engine, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		engine:       engine,
		maxBodyBytes: maxBodyBytes,
		startTime:    time.Now(),
	}
}

// WithRequestTimeout bounds the catalog work one request may trigger. It
// must be shorter than the server's WriteTimeout so a slow refresh or
// backfill still leaves time to write the degraded response. Zero leaves
// requests bounded only by the client.
func (h *Handler) WithRequestTimeout(d time.Duration) *Handler {
	h.requestTimeout = d
	return h
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}

// Recommend handles POST /recommend.
//
// The response is always a JSON array on success. A request the engine
// could not serve still answers 200 with an empty array; the reason is in
// the X-Recommendation-Error header. A body that cannot be parsed or fails
// validation answers 500 {"error": message}.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRecommendRequest(w, r, h.maxBodyBytes)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()
	res := h.engine.Recommend(ctx, req)

	w.Header().Set(HeaderRecommendationMode, res.Mode)
	if res.Generation > 0 {
		w.Header().Set(HeaderModelGeneration, strconv.FormatInt(res.Generation, 10))
	}
	if res.Err != nil {
		w.Header().Set(HeaderRecommendationError, headerValue(res.Err.Error()))
		logging.Ctx(r.Context()).Warn().Err(res.Err).Msg("Recommendation degraded")
	}

	items := res.Items
	if items == nil {
		items = []recommend.Recommendation{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Similar handles GET /movies/{id}/similar?limit=N.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()
	items, err := h.engine.Similar(ctx, id, limit)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, items)
	case errors.Is(err, recommend.ErrUnknownItem):
		respondError(w, r, http.StatusNotFound, "movie "+strconv.FormatInt(id, 10)+" is not in the catalog")
	case errors.Is(err, recommend.ErrModelUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		logging.Ctx(r.Context()).Error().Err(err).Int64("tmdb_id", id).Msg("Similar lookup failed")
		respondError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status        string           `json:"status"`
	Model         recommend.Status `json:"model"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

// Health handles GET /health. It never triggers a fetch; a model that has
// not been built yet reports "starting".
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	st := h.engine.Session().Status()

	status := "healthy"
	switch {
	case !st.Loaded:
		status = "starting"
	case st.Items == 0:
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        status,
		Model:         st,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}

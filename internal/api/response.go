// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes {"error": message} with the given status.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.Ctx(r.Context()).Warn().
		Int("status", status).
		Str("error", sanitizeLogValue(message)).
		Msg("API error")
	respondJSON(w, status, ErrorResponse{Error: message})
}

// sanitizeLogValue strips line breaks so client-supplied text cannot forge
// log lines in console output.
func sanitizeLogValue(s string) string {
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

// headerValue makes s safe to send as a single header value.
func headerValue(s string) string {
	s = sanitizeLogValue(s)
	if len(s) > 256 {
		s = s[:256]
	}
	return s
}

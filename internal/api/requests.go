// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// historyBody is one watched title in POST /recommend.
type historyBody struct {
	Genres    []string `json:"genres" validate:"max=100,dive,max=200,nocontrol"`
	Cast      []string `json:"cast" validate:"max=100,dive,max=200,nocontrol"`
	WatchTime float64  `json:"watch_time" validate:"gte=0"`
	Timestamp float64  `json:"timestamp" validate:"gte=0"`
}

// recommendBody is the POST /recommend request body. Either genres/cast or
// history is expected; history wins when both are present.
type recommendBody struct {
	Genres  []string      `json:"genres" validate:"max=100,dive,max=200,nocontrol"`
	Cast    []string      `json:"cast" validate:"max=100,dive,max=200,nocontrol"`
	History []historyBody `json:"history" validate:"max=1000,dive"`
	Limit   int           `json:"limit"`
}

// decodeRecommendRequest parses and validates a POST /recommend body.
// Lists longer than the validate tags allow are rejected, not truncated.
func decodeRecommendRequest(w http.ResponseWriter, r *http.Request, maxBytes int64) (recommend.Request, error) {
	var body recommendBody

	reader := http.MaxBytesReader(w, r.Body, maxBytes)
	data, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return recommend.Request{}, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return recommend.Request{}, fmt.Errorf("read request body: %w", err)
	}
	if len(data) == 0 {
		return recommend.Request{}, errors.New("request body is empty")
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return recommend.Request{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := validation.ValidateStruct(&body); err != nil {
		return recommend.Request{}, err
	}

	return body.toRequest(), nil
}

func (b *recommendBody) toRequest() recommend.Request {
	req := recommend.Request{
		Genres: b.Genres,
		Cast:   b.Cast,
		Limit:  b.Limit,
	}
	if len(b.History) > 0 {
		req.History = make([]recommend.HistoryEntry, len(b.History))
		for i, h := range b.History {
			req.History[i] = recommend.HistoryEntry{
				Genres:    h.Genres,
				Cast:      h.Cast,
				WatchTime: h.WatchTime,
				Timestamp: h.Timestamp,
			}
		}
	}
	return req
}

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		level     slog.Level
		wantLevel string
	}{
		{"info", slog.LevelInfo, `"level":"info"`},
		{"warn", slog.LevelWarn, `"level":"warn"`},
		{"error", slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))
			logger.Log(context.Background(), tt.level, "supervisor event")

			output := buf.String()
			if !strings.Contains(output, tt.wantLevel) {
				t.Errorf("expected %s, got: %s", tt.wantLevel, output)
			}
			if !strings.Contains(output, "supervisor event") {
				t.Errorf("expected message, got: %s", output)
			}
		})
	}
}

func TestSlogHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf))).With("supervisor", "marquee")

	logger.Info("service restarted",
		"service", "http-server",
		"failures", 2,
		"backoff", 15*time.Second,
		"restarting", true,
		slog.Group("tree", "layer", "api"),
	)

	output := buf.String()
	for _, want := range []string{
		`"supervisor":"marquee"`,
		`"service":"http-server"`,
		`"failures":2`,
		`"restarting":true`,
		`"tree.layer":"api"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewSlogHandler(NewTestLogger(&buf))

	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}

	logger := slog.New(h.WithGroup("data").WithGroup("badger"))
	logger.Info("opened", "dir", "/var/lib/marquee")

	if !strings.Contains(buf.String(), `"data.badger.dir":"/var/lib/marquee"`) {
		t.Errorf("expected grouped key, got: %s", buf.String())
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewSlogHandler(NewTestLogger(&buf).Level(zerolog.WarnLevel))

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = true for a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(error) = false for a warn logger")
	}
}

func TestNewSlogLogger(t *testing.T) {
	if NewSlogLogger() == nil {
		t.Fatal("NewSlogLogger() returned nil")
	}
}

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// withCapturedOutput points the global logger at a buffer for one test and
// restores the defaults afterwards.
func withCapturedOutput(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cfg.Output = &buf
	Init(cfg)
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestInit(t *testing.T) {
	buf := withCapturedOutput(t, Config{Level: "debug", Format: "json"})

	Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"service":"marquee"`) {
		t.Errorf("expected service field, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	buf := withCapturedOutput(t, Config{Level: "warn"})

	Debug().Msg("hidden debug")
	Info().Msg("hidden info")
	Warn().Msg("shown warn")
	Error().Msg("shown error")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("messages below warn were written: %s", output)
	}
	if !strings.Contains(output, "shown warn") || !strings.Contains(output, "shown error") {
		t.Errorf("expected warn and error output, got: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	buf := withCapturedOutput(t, Config{Level: "info"})

	logger := WithComponent("engine")
	logger.Info().Msg("built")

	if !strings.Contains(buf.String(), `"component":"engine"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}

func TestErr(t *testing.T) {
	buf := withCapturedOutput(t, Config{Level: "info"})

	Err(errors.New("persist failed")).Msg("dataset")

	output := buf.String()
	if !strings.Contains(output, `"error":"persist failed"`) {
		t.Errorf("expected error field, got: %s", output)
	}
}

func TestConsoleFormat(t *testing.T) {
	buf := withCapturedOutput(t, Config{Level: "info", Format: "console"})

	Info().Msg("console message")

	output := buf.String()
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("console format wrote JSON: %s", output)
	}
	if !strings.Contains(output, "console message") {
		t.Errorf("expected message in console output, got: %s", output)
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.Info().Str("key", "value").Msg("captured")

	if !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("expected captured field, got: %s", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	Info().Msg("replaced")
	child := WithComponent("session")
	child.Warn().Msg("child")

	output := buf.String()
	if !strings.Contains(output, "replaced") {
		t.Errorf("global logger not replaced, got: %s", output)
	}
	if !strings.Contains(output, `"component":"session"`) {
		t.Errorf("child logger not derived from replacement, got: %s", output)
	}
}

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Default file locations for the csv backend.
const (
	DefaultPath       = "data/movies.csv"
	DefaultMarkerPath = "data/last_model_refresh.txt"
)

// FileStore keeps the corpus in a CSV file and the refresh marker in a
// sibling text file.
type FileStore struct {
	path       string
	markerPath string
}

// Ensure FileStore implements Backend
var _ Backend = (*FileStore)(nil)

// NewFileStore creates a file-backed store. Empty paths use the defaults.
func NewFileStore(path, markerPath string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	if markerPath == "" {
		markerPath = DefaultMarkerPath
	}
	return &FileStore{path: path, markerPath: markerPath}
}

// Name implements Backend.
func (s *FileStore) Name() string { return BackendCSV }

// Close implements Backend. There is nothing to release.
func (s *FileStore) Close() error { return nil }

// Load implements Store.
func (s *FileStore) Load(_ context.Context) (items []catalog.Item, err error) {
	defer func() { metrics.RecordDatasetOperation(BackendCSV, "load", err) }()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(bufio.NewReader(f))
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(_ context.Context, items []catalog.Item) (err error) {
	defer func() { metrics.RecordDatasetOperation(BackendCSV, "save", err) }()

	return writeFileAtomic(s.path, func(w *bufio.Writer) error {
		return Encode(w, items)
	})
}

// LastRefresh implements Marker.
func (s *FileStore) LastRefresh(_ context.Context) (time.Time, error) {
	data, err := os.ReadFile(s.markerPath)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, ErrAbsent
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read refresh marker: %w", err)
	}
	return parseMarker(string(data))
}

// MarkRefreshed implements Marker.
func (s *FileStore) MarkRefreshed(_ context.Context, t time.Time) error {
	return writeFileAtomic(s.markerPath, func(w *bufio.Writer) error {
		_, err := w.WriteString(formatMarker(t))
		return err
	})
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over path.
func writeFileAtomic(path string, write func(w *bufio.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultKeyPrefix namespaces corpus keys in key-value backends.
const DefaultKeyPrefix = "marquee:"

// BadgerStore keeps the CSV-encoded corpus and the refresh marker in an
// embedded BadgerDB.
type BadgerStore struct {
	db        *badger.DB
	corpusKey []byte
	markerKey []byte
}

// Ensure BadgerStore implements Backend
var _ Backend = (*BadgerStore)(nil)

// OpenBadgerStore opens (or creates) a BadgerDB at dir. An empty dir opens
// an in-memory database.
func OpenBadgerStore(dir, keyPrefix string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	} else {
		opts.ValueLogFileSize = 64 << 20
		opts.SyncWrites = true
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for corpus: %w", err)
	}
	return NewBadgerStoreFromDB(db, keyPrefix), nil
}

// NewBadgerStoreFromDB wraps an existing BadgerDB connection.
func NewBadgerStoreFromDB(db *badger.DB, keyPrefix string) *BadgerStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &BadgerStore{
		db:        db,
		corpusKey: []byte(keyPrefix + "corpus"),
		markerKey: []byte(keyPrefix + "refreshed_at"),
	}
}

// Name implements Backend.
func (s *BadgerStore) Name() string { return BackendBadger }

// Close implements Backend.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Load implements Store.
func (s *BadgerStore) Load(_ context.Context) (items []catalog.Item, err error) {
	defer func() { metrics.RecordDatasetOperation(BackendBadger, "load", err) }()

	data, err := s.get(s.corpusKey)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// Save implements Store.
func (s *BadgerStore) Save(_ context.Context, items []catalog.Item) (err error) {
	defer func() { metrics.RecordDatasetOperation(BackendBadger, "save", err) }()

	var buf bytes.Buffer
	if err := Encode(&buf, items); err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.corpusKey, buf.Bytes())
	})
}

// LastRefresh implements Marker.
func (s *BadgerStore) LastRefresh(_ context.Context) (time.Time, error) {
	data, err := s.get(s.markerKey)
	if err != nil {
		return time.Time{}, err
	}
	return parseMarker(string(data))
}

// MarkRefreshed implements Marker.
func (s *BadgerStore) MarkRefreshed(_ context.Context, t time.Time) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.markerKey, []byte(formatMarker(t)))
	})
}

func (s *BadgerStore) get(key []byte) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

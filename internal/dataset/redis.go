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

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore keeps the CSV-encoded corpus and refresh marker in Redis so
// several replicas can share one corpus.
type RedisStore struct {
	client    *redis.Client
	corpusKey string
	markerKey string
}

// Ensure RedisStore implements Backend
var _ Backend = (*RedisStore)(nil)

// OpenRedisStore connects to Redis and verifies the connection.
func OpenRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return NewRedisStoreFromClient(client, opts.KeyPrefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisStore{
		client:    client,
		corpusKey: keyPrefix + "corpus",
		markerKey: keyPrefix + "refreshed_at",
	}
}

// Name implements Backend.
func (s *RedisStore) Name() string { return BackendRedis }

// Close implements Backend.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) (items []catalog.Item, err error) {
	defer func() { metrics.RecordDatasetOperation(BackendRedis, "load", err) }()

	data, err := s.client.Get(ctx, s.corpusKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.corpusKey, err)
	}
	return Decode(bytes.NewReader(data))
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, items []catalog.Item) (err error) {
	defer func() { metrics.RecordDatasetOperation(BackendRedis, "save", err) }()

	var buf bytes.Buffer
	if err := Encode(&buf, items); err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	if err := s.client.Set(ctx, s.corpusKey, buf.Bytes(), 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.corpusKey, err)
	}
	return nil
}

// LastRefresh implements Marker.
func (s *RedisStore) LastRefresh(ctx context.Context) (time.Time, error) {
	val, err := s.client.Get(ctx, s.markerKey).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, ErrAbsent
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get %s: %w", s.markerKey, err)
	}
	return parseMarker(val)
}

// MarkRefreshed implements Marker.
func (s *RedisStore) MarkRefreshed(ctx context.Context, t time.Time) error {
	return s.client.Set(ctx, s.markerKey, formatMarker(t), 0).Err()
}

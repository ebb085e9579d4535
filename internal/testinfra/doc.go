// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package testinfra provides container-backed infrastructure for
// integration tests.
//
// It uses testcontainers-go to start real services so that backends are
// exercised against the same software they run against in production.
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// # Redis
//
// NewRedisContainer starts a disposable Redis for the redis dataset
// backend:
//
//	func TestRedisStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    redis, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, redis.Container)
//	    // dial redis.Addr
//	}
//
// Tests skip gracefully when Docker is unavailable. The first run may
// need to pull the image.
package testinfra

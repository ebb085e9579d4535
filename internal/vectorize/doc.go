// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package vectorize turns feature strings into TF-IDF vectors.
//
// Fit learns a sorted vocabulary and smoothed inverse document frequencies
// from a corpus; the resulting Space maps any text into sparse,
// L2-normalized vectors. A Space never changes after Fit, so a new corpus
// always means a new Space.
package vectorize

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package rank

import (
	"github.com/tomtom215/marquee/internal/vectorize"
)

// Matrix holds the pairwise cosine similarities of a corpus. It is
// symmetric, stored as a flat row-major slice, and immutable once built.
type Matrix struct {
	n      int
	values []float64
}

// NewMatrix computes all pairwise similarities of vectors.
func NewMatrix(vectors []vectorize.Vector) *Matrix {
	n := len(vectors)
	m := &Matrix{n: n, values: make([]float64, n*n)}

	norms := make([]float64, n)
	for i := range vectors {
		norms[i] = vectors[i].Norm()
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var s float64
			if norms[i] != 0 && norms[j] != 0 {
				s = vectors[i].Dot(vectors[j]) / (norms[i] * norms[j])
			}
			m.values[i*n+j] = s
			m.values[j*n+i] = s
		}
	}
	return m
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return m.n }

// At returns the similarity of items i and j.
func (m *Matrix) At(i, j int) float64 { return m.values[i*m.n+j] }

// Row returns the similarities of item i to every item. The slice must not
// be modified.
func (m *Matrix) Row(i int) []float64 { return m.values[i*m.n : (i+1)*m.n] }

// Neighbours ranks the items most similar to item i, excluding i itself and
// any item sharing its title.
func (m *Matrix) Neighbours(i, limit int, titles []string) []Hit {
	if i < 0 || i >= m.n || limit <= 0 {
		return nil
	}
	seen := map[string]struct{}{titles[i]: {}}
	return Select(m.Row(i), titles, limit, i, seen)
}

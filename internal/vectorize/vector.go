// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package vectorize

import (
	"math"
	"sort"
)

// Vector is a sparse vector over a Space's vocabulary. Indices are strictly
// increasing and Values[i] is the weight of term Indices[i]. The zero value
// is the zero vector.
type Vector struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether v has no non-zero entries.
func (v Vector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Dot returns the inner product of v and w.
func (v Vector) Dot(w Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(w.Indices) {
		switch {
		case v.Indices[i] == w.Indices[j]:
			sum += v.Values[i] * w.Values[j]
			i++
			j++
		case v.Indices[i] < w.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Get returns the weight of term index i.
func (v Vector) Get(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// WeightedAverage returns Σ(vectors[i]·weights[i]) / (Σweights + eps).
// eps keeps the result finite when the weights sum to zero. It panics if
// the slices differ in length.
func WeightedAverage(vectors []Vector, weights []float64, eps float64) Vector {
	if len(vectors) != len(weights) {
		panic("vectorize: WeightedAverage length mismatch")
	}

	acc := make(map[int]float64)
	var total float64
	for i, v := range vectors {
		w := weights[i]
		total += w
		for k, idx := range v.Indices {
			acc[idx] += v.Values[k] * w
		}
	}

	out := Vector{
		Indices: make([]int, 0, len(acc)),
		Values:  make([]float64, 0, len(acc)),
	}
	for idx := range acc {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)

	denom := total + eps
	for _, idx := range out.Indices {
		out.Values = append(out.Values, acc[idx]/denom)
	}
	return out
}

// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package vectorize

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned by Fit when no document yields a token.
var ErrEmptyVocabulary = errors.New("vectorize: empty vocabulary")

// tokenPattern matches runs of two or more letters, digits or underscores,
// so normalized names such as science_fiction stay whole.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and returns its tokens with stop words removed.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if !IsStopWord(t) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Space is a fitted TF-IDF vector space. It is immutable after Fit and
// safe for concurrent use.
type Space struct {
	vocab []string
	index map[string]int
	idf   []float64
	docs  int
}

// Fit learns the vocabulary and inverse document frequencies of docs.
//
// Terms are ordered lexicographically. idf uses the smoothed form
// ln((1+n)/(1+df)) + 1.
func Fit(docs []string) (*Space, error) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, t := range Tokenize(doc) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(df))
	for t := range df {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	s := &Space{
		vocab: vocab,
		index: make(map[string]int, len(vocab)),
		idf:   make([]float64, len(vocab)),
		docs:  len(docs),
	}
	for i, t := range vocab {
		s.index[t] = i
		s.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return s, nil
}

// Vocabulary returns the sorted term list. The slice must not be modified.
func (s *Space) Vocabulary() []string { return s.vocab }

// Len returns the vocabulary size.
func (s *Space) Len() int { return len(s.vocab) }

// Docs returns the number of documents the space was fitted on.
func (s *Space) Docs() int { return s.docs }

// IDF returns the inverse document frequency of term, or 0 if the term is
// not in the vocabulary.
func (s *Space) IDF(term string) float64 {
	if i, ok := s.index[term]; ok {
		return s.idf[i]
	}
	return 0
}

// Transform maps text into the space as an L2-normalized TF-IDF vector.
// Terms outside the vocabulary are ignored; text with no known terms
// yields the zero vector.
func (s *Space) Transform(text string) Vector {
	counts := make(map[int]float64)
	for _, t := range Tokenize(text) {
		if i, ok := s.index[t]; ok {
			counts[i]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	v := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for i := range counts {
		v.Indices = append(v.Indices, i)
	}
	sort.Ints(v.Indices)

	var sum float64
	for _, i := range v.Indices {
		w := counts[i] * s.idf[i]
		v.Values = append(v.Values, w)
		sum += w * w
	}
	norm := math.Sqrt(sum)
	for k := range v.Values {
		v.Values[k] /= norm
	}
	return v
}

// TransformAll transforms each text in order.
func (s *Space) TransformAll(texts []string) []Vector {
	out := make([]Vector, len(texts))
	for i, t := range texts {
		out[i] = s.Transform(t)
	}
	return out
}

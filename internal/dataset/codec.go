// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/catalog"
)

// Columns is the persisted corpus header, in order.
var Columns = []string{"id", "title", "poster_path", "genres", "cast", "release_date", "overview", "features"}

// listSep joins list fields into one CSV cell. Normalized tokens never
// contain whitespace, so a single space splits losslessly.
const listSep = " "

// encodeList joins normalized tokens into a single field.
func encodeList(tokens []string) string {
	return strings.Join(tokens, listSep)
}

// decodeList splits a field produced by encodeList.
func decodeList(field string) []string {
	if field == "" {
		return []string{}
	}
	return strings.Split(field, listSep)
}

// Encode writes items as CSV with the Columns header.
func Encode(w io.Writer, items []catalog.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(Columns))
	for i := range items {
		it := &items[i]
		poster := ""
		if it.PosterPath != nil {
			poster = *it.PosterPath
		}
		record[0] = strconv.FormatInt(it.ID, 10)
		record[1] = it.Title
		record[2] = poster
		record[3] = encodeList(it.Genres)
		record[4] = encodeList(it.Cast)
		record[5] = it.ReleaseDate
		record[6] = it.Overview
		record[7] = catalog.JoinFeatures(it.Genres, it.Cast)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write item %d: %w", it.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Decode reads a corpus written by Encode. Any structural problem, or a
// features column that does not match its genres and cast, is reported
// as ErrCorrupt. Duplicate IDs keep their first row.
func Decode(r io.Reader) ([]catalog.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrCorrupt)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	for i, col := range Columns {
		if header[i] != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrCorrupt, i, header[i], col)
		}
	}

	var items []catalog.Item
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}

		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad id %q", ErrCorrupt, line, rec[0])
		}

		var poster *string
		if rec[2] != "" {
			p := rec[2]
			poster = &p
		}

		it := catalog.Item{
			ID:          id,
			Title:       rec[1],
			PosterPath:  poster,
			Genres:      decodeList(rec[3]),
			Cast:        decodeList(rec[4]),
			ReleaseDate: rec[5],
			Overview:    rec[6],
			Features:    rec[7],
		}
		if !it.Consistent() {
			return nil, fmt.Errorf("%w: line %d: features out of sync for id %d", ErrCorrupt, line, id)
		}
		items = append(items, it)
	}

	merged, _ := catalog.Merge(nil, items)
	return merged, nil
}

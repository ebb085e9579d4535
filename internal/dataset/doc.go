// Marquee - TF-IDF Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package dataset persists the movie corpus and the time of its last full
refresh, and decides when the corpus is stale.

# Backends

Three interchangeable backends implement Backend:

  - csv: a CSV file written atomically plus a marker file holding the
    refresh time as fractional Unix seconds
  - badger: an embedded BadgerDB holding the same CSV bytes
  - redis: a shared Redis instance, for several replicas

All backends store the corpus in the CSV format produced by Encode. Any
decoding problem is reported as ErrCorrupt, and a missing corpus or
marker as ErrAbsent. Callers treat both the same way.

# Staleness

TimePolicy refreshes once the marker is older than the interval (24 hours
by default). SizePolicy refreshes while the corpus is below a target
size, regardless of age.
*/
package dataset

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

// Package stats serves catalog analytics summaries through a TTL cache.
//
// Every summary is an aggregation over whole catalog tables, and the
// answers only change when an import runs. Results are therefore cached
// under method+parameter keys and invalidated wholesale after imports.
// The ranking engine in internal/discover stays cache-free; this package
// is where cached reads live.
package stats

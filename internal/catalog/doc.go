// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

// Package catalog persists the movie catalog in an embedded DuckDB database
// and serves both halves of the application: structured browsing (lists,
// search, credits, analytics) and the in-memory snapshot the discovery
// ranking engine consumes.
//
// # Architecture
//
// Store wraps a single *sql.DB connection pool. Writes go through upsert
// methods that validate at the boundary; reads are plain SQL with safelisted
// sort columns. There is no ORM and no query builder: the schema is small
// enough that hand-written SQL stays readable, and DuckDB-native features
// (LIST aggregation, EXTRACT) carry the interesting queries.
//
// The provider methods Movies and MovieByID implement the discovery
// package's CatalogProvider interface, keeping the dependency arrow pointing
// from storage to ranking and not the other way around.
//
// # Data Contract
//
// The ranking engine assumes rating, popularity, and vote count are always
// defined and non-negative. The catalog enforces that three times over:
// UpsertMovie rejects violating writes, the schema carries CHECK
// constraints, and the snapshot queries re-check the ranges so a catalog
// file this binary did not write cannot leak violating rows.
//
// # Concurrency
//
// DuckDB runs embedded in-process. All Store methods are safe for
// concurrent use; the database/sql pool serializes access where DuckDB
// requires it. Long imports and interactive queries can overlap.
package catalog

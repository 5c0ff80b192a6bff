// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

//go:build cgo

package catalog

// The DuckDB driver is cgo-based and cannot compile with CGO_ENABLED=0, so
// its registration lives behind the cgo build tag. Non-cgo builds compile
// the rest of the package but fail at runtime when opening the database.
import _ "github.com/duckdb/duckdb-go/v2"

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

// Package gemimport streams movie seed files into the catalog.
//
// A seed file is a TMDB-shaped dump: either one JSON array of movie objects
// or newline-delimited JSON, detected automatically. Records stream through
// a decoder one at a time, so multi-gigabyte dumps import in constant
// memory.
//
// # Pipeline
//
//	Seed file (JSON array or NDJSON)
//	       ↓
//	Importer (this package): decode, validate, map
//	       ↓
//	catalog.Store upserts (internal/catalog)
//	       ↓
//	DuckDB catalog file
//
// # Validation
//
// Every record passes the catalog's write contract before touching the
// store: positive ID, non-empty title, rating within [0, 10], non-negative
// popularity and vote count, parseable release date. Failing records are
// counted as skipped and logged; they never abort the import. Syntax errors
// in the file itself do abort, since nothing after them can be trusted.
//
// # Idempotency
//
// All writes are upserts keyed on TMDB IDs, so re-importing a file is safe.
// Genre links are replaced per movie; cast and crew are only replaced when
// the record carries a credits block, so a credit-less dump cannot wipe
// credits loaded from a richer one.
//
// # Example Usage
//
//	importer, err := gemimport.NewImporter(&cfg.Import, store)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("importer setup failed")
//	}
//
//	stats, err := importer.Import(ctx, "movies.json")
//	if err != nil {
//	    log.Error().Err(err).Msg("import failed")
//	}
//	log.Info().Int64("imported", stats.Imported).Msg("seed loaded")
package gemimport

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

// Package config provides centralized configuration management for Gemdex.
//
// Configuration is loaded with Koanf v2 from three layered sources, in
// increasing priority:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH override)
//  3. Environment variables (see envTransformFunc for the supported names)
//
// The resulting Config is validated before it is returned and immutable
// afterwards, so it is safe for concurrent read access.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Invalid configuration")
//	}
//	store, err := catalog.Open(&cfg.Catalog)
//
// Sections: Catalog (DuckDB store), Discover (ranking defaults), Import
// (seed ingestion), Stats (analytics cache), Logging.
package config

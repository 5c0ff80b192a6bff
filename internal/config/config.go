// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package config

import (
	"time"
)

// Config holds all Gemdex configuration loaded from defaults, an optional
// YAML config file, and environment variables (in that precedence order).
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Discover DiscoverConfig `koanf:"discover"`
	Import   ImportConfig   `koanf:"import"`
	Stats    StatsConfig    `koanf:"stats"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// CatalogConfig holds the embedded DuckDB catalog store settings.
//
// Environment Variables:
//   - CATALOG_PATH: database file path (default: gemdex.duckdb)
//   - CATALOG_MAX_MEMORY: DuckDB memory limit (default: 2GB)
//   - CATALOG_THREADS: DuckDB thread count (0 = use NumCPU)
type CatalogConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`                  // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // Whether to preserve insertion order (default true)
}

// DiscoverConfig holds the discovery ranking defaults applied when a request
// does not set a parameter explicitly. MinVotes is the fixed hidden-gem
// confidence floor; it is configured here rather than per request.
//
// Environment Variables:
//   - DISCOVER_MIN_RATING (default: 7.0)
//   - DISCOVER_MAX_POPULARITY (default: 20.0)
//   - DISCOVER_MIN_VOTES (default: 50)
//   - DISCOVER_PAGE_SIZE (default: 24)
//   - DISCOVER_MAX_PAGE_SIZE (default: 100)
//   - DISCOVER_SIMILAR_LIMIT (default: 6)
type DiscoverConfig struct {
	MinRating     float64 `koanf:"min_rating"`
	MaxPopularity float64 `koanf:"max_popularity"`
	MinVotes      int64   `koanf:"min_votes"`
	PageSize      int     `koanf:"page_size"`
	MaxPageSize   int     `koanf:"max_page_size"`
	SimilarLimit  int     `koanf:"similar_limit"`
}

// ImportConfig holds seed import settings.
type ImportConfig struct {
	// BatchSize is the number of movie records inserted per transaction.
	// Higher values improve throughput but use more memory.
	// Default: 500
	BatchSize int `koanf:"batch_size"`

	// DryRun parses and validates the seed file without writing to the
	// catalog. Useful for checking seed compatibility before committing.
	DryRun bool `koanf:"dry_run"`
}

// StatsConfig holds analytics service settings.
type StatsConfig struct {
	// CacheTTL is how long computed analytics summaries stay cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

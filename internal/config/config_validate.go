// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package config

import (
	"fmt"
)

// validLogLevels defines the accepted LOG_LEVEL values.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the accepted LOG_FORMAT values.
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateDiscover(); err != nil {
		return err
	}

	if err := c.validateImport(); err != nil {
		return err
	}

	if err := c.validateStats(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateCatalog validates the catalog store configuration.
func (c *Config) validateCatalog() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH must not be empty")
	}
	if c.Catalog.Threads < 0 {
		return fmt.Errorf("CATALOG_THREADS must not be negative")
	}
	return nil
}

// validateDiscover validates the discovery ranking defaults. The bounds match
// the engine contract: ratings live on a 0-10 scale and popularity is
// non-negative.
func (c *Config) validateDiscover() error {
	d := c.Discover
	if d.MinRating < 0 || d.MinRating > 10 {
		return fmt.Errorf("DISCOVER_MIN_RATING must be between 0 and 10")
	}
	if d.MaxPopularity < 0 {
		return fmt.Errorf("DISCOVER_MAX_POPULARITY must not be negative")
	}
	if d.MinVotes < 0 {
		return fmt.Errorf("DISCOVER_MIN_VOTES must not be negative")
	}
	if d.PageSize < 1 {
		return fmt.Errorf("DISCOVER_PAGE_SIZE must be at least 1")
	}
	if d.MaxPageSize < d.PageSize {
		return fmt.Errorf("DISCOVER_MAX_PAGE_SIZE must be at least DISCOVER_PAGE_SIZE")
	}
	if d.SimilarLimit < 1 {
		return fmt.Errorf("DISCOVER_SIMILAR_LIMIT must be at least 1")
	}
	return nil
}

// validateImport validates the seed import configuration.
func (c *Config) validateImport() error {
	if c.Import.BatchSize < 1 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be at least 1")
	}
	return nil
}

// validateStats validates the analytics service configuration.
func (c *Config) validateStats() error {
	if c.Stats.CacheTTL <= 0 {
		return fmt.Errorf("STATS_CACHE_TTL must be positive")
	}
	return nil
}

// validateLogging validates the logging configuration.
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

/*
Package cache provides thread-safe in-memory caching with TTL support.

This package implements a simple but effective caching layer for catalog
analytics results, reducing DuckDB load for frequently requested aggregates.
The discovery ranking engine itself never caches; only the stats service
in front of the catalog uses this package.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Time-to-live (TTL) expiration with background cleanup
  - Simple key-value storage with any value type (interface{})
  - Hit/miss/eviction statistics for monitoring
  - Deterministic key generation from query parameters

# Use Cases

Primary use cases:
  - Catalog overview statistics (5-minute TTL)
  - Genre distribution and per-genre rating aggregates (5-minute TTL)
  - Movies-by-year release histograms (5-minute TTL)
  - Top-movie lists by rating, popularity, or vote count (5-minute TTL)

# Usage Example

Basic caching:

	import "github.com/tomtom215/gemdex/internal/cache"

	// Create cache with 5-minute default TTL
	c := cache.New(5 * time.Minute)

	// Store value
	c.Set("stats:overview", overview)

	// Retrieve value
	if value, ok := c.Get("stats:overview"); ok {
	    overview := value.(*catalog.Overview)
	    // Use cached overview
	}

	// Delete specific key
	c.Delete("stats:overview")

	// Clear entire cache
	c.Clear()

Service caching pattern:

	func (s *Service) GenreRatings(ctx context.Context) ([]GenreRating, error) {
	    key := cache.GenerateKey("GenreRatings", nil)

	    if cached, ok := s.cache.Get(key); ok {
	        return cached.([]GenreRating), nil
	    }

	    ratings, err := s.provider.GenreRatings(ctx)
	    if err != nil {
	        return nil, err
	    }

	    s.cache.Set(key, ratings)
	    return ratings, nil
	}

Parameterized cache keys:

	// GenerateKey hashes the JSON form of the parameters, so any
	// comparable query shape produces a stable, compact key.
	key := cache.GenerateKey("TopMovies", struct {
	    Metric string
	    Limit  int
	}{Metric: "popularity", Limit: 10})

# Cache Invalidation

The cache supports two invalidation strategies:

1. TTL-based expiration (automatic):
  - Items expire after the configured TTL
  - Checked lazily during Get operations
  - Background cleanup sweeps expired entries every 5 minutes

2. Manual invalidation (on data changes):
  - Clear() removes all cache entries
  - Delete(key) removes specific entry
  - A completed catalog import should trigger a full clear

Example: Clear cache after import

	stats, err := importer.Import(ctx, seedPath)
	if err != nil {
	    return err
	}
	statsService.InvalidateCache()

# Cache Key Conventions

Keys are method-prefixed hashes produced by GenerateKey:

	Overview:a1b2c3...          // Catalog totals
	GenreDistribution:d4e5f6... // Genre histogram
	GenreRatings:07a8b9...      // Per-genre rating aggregates
	MoviesByYear:c0d1e2...      // Release-year histogram
	TopMovies:f3a4b5...         // Parameterized top-N lists

# Thread Safety

All cache methods are thread-safe using sync.RWMutex:

  - Get: Acquires read lock (concurrent reads allowed)
  - Set: Acquires write lock (exclusive access)
  - Delete: Acquires write lock (exclusive access)
  - Clear: Acquires write lock (exclusive access)

Multiple goroutines can safely access the cache concurrently.

# Limitations

The current implementation has intentional limitations for simplicity:

  - No maximum cache size limit (grows unbounded)
  - No LRU eviction policy (only TTL-based)
  - No cache persistence (in-memory only)
  - No distributed caching (single instance)

These limitations are acceptable for the application's scale: the cached
analytics blocks are small and their cardinality is bounded by the handful
of stats queries the service exposes.

# See Also

  - internal/stats: Analytics service that uses this cache
  - internal/catalog: DuckDB queries cached by this package
*/
package cache

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

/*
Package metrics provides Prometheus metrics collection for observability.

This package instruments the application using the Prometheus client library,
recording metrics for catalog queries, discovery ranking, imports, and cache
efficiency. Metrics register against the default Prometheus registry; a
long-running embedder can expose them with promhttp.Handler, and the CLI
simply records them in-process.

# Overview

The package provides metrics for:
  - Catalog query performance (DuckDB)
  - Discovery and similar-movie request latency
  - Import operation statistics
  - Stats cache hit/miss rates

# Available Metrics

Catalog Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_connection_pool_size: Connections in use (gauge)

Discovery Metrics:
  - discover_requests_total: Discovery requests (counter)
    Labels: sort (gem_score, rating, most_hidden, newest)
  - discover_duration_seconds: Request latency (histogram)
    Labels: sort
  - discover_result_count: Matches before pagination (histogram)
  - similar_requests_total: Similar-movie requests (counter)
  - similar_duration_seconds: Similar-movie latency (histogram)

Import Metrics:
  - import_duration_seconds: Import duration (histogram)
    Buckets: 1, 5, 10, 30, 60, 120, 300, 600
  - import_records_processed_total: Records processed (counter)
  - import_errors_total: Failed imports (counter)
    Labels: error_type (decode, database, validation, other)
  - import_last_success_timestamp: Unix timestamp of last success (gauge)
  - import_batch_size: Records per flushed batch (histogram)

Cache Metrics:
  - cache_hits_total, cache_misses_total: Hit/miss counters
    Labels: cache_type
  - cache_entries: Current entry count (gauge)
    Labels: cache_type

# Usage Example

Recording catalog query metrics:

	func (s *Store) ListMovies(ctx context.Context, filter MovieFilter) ([]Movie, int, error) {
	    start := time.Now()
	    movies, total, err := s.listMovies(ctx, filter)
	    metrics.RecordCatalogQuery("SELECT", "movies", time.Since(start), err)
	    return movies, total, err
	}

Recording discovery metrics:

	result, err := service.Discover(ctx, params)
	if err == nil {
	    metrics.RecordDiscoverRequest(params.Sort.String(), elapsed, result.TotalCount)
	}

Example PromQL queries:

	# Discovery request rate by sort mode
	rate(discover_requests_total[5m])

	# Catalog p95 query latency
	histogram_quantile(0.95, rate(duckdb_query_duration_seconds_bucket[5m]))

	# Stats cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Sort-mode labels come from a fixed four-value enum
  - Table labels name the handful of catalog tables
  - Error types are truncated or mapped to predefined constants
  - Per-movie and per-user labels are avoided

# See Also

  - internal/catalog: Catalog query metrics recording
  - internal/gemimport: Import operation metrics
  - internal/stats: Cache hit/miss recording
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
*/
package metrics

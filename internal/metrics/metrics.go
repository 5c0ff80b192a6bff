// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Catalog query performance (DuckDB)
// - Discovery and similarity request latency
// - Import operation metrics
// - Stats cache efficiency

var (
	// Catalog Metrics
	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	CatalogQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	CatalogConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "duckdb_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// Discovery Metrics
	DiscoverRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discover_requests_total",
			Help: "Total number of discovery ranking requests",
		},
		[]string{"sort"},
	)

	DiscoverDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discover_duration_seconds",
			Help:    "Duration of discovery requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"sort"},
	)

	DiscoverResultCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discover_result_count",
			Help:    "Number of movies matching discovery filters before pagination",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	SimilarRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "similar_requests_total",
			Help: "Total number of similar-movie requests",
		},
	)

	SimilarDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similar_duration_seconds",
			Help:    "Duration of similar-movie requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// Import Operation Metrics
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "import_duration_seconds",
			Help:    "Duration of catalog import operations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600}, // Imports can take minutes
		},
	)

	ImportRecordsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "import_records_processed_total",
			Help: "Total number of movie records processed during import",
		},
	)

	ImportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_errors_total",
			Help: "Total number of import errors",
		},
		[]string{"error_type"}, // "decode", "database", "validation", "other"
	)

	ImportLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "import_last_success_timestamp",
			Help: "Unix timestamp of last successful import",
		},
	)

	ImportBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "import_batch_size",
			Help:    "Number of records in import batches",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 5000, 10000},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "stats"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordCatalogQuery records a catalog query metric
func RecordCatalogQuery(operation, table string, duration time.Duration, err error) {
	CatalogQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		CatalogQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordDiscoverRequest records a discovery request metric
func RecordDiscoverRequest(sort string, duration time.Duration, totalMatched int) {
	DiscoverRequestsTotal.WithLabelValues(sort).Inc()
	DiscoverDuration.WithLabelValues(sort).Observe(duration.Seconds())
	DiscoverResultCount.Observe(float64(totalMatched))
}

// RecordSimilarRequest records a similar-movie request metric
func RecordSimilarRequest(duration time.Duration) {
	SimilarRequestsTotal.Inc()
	SimilarDuration.Observe(duration.Seconds())
}

// RecordImportOperation records an import operation metric
func RecordImportOperation(duration time.Duration, recordsProcessed int64, err error) {
	ImportDuration.Observe(duration.Seconds())
	ImportRecordsProcessed.Add(float64(recordsProcessed))
	if err != nil {
		errorType := "other"
		// Categorize error types
		errorMsg := err.Error()
		switch {
		case strings.Contains(errorMsg, "decode"), strings.Contains(errorMsg, "unmarshal"):
			errorType = "decode"
		case strings.Contains(errorMsg, "database"), strings.Contains(errorMsg, "duckdb"):
			errorType = "database"
		case strings.Contains(errorMsg, "validation"):
			errorType = "validation"
		}
		ImportErrors.WithLabelValues(errorType).Inc()
	} else {
		// Update last success timestamp
		ImportLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordImportBatch records the size of a flushed import batch
func RecordImportBatch(batchSize int) {
	ImportBatchSize.Observe(float64(batchSize))
}

// RecordCacheHit records a cache hit for the given cache type
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// UpdateCacheSize updates the entry-count gauge for the given cache type
func UpdateCacheSize(cacheType string, entries int64) {
	CacheSize.WithLabelValues(cacheType).Set(float64(entries))
}

// SetAppInfo records version and build information
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

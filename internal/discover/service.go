// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package discover

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gemdex/internal/logging"
	"github.com/tomtom215/gemdex/internal/metrics"
	"github.com/tomtom215/gemdex/internal/validation"
)

// Service wraps the pure ranking functions with catalog access, parameter
// validation, structured logging, and Prometheus metrics. It holds no
// catalog state of its own; every request works on a fresh snapshot from
// the provider, so it is safe for concurrent use.
type Service struct {
	provider CatalogProvider
	logger   zerolog.Logger

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Metrics is a point-in-time snapshot of the service's request counters.
type Metrics struct {
	// RequestCount is the number of Discover and Similar calls served,
	// including failed ones.
	RequestCount int64 `json:"request_count"`

	// ErrorCount is the number of calls that returned an error.
	ErrorCount int64 `json:"error_count"`
}

// NewService creates a discovery service backed by the given catalog
// provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(provider CatalogProvider, logger zerolog.Logger) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("catalog provider is required")
	}
	return &Service{
		provider: provider,
		logger:   logger.With().Str("component", "discover").Logger(),
	}, nil
}

// Discover validates params, loads a catalog snapshot, and serves one
// ranked page. Validation failures and provider failures are the only
// error paths; the ranking itself cannot fail.
//
// The service does not fill in defaults. Callers that want the standard
// thresholds start from DefaultParams, and zero-valued thresholds are
// honored as written.
func (s *Service) Discover(ctx context.Context, params Params) (*Result, error) {
	start := time.Now()
	s.requestCount.Add(1)

	requestID := requestIDFor(ctx)
	logger := s.logger.With().
		Str("request_id", requestID).
		Str("sort", params.Sort.String()).
		Logger()
	logger.Debug().
		Float64("min_rating", params.MinRating).
		Float64("max_popularity", params.MaxPopularity).
		Int("page", params.Page).
		Msg("processing discover request")

	if err := validation.ValidateStruct(&params); err != nil {
		s.errorCount.Add(1)
		return nil, fmt.Errorf("invalid discover params: %w", err)
	}

	catalog, err := s.provider.Movies(ctx)
	if err != nil {
		s.errorCount.Add(1)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	movies, total := Discover(catalog, params)

	elapsed := time.Since(start)
	metrics.RecordDiscoverRequest(params.Sort.String(), elapsed, total)

	logger.Debug().
		Int("catalog", len(catalog)).
		Int("matched", total).
		Int("returned", len(movies)).
		Int64("latency_ms", elapsed.Milliseconds()).
		Msg("discover complete")

	return &Result{
		Movies:     movies,
		TotalCount: total,
		Page:       normalizePage(params.Page),
		PageSize:   params.PageSize,
		TotalPages: totalPages(total, params.PageSize),
		Sort:       params.Sort.String(),
		RequestID:  requestID,
		ElapsedMS:  elapsed.Milliseconds(),
	}, nil
}

// Similar loads the reference movie and a catalog snapshot, then serves
// the genre-overlap ranking. A non-positive limit is served with
// DefaultSimilarLimit; the pure Similar function keeps its stricter
// empty-result reading for direct callers.
func (s *Service) Similar(ctx context.Context, movieID int64, limit int) (*SimilarResult, error) {
	start := time.Now()
	s.requestCount.Add(1)

	requestID := requestIDFor(ctx)
	logger := s.logger.With().
		Str("request_id", requestID).
		Int64("movie_id", movieID).
		Logger()
	logger.Debug().Msg("processing similar request")

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	ref, err := s.provider.MovieByID(ctx, movieID)
	if err != nil {
		s.errorCount.Add(1)
		return nil, fmt.Errorf("load reference movie: %w", err)
	}

	catalog, err := s.provider.Movies(ctx)
	if err != nil {
		s.errorCount.Add(1)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	movies := Similar(catalog, ref, limit)

	elapsed := time.Since(start)
	metrics.RecordSimilarRequest(elapsed)

	logger.Debug().
		Int("catalog", len(catalog)).
		Int("returned", len(movies)).
		Int64("latency_ms", elapsed.Milliseconds()).
		Msg("similar complete")

	return &SimilarResult{
		Reference: ref,
		Movies:    movies,
		RequestID: requestID,
		ElapsedMS: elapsed.Milliseconds(),
	}, nil
}

// GetMetrics returns the current request counters.
func (s *Service) GetMetrics() Metrics {
	return Metrics{
		RequestCount: s.requestCount.Load(),
		ErrorCount:   s.errorCount.Load(),
	}
}

// requestIDFor returns the request ID carried by ctx, or mints a fresh
// one for direct embedders that skip the CLI's context setup.
func requestIDFor(ctx context.Context) string {
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}

// normalizePage maps page numbers below one to page one.
func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// totalPages returns the page count for total items at pageSize, zero
// when pageSize is not positive.
func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

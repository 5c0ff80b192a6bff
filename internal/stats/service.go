// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gemdex/internal/cache"
	"github.com/tomtom215/gemdex/internal/catalog"
	"github.com/tomtom215/gemdex/internal/metrics"
)

// DefaultCacheTTL is used when the configured TTL is not positive.
const DefaultCacheTTL = 5 * time.Minute

// cacheType labels this service's entries in the cache metrics.
const cacheType = "stats"

// Provider is the slice of the catalog the analytics service reads.
// *catalog.Store satisfies it.
type Provider interface {
	OverviewStats(ctx context.Context) (*catalog.Overview, error)
	GenreDistribution(ctx context.Context) ([]catalog.GenreCount, error)
	GenreRatings(ctx context.Context, minMovies int) ([]catalog.GenreRating, error)
	MoviesByYear(ctx context.Context) ([]catalog.YearCount, error)
	TopByMetric(ctx context.Context, metric string, limit int) ([]catalog.MovieRecord, error)
}

// Service serves catalog analytics through a TTL cache. The aggregations
// scan whole tables and their answers only change when an import runs, so
// each summary is cached under a key derived from the method name and its
// parameters. Errors are never cached.
type Service struct {
	provider Provider
	cache    *cache.Cache
	logger   zerolog.Logger
}

// NewService creates an analytics service over the given provider. A
// non-positive TTL falls back to DefaultCacheTTL.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(provider Provider, cacheTTL time.Duration, logger zerolog.Logger) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("stats provider is required")
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	return &Service{
		provider: provider,
		cache:    cache.New(cacheTTL),
		logger:   logger.With().Str("component", "stats").Logger(),
	}, nil
}

// Overview returns catalog-wide totals and averages.
func (s *Service) Overview(ctx context.Context) (*catalog.Overview, error) {
	key := cache.GenerateKey("overview", nil)
	if cached, found := s.cache.Get(key); found {
		if overview, ok := cached.(*catalog.Overview); ok {
			metrics.RecordCacheHit(cacheType)
			return overview, nil
		}
	}
	metrics.RecordCacheMiss(cacheType)

	overview, err := s.provider.OverviewStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute overview: %w", err)
	}

	s.cache.Set(key, overview)
	s.recordCacheSize()
	return overview, nil
}

// GenreDistribution returns the movie count per genre.
func (s *Service) GenreDistribution(ctx context.Context) ([]catalog.GenreCount, error) {
	key := cache.GenerateKey("genre_distribution", nil)
	if cached, found := s.cache.Get(key); found {
		if counts, ok := cached.([]catalog.GenreCount); ok {
			metrics.RecordCacheHit(cacheType)
			return counts, nil
		}
	}
	metrics.RecordCacheMiss(cacheType)

	counts, err := s.provider.GenreDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute genre distribution: %w", err)
	}

	s.cache.Set(key, counts)
	s.recordCacheSize()
	return counts, nil
}

// GenreRatings returns the average rating per genre, restricted to genres
// with at least minMovies rated movies.
func (s *Service) GenreRatings(ctx context.Context, minMovies int) ([]catalog.GenreRating, error) {
	key := cache.GenerateKey("genre_ratings", minMovies)
	if cached, found := s.cache.Get(key); found {
		if ratings, ok := cached.([]catalog.GenreRating); ok {
			metrics.RecordCacheHit(cacheType)
			return ratings, nil
		}
	}
	metrics.RecordCacheMiss(cacheType)

	ratings, err := s.provider.GenreRatings(ctx, minMovies)
	if err != nil {
		return nil, fmt.Errorf("compute genre ratings: %w", err)
	}

	s.cache.Set(key, ratings)
	s.recordCacheSize()
	return ratings, nil
}

// MoviesByYear returns the release count and average rating per year.
func (s *Service) MoviesByYear(ctx context.Context) ([]catalog.YearCount, error) {
	key := cache.GenerateKey("movies_by_year", nil)
	if cached, found := s.cache.Get(key); found {
		if years, ok := cached.([]catalog.YearCount); ok {
			metrics.RecordCacheHit(cacheType)
			return years, nil
		}
	}
	metrics.RecordCacheMiss(cacheType)

	years, err := s.provider.MoviesByYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute movies by year: %w", err)
	}

	s.cache.Set(key, years)
	s.recordCacheSize()
	return years, nil
}

// topMoviesParams feeds the cache key for TopMovies.
type topMoviesParams struct {
	Metric string `json:"metric"`
	Limit  int    `json:"limit"`
}

// TopMovies returns the movies leading one metric (rating, popularity or
// vote_count). Unsupported metrics fail before anything is cached.
func (s *Service) TopMovies(ctx context.Context, metric string, limit int) ([]catalog.MovieRecord, error) {
	key := cache.GenerateKey("top_movies", topMoviesParams{Metric: metric, Limit: limit})
	if cached, found := s.cache.Get(key); found {
		if movies, ok := cached.([]catalog.MovieRecord); ok {
			metrics.RecordCacheHit(cacheType)
			return movies, nil
		}
	}
	metrics.RecordCacheMiss(cacheType)

	movies, err := s.provider.TopByMetric(ctx, metric, limit)
	if err != nil {
		return nil, fmt.Errorf("compute top movies: %w", err)
	}

	s.cache.Set(key, movies)
	s.recordCacheSize()
	return movies, nil
}

// InvalidateCache drops every cached summary. Long-lived embedders call
// this after an import so the next read reflects the new catalog.
func (s *Service) InvalidateCache() {
	s.cache.Clear()
	metrics.UpdateCacheSize(cacheType, 0)
	s.logger.Debug().Msg("analytics cache cleared")
}

// CacheStats reports the cache hit, miss and eviction counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.GetStats()
}

func (s *Service) recordCacheSize() {
	metrics.UpdateCacheSize(cacheType, s.cache.GetStats().TotalKeys)
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/gemdex/internal/metrics"
)

// Overview is a whole-catalog summary.
type Overview struct {
	TotalMovies   int64     `json:"total_movies"`
	TotalPeople   int64     `json:"total_people"`
	TotalGenres   int64     `json:"total_genres"`
	AvgRating     float64   `json:"avg_rating"`
	AvgPopularity float64   `json:"avg_popularity"`
	TotalVotes    int64     `json:"total_votes"`
	OldestRelease time.Time `json:"oldest_release"` // zero when no movie has a release date
	NewestRelease time.Time `json:"newest_release"` // zero when no movie has a release date
}

// GenreCount is the number of movies tagged with one genre.
type GenreCount struct {
	GenreID    int64  `json:"genre_id"`
	Name       string `json:"name"`
	MovieCount int64  `json:"movie_count"`
}

// GenreRating is the average rating across one genre's movies.
type GenreRating struct {
	GenreID    int64   `json:"genre_id"`
	Name       string  `json:"name"`
	AvgRating  float64 `json:"avg_rating"`
	MovieCount int64   `json:"movie_count"`
}

// YearCount is the number of movies released in one year.
type YearCount struct {
	Year       int     `json:"year"`
	MovieCount int64   `json:"movie_count"`
	AvgRating  float64 `json:"avg_rating"`
}

// topMetricColumns maps TopByMetric metric names to ORDER BY columns.
// Acts as a safelist: metric input never reaches SQL text directly.
var topMetricColumns = map[string]string{
	"rating":     "rating",
	"popularity": "popularity",
	"vote_count": "vote_count",
}

// OverviewStats returns whole-catalog totals and averages.
// Averages are 0 on an empty catalog, not NaN.
func (s *Store) OverviewStats(ctx context.Context) (overview *Overview, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("overview_stats", "movies", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `SELECT
		(SELECT COUNT(*) FROM movies),
		(SELECT COUNT(*) FROM people),
		(SELECT COUNT(*) FROM genres),
		(SELECT COALESCE(AVG(rating), 0) FROM movies),
		(SELECT COALESCE(AVG(popularity), 0) FROM movies),
		(SELECT COALESCE(SUM(vote_count), 0) FROM movies),
		(SELECT MIN(release_date) FROM movies),
		(SELECT MAX(release_date) FROM movies)`

	var o Overview
	var oldest, newest sql.NullTime

	err = s.conn.QueryRowContext(ctx, query).Scan(
		&o.TotalMovies, &o.TotalPeople, &o.TotalGenres,
		&o.AvgRating, &o.AvgPopularity, &o.TotalVotes,
		&oldest, &newest,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load overview stats: %w", err)
	}

	if oldest.Valid {
		o.OldestRelease = oldest.Time
	}
	if newest.Valid {
		o.NewestRelease = newest.Time
	}

	return &o, nil
}

// GenreDistribution returns movie counts per genre, largest first.
// Genres with no movies are included with a zero count.
func (s *Store) GenreDistribution(ctx context.Context) (counts []GenreCount, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("genre_distribution", "genres", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `SELECT g.id, g.name, COUNT(mg.movie_id) AS movie_count
	FROM genres g
	LEFT JOIN movie_genres mg ON mg.genre_id = g.id
	GROUP BY g.id, g.name
	ORDER BY movie_count DESC, g.name ASC`

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load genre distribution: %w", err)
	}
	defer rows.Close()

	counts = make([]GenreCount, 0)
	for rows.Next() {
		var c GenreCount
		if err = rows.Scan(&c.GenreID, &c.Name, &c.MovieCount); err != nil {
			return nil, fmt.Errorf("failed to scan genre count: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("genre distribution iteration failed: %w", err)
	}

	return counts, nil
}

// GenreRatings returns average ratings per genre, best first. minMovies
// drops genres with too few movies for the average to mean anything; 0
// keeps every genre that has at least one movie.
func (s *Store) GenreRatings(ctx context.Context, minMovies int) (ratings []GenreRating, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("genre_ratings", "genres", time.Since(start), err) }()

	if minMovies < 0 {
		minMovies = 0
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `SELECT g.id, g.name, AVG(m.rating) AS avg_rating, COUNT(*) AS movie_count
	FROM genres g
	JOIN movie_genres mg ON mg.genre_id = g.id
	JOIN movies m ON m.id = mg.movie_id
	GROUP BY g.id, g.name
	HAVING COUNT(*) >= ?
	ORDER BY avg_rating DESC, g.name ASC`

	rows, err := s.conn.QueryContext(ctx, query, minMovies)
	if err != nil {
		return nil, fmt.Errorf("failed to load genre ratings: %w", err)
	}
	defer rows.Close()

	ratings = make([]GenreRating, 0)
	for rows.Next() {
		var r GenreRating
		if err = rows.Scan(&r.GenreID, &r.Name, &r.AvgRating, &r.MovieCount); err != nil {
			return nil, fmt.Errorf("failed to scan genre rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("genre rating iteration failed: %w", err)
	}

	return ratings, nil
}

// MoviesByYear returns per-year release counts in chronological order.
// Movies without a release date are not counted.
func (s *Store) MoviesByYear(ctx context.Context) (years []YearCount, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("movies_by_year", "movies", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `SELECT CAST(EXTRACT(YEAR FROM release_date) AS INTEGER) AS year,
		COUNT(*) AS movie_count, AVG(rating) AS avg_rating
	FROM movies
	WHERE release_date IS NOT NULL
	GROUP BY year
	ORDER BY year ASC`

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load movies by year: %w", err)
	}
	defer rows.Close()

	years = make([]YearCount, 0)
	for rows.Next() {
		var y YearCount
		if err = rows.Scan(&y.Year, &y.MovieCount, &y.AvgRating); err != nil {
			return nil, fmt.Errorf("failed to scan year count: %w", err)
		}
		years = append(years, y)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("movies by year iteration failed: %w", err)
	}

	return years, nil
}

// TopByMetric returns the highest-scoring movies by one of the safelisted
// metrics: rating, popularity, or vote_count.
func (s *Store) TopByMetric(ctx context.Context, metric string, limit int) (movies []MovieRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("top_by_metric", "movies", time.Since(start), err) }()

	column, ok := topMetricColumns[metric]
	if !ok {
		return nil, fmt.Errorf("unsupported metric %q", metric)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `SELECT id, title, original_title, overview, tagline, release_date, runtime,
		rating, popularity, vote_count, poster_path, backdrop_path,
		original_language, adult, created_at, updated_at
	FROM movies` +
		fmt.Sprintf(" ORDER BY %s DESC, id ASC LIMIT ?", column)

	rows, err := s.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top movies by %s: %w", metric, err)
	}
	defer rows.Close()

	return scanMovieRecordRows(rows)
}

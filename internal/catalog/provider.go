// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/gemdex/internal/discover"
	"github.com/tomtom215/gemdex/internal/metrics"
)

// Store implements discover.CatalogProvider.
var _ discover.CatalogProvider = (*Store)(nil)

// Movies returns the full catalog in the discovery engine's input shape,
// ordered by ID. The result is a snapshot: the engine ranks it without
// going back to the database.
//
// Genre IDs are aggregated with DuckDB's LIST() so each movie arrives as
// one row. The WHERE clause re-states the schema's non-negativity
// guarantees; the columns are NOT NULL with CHECK constraints, so it
// filters nothing on a healthy catalog, but a catalog file written by an
// older or foreign tool must not leak rows that break the ranking contract.
func (s *Store) Movies(ctx context.Context) (movies []discover.Movie, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("snapshot", "movies", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `SELECT m.id, m.title, m.rating, m.popularity, m.vote_count, m.release_date,
		LIST(mg.genre_id) AS genre_ids
	FROM movies m
	LEFT JOIN movie_genres mg ON mg.movie_id = m.id
	WHERE m.rating >= 0 AND m.popularity >= 0 AND m.vote_count >= 0
	GROUP BY m.id, m.title, m.rating, m.popularity, m.vote_count, m.release_date
	ORDER BY m.id ASC`

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}
	defer rows.Close()

	movies = make([]discover.Movie, 0)
	for rows.Next() {
		m, scanErr := scanDiscoverMovie(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		movies = append(movies, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog snapshot iteration failed: %w", err)
	}

	return movies, nil
}

// MovieByID returns a single movie in the discovery engine's input shape.
// Returns ErrMovieNotFound when the ID does not exist or the row fails the
// ranking input guarantees.
func (s *Store) MovieByID(ctx context.Context, id int64) (movie discover.Movie, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("snapshot_by_id", "movies", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	// Column order must match Movies for the shared scanner.
	query := `SELECT m.id, m.title, m.rating, m.popularity, m.vote_count, m.release_date,
		LIST(mg.genre_id) AS genre_ids
	FROM movies m
	LEFT JOIN movie_genres mg ON mg.movie_id = m.id
	WHERE m.id = ? AND m.rating >= 0 AND m.popularity >= 0 AND m.vote_count >= 0
	GROUP BY m.id, m.title, m.rating, m.popularity, m.vote_count, m.release_date`

	rows, err := s.conn.QueryContext(ctx, query, id)
	if err != nil {
		return discover.Movie{}, fmt.Errorf("failed to load movie %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return discover.Movie{}, fmt.Errorf("failed to load movie %d: %w", id, err)
		}
		return discover.Movie{}, ErrMovieNotFound
	}

	movie, err = scanDiscoverMovie(rows)
	if err != nil {
		return discover.Movie{}, err
	}

	return movie, nil
}

// scanDiscoverMovie scans one catalog snapshot row.
func scanDiscoverMovie(rows *sql.Rows) (discover.Movie, error) {
	var m discover.Movie
	var releaseDate sql.NullTime
	var genreList any

	if err := rows.Scan(&m.ID, &m.Title, &m.Rating, &m.Popularity, &m.VoteCount, &releaseDate, &genreList); err != nil {
		return discover.Movie{}, fmt.Errorf("failed to scan catalog snapshot row: %w", err)
	}

	if releaseDate.Valid {
		m.ReleaseDate = releaseDate.Time
	}

	genreIDs, err := toInt64Slice(genreList)
	if err != nil {
		return discover.Movie{}, fmt.Errorf("failed to decode genre list for movie %d: %w", m.ID, err)
	}
	m.GenreIDs = genreIDs

	return m, nil
}

// toInt64Slice converts a DuckDB LIST scan value to []int64.
// The driver hands LIST columns back as []any; a movie with no genre links
// comes through the LEFT JOIN as a single NULL element, which is skipped.
// IDs come back sorted because LIST aggregation order is not guaranteed.
func toInt64Slice(v any) ([]int64, error) {
	if v == nil {
		return nil, nil
	}

	elems, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected list type %T", v)
	}

	out := make([]int64, 0, len(elems))
	for _, elem := range elems {
		switch val := elem.(type) {
		case nil:
			continue
		case int64:
			out = append(out, val)
		case int32:
			out = append(out, int64(val))
		case int:
			out = append(out, int64(val))
		case float64:
			out = append(out, int64(val))
		default:
			return nil, fmt.Errorf("unexpected list element type %T", elem)
		}
	}

	if len(out) == 0 {
		return nil, nil
	}

	slices.Sort(out)
	return out, nil
}

// IsNotFound reports whether err means a catalog entity was absent rather
// than a query failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMovieNotFound) || errors.Is(err, ErrPersonNotFound)
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

/*
Catalog database schema.

Tables:
  - movies: one row per movie, TMDB-shaped columns
  - genres: genre ID to name lookup
  - movie_genres: movie-to-genre many-to-many links
  - people: cast and crew members
  - movie_cast: acting credits with character and billing order
  - movie_crew: production credits with job and department

Strategy:
All statements are CREATE ... IF NOT EXISTS, so initialization is idempotent
and reopening an existing catalog is a no-op. Rating, popularity, and vote
count carry CHECK constraints as a backstop for the write-path validation in
UpsertMovie; the ranking layer relies on those three columns never being
negative.
*/
//nolint:staticcheck // File documentation, not package doc
package catalog

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with a 60-second timeout for DDL.
// Schema statements on a cold database file can be slow under memory pressure.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates all catalog tables.
func (s *Store) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns table creation SQL statements.
func getTableCreationQueries() []string {
	return []string{
		// ===== Movies =====
		`CREATE TABLE IF NOT EXISTS movies (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			original_title TEXT,
			overview TEXT,
			tagline TEXT,
			release_date TIMESTAMP,
			runtime INTEGER,
			rating DOUBLE NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 10),
			popularity DOUBLE NOT NULL DEFAULT 0 CHECK (popularity >= 0),
			vote_count BIGINT NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
			poster_path TEXT,
			backdrop_path TEXT,
			original_language TEXT,
			adult BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		// ===== Genres =====
		`CREATE TABLE IF NOT EXISTS genres (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS movie_genres (
			movie_id BIGINT NOT NULL,
			genre_id BIGINT NOT NULL,
			PRIMARY KEY (movie_id, genre_id)
		);`,

		// ===== People and credits =====
		`CREATE TABLE IF NOT EXISTS people (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			profile_path TEXT,
			popularity DOUBLE NOT NULL DEFAULT 0
		);`,

		`CREATE TABLE IF NOT EXISTS movie_cast (
			movie_id BIGINT NOT NULL,
			person_id BIGINT NOT NULL,
			character_name TEXT,
			cast_order INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (movie_id, person_id)
		);`,

		`CREATE TABLE IF NOT EXISTS movie_crew (
			movie_id BIGINT NOT NULL,
			person_id BIGINT NOT NULL,
			job TEXT NOT NULL,
			department TEXT,
			PRIMARY KEY (movie_id, person_id, job)
		);`,
	}
}

// createIndexes creates catalog indexes for query optimization.
func (s *Store) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getIndexQueries() {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns index creation SQL statements.
func getIndexQueries() []string {
	return []string{
		// Discovery filter columns
		`CREATE INDEX IF NOT EXISTS idx_movies_rating ON movies(rating);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_popularity ON movies(popularity);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_vote_count ON movies(vote_count);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies(release_date);`,

		// Join columns for genre and credit lookups
		`CREATE INDEX IF NOT EXISTS idx_movie_genres_genre ON movie_genres(genre_id);`,
		`CREATE INDEX IF NOT EXISTS idx_movie_cast_person ON movie_cast(person_id);`,
		`CREATE INDEX IF NOT EXISTS idx_movie_crew_person ON movie_crew(person_id);`,
		`CREATE INDEX IF NOT EXISTS idx_movie_crew_job ON movie_crew(job);`,
	}
}

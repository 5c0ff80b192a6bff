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
	"strings"
	"time"

	"github.com/tomtom215/gemdex/internal/metrics"
)

// movieSortColumns maps MovieFilter.SortBy values to ORDER BY columns.
// Acts as a safelist: sort input never reaches SQL text directly.
var movieSortColumns = map[string]string{
	"":             "popularity",
	"popularity":   "popularity",
	"rating":       "rating",
	"release_date": "release_date",
	"title":        "title",
	"vote_count":   "vote_count",
}

// UpsertMovie inserts a movie or updates it in place when the ID already
// exists. Validation here is the write-side half of the catalog contract:
// rows that would violate the ranking layer's input expectations (negative
// rating, popularity, or vote count) never reach the table.
func (s *Store) UpsertMovie(ctx context.Context, m *MovieRecord) (err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("upsert_movie", "movies", time.Since(start), err) }()

	if m == nil {
		return fmt.Errorf("movie is required")
	}
	if m.ID <= 0 {
		return fmt.Errorf("movie ID must be positive, got %d", m.ID)
	}
	if m.Title == "" {
		return fmt.Errorf("movie title is required")
	}
	if m.Rating < 0 || m.Rating > 10 {
		return fmt.Errorf("movie rating must be within [0, 10], got %g", m.Rating)
	}
	if m.Popularity < 0 {
		return fmt.Errorf("movie popularity must be non-negative, got %g", m.Popularity)
	}
	if m.VoteCount < 0 {
		return fmt.Errorf("movie vote count must be non-negative, got %d", m.VoteCount)
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `INSERT INTO movies (
		id, title, original_title, overview, tagline, release_date, runtime,
		rating, popularity, vote_count, poster_path, backdrop_path,
		original_language, adult
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		title = excluded.title,
		original_title = excluded.original_title,
		overview = excluded.overview,
		tagline = excluded.tagline,
		release_date = excluded.release_date,
		runtime = excluded.runtime,
		rating = excluded.rating,
		popularity = excluded.popularity,
		vote_count = excluded.vote_count,
		poster_path = excluded.poster_path,
		backdrop_path = excluded.backdrop_path,
		original_language = excluded.original_language,
		adult = excluded.adult,
		updated_at = CURRENT_TIMESTAMP`

	_, err = s.conn.ExecContext(ctx, query,
		m.ID, m.Title,
		nullString(m.OriginalTitle), nullString(m.Overview), nullString(m.Tagline),
		nullTime(m.ReleaseDate), nullInt(m.Runtime),
		m.Rating, m.Popularity, m.VoteCount,
		nullString(m.PosterPath), nullString(m.BackdropPath),
		nullString(m.OriginalLanguage), m.Adult,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert movie %d: %w", m.ID, err)
	}

	return nil
}

// UpsertGenre inserts a genre or updates its name when the ID already exists.
func (s *Store) UpsertGenre(ctx context.Context, g Genre) (err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("upsert_genre", "genres", time.Since(start), err) }()

	if g.ID <= 0 {
		return fmt.Errorf("genre ID must be positive, got %d", g.ID)
	}
	if g.Name == "" {
		return fmt.Errorf("genre name is required")
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `INSERT INTO genres (id, name) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name`

	if _, err = s.conn.ExecContext(ctx, query, g.ID, g.Name); err != nil {
		return fmt.Errorf("failed to upsert genre %d: %w", g.ID, err)
	}

	return nil
}

// SetMovieGenres replaces the genre links of a movie with the given set.
// Duplicate IDs in the input are collapsed; an empty slice clears all links.
func (s *Store) SetMovieGenres(ctx context.Context, movieID int64, genreIDs []int64) (err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("set_movie_genres", "movie_genres", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = ?`, movieID); err != nil {
		return fmt.Errorf("failed to clear genres for movie %d: %w", movieID, err)
	}

	if len(genreIDs) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, `INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?)`)
		if prepErr != nil {
			err = fmt.Errorf("failed to prepare genre insert: %w", prepErr)
			return err
		}
		defer closeQuietly(stmt)

		seen := make(map[int64]struct{}, len(genreIDs))
		for _, genreID := range genreIDs {
			if _, dup := seen[genreID]; dup {
				continue
			}
			seen[genreID] = struct{}{}

			if _, err = stmt.ExecContext(ctx, movieID, genreID); err != nil {
				return fmt.Errorf("failed to link genre %d to movie %d: %w", genreID, movieID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit genre update: %w", err)
	}

	return nil
}

// GetMovie returns a movie with its genres, cast, and crew.
// Returns ErrMovieNotFound when the ID does not exist.
func (s *Store) GetMovie(ctx context.Context, id int64) (detail *MovieDetail, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("get_movie", "movies", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `SELECT id, title, original_title, overview, tagline, release_date, runtime,
		rating, popularity, vote_count, poster_path, backdrop_path,
		original_language, adult, created_at, updated_at
	FROM movies WHERE id = ?`

	record, err := scanMovieRecord(s.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}

	detail = &MovieDetail{MovieRecord: *record}

	if detail.Genres, err = s.movieGenres(ctx, id); err != nil {
		return nil, err
	}
	if detail.Cast, err = s.movieCast(ctx, id); err != nil {
		return nil, err
	}
	if detail.Crew, err = s.movieCrew(ctx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

// ListMovies returns a page of movies matching the filter plus the total
// number of matches. The total counts the whole filtered set regardless of
// Limit and Offset, so callers can page without a second query.
func (s *Store) ListMovies(ctx context.Context, filter MovieFilter) (movies []MovieRecord, total int64, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("list_movies", "movies", time.Since(start), err) }()

	sortColumn, ok := movieSortColumns[filter.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort column %q", filter.SortBy)
	}

	// The default popularity sort reads best descending.
	direction := "ASC"
	if filter.SortDesc || filter.SortBy == "" {
		direction = "DESC"
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	conditions, args := buildMovieConditions(filter)
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM movies" + where
	if err = s.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, title, original_title, overview, tagline, release_date, runtime,
		rating, popularity, vote_count, poster_path, backdrop_path,
		original_language, adult, created_at, updated_at
	FROM movies` + where +
		fmt.Sprintf(" ORDER BY %s %s NULLS LAST, id ASC", sortColumn, direction) +
		" LIMIT ? OFFSET ?"

	args = append(args, limit, offset)

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies, err = scanMovieRecordRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// SearchMovies returns movies whose title or original title contains the
// query, case-insensitively, most popular first.
func (s *Store) SearchMovies(ctx context.Context, query string, limit int) (movies []MovieRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("search_movies", "movies", time.Since(start), err) }()

	if strings.TrimSpace(query) == "" {
		return make([]MovieRecord, 0), nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	sqlQuery := `SELECT id, title, original_title, overview, tagline, release_date, runtime,
		rating, popularity, vote_count, poster_path, backdrop_path,
		original_language, adult, created_at, updated_at
	FROM movies
	WHERE title ILIKE ? OR original_title ILIKE ?
	ORDER BY popularity DESC, id ASC
	LIMIT ?`

	pattern := "%" + query + "%"
	rows, err := s.conn.QueryContext(ctx, sqlQuery, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	defer rows.Close()

	return scanMovieRecordRows(rows)
}

// ListGenres returns all genres ordered by name.
func (s *Store) ListGenres(ctx context.Context) (genres []Genre, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("list_genres", "genres", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	rows, err := s.conn.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres = make([]Genre, 0)
	for rows.Next() {
		var g Genre
		if err = rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("genre row iteration failed: %w", err)
	}

	return genres, nil
}

// DeleteMovie removes a movie and all of its genre links and credits.
// Returns ErrMovieNotFound when the ID does not exist.
func (s *Store) DeleteMovie(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("delete_movie", "movies", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	result, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		err = ErrMovieNotFound
		return err
	}

	for _, cleanup := range []string{
		`DELETE FROM movie_genres WHERE movie_id = ?`,
		`DELETE FROM movie_cast WHERE movie_id = ?`,
		`DELETE FROM movie_crew WHERE movie_id = ?`,
	} {
		if _, err = tx.ExecContext(ctx, cleanup, id); err != nil {
			return fmt.Errorf("failed to delete movie %d links: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movie delete: %w", err)
	}

	return nil
}

// movieGenres returns the genres linked to a movie, ordered by name.
func (s *Store) movieGenres(ctx context.Context, movieID int64) ([]Genre, error) {
	query := `SELECT g.id, g.name
	FROM genres g
	JOIN movie_genres mg ON mg.genre_id = g.id
	WHERE mg.movie_id = ?
	ORDER BY g.name ASC`

	rows, err := s.conn.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	genres := make([]Genre, 0)
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan movie genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movie genre iteration failed: %w", err)
	}

	return genres, nil
}

// buildMovieConditions translates a MovieFilter into WHERE clauses and args.
func buildMovieConditions(filter MovieFilter) ([]string, []any) {
	conditions := []string{}
	args := []any{}

	if filter.Genre > 0 {
		conditions = append(conditions, "id IN (SELECT movie_id FROM movie_genres WHERE genre_id = ?)")
		args = append(args, filter.Genre)
	}
	if filter.Year > 0 {
		conditions = append(conditions, "EXTRACT(YEAR FROM release_date) = ?")
		args = append(args, filter.Year)
	}
	if filter.Decade > 0 {
		conditions = append(conditions, "EXTRACT(YEAR FROM release_date) BETWEEN ? AND ?")
		args = append(args, filter.Decade, filter.Decade+9)
	}
	if filter.MinRating > 0 {
		conditions = append(conditions, "rating >= ?")
		args = append(args, filter.MinRating)
	}
	if filter.MaxRating > 0 {
		conditions = append(conditions, "rating <= ?")
		args = append(args, filter.MaxRating)
	}
	if filter.MinVotes > 0 {
		conditions = append(conditions, "vote_count >= ?")
		args = append(args, filter.MinVotes)
	}
	if filter.MinRuntime > 0 {
		conditions = append(conditions, "runtime >= ?")
		args = append(args, filter.MinRuntime)
	}
	if filter.MaxRuntime > 0 {
		conditions = append(conditions, "runtime <= ?")
		args = append(args, filter.MaxRuntime)
	}

	return conditions, args
}

// scanMovieRecord scans a single movie row.
// Column order must match scanMovieRecordRows.
func scanMovieRecord(row *sql.Row) (*MovieRecord, error) {
	var m MovieRecord
	var originalTitle, overview, tagline, posterPath, backdropPath, originalLanguage sql.NullString
	var releaseDate sql.NullTime
	var runtime sql.NullInt32

	err := row.Scan(
		&m.ID, &m.Title, &originalTitle, &overview, &tagline, &releaseDate, &runtime,
		&m.Rating, &m.Popularity, &m.VoteCount, &posterPath, &backdropPath,
		&originalLanguage, &m.Adult, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyMovieNullables(&m, originalTitle, overview, tagline, posterPath, backdropPath, originalLanguage, releaseDate, runtime)
	return &m, nil
}

// scanMovieRecordRows scans a movie result set.
// Column order must match scanMovieRecord.
func scanMovieRecordRows(rows *sql.Rows) ([]MovieRecord, error) {
	movies := make([]MovieRecord, 0)

	for rows.Next() {
		var m MovieRecord
		var originalTitle, overview, tagline, posterPath, backdropPath, originalLanguage sql.NullString
		var releaseDate sql.NullTime
		var runtime sql.NullInt32

		err := rows.Scan(
			&m.ID, &m.Title, &originalTitle, &overview, &tagline, &releaseDate, &runtime,
			&m.Rating, &m.Popularity, &m.VoteCount, &posterPath, &backdropPath,
			&originalLanguage, &m.Adult, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}

		applyMovieNullables(&m, originalTitle, overview, tagline, posterPath, backdropPath, originalLanguage, releaseDate, runtime)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movie row iteration failed: %w", err)
	}

	return movies, nil
}

// applyMovieNullables copies nullable scan targets onto the record.
func applyMovieNullables(m *MovieRecord,
	originalTitle, overview, tagline, posterPath, backdropPath, originalLanguage sql.NullString,
	releaseDate sql.NullTime, runtime sql.NullInt32,
) {
	m.OriginalTitle = originalTitle.String
	m.Overview = overview.String
	m.Tagline = tagline.String
	m.PosterPath = posterPath.String
	m.BackdropPath = backdropPath.String
	m.OriginalLanguage = originalLanguage.String
	if releaseDate.Valid {
		m.ReleaseDate = releaseDate.Time
	}
	m.Runtime = int(runtime.Int32)
}

// nullString maps "" to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// nullInt maps 0 to SQL NULL.
func nullInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}

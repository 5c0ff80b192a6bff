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
	"time"

	"github.com/tomtom215/gemdex/internal/metrics"
)

// PersonRanking is a person with aggregate stats over their credited movies.
type PersonRanking struct {
	Person     Person  `json:"person"`
	MovieCount int64   `json:"movie_count"`
	AvgRating  float64 `json:"avg_rating"`
}

// FilmographyEntry is one credit in a person's filmography.
type FilmographyEntry struct {
	MovieID     int64     `json:"movie_id"`
	Title       string    `json:"title"`
	ReleaseDate time.Time `json:"release_date"`
	Rating      float64   `json:"rating"`
	CreditType  string    `json:"credit_type"`      // "cast" or "crew"
	Credit      string    `json:"credit,omitempty"` // character name or job
}

// UpsertPerson inserts a person or updates them in place when the ID
// already exists.
func (s *Store) UpsertPerson(ctx context.Context, p Person) (err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("upsert_person", "people", time.Since(start), err) }()

	if p.ID <= 0 {
		return fmt.Errorf("person ID must be positive, got %d", p.ID)
	}
	if p.Name == "" {
		return fmt.Errorf("person name is required")
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `INSERT INTO people (id, name, profile_path, popularity) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			profile_path = excluded.profile_path,
			popularity = excluded.popularity`

	if _, err = s.conn.ExecContext(ctx, query, p.ID, p.Name, nullString(p.ProfilePath), p.Popularity); err != nil {
		return fmt.Errorf("failed to upsert person %d: %w", p.ID, err)
	}

	return nil
}

// GetPerson returns a person by ID.
// Returns ErrPersonNotFound when the ID does not exist.
func (s *Store) GetPerson(ctx context.Context, id int64) (person *Person, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("get_person", "people", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	var p Person
	var profilePath sql.NullString

	row := s.conn.QueryRowContext(ctx, `SELECT id, name, profile_path, popularity FROM people WHERE id = ?`, id)
	if err = row.Scan(&p.ID, &p.Name, &profilePath, &p.Popularity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person %d: %w", id, err)
	}
	p.ProfilePath = profilePath.String

	return &p, nil
}

// SetMovieCast replaces the acting credits of a movie.
// Only Person.ID is read from each credit; people rows are managed by
// UpsertPerson. Duplicate person IDs keep the first credit.
func (s *Store) SetMovieCast(ctx context.Context, movieID int64, cast []CastCredit) (err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("set_movie_cast", "movie_cast", time.Since(start), err) }()

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

	if _, err = tx.ExecContext(ctx, `DELETE FROM movie_cast WHERE movie_id = ?`, movieID); err != nil {
		return fmt.Errorf("failed to clear cast for movie %d: %w", movieID, err)
	}

	if len(cast) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx,
			`INSERT INTO movie_cast (movie_id, person_id, character_name, cast_order) VALUES (?, ?, ?, ?)`)
		if prepErr != nil {
			err = fmt.Errorf("failed to prepare cast insert: %w", prepErr)
			return err
		}
		defer closeQuietly(stmt)

		seen := make(map[int64]struct{}, len(cast))
		for _, credit := range cast {
			if _, dup := seen[credit.Person.ID]; dup {
				continue
			}
			seen[credit.Person.ID] = struct{}{}

			if _, err = stmt.ExecContext(ctx, movieID, credit.Person.ID,
				nullString(credit.CharacterName), credit.CastOrder); err != nil {
				return fmt.Errorf("failed to link cast member %d to movie %d: %w", credit.Person.ID, movieID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cast update: %w", err)
	}

	return nil
}

// SetMovieCrew replaces the production credits of a movie.
// Duplicate (person, job) pairs keep the first credit.
func (s *Store) SetMovieCrew(ctx context.Context, movieID int64, crew []CrewCredit) (err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("set_movie_crew", "movie_crew", time.Since(start), err) }()

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

	if _, err = tx.ExecContext(ctx, `DELETE FROM movie_crew WHERE movie_id = ?`, movieID); err != nil {
		return fmt.Errorf("failed to clear crew for movie %d: %w", movieID, err)
	}

	if len(crew) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx,
			`INSERT INTO movie_crew (movie_id, person_id, job, department) VALUES (?, ?, ?, ?)`)
		if prepErr != nil {
			err = fmt.Errorf("failed to prepare crew insert: %w", prepErr)
			return err
		}
		defer closeQuietly(stmt)

		type crewKey struct {
			personID int64
			job      string
		}
		seen := make(map[crewKey]struct{}, len(crew))
		for _, credit := range crew {
			key := crewKey{personID: credit.Person.ID, job: credit.Job}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			if _, err = stmt.ExecContext(ctx, movieID, credit.Person.ID,
				credit.Job, nullString(credit.Department)); err != nil {
				return fmt.Errorf("failed to link crew member %d to movie %d: %w", credit.Person.ID, movieID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit crew update: %w", err)
	}

	return nil
}

// TopActors returns the actors with the most acting credits, ordered by
// credit count then average movie rating. minMovies drops people with too
// few credits for the average to mean anything; 0 keeps everyone.
func (s *Store) TopActors(ctx context.Context, limit, minMovies int) (rankings []PersonRanking, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("top_actors", "movie_cast", time.Since(start), err) }()

	query := `SELECT p.id, p.name, p.profile_path, p.popularity,
		COUNT(*) AS movie_count, AVG(m.rating) AS avg_rating
	FROM people p
	JOIN movie_cast mc ON mc.person_id = p.id
	JOIN movies m ON m.id = mc.movie_id
	GROUP BY p.id, p.name, p.profile_path, p.popularity
	HAVING COUNT(*) >= ?
	ORDER BY movie_count DESC, avg_rating DESC, p.id ASC
	LIMIT ?`

	return s.queryPersonRankings(ctx, query, minMovies, limit)
}

// TopDirectors returns the directors with the most directing credits,
// ordered by credit count then average movie rating.
func (s *Store) TopDirectors(ctx context.Context, limit, minMovies int) (rankings []PersonRanking, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("top_directors", "movie_crew", time.Since(start), err) }()

	query := `SELECT p.id, p.name, p.profile_path, p.popularity,
		COUNT(*) AS movie_count, AVG(m.rating) AS avg_rating
	FROM people p
	JOIN movie_crew mc ON mc.person_id = p.id
	JOIN movies m ON m.id = mc.movie_id
	WHERE mc.job = 'Director'
	GROUP BY p.id, p.name, p.profile_path, p.popularity
	HAVING COUNT(*) >= ?
	ORDER BY movie_count DESC, avg_rating DESC, p.id ASC
	LIMIT ?`

	return s.queryPersonRankings(ctx, query, minMovies, limit)
}

// Filmography returns every credit of a person, newest movie first.
// Returns ErrPersonNotFound when the ID does not exist.
func (s *Store) Filmography(ctx context.Context, personID int64) (entries []FilmographyEntry, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("filmography", "movie_cast", time.Since(start), err) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	if _, err = s.GetPerson(ctx, personID); err != nil {
		return nil, err
	}

	query := `SELECT m.id, m.title, m.release_date, m.rating, 'cast' AS credit_type, mc.character_name AS credit
	FROM movie_cast mc
	JOIN movies m ON m.id = mc.movie_id
	WHERE mc.person_id = ?
	UNION ALL
	SELECT m.id, m.title, m.release_date, m.rating, 'crew' AS credit_type, mw.job AS credit
	FROM movie_crew mw
	JOIN movies m ON m.id = mw.movie_id
	WHERE mw.person_id = ?
	ORDER BY release_date DESC NULLS LAST, credit_type ASC, id ASC`

	rows, err := s.conn.QueryContext(ctx, query, personID, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to load filmography for person %d: %w", personID, err)
	}
	defer rows.Close()

	entries = make([]FilmographyEntry, 0)
	for rows.Next() {
		var e FilmographyEntry
		var releaseDate sql.NullTime
		var credit sql.NullString

		if err = rows.Scan(&e.MovieID, &e.Title, &releaseDate, &e.Rating, &e.CreditType, &credit); err != nil {
			return nil, fmt.Errorf("failed to scan filmography row: %w", err)
		}
		if releaseDate.Valid {
			e.ReleaseDate = releaseDate.Time
		}
		e.Credit = credit.String

		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("filmography iteration failed: %w", err)
	}

	return entries, nil
}

// queryPersonRankings runs a ranking query shaped like TopActors and scans
// the result set.
func (s *Store) queryPersonRankings(ctx context.Context, query string, minMovies, limit int) ([]PersonRanking, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if minMovies < 0 {
		minMovies = 0
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	rows, err := s.conn.QueryContext(ctx, query, minMovies, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query person rankings: %w", err)
	}
	defer rows.Close()

	rankings := make([]PersonRanking, 0)
	for rows.Next() {
		var r PersonRanking
		var profilePath sql.NullString

		if err := rows.Scan(&r.Person.ID, &r.Person.Name, &profilePath, &r.Person.Popularity,
			&r.MovieCount, &r.AvgRating); err != nil {
			return nil, fmt.Errorf("failed to scan person ranking: %w", err)
		}
		r.Person.ProfilePath = profilePath.String

		rankings = append(rankings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("person ranking iteration failed: %w", err)
	}

	return rankings, nil
}

// movieCast returns the acting credits of a movie in billing order.
func (s *Store) movieCast(ctx context.Context, movieID int64) ([]CastCredit, error) {
	query := `SELECT p.id, p.name, p.profile_path, p.popularity, mc.character_name, mc.cast_order
	FROM movie_cast mc
	JOIN people p ON p.id = mc.person_id
	WHERE mc.movie_id = ?
	ORDER BY mc.cast_order ASC, p.id ASC`

	rows, err := s.conn.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cast for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	cast := make([]CastCredit, 0)
	for rows.Next() {
		var c CastCredit
		var profilePath, characterName sql.NullString

		if err := rows.Scan(&c.Person.ID, &c.Person.Name, &profilePath, &c.Person.Popularity,
			&characterName, &c.CastOrder); err != nil {
			return nil, fmt.Errorf("failed to scan cast credit: %w", err)
		}
		c.Person.ProfilePath = profilePath.String
		c.CharacterName = characterName.String

		cast = append(cast, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cast iteration failed: %w", err)
	}

	return cast, nil
}

// movieCrew returns the production credits of a movie.
func (s *Store) movieCrew(ctx context.Context, movieID int64) ([]CrewCredit, error) {
	query := `SELECT p.id, p.name, p.profile_path, p.popularity, mw.job, mw.department
	FROM movie_crew mw
	JOIN people p ON p.id = mw.person_id
	WHERE mw.movie_id = ?
	ORDER BY mw.job ASC, p.id ASC`

	rows, err := s.conn.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to load crew for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	crew := make([]CrewCredit, 0)
	for rows.Next() {
		var c CrewCredit
		var profilePath, department sql.NullString

		if err := rows.Scan(&c.Person.ID, &c.Person.Name, &profilePath, &c.Person.Popularity,
			&c.Job, &department); err != nil {
			return nil, fmt.Errorf("failed to scan crew credit: %w", err)
		}
		c.Person.ProfilePath = profilePath.String
		c.Department = department.String

		crew = append(crew, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("crew iteration failed: %w", err)
	}

	return crew, nil
}

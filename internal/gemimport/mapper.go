// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package gemimport

import (
	"fmt"
	"time"

	"github.com/tomtom215/gemdex/internal/catalog"
)

// releaseDateLayout is the date-only format TMDB exports use.
const releaseDateLayout = "2006-01-02"

// validateSeedMovie checks a record against the catalog's write contract.
// Records that fail are skipped rather than failing the whole import: a
// multi-thousand-record seed file with a handful of junk rows should still
// load.
func validateSeedMovie(rec *SeedMovie) error {
	if rec.ID <= 0 {
		return fmt.Errorf("movie ID must be positive, got %d", rec.ID)
	}
	if rec.Title == "" {
		return fmt.Errorf("movie title is required")
	}
	if rec.VoteAverage < 0 || rec.VoteAverage > 10 {
		return fmt.Errorf("vote average must be within [0, 10], got %g", rec.VoteAverage)
	}
	if rec.Popularity < 0 {
		return fmt.Errorf("popularity must be non-negative, got %g", rec.Popularity)
	}
	if rec.VoteCount < 0 {
		return fmt.Errorf("vote count must be non-negative, got %d", rec.VoteCount)
	}
	if _, err := parseReleaseDate(rec.ReleaseDate); err != nil {
		return fmt.Errorf("invalid release date %q: %w", rec.ReleaseDate, err)
	}
	return nil
}

// parseReleaseDate parses a seed release date. Empty means unknown and maps
// to the zero time. Both date-only and RFC 3339 timestamps are accepted.
func parseReleaseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(releaseDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// toMovieRecord converts a validated seed record to a catalog row.
func toMovieRecord(rec *SeedMovie) *catalog.MovieRecord {
	released, _ := parseReleaseDate(rec.ReleaseDate)

	return &catalog.MovieRecord{
		ID:               rec.ID,
		Title:            rec.Title,
		OriginalTitle:    rec.OriginalTitle,
		Overview:         rec.Overview,
		Tagline:          rec.Tagline,
		ReleaseDate:      released,
		Runtime:          rec.Runtime,
		Rating:           rec.VoteAverage,
		Popularity:       rec.Popularity,
		VoteCount:        rec.VoteCount,
		PosterPath:       rec.PosterPath,
		BackdropPath:     rec.BackdropPath,
		OriginalLanguage: rec.OriginalLanguage,
		Adult:            rec.Adult,
	}
}

// mergeGenreIDs unions the bare genre_ids with IDs from embedded genre
// objects, preserving first-seen order.
func mergeGenreIDs(rec *SeedMovie) []int64 {
	ids := make([]int64, 0, len(rec.GenreIDs)+len(rec.Genres))
	seen := make(map[int64]struct{}, len(rec.GenreIDs)+len(rec.Genres))

	add := func(id int64) {
		if id <= 0 {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, id := range rec.GenreIDs {
		add(id)
	}
	for _, g := range rec.Genres {
		add(g.ID)
	}

	return ids
}

// toCastCredits converts seed cast entries, dropping ones without a valid
// person ID or name.
func toCastCredits(rec *SeedMovie) []catalog.CastCredit {
	if rec.Credits == nil {
		return nil
	}

	cast := make([]catalog.CastCredit, 0, len(rec.Credits.Cast))
	for _, member := range rec.Credits.Cast {
		if member.ID <= 0 || member.Name == "" {
			continue
		}
		cast = append(cast, catalog.CastCredit{
			Person: catalog.Person{
				ID:          member.ID,
				Name:        member.Name,
				ProfilePath: member.ProfilePath,
				Popularity:  member.Popularity,
			},
			CharacterName: member.Character,
			CastOrder:     member.Order,
		})
	}
	return cast
}

// toCrewCredits converts seed crew entries, dropping ones without a valid
// person ID, name, or job.
func toCrewCredits(rec *SeedMovie) []catalog.CrewCredit {
	if rec.Credits == nil {
		return nil
	}

	crew := make([]catalog.CrewCredit, 0, len(rec.Credits.Crew))
	for _, member := range rec.Credits.Crew {
		if member.ID <= 0 || member.Name == "" || member.Job == "" {
			continue
		}
		crew = append(crew, catalog.CrewCredit{
			Person: catalog.Person{
				ID:          member.ID,
				Name:        member.Name,
				ProfilePath: member.ProfilePath,
				Popularity:  member.Popularity,
			},
			Job:        member.Job,
			Department: member.Department,
		})
	}
	return crew
}

// collectPeople gathers the unique people across a record's cast and crew.
// A person appearing in both keeps the first occurrence's profile fields.
func collectPeople(cast []catalog.CastCredit, crew []catalog.CrewCredit) []catalog.Person {
	people := make([]catalog.Person, 0, len(cast)+len(crew))
	seen := make(map[int64]struct{}, len(cast)+len(crew))

	for _, c := range cast {
		if _, dup := seen[c.Person.ID]; dup {
			continue
		}
		seen[c.Person.ID] = struct{}{}
		people = append(people, c.Person)
	}
	for _, c := range crew {
		if _, dup := seen[c.Person.ID]; dup {
			continue
		}
		seen[c.Person.ID] = struct{}{}
		people = append(people, c.Person)
	}

	return people
}

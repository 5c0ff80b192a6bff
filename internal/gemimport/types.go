// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package gemimport

import (
	"time"
)

// SeedMovie is one movie record in a seed file. The field names follow the
// TMDB export shape, so an export dump can be fed in unmodified.
//
// Genres may arrive as bare IDs (genre_ids), as embedded objects (genres),
// or both; the importer merges them. Credits are optional.
type SeedMovie struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	OriginalTitle    string       `json:"original_title"`
	Overview         string       `json:"overview"`
	Tagline          string       `json:"tagline"`
	ReleaseDate      string       `json:"release_date"` // "2006-01-02", empty when unknown
	Runtime          int          `json:"runtime"`
	VoteAverage      float64      `json:"vote_average"`
	Popularity       float64      `json:"popularity"`
	VoteCount        int64        `json:"vote_count"`
	PosterPath       string       `json:"poster_path"`
	BackdropPath     string       `json:"backdrop_path"`
	OriginalLanguage string       `json:"original_language"`
	Adult            bool         `json:"adult"`
	GenreIDs         []int64      `json:"genre_ids"`
	Genres           []SeedGenre  `json:"genres"`
	Credits          *SeedCredits `json:"credits"`
}

// SeedGenre is an embedded genre object in a seed record.
type SeedGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SeedCredits holds the optional cast and crew of a seed record.
type SeedCredits struct {
	Cast []SeedCastMember `json:"cast"`
	Crew []SeedCrewMember `json:"crew"`
}

// SeedCastMember is one acting credit in a seed record.
type SeedCastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       int     `json:"order"`
	ProfilePath string  `json:"profile_path"`
	Popularity  float64 `json:"popularity"`
}

// SeedCrewMember is one production credit in a seed record.
type SeedCrewMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath string  `json:"profile_path"`
	Popularity  float64 `json:"popularity"`
}

// Stats holds statistics about an import operation.
type Stats struct {
	// Processed is the number of records read from the seed file.
	Processed int64 `json:"processed"`

	// Imported is the number of records written to the catalog
	// (or that would have been written, on a dry run).
	Imported int64 `json:"imported"`

	// Skipped is the number of records dropped by validation.
	Skipped int64 `json:"skipped"`

	// Errors is the number of records that failed to write.
	Errors int64 `json:"errors"`

	// StartTime is when the import started.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the import completed (zero while still running).
	EndTime time.Time `json:"end_time"`

	// DryRun indicates the seed file was validated without writing.
	DryRun bool `json:"dry_run"`
}

// Duration returns how long the import has been running, or took.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RecordsPerSecond returns the import rate.
func (s *Stats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Processed) / duration
}

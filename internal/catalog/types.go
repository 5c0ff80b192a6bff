// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package catalog

import (
	"time"
)

// MovieRecord is a full movie row as stored in the catalog.
//
// Rating, Popularity, and VoteCount are never negative: UpsertMovie rejects
// such values and the schema backs that up with CHECK constraints, so every
// record handed to the ranking layer already satisfies its input contract.
type MovieRecord struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	OriginalTitle    string    `json:"original_title,omitempty"`
	Overview         string    `json:"overview,omitempty"`
	Tagline          string    `json:"tagline,omitempty"`
	ReleaseDate      time.Time `json:"release_date"` // zero when unknown
	Runtime          int       `json:"runtime,omitempty"`
	Rating           float64   `json:"rating"`
	Popularity       float64   `json:"popularity"`
	VoteCount        int64     `json:"vote_count"`
	PosterPath       string    `json:"poster_path,omitempty"`
	BackdropPath     string    `json:"backdrop_path,omitempty"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	Adult            bool      `json:"adult"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Year returns the release year, or 0 when the release date is unknown.
func (m *MovieRecord) Year() int {
	if m.ReleaseDate.IsZero() {
		return 0
	}
	return m.ReleaseDate.Year()
}

// MovieDetail is a movie row joined with its genres and credits.
type MovieDetail struct {
	MovieRecord

	Genres []Genre      `json:"genres"`
	Cast   []CastCredit `json:"cast"`
	Crew   []CrewCredit `json:"crew"`
}

// Genre is a catalog genre.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Person is a cast or crew member.
type Person struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	ProfilePath string  `json:"profile_path,omitempty"`
	Popularity  float64 `json:"popularity"`
}

// CastCredit links a person to a movie they acted in.
// SetMovieCast only reads Person.ID; the read path fills the full person.
type CastCredit struct {
	Person        Person `json:"person"`
	CharacterName string `json:"character,omitempty"`
	CastOrder     int    `json:"cast_order"`
}

// CrewCredit links a person to a movie they worked on behind the camera.
type CrewCredit struct {
	Person     Person `json:"person"`
	Job        string `json:"job"`
	Department string `json:"department,omitempty"`
}

// MovieFilter narrows and orders a ListMovies query.
// Zero values mean "no constraint" except SortDesc, which only applies
// when SortBy is set.
type MovieFilter struct {
	Genre      int64   // movies tagged with this genre ID
	Year       int     // exact release year
	Decade     int     // release year within [Decade, Decade+9]
	MinRating  float64 // rating at or above
	MaxRating  float64 // rating at or below
	MinVotes   int64   // vote count at or above
	MinRuntime int     // runtime minutes at or above; unknown runtimes excluded
	MaxRuntime int     // runtime minutes at or below; unknown runtimes excluded
	SortBy     string  // popularity (default), rating, release_date, title, vote_count
	SortDesc   bool
	Limit      int // page size; <= 0 falls back to DefaultListLimit
	Offset     int // rows to skip; negative treated as 0
}

// Default result caps for list and search queries.
const (
	DefaultListLimit   = 50
	DefaultSearchLimit = 20
)

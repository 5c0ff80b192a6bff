// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package discover

import (
	"context"
	"fmt"
	"time"
)

// SortMode selects the ordering applied to movies that survive filtering.
type SortMode int

const (
	// SortGemScore orders by hidden-gem score, highest first.
	// This is the default mode.
	SortGemScore SortMode = iota

	// SortRating orders by vote average, highest first.
	SortRating

	// SortMostHidden orders by popularity, lowest first, surfacing the
	// least-known titles regardless of score.
	SortMostHidden

	// SortNewest orders by release date, most recent first.
	SortNewest
)

// String returns the wire name of the sort mode.
func (m SortMode) String() string {
	switch m {
	case SortGemScore:
		return "gem_score"
	case SortRating:
		return "rating"
	case SortMostHidden:
		return "most_hidden"
	case SortNewest:
		return "newest"
	default:
		return "unknown"
	}
}

// ParseSortMode converts a wire name into a SortMode. The empty string
// selects SortGemScore; any other unrecognized name is an error.
func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "", "gem_score":
		return SortGemScore, nil
	case "rating":
		return SortRating, nil
	case "most_hidden":
		return SortMostHidden, nil
	case "newest":
		return SortNewest, nil
	default:
		return SortGemScore, fmt.Errorf("unknown sort mode %q", s)
	}
}

// Movie is a single catalog entry as seen by the ranking engine.
//
// Rating, Popularity, and VoteCount are always defined and non-negative by
// the time a record reaches the engine; the catalog layer excludes rows
// that violate this.
type Movie struct {
	// ID is the TMDB movie identifier. It doubles as the final tiebreaker
	// in every sort, which keeps rankings deterministic.
	ID int64 `json:"id"`

	// Title is the display title. The engine never inspects it; it rides
	// along so callers can render results without a second lookup.
	Title string `json:"title"`

	// Rating is the vote average on a 0.0 to 10.0 scale.
	Rating float64 `json:"rating"`

	// Popularity is the TMDB popularity index. Non-negative, unbounded
	// above, and heavily skewed: blockbusters reach the hundreds while
	// most of the catalog sits in single digits.
	Popularity float64 `json:"popularity"`

	// VoteCount is the number of votes behind Rating.
	VoteCount int64 `json:"vote_count"`

	// ReleaseDate is the first release date. The zero value means the
	// date is unknown.
	ReleaseDate time.Time `json:"release_date"`

	// GenreIDs is the set of TMDB genre identifiers. Order carries no
	// meaning and IDs do not repeat.
	GenreIDs []int64 `json:"genre_ids,omitempty"`
}

// Year returns the release year, or 0 when the release date is unknown.
func (m Movie) Year() int {
	if m.ReleaseDate.IsZero() {
		return 0
	}
	return m.ReleaseDate.Year()
}

// HasGenre reports whether the movie carries the given genre ID.
func (m Movie) HasGenre(genreID int64) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// Result is the outcome of a Service.Discover call.
type Result struct {
	// Movies is the requested page in ranked order. Never nil.
	Movies []Movie `json:"movies"`

	// TotalCount is the number of movies matching the filters across all
	// pages, independent of Page and PageSize.
	TotalCount int `json:"total_count"`

	// Page is the 1-indexed page that was returned. Requests for page
	// zero or below are served as page one.
	Page int `json:"page"`

	// PageSize is the page size the request was served with.
	PageSize int `json:"page_size"`

	// TotalPages is the number of pages at PageSize, zero when PageSize
	// is not positive.
	TotalPages int `json:"total_pages"`

	// Sort is the wire name of the sort mode that produced the ordering.
	Sort string `json:"sort"`

	// RequestID identifies the request for log correlation.
	RequestID string `json:"request_id"`

	// ElapsedMS is the wall time spent serving the request, including
	// the catalog snapshot load.
	ElapsedMS int64 `json:"elapsed_ms"`
}

// SimilarResult is the outcome of a Service.Similar call.
type SimilarResult struct {
	// Reference is the movie similarity was computed against.
	Reference Movie `json:"reference"`

	// Movies holds the most similar titles, best match first. Never nil.
	// Movies with no genre overlap against the reference do not appear
	// at all.
	Movies []Movie `json:"movies"`

	// RequestID identifies the request for log correlation.
	RequestID string `json:"request_id"`

	// ElapsedMS is the wall time spent serving the request.
	ElapsedMS int64 `json:"elapsed_ms"`
}

// CatalogProvider supplies movie snapshots to the Service.
//
// Implementations must return records that already satisfy the engine's
// input invariant: rating, popularity, and vote count defined and
// non-negative.
type CatalogProvider interface {
	// Movies returns the full catalog snapshot eligible for ranking.
	Movies(ctx context.Context) ([]Movie, error)

	// MovieByID returns a single movie by TMDB identifier.
	MovieByID(ctx context.Context, id int64) (Movie, error)
}

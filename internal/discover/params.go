// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package discover

// Default parameter values applied when a caller starts from
// DefaultParams. They mirror the discover section of the application
// configuration.
const (
	// DefaultMinRating is the minimum vote average a movie needs to be
	// considered a gem candidate.
	DefaultMinRating = 7.0

	// DefaultMaxPopularity is the popularity ceiling. Anything above it
	// is too well known to count as hidden.
	DefaultMaxPopularity = 20.0

	// DefaultMinVotes filters out movies whose rating rests on too few
	// votes to be trustworthy.
	DefaultMinVotes = 50

	// DefaultPageSize is the number of movies per result page.
	DefaultPageSize = 24

	// DefaultSimilarLimit is the number of titles a similarity lookup
	// returns when the caller does not choose one.
	DefaultSimilarLimit = 6
)

// Params carries one discovery request's thresholds, filters, sort mode,
// and pagination window.
//
// Zero values are meaningful, not "unset": MinRating 0 admits every rating
// and MaxPopularity 0 admits only movies with zero popularity. Callers
// that want the standard thresholds start from DefaultParams and override
// individual fields. Genre and Decade are the exceptions: TMDB genre IDs
// are positive and decades are four-digit years, so zero disables those
// filters.
type Params struct {
	// MinRating keeps movies rated at or above this value.
	MinRating float64 `json:"min_rating" validate:"gte=0,lte=10"`

	// MaxPopularity keeps movies at or below this popularity.
	MaxPopularity float64 `json:"max_popularity" validate:"gte=0"`

	// MinVotes keeps movies with at least this many votes.
	MinVotes int64 `json:"min_votes" validate:"gte=0"`

	// Genre, when non-zero, keeps only movies carrying this TMDB genre ID.
	Genre int64 `json:"genre,omitempty" validate:"gte=0"`

	// Decade, when non-zero, keeps only movies released in the ten-year
	// window starting at this year, e.g. 1990 covers 1990 through 1999.
	Decade int `json:"decade,omitempty" validate:"omitempty,gte=1880,lte=2100"`

	// Sort selects the result ordering.
	Sort SortMode `json:"sort" validate:"gte=0,lte=3"`

	// Page is the 1-indexed page to return. Zero and negative values are
	// served as page one.
	Page int `json:"page"`

	// PageSize is the number of movies per page. A non-positive value
	// yields an empty page while TotalCount still reports the real match
	// count.
	PageSize int `json:"page_size"`
}

// DefaultParams returns a Params with the standard hidden-gem thresholds,
// gem-score ordering, and the first page.
func DefaultParams() Params {
	return Params{
		MinRating:     DefaultMinRating,
		MaxPopularity: DefaultMaxPopularity,
		MinVotes:      DefaultMinVotes,
		Sort:          SortGemScore,
		Page:          1,
		PageSize:      DefaultPageSize,
	}
}

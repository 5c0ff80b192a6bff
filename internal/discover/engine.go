// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package discover

import (
	"sort"
)

// Note: Everything in this file is a pure function over an in-memory
// catalog snapshot. The same inputs always produce the same ranking, and
// nothing is cached between calls. Callers that can see the catalog
// change own any caching decision.

// GemScore computes the hidden-gem score for a movie: the rating scaled
// to a 0-1 quality factor, multiplied by an obscurity factor that decays
// as popularity grows.
//
//	score = (rating / 10.0) * (100.0 / (popularity + 10.0))
//
// The +10 damping keeps the denominator positive at zero popularity and
// stops near-zero popularity from dominating the quality factor. A
// perfect 10.0 rating at zero popularity scores 10.0. The score is never
// clamped; very popular movies score close to zero but not exactly zero.
func GemScore(rating, popularity float64) float64 {
	return (rating / 10.0) * (100.0 / (popularity + 10.0))
}

// GenreOverlap returns how many genre IDs a and b share. IDs within each
// slice are expected to be distinct, which Movie.GenreIDs guarantees.
func GenreOverlap(a, b []int64) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return countOverlap(genreSet(a), b)
}

// Discover filters, ranks, and paginates a catalog snapshot. It returns
// the movies for params.Page and the total number of movies matching the
// filters across all pages.
//
// A movie survives filtering when its rating is at least params.MinRating,
// its popularity is at most params.MaxPopularity, and its vote count is at
// least params.MinVotes. A non-zero params.Genre additionally requires
// that genre ID, and a non-zero params.Decade requires a release year
// inside the decade's ten-year window.
//
// The total count does not depend on Page or PageSize. Pages past the
// last yield an empty page rather than an error, and page numbers below
// one are served as page one.
//
// Discover never fails and never mutates catalog.
func Discover(catalog []Movie, params Params) ([]Movie, int) {
	filtered := filterMovies(catalog, params)
	sortMovies(filtered, params.Sort)
	return paginate(filtered, params.Page, params.PageSize), len(filtered)
}

// Similar returns up to limit movies from the catalog ranked by how many
// genres they share with ref, most shared first. Ties are broken by
// rating, then by ascending ID. Movies sharing no genre with ref are left
// out entirely rather than ranked last, and ref itself never appears in
// the result.
//
// A non-positive limit or a reference without genres yields an empty
// result. Similar never fails and never mutates catalog.
func Similar(catalog []Movie, ref Movie, limit int) []Movie {
	if limit <= 0 || len(ref.GenreIDs) == 0 {
		return []Movie{}
	}

	refGenres := genreSet(ref.GenreIDs)

	type candidate struct {
		movie   Movie
		overlap int
	}
	candidates := make([]candidate, 0, len(catalog))
	for _, m := range catalog {
		if m.ID == ref.ID {
			continue
		}
		overlap := countOverlap(refGenres, m.GenreIDs)
		if overlap == 0 {
			continue
		}
		candidates = append(candidates, candidate{movie: m, overlap: overlap})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.overlap != b.overlap {
			return a.overlap > b.overlap
		}
		if a.movie.Rating != b.movie.Rating {
			return a.movie.Rating > b.movie.Rating
		}
		return a.movie.ID < b.movie.ID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	movies := make([]Movie, len(candidates))
	for i, c := range candidates {
		movies[i] = c.movie
	}
	return movies
}

// filterMovies returns the catalog entries matching params, in input order.
func filterMovies(catalog []Movie, params Params) []Movie {
	filtered := make([]Movie, 0, len(catalog))
	for _, m := range catalog {
		if matchesFilters(m, params) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// matchesFilters applies the threshold, genre, and decade filters to one movie.
func matchesFilters(m Movie, params Params) bool {
	if m.Rating < params.MinRating {
		return false
	}
	if m.Popularity > params.MaxPopularity {
		return false
	}
	if m.VoteCount < params.MinVotes {
		return false
	}
	if params.Genre != 0 && !m.HasGenre(params.Genre) {
		return false
	}
	if params.Decade != 0 && !inDecade(m, params.Decade) {
		return false
	}
	return true
}

// inDecade reports whether the movie's release year falls in the ten-year
// window starting at decade. Movies with unknown release dates never match.
func inDecade(m Movie, decade int) bool {
	year := m.Year()
	return year >= decade && year <= decade+9
}

// sortMovies orders movies in place according to mode. Every mode ends
// its tie chain with ascending ID, so equal movies rank identically from
// run to run. Unrecognized modes fall back to gem-score ordering.
func sortMovies(movies []Movie, mode SortMode) {
	switch mode {
	case SortRating:
		sort.Slice(movies, func(i, j int) bool {
			a, b := movies[i], movies[j]
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			if a.VoteCount != b.VoteCount {
				return a.VoteCount > b.VoteCount
			}
			return a.ID < b.ID
		})
	case SortMostHidden:
		sort.Slice(movies, func(i, j int) bool {
			a, b := movies[i], movies[j]
			if a.Popularity != b.Popularity {
				return a.Popularity < b.Popularity
			}
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return a.ID < b.ID
		})
	case SortNewest:
		sort.Slice(movies, func(i, j int) bool {
			a, b := movies[i], movies[j]
			if !a.ReleaseDate.Equal(b.ReleaseDate) {
				return a.ReleaseDate.After(b.ReleaseDate)
			}
			return a.ID < b.ID
		})
	default:
		sort.Slice(movies, func(i, j int) bool {
			a, b := movies[i], movies[j]
			as := GemScore(a.Rating, a.Popularity)
			bs := GemScore(b.Rating, b.Popularity)
			if as != bs {
				return as > bs
			}
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return a.ID < b.ID
		})
	}
}

// paginate slices out the 1-indexed page. Page numbers below one are
// served as page one, and pages past the end come back empty.
func paginate(movies []Movie, page, pageSize int) []Movie {
	page = normalizePage(page)
	if pageSize <= 0 {
		return []Movie{}
	}
	start := (page - 1) * pageSize
	// start wraps negative when page*pageSize overflows; treat that as
	// past the end.
	if start < 0 || start >= len(movies) {
		return []Movie{}
	}
	end := start + pageSize
	if end > len(movies) || end < 0 {
		end = len(movies)
	}
	return movies[start:end]
}

// genreSet converts a genre ID slice into a membership set.
func genreSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// countOverlap counts how many of ids are present in genres.
func countOverlap(genres map[int64]struct{}, ids []int64) int {
	shared := 0
	for _, id := range ids {
		if _, ok := genres[id]; ok {
			shared++
		}
	}
	return shared
}

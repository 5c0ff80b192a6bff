// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tomtom215/gemdex/internal/catalog"
	"github.com/tomtom215/gemdex/internal/config"
	"github.com/tomtom215/gemdex/internal/discover"
	"github.com/tomtom215/gemdex/internal/logging"
)

// runMovies browses the catalog with SQL-side filters and pagination.
func runMovies(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex movies", flag.ContinueOnError)
	genre := fs.Int64("genre", 0, "keep only movies with this TMDB genre ID")
	year := fs.Int("year", 0, "keep only movies released in this year")
	decade := fs.Int("decade", 0, "keep only movies released in this decade, e.g. 1990")
	ratingMin := fs.Float64("rating-min", 0, "keep movies rated at or above this value")
	ratingMax := fs.Float64("rating-max", 0, "keep movies rated at or below this value")
	votesMin := fs.Int64("votes-min", 0, "keep movies with at least this many votes")
	runtimeMin := fs.Int("runtime-min", 0, "keep movies at least this many minutes long")
	runtimeMax := fs.Int("runtime-max", 0, "keep movies at most this many minutes long")
	sortBy := fs.String("sort", "popularity", "order by popularity, rating, release_date, title, or vote_count")
	asc := fs.Bool("asc", false, "sort ascending instead of descending")
	page := fs.Int("page", 1, "1-indexed page to return")
	pageSize := fs.Int("page-size", catalog.DefaultListLimit, "movies per page")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	switch *sortBy {
	case "popularity", "rating", "release_date", "title", "vote_count":
	default:
		fmt.Fprintf(os.Stderr, "gemdex movies: unknown -sort column %q\n", *sortBy)
		fs.Usage()
		return errUsage
	}

	p := *page
	if p < 1 {
		p = 1
	}
	size := *pageSize
	if size <= 0 {
		size = catalog.DefaultListLimit
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	movies, total, err := store.ListMovies(ctx, catalog.MovieFilter{
		Genre:      *genre,
		Year:       *year,
		Decade:     *decade,
		MinRating:  *ratingMin,
		MaxRating:  *ratingMax,
		MinVotes:   *votesMin,
		MinRuntime: *runtimeMin,
		MaxRuntime: *runtimeMax,
		SortBy:     *sortBy,
		SortDesc:   !*asc,
		Limit:      size,
		Offset:     (p - 1) * size,
	})
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(struct {
			Movies     []catalog.MovieRecord `json:"movies"`
			TotalCount int64                 `json:"total_count"`
			Page       int                   `json:"page"`
			PageSize   int                   `json:"page_size"`
		}{movies, total, p, size})
	}
	renderMovieListing(os.Stdout, movies, total, p, size)
	return nil
}

// runMovie shows one movie with its credits and similar titles.
func runMovie(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex movie", flag.ContinueOnError)
	id := fs.Int64("id", 0, "movie ID (required)")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fmt.Fprintln(os.Stderr, "gemdex movie: -id is required")
		fs.Usage()
		return errUsage
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	detail, err := store.GetMovie(ctx, *id)
	if err != nil {
		return fmt.Errorf("movie %d: %w", *id, err)
	}

	service, err := discover.NewService(store, logging.Logger())
	if err != nil {
		return err
	}

	similar, err := service.Similar(ctx, *id, cfg.Discover.SimilarLimit)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(struct {
			*catalog.MovieDetail
			Similar []discover.Movie `json:"similar"`
		}{detail, similar.Movies})
	}
	renderMovieDetail(os.Stdout, detail, similar.Movies)
	return nil
}

// runSearch searches movie titles.
func runSearch(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex search", flag.ContinueOnError)
	query := fs.String("q", "", "title text to search for (required)")
	limit := fs.Int("limit", catalog.DefaultSearchLimit, "maximum number of results")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *query == "" {
		fmt.Fprintln(os.Stderr, "gemdex search: -q is required")
		fs.Usage()
		return errUsage
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	movies, err := store.SearchMovies(ctx, *query, *limit)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(movies)
	}
	if len(movies) == 0 {
		fmt.Printf("No movies matched %q.\n", *query)
		return nil
	}
	renderMovieTable(os.Stdout, movies)
	return nil
}

// runGenres lists the genres present in the catalog.
func runGenres(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex genres", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	genres, err := store.ListGenres(ctx)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(genres)
	}
	renderGenres(os.Stdout, genres)
	return nil
}

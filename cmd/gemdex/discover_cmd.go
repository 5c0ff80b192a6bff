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

	"github.com/tomtom215/gemdex/internal/config"
	"github.com/tomtom215/gemdex/internal/discover"
	"github.com/tomtom215/gemdex/internal/logging"
)

// runDiscover ranks hidden gems with the configured filters and prints
// the requested page.
func runDiscover(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex discover", flag.ContinueOnError)
	minRating := fs.Float64("min-rating", cfg.Discover.MinRating, "keep movies rated at or above this value")
	maxPopularity := fs.Float64("max-popularity", cfg.Discover.MaxPopularity, "keep movies at or below this popularity")
	genre := fs.Int64("genre", 0, "keep only movies with this TMDB genre ID")
	decade := fs.Int("decade", 0, "keep only movies released in this decade, e.g. 1990")
	sortName := fs.String("sort", discover.SortGemScore.String(), "ranking: gem_score, rating, most_hidden, or newest")
	page := fs.Int("page", 1, "1-indexed page to return")
	pageSize := fs.Int("page-size", cfg.Discover.PageSize, "movies per page")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sort, err := discover.ParseSortMode(*sortName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gemdex discover: %v\n", err)
		fs.Usage()
		return errUsage
	}

	size := *pageSize
	if size > cfg.Discover.MaxPageSize {
		size = cfg.Discover.MaxPageSize
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	service, err := discover.NewService(store, logging.Logger())
	if err != nil {
		return err
	}

	result, err := service.Discover(ctx, discover.Params{
		MinRating:     *minRating,
		MaxPopularity: *maxPopularity,
		MinVotes:      cfg.Discover.MinVotes,
		Genre:         *genre,
		Decade:        *decade,
		Sort:          sort,
		Page:          *page,
		PageSize:      size,
	})
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(result)
	}
	renderDiscoverResult(os.Stdout, result)
	return nil
}

// runSimilar prints genre-overlap recommendations for a reference movie.
func runSimilar(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex similar", flag.ContinueOnError)
	id := fs.Int64("id", 0, "reference movie ID (required)")
	limit := fs.Int("limit", cfg.Discover.SimilarLimit, "maximum number of recommendations")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fmt.Fprintln(os.Stderr, "gemdex similar: -id is required")
		fs.Usage()
		return errUsage
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	service, err := discover.NewService(store, logging.Logger())
	if err != nil {
		return err
	}

	result, err := service.Similar(ctx, *id, *limit)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(result)
	}
	renderSimilarResult(os.Stdout, result)
	return nil
}

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
	"github.com/tomtom215/gemdex/internal/logging"
	"github.com/tomtom215/gemdex/internal/stats"
)

// runStats prints catalog-wide analytics: an overview, genre breakdowns,
// a release-year histogram, and a top-movies table.
func runStats(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex stats", flag.ContinueOnError)
	topMetric := fs.String("top", "rating", "metric for the top-movies table: rating, popularity, or vote_count")
	topLimit := fs.Int("top-limit", 10, "rows in the top-movies table")
	minMovies := fs.Int("min-movies", 1, "only include genres with at least this many movies in the ratings table")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	switch *topMetric {
	case "rating", "popularity", "vote_count":
	default:
		fmt.Fprintf(os.Stderr, "gemdex stats: unknown -top metric %q\n", *topMetric)
		fs.Usage()
		return errUsage
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	service, err := stats.NewService(store, cfg.Stats.CacheTTL, logging.Logger())
	if err != nil {
		return err
	}

	overview, err := service.Overview(ctx)
	if err != nil {
		return err
	}
	distribution, err := service.GenreDistribution(ctx)
	if err != nil {
		return err
	}
	ratings, err := service.GenreRatings(ctx, *minMovies)
	if err != nil {
		return err
	}
	years, err := service.MoviesByYear(ctx)
	if err != nil {
		return err
	}
	top, err := service.TopMovies(ctx, *topMetric, *topLimit)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(struct {
			Overview          *catalog.Overview     `json:"overview"`
			GenreDistribution []catalog.GenreCount  `json:"genre_distribution"`
			GenreRatings      []catalog.GenreRating `json:"genre_ratings"`
			MoviesByYear      []catalog.YearCount   `json:"movies_by_year"`
			TopMovies         []catalog.MovieRecord `json:"top_movies"`
		}{overview, distribution, ratings, years, top})
	}

	renderStats(os.Stdout, overview, distribution, ratings, years, top, *topMetric)
	return nil
}

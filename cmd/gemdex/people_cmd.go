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
)

// Ranking floors mirror the defaults the analytics queries were tuned
// with: actors need two credited movies, directors three.
const (
	defaultActorMinMovies    = 2
	defaultDirectorMinMovies = 3
	defaultRankingLimit      = 20
)

// runActors ranks actors by the average rating of their movies.
func runActors(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex actors", flag.ContinueOnError)
	limit := fs.Int("limit", defaultRankingLimit, "maximum number of actors")
	minMovies := fs.Int("min-movies", defaultActorMinMovies, "only rank actors credited in at least this many movies")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	rankings, err := store.TopActors(ctx, *limit, *minMovies)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(rankings)
	}
	renderPeopleRankings(os.Stdout, "actors", rankings)
	return nil
}

// runDirectors ranks directors by the average rating of their movies.
func runDirectors(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex directors", flag.ContinueOnError)
	limit := fs.Int("limit", defaultRankingLimit, "maximum number of directors")
	minMovies := fs.Int("min-movies", defaultDirectorMinMovies, "only rank directors with at least this many movies")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	rankings, err := store.TopDirectors(ctx, *limit, *minMovies)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(rankings)
	}
	renderPeopleRankings(os.Stdout, "directors", rankings)
	return nil
}

// runPerson shows one person and their filmography.
func runPerson(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex person", flag.ContinueOnError)
	id := fs.Int64("id", 0, "person ID (required)")
	jsonOut := fs.Bool("json", false, "print the result as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fmt.Fprintln(os.Stderr, "gemdex person: -id is required")
		fs.Usage()
		return errUsage
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	person, err := store.GetPerson(ctx, *id)
	if err != nil {
		return fmt.Errorf("person %d: %w", *id, err)
	}

	entries, err := store.Filmography(ctx, *id)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(struct {
			*catalog.Person
			Filmography []catalog.FilmographyEntry `json:"filmography"`
		}{person, entries})
	}
	renderFilmography(os.Stdout, person, entries)
	return nil
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

// Package main is the entry point for the gemdex command line tool.
//
// Gemdex ranks a local movie catalog to surface hidden gems: well rated
// titles that mainstream popularity charts bury. The catalog lives in a
// single DuckDB file, seeded from a TMDB export, and every command works
// against that file directly. There is no server and no daemon.
//
// # Subcommands
//
//	import     Load a TMDB seed file (JSON array or NDJSON) into the catalog
//	discover   Rank hidden gems with filters, sorting, and pagination
//	similar    Recommend movies sharing genres with a reference movie
//	movies     Browse the catalog with filters
//	movie      Show one movie with credits and similar titles
//	search     Search movies by title
//	genres     List catalog genres
//	actors     Rank actors by the average rating of their movies
//	directors  Rank directors by the average rating of their movies
//	person     Show a person and their filmography
//	stats      Catalog-wide analytics summaries
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (CATALOG_PATH, DISCOVER_MIN_RATING, LOG_LEVEL, ...)
//   - Config file (config.yaml, or the path named by CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
// Seed a catalog and look for gems:
//
//	gemdex import -seed movies.json
//	gemdex discover -min-rating 7.5 -sort gem_score
//	gemdex similar -id 27205 -limit 10
//
// Commands print aligned tables by default; pass -json for raw JSON:
//
//	gemdex discover -genre 878 -decade 1990 -json
//
// # Exit Codes
//
// Gemdex exits 0 on success, 1 on runtime failure, and 2 on usage errors
// such as unknown commands or missing required flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tomtom215/gemdex/internal/catalog"
	"github.com/tomtom215/gemdex/internal/config"
	"github.com/tomtom215/gemdex/internal/logging"
	"github.com/tomtom215/gemdex/internal/metrics"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// errUsage marks failures caused by a bad invocation rather than a
// runtime error. main exits 2 for usage errors and 1 for everything else,
// matching the exit codes of the flag package itself.
var errUsage = errors.New("usage error")

// errHelp marks an explicit -h; the command stops but exits 0.
var errHelp = errors.New("help requested")

// commandFunc is the signature every subcommand implements. The context
// is canceled on SIGINT or SIGTERM, and args holds everything after the
// subcommand name.
type commandFunc func(ctx context.Context, cfg *config.Config, args []string) error

var commands = map[string]commandFunc{
	"import":    runImport,
	"discover":  runDiscover,
	"similar":   runSimilar,
	"movies":    runMovies,
	"movie":     runMovie,
	"search":    runSearch,
	"genres":    runGenres,
	"actors":    runActors,
	"directors": runDirectors,
	"person":    runPerson,
	"stats":     runStats,
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	name := os.Args[1]
	switch name {
	case "version", "-version", "--version":
		fmt.Printf("gemdex %s (%s)\n", version, runtime.Version())
		return
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "gemdex: unknown command %q\n\n", name)
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version, runtime.Version())
	logging.Debug().Str("catalog", cfg.Catalog.Path).Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One request ID per invocation ties together every log line and the
	// request_id echoed in -json output.
	ctx = logging.ContextWithNewRequestID(ctx)

	if err := cmd(ctx, cfg, os.Args[2:]); err != nil {
		stop()
		if errors.Is(err, errHelp) {
			return
		}
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		logging.Error().Err(err).Str("command", name).Msg("Command failed")
		os.Exit(1)
	}
}

// parseFlags parses args, translating the flag package's outcomes into
// the exit-code sentinels. The flag package has already printed its
// diagnostic or usage text by the time an error comes back.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return errUsage
	}
	return nil
}

// openStore opens the DuckDB catalog configured in cfg.
func openStore(cfg *config.Config) (*catalog.Store, error) {
	store, err := catalog.Open(&cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return store, nil
}

// closeStore closes the catalog, logging rather than failing on error.
func closeStore(store *catalog.Store) {
	if err := store.Close(); err != nil {
		logging.Error().Err(err).Msg("Failed to close catalog")
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `gemdex %s - movie catalog discovery and ranking

Usage:

  gemdex <command> [flags]

Catalog commands:

  import     -seed file [-batch n] [-dry-run]       Load a TMDB seed file
  movies     [filters] [-sort col] [-asc] [-page n] Browse the catalog
  movie      -id movieID [-json]                    Show one movie with credits
  search     -q text [-limit n] [-json]             Search movies by title
  genres     [-json]                                List catalog genres

Discovery commands:

  discover   [-min-rating r] [-max-popularity p] [-genre id] [-decade year]
             [-sort mode] [-page n] [-page-size n] [-json]
                                                    Rank hidden gems
  similar    -id movieID [-limit n] [-json]         Genre-overlap recommendations

People commands:

  actors     [-limit n] [-min-movies n] [-json]     Actors by average rating
  directors  [-limit n] [-min-movies n] [-json]     Directors by average rating
  person     -id personID [-json]                   Person with filmography

Other commands:

  stats      [-top metric] [-min-movies n] [-json]  Catalog analytics
  version                                           Print version
  help                                              Print this help

Sort modes for discover: gem_score, rating, most_hidden, newest.

Configuration is read from config.yaml (or the file named by CONFIG_PATH)
and environment variables such as CATALOG_PATH, DISCOVER_MIN_RATING, and
LOG_LEVEL. Run "gemdex <command> -h" for the full per-command flags.
`, version)
}

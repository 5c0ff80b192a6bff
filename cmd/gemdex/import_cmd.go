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
	"github.com/tomtom215/gemdex/internal/gemimport"
)

// runImport loads a TMDB seed file into the catalog.
func runImport(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("gemdex import", flag.ContinueOnError)
	seed := fs.String("seed", "", "path to the seed file, JSON array or NDJSON (required)")
	batch := fs.Int("batch", cfg.Import.BatchSize, "records per progress batch")
	dryRun := fs.Bool("dry-run", cfg.Import.DryRun, "validate the seed file without writing")
	jsonOut := fs.Bool("json", false, "print import stats as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *seed == "" {
		fmt.Fprintln(os.Stderr, "gemdex import: -seed is required")
		fs.Usage()
		return errUsage
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	importCfg := cfg.Import
	importCfg.BatchSize = *batch
	importCfg.DryRun = *dryRun

	importer, err := gemimport.NewImporter(&importCfg, store)
	if err != nil {
		return err
	}

	if _, err := importer.Import(ctx, *seed); err != nil {
		return fmt.Errorf("import %s: %w", *seed, err)
	}

	// Read the stats back off the importer so EndTime is populated.
	stats := importer.GetStats()
	if *jsonOut {
		return printJSON(stats)
	}
	renderImportStats(os.Stdout, stats)
	return nil
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package gemimport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/gemdex/internal/catalog"
	"github.com/tomtom215/gemdex/internal/config"
	"github.com/tomtom215/gemdex/internal/logging"
	"github.com/tomtom215/gemdex/internal/metrics"
)

// DefaultBatchSize is the progress-reporting batch size when the config
// does not set one.
const DefaultBatchSize = 500

// seedFormat is the detected layout of a seed file.
type seedFormat int

const (
	formatArray seedFormat = iota // one JSON array of movie objects
	formatLines                   // newline-delimited JSON objects
)

// CatalogWriter is the slice of the catalog store the importer writes
// through. Narrowing the dependency keeps importer tests off DuckDB.
type CatalogWriter interface {
	UpsertMovie(ctx context.Context, m *catalog.MovieRecord) error
	UpsertGenre(ctx context.Context, g catalog.Genre) error
	SetMovieGenres(ctx context.Context, movieID int64, genreIDs []int64) error
	UpsertPerson(ctx context.Context, p catalog.Person) error
	SetMovieCast(ctx context.Context, movieID int64, cast []catalog.CastCredit) error
	SetMovieCrew(ctx context.Context, movieID int64, crew []catalog.CrewCredit) error
	Checkpoint(ctx context.Context) error
}

// Importer streams seed files into the catalog.
//
// A seed file is either a single JSON array of movie objects or
// newline-delimited JSON; the format is sniffed from the first byte. Records
// are decoded one at a time, so file size is bounded by disk, not memory.
type Importer struct {
	cfg    *config.ImportConfig
	store  CatalogWriter
	logger zerolog.Logger

	// State
	mu       sync.RWMutex
	running  bool
	stats    *Stats
	stopChan chan struct{}
}

// NewImporter creates a seed file importer writing through the given store.
func NewImporter(cfg *config.ImportConfig, store CatalogWriter) (*Importer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("import config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}

	return &Importer{
		cfg:      cfg,
		store:    store,
		logger:   logging.WithComponent("import"),
		stopChan: make(chan struct{}),
	}, nil
}

// Import streams the seed file at path into the catalog and returns the
// final statistics. Only one import can run at a time per Importer.
//
// Invalid records are counted as skipped and logged, not fatal; decode
// failures abort because everything after a syntax error is garbage.
func (i *Importer) Import(ctx context.Context, path string) (stats *Stats, err error) {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, fmt.Errorf("import already in progress")
	}
	i.running = true
	i.stats = &Stats{
		StartTime: time.Now(),
		DryRun:    i.cfg.DryRun,
	}
	i.mu.Unlock()

	start := time.Now()
	defer func() {
		i.mu.Lock()
		i.running = false
		i.stats.EndTime = time.Now()
		processed := i.stats.Processed
		i.mu.Unlock()
		metrics.RecordImportOperation(time.Since(start), processed, err)
	}()

	file, err := os.Open(path) //nolint:gosec // Path comes from the operator's own command line
	if err != nil {
		return i.GetStats(), fmt.Errorf("open seed file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			i.logger.Warn().Err(closeErr).Msg("Error closing seed file")
		}
	}()

	reader := bufio.NewReaderSize(file, 1<<20)
	format, err := sniffFormat(reader)
	if err != nil {
		return i.GetStats(), fmt.Errorf("detect seed format: %w", err)
	}

	i.logger.Info().
		Str("path", path).
		Str("format", formatName(format)).
		Bool("dry_run", i.cfg.DryRun).
		Msg("Starting import")

	if err = i.processAll(ctx, reader, format); err != nil {
		return i.GetStats(), err
	}

	if !i.cfg.DryRun {
		if cpErr := i.store.Checkpoint(ctx); cpErr != nil {
			i.logger.Warn().Err(cpErr).Msg("Checkpoint after import failed")
		}
	}

	final := i.GetStats()
	i.logger.Info().
		Int64("processed", final.Processed).
		Int64("imported", final.Imported).
		Int64("skipped", final.Skipped).
		Int64("errors", final.Errors).
		Dur("duration", final.Duration()).
		Msg("Import completed")

	return final, nil
}

// processAll decodes and applies every record in the stream.
func (i *Importer) processAll(ctx context.Context, reader *bufio.Reader, format seedFormat) error {
	decoder := json.NewDecoder(reader)

	if format == formatArray {
		// Consume the opening bracket so Decode sees bare objects.
		if _, err := decoder.Token(); err != nil {
			return fmt.Errorf("read seed array start: %w", err)
		}
	}

	batchSize := i.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	inBatch := 0
	for {
		if err := i.checkCanceled(ctx); err != nil {
			return err
		}

		if format == formatArray && !decoder.More() {
			break
		}

		var rec SeedMovie
		if err := decoder.Decode(&rec); err != nil {
			if format == formatLines && errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decode seed record: %w", err)
		}

		i.processRecord(ctx, &rec)

		inBatch++
		if inBatch >= batchSize {
			metrics.RecordImportBatch(inBatch)
			i.logProgress()
			inBatch = 0
		}
	}

	if inBatch > 0 {
		metrics.RecordImportBatch(inBatch)
		i.logProgress()
	}

	return nil
}

// processRecord validates and applies one seed record, updating stats.
func (i *Importer) processRecord(ctx context.Context, rec *SeedMovie) {
	i.mu.Lock()
	i.stats.Processed++
	i.mu.Unlock()

	if err := validateSeedMovie(rec); err != nil {
		i.mu.Lock()
		i.stats.Skipped++
		i.mu.Unlock()
		i.logger.Debug().Err(err).Int64("movie_id", rec.ID).Msg("Skipping invalid seed record")
		return
	}

	if i.cfg.DryRun {
		i.mu.Lock()
		i.stats.Imported++
		i.mu.Unlock()
		return
	}

	if err := i.applyRecord(ctx, rec); err != nil {
		i.mu.Lock()
		i.stats.Errors++
		i.mu.Unlock()
		i.logger.Error().Err(err).Int64("movie_id", rec.ID).Msg("Failed to import seed record")
		return
	}

	i.mu.Lock()
	i.stats.Imported++
	i.mu.Unlock()
}

// applyRecord writes one validated record through the catalog store.
// Credits are only replaced when the seed carries them, so re-importing a
// credit-less dump cannot wipe credits loaded earlier.
func (i *Importer) applyRecord(ctx context.Context, rec *SeedMovie) error {
	if err := i.store.UpsertMovie(ctx, toMovieRecord(rec)); err != nil {
		return err
	}

	for _, g := range rec.Genres {
		if g.ID <= 0 || g.Name == "" {
			continue
		}
		if err := i.store.UpsertGenre(ctx, catalog.Genre{ID: g.ID, Name: g.Name}); err != nil {
			return err
		}
	}

	if err := i.store.SetMovieGenres(ctx, rec.ID, mergeGenreIDs(rec)); err != nil {
		return err
	}

	if rec.Credits == nil {
		return nil
	}

	cast := toCastCredits(rec)
	crew := toCrewCredits(rec)

	for _, person := range collectPeople(cast, crew) {
		if err := i.store.UpsertPerson(ctx, person); err != nil {
			return err
		}
	}
	if err := i.store.SetMovieCast(ctx, rec.ID, cast); err != nil {
		return err
	}
	if err := i.store.SetMovieCrew(ctx, rec.ID, crew); err != nil {
		return err
	}

	return nil
}

// checkCanceled reports context cancellation or an explicit Stop.
func (i *Importer) checkCanceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-i.stopChan:
		return fmt.Errorf("import canceled")
	default:
		return nil
	}
}

// logProgress emits a progress line from the current stats.
func (i *Importer) logProgress() {
	stats := i.GetStats()
	i.logger.Info().
		Int64("processed", stats.Processed).
		Int64("imported", stats.Imported).
		Int64("skipped", stats.Skipped).
		Int64("errors", stats.Errors).
		Float64("records_per_second", stats.RecordsPerSecond()).
		Msg("Import progress")
}

// Stop cancels a running import operation.
func (i *Importer) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.running {
		return fmt.Errorf("no import in progress")
	}

	close(i.stopChan)
	i.stopChan = make(chan struct{}) // Reset for next import

	return nil
}

// GetStats returns a copy of the current import statistics.
func (i *Importer) GetStats() *Stats {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.stats == nil {
		return &Stats{}
	}

	stats := *i.stats
	return &stats
}

// IsRunning returns whether an import is currently in progress.
func (i *Importer) IsRunning() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.running
}

// sniffFormat peeks past leading whitespace to classify the seed file.
func sniffFormat(reader *bufio.Reader) (seedFormat, error) {
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return formatArray, fmt.Errorf("seed file is empty: %w", err)
		}

		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			if err := reader.UnreadByte(); err != nil {
				return formatArray, err
			}
			return formatArray, nil
		case '{':
			if err := reader.UnreadByte(); err != nil {
				return formatLines, err
			}
			return formatLines, nil
		default:
			return formatArray, fmt.Errorf("unexpected first byte %q, want '[' or '{'", b)
		}
	}
}

// formatName returns the log label for a seed format.
func formatName(format seedFormat) string {
	if format == formatLines {
		return "ndjson"
	}
	return "array"
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gemdex/internal/config"
	"github.com/tomtom215/gemdex/internal/logging"
	"github.com/tomtom215/gemdex/internal/metrics"
)

// defaultMaxMemory is used when the config does not set a DuckDB memory limit.
const defaultMaxMemory = "2GB"

// Store wraps the embedded DuckDB catalog and provides data access methods.
//
// Thread Safety:
// All methods are safe for concurrent use. The underlying *sql.DB manages
// its own connection pool; Store itself holds no mutable state.
type Store struct {
	conn   *sql.DB
	cfg    *config.CatalogConfig
	logger zerolog.Logger
}

// Open opens (creating if necessary) the catalog database and initializes
// the schema. The caller owns the returned Store and must Close it.
func Open(cfg *config.CatalogConfig) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("catalog config is required")
	}

	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = defaultMaxMemory
	}

	// Ensure parent directory exists for the database file.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create catalog directory %s: %w", dbDir, err)
			}
		}
	}

	// preserve_insertion_order=false reduces memory usage but may change result order
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// Disable auto-install/auto-load so opening never touches the network.
	// The catalog uses no DuckDB extensions.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, maxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	s := &Store{
		conn:   conn,
		cfg:    cfg,
		logger: logging.WithComponent("catalog"),
	}

	s.configureConnectionPool()

	if err := s.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	s.logger.Debug().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Str("max_memory", maxMemory).
		Msg("Catalog store opened")

	return s, nil
}

// configureConnectionPool tunes the database/sql pool for DuckDB.
// DuckDB is embedded, so connections are cheap but CGO calls serialize on
// the database internally; NumCPU open connections is plenty.
func (s *Store) configureConnectionPool() {
	maxConns := runtime.NumCPU()
	s.conn.SetMaxOpenConns(maxConns)
	s.conn.SetMaxIdleConns(2)
	s.conn.SetConnMaxLifetime(time.Hour)
	s.conn.SetConnMaxIdleTime(5 * time.Minute)
	metrics.CatalogConnectionPoolSize.Set(float64(maxConns))
}

// initialize creates tables and indexes.
func (s *Store) initialize() error {
	if err := s.createTables(); err != nil {
		return err
	}
	if err := s.createIndexes(); err != nil {
		return err
	}
	return nil
}

// Close checkpoints the WAL and closes the database connection.
// Checkpointing before close keeps the database file self-contained so a
// crash between runs cannot lose committed imports.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		s.logger.Warn().Err(err).Msg("Checkpoint on close failed")
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close catalog database: %w", err)
	}

	s.logger.Debug().Msg("Catalog store closed")
	return nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return fmt.Errorf("catalog database not initialized")
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	if err := s.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("catalog ping failed: %w", err)
	}
	return nil
}

// Checkpoint forces a WAL checkpoint.
func (s *Store) Checkpoint(ctx context.Context) error {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	if _, err := s.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// Path returns the catalog database file path.
func (s *Store) Path() string {
	return s.cfg.Path
}

// ensureContext creates a context with a 30-second timeout if none provided.
func (s *Store) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

// Package logging provides centralized zerolog-based structured logging for Gemdex.
//
// All Gemdex packages log through this layer: JSON output for machine
// consumption, console output for interactive CLI use, and a global logger
// that works before explicit initialization so early startup paths are never
// silent.
//
// # Quick Start
//
//	import "github.com/tomtom215/gemdex/internal/logging"
//
//	// Initialize at startup, typically from the CLI entry point
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("seed", path).Msg("Import starting")
//	logging.Error().Err(err).Msg("Catalog open failed")
//
//	// Context-aware logging (request ID propagation)
//	logging.Ctx(ctx).Debug().Int("results", n).Msg("Discovery complete")
//
// # Component Loggers
//
// Long-lived components derive a child logger once and reuse it:
//
//	logger := logging.WithComponent("discover")
//	logger.Debug().Str("sort", sort.String()).Msg("Ranking catalog")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. The discovery
// service and the CLI use it to reject malformed parameters before they reach
// the ranking engine, which itself has no error modes.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Comprehensive error translation to human-readable messages
//   - Built-in validator support (gte, lte, oneof, datetime, etc.)
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type DiscoverParams struct {
//	    MinRating     float64 `validate:"gte=0,lte=10"`
//	    MaxPopularity float64 `validate:"gte=0"`
//	    Page          int     `validate:"gte=0"`
//	    PageSize      int     `validate:"gte=0,lte=100"`
//	}
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    return fmt.Errorf("invalid discover parameters: %w", verr)
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//   - oneof=a b c: Must be one of the specified values
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - gt=n: Greater than n
//   - lt=n: Less than n
//   - min=n: Minimum value n
//   - max=n: Maximum value n
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "100" for max=100)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []ValidationError
//	    Error()  string           // Combined message
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required   -> "Genre is required"
//	min=3      -> "Title must be at least 3 characters"
//	max=100    -> "PageSize must be at most 100"
//	gte=0      -> "MinRating must be greater than or equal to 0"
//	lte=10     -> "MinRating must be less than or equal to 10"
//	oneof=a b  -> "Sort must be one of: a b"
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()     // Thread-safe
//	err := validation.ValidateStruct(&params) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/discover: Parameter structs validated by this package
//   - github.com/go-playground/validator/v10: Underlying library
package validation

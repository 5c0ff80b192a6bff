// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package catalog

import (
	"errors"
	"io"
)

// Sentinel errors returned by catalog lookups. Callers match them with
// errors.Is to distinguish "not there" from infrastructure failures.
var (
	// ErrMovieNotFound is returned when a movie ID does not exist in the catalog.
	ErrMovieNotFound = errors.New("movie not found in catalog")

	// ErrPersonNotFound is returned when a person ID does not exist in the catalog.
	ErrPersonNotFound = errors.New("person not found in catalog")
)

// closeQuietly closes a resource and discards the error.
// Used in error paths and test cleanup where the original error
// (or the test outcome) matters more than the close result.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/gemdex/internal/discover"
	"github.com/tomtom215/gemdex/internal/gemimport"
)

func TestFormatDate(t *testing.T) {
	t.Run("zero time", func(t *testing.T) {
		if got := formatDate(time.Time{}); got != "-" {
			t.Errorf("formatDate(zero) = %q, want -", got)
		}
	})

	t.Run("known date", func(t *testing.T) {
		d := time.Date(1999, 10, 15, 0, 0, 0, 0, time.UTC)
		if got := formatDate(d); got != "1999-10-15" {
			t.Errorf("formatDate() = %q, want 1999-10-15", got)
		}
	})
}

func TestFormatYear(t *testing.T) {
	t.Run("zero time", func(t *testing.T) {
		if got := formatYear(time.Time{}); got != "-" {
			t.Errorf("formatYear(zero) = %q, want -", got)
		}
	})

	t.Run("known date", func(t *testing.T) {
		d := time.Date(1999, 10, 15, 0, 0, 0, 0, time.UTC)
		if got := formatYear(d); got != "1999" {
			t.Errorf("formatYear() = %q, want 1999", got)
		}
	})
}

func TestFormatRuntime(t *testing.T) {
	t.Run("unknown runtime", func(t *testing.T) {
		if got := formatRuntime(0); got != "-" {
			t.Errorf("formatRuntime(0) = %q, want -", got)
		}
	})

	t.Run("known runtime", func(t *testing.T) {
		if got := formatRuntime(142); got != "142m" {
			t.Errorf("formatRuntime(142) = %q, want 142m", got)
		}
	})
}

func TestRenderDiscoverResult(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		var buf strings.Builder
		renderDiscoverResult(&buf, &discover.Result{})

		if !strings.Contains(buf.String(), "No movies matched") {
			t.Errorf("empty result output = %q, want no-match message", buf.String())
		}
	})

	t.Run("populated result", func(t *testing.T) {
		result := &discover.Result{
			Movies: []discover.Movie{
				{ID: 42, Title: "Quiet Signal", Rating: 8.2, Popularity: 8.5, VoteCount: 200,
					ReleaseDate: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)},
			},
			TotalCount: 1,
			Page:       1,
			PageSize:   24,
			TotalPages: 1,
			Sort:       "gem_score",
		}

		var buf strings.Builder
		renderDiscoverResult(&buf, result)
		out := buf.String()

		if !strings.Contains(out, "GEM") {
			t.Errorf("output missing GEM column header:\n%s", out)
		}
		if !strings.Contains(out, "Quiet Signal") {
			t.Errorf("output missing movie title:\n%s", out)
		}
		// GemScore(8.2, 8.5) = 4.4324...
		if !strings.Contains(out, "4.43") {
			t.Errorf("output missing gem score:\n%s", out)
		}
		if !strings.Contains(out, "Page 1 of 1 (1 movies, sort: gem_score)") {
			t.Errorf("output missing page footer:\n%s", out)
		}
	})
}

func TestRenderSimilarResult(t *testing.T) {
	t.Run("no shared genres", func(t *testing.T) {
		result := &discover.SimilarResult{
			Reference: discover.Movie{ID: 1, Title: "Orbit", Rating: 7.5},
		}

		var buf strings.Builder
		renderSimilarResult(&buf, result)

		if !strings.Contains(buf.String(), "No movies share a genre") {
			t.Errorf("output = %q, want no-overlap message", buf.String())
		}
	})

	t.Run("overlap count column", func(t *testing.T) {
		result := &discover.SimilarResult{
			Reference: discover.Movie{ID: 1, Title: "Orbit", Rating: 7.5, GenreIDs: []int64{18, 53}},
			Movies: []discover.Movie{
				{ID: 2, Title: "Drift", Rating: 7.1, GenreIDs: []int64{18, 53, 80}},
			},
		}

		var buf strings.Builder
		renderSimilarResult(&buf, result)
		out := buf.String()

		if !strings.Contains(out, "Similar to Orbit") {
			t.Errorf("output missing reference header:\n%s", out)
		}
		if !strings.Contains(out, "Drift") {
			t.Errorf("output missing similar movie:\n%s", out)
		}
	})
}

func TestRenderMovieListing(t *testing.T) {
	t.Run("page count rounds up", func(t *testing.T) {
		var buf strings.Builder
		renderMovieListing(&buf, nil, 25, 1, 10)

		if !strings.Contains(buf.String(), "Page 1 of 3 (25 movies)") {
			t.Errorf("output = %q, want 3-page footer", buf.String())
		}
	})

	t.Run("empty listing", func(t *testing.T) {
		var buf strings.Builder
		renderMovieListing(&buf, nil, 0, 1, 10)

		if !strings.Contains(buf.String(), "No movies matched") {
			t.Errorf("output = %q, want no-match message", buf.String())
		}
	})
}

func TestRenderImportStats(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("import summary", func(t *testing.T) {
		stats := &gemimport.Stats{
			Processed: 120,
			Imported:  100,
			Skipped:   20,
			StartTime: start,
			EndTime:   start.Add(2 * time.Second),
		}

		var buf strings.Builder
		renderImportStats(&buf, stats)
		out := buf.String()

		if !strings.Contains(out, "Imported 100 of 120 records in 2s") {
			t.Errorf("output missing summary line:\n%s", out)
		}
		if !strings.Contains(out, "Skipped 20 invalid records.") {
			t.Errorf("output missing skipped line:\n%s", out)
		}
	})

	t.Run("dry run verb", func(t *testing.T) {
		stats := &gemimport.Stats{
			Processed: 10,
			Imported:  10,
			StartTime: start,
			EndTime:   start.Add(time.Second),
			DryRun:    true,
		}

		var buf strings.Builder
		renderImportStats(&buf, stats)

		if !strings.Contains(buf.String(), "Validated 10 of 10 records") {
			t.Errorf("output = %q, want Validated verb", buf.String())
		}
	})

	t.Run("write failures reported", func(t *testing.T) {
		stats := &gemimport.Stats{
			Processed: 5,
			Imported:  3,
			Errors:    2,
			StartTime: start,
			EndTime:   start.Add(time.Second),
		}

		var buf strings.Builder
		renderImportStats(&buf, stats)

		if !strings.Contains(buf.String(), "2 records failed to write.") {
			t.Errorf("output = %q, want failure line", buf.String())
		}
	})
}

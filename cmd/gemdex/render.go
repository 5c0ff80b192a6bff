// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gemdex/internal/catalog"
	"github.com/tomtom215/gemdex/internal/discover"
	"github.com/tomtom215/gemdex/internal/gemimport"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// newTable returns a tabwriter configured for aligned column output.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
}

// formatDate renders a date as YYYY-MM-DD, or "-" when unknown.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// formatYear renders the year of a date, or "-" when unknown.
func formatYear(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return strconv.Itoa(t.Year())
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dm", minutes)
}

func renderDiscoverResult(w io.Writer, result *discover.Result) {
	if result.TotalCount == 0 {
		fmt.Fprintln(w, "No movies matched the filters.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tRATING\tPOP\tVOTES\tGEM")
	for _, m := range result.Movies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.1f\t%d\t%.2f\n",
			m.ID, m.Title, formatYear(m.ReleaseDate), m.Rating, m.Popularity, m.VoteCount,
			discover.GemScore(m.Rating, m.Popularity))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\nPage %d of %d (%d movies, sort: %s)\n",
		result.Page, result.TotalPages, result.TotalCount, result.Sort)
}

func renderSimilarResult(w io.Writer, result *discover.SimilarResult) {
	ref := result.Reference
	fmt.Fprintf(w, "Similar to %s (%s, rating %.1f)\n\n",
		ref.Title, formatYear(ref.ReleaseDate), ref.Rating)
	if len(result.Movies) == 0 {
		fmt.Fprintln(w, "No movies share a genre with the reference.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tRATING\tSHARED GENRES")
	for _, m := range result.Movies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%d\n",
			m.ID, m.Title, formatYear(m.ReleaseDate), m.Rating,
			discover.GenreOverlap(ref.GenreIDs, m.GenreIDs))
	}
	_ = tw.Flush()
}

func renderMovieTable(w io.Writer, movies []catalog.MovieRecord) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tRATING\tPOP\tVOTES\tRUNTIME")
	for _, m := range movies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.1f\t%d\t%s\n",
			m.ID, m.Title, formatYear(m.ReleaseDate), m.Rating, m.Popularity,
			m.VoteCount, formatRuntime(m.Runtime))
	}
	_ = tw.Flush()
}

func renderMovieListing(w io.Writer, movies []catalog.MovieRecord, total int64, page, pageSize int) {
	if total == 0 {
		fmt.Fprintln(w, "No movies matched the filters.")
		return
	}
	renderMovieTable(w, movies)

	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	fmt.Fprintf(w, "\nPage %d of %d (%d movies)\n", page, pages, total)
}

func renderMovieDetail(w io.Writer, detail *catalog.MovieDetail, similar []discover.Movie) {
	fmt.Fprintf(w, "%s (%s)\n", detail.Title, formatYear(detail.ReleaseDate))
	if detail.OriginalTitle != "" && detail.OriginalTitle != detail.Title {
		fmt.Fprintf(w, "Original title: %s\n", detail.OriginalTitle)
	}
	if detail.Tagline != "" {
		fmt.Fprintf(w, "%q\n", detail.Tagline)
	}

	fmt.Fprintf(w, "\nRating %.1f (%d votes), popularity %.1f, gem score %.2f\n",
		detail.Rating, detail.VoteCount, detail.Popularity,
		discover.GemScore(detail.Rating, detail.Popularity))
	if detail.Runtime > 0 {
		fmt.Fprintf(w, "Runtime %d minutes\n", detail.Runtime)
	}
	if len(detail.Genres) > 0 {
		names := make([]string, 0, len(detail.Genres))
		for _, g := range detail.Genres {
			names = append(names, g.Name)
		}
		fmt.Fprintf(w, "Genres: %s\n", strings.Join(names, ", "))
	}
	if detail.Overview != "" {
		fmt.Fprintf(w, "\n%s\n", detail.Overview)
	}

	if len(detail.Cast) > 0 {
		fmt.Fprintln(w, "\nCast:")
		tw := newTable(w)
		for _, c := range detail.Cast {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Person.Name, c.CharacterName)
		}
		_ = tw.Flush()
	}
	if len(detail.Crew) > 0 {
		fmt.Fprintln(w, "\nCrew:")
		tw := newTable(w)
		for _, c := range detail.Crew {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Person.Name, c.Job)
		}
		_ = tw.Flush()
	}
	if len(similar) > 0 {
		fmt.Fprintln(w, "\nSimilar movies:")
		tw := newTable(w)
		for _, m := range similar {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%.1f\n",
				m.ID, m.Title, formatYear(m.ReleaseDate), m.Rating)
		}
		_ = tw.Flush()
	}
}

func renderGenres(w io.Writer, genres []catalog.Genre) {
	if len(genres) == 0 {
		fmt.Fprintln(w, "The catalog has no genres yet.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, g := range genres {
		fmt.Fprintf(tw, "%d\t%s\n", g.ID, g.Name)
	}
	_ = tw.Flush()
}

func renderPeopleRankings(w io.Writer, noun string, rankings []catalog.PersonRanking) {
	if len(rankings) == 0 {
		fmt.Fprintf(w, "No %s matched.\n", noun)
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\tID\tNAME\tMOVIES\tAVG RATING")
	for i, r := range rankings {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%.2f\n",
			i+1, r.Person.ID, r.Person.Name, r.MovieCount, r.AvgRating)
	}
	_ = tw.Flush()
}

func renderFilmography(w io.Writer, person *catalog.Person, entries []catalog.FilmographyEntry) {
	fmt.Fprintf(w, "%s (popularity %.1f)\n", person.Name, person.Popularity)
	if len(entries) == 0 {
		fmt.Fprintln(w, "\nNo credits in the catalog.")
		return
	}

	fmt.Fprintf(w, "\n%d credits:\n", len(entries))
	tw := newTable(w)
	fmt.Fprintln(tw, "YEAR\tTITLE\tRATING\tCREDIT")
	for _, e := range entries {
		credit := e.Credit
		if credit == "" {
			credit = e.CreditType
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\n",
			formatYear(e.ReleaseDate), e.Title, e.Rating, credit)
	}
	_ = tw.Flush()
}

func renderStats(w io.Writer, overview *catalog.Overview, distribution []catalog.GenreCount,
	ratings []catalog.GenreRating, years []catalog.YearCount, top []catalog.MovieRecord, topMetric string,
) {
	fmt.Fprintln(w, "Catalog overview:")
	tw := newTable(w)
	fmt.Fprintf(tw, "  Movies\t%d\n", overview.TotalMovies)
	fmt.Fprintf(tw, "  People\t%d\n", overview.TotalPeople)
	fmt.Fprintf(tw, "  Genres\t%d\n", overview.TotalGenres)
	fmt.Fprintf(tw, "  Average rating\t%.2f\n", overview.AvgRating)
	fmt.Fprintf(tw, "  Average popularity\t%.2f\n", overview.AvgPopularity)
	fmt.Fprintf(tw, "  Total votes\t%d\n", overview.TotalVotes)
	fmt.Fprintf(tw, "  Releases\t%s to %s\n",
		formatDate(overview.OldestRelease), formatDate(overview.NewestRelease))
	_ = tw.Flush()

	if len(distribution) > 0 {
		fmt.Fprintln(w, "\nMovies per genre:")
		tw = newTable(w)
		for _, g := range distribution {
			fmt.Fprintf(tw, "  %s\t%d\n", g.Name, g.MovieCount)
		}
		_ = tw.Flush()
	}

	if len(ratings) > 0 {
		fmt.Fprintln(w, "\nAverage rating per genre:")
		tw = newTable(w)
		for _, g := range ratings {
			fmt.Fprintf(tw, "  %s\t%.2f\t(%d movies)\n", g.Name, g.AvgRating, g.MovieCount)
		}
		_ = tw.Flush()
	}

	if len(years) > 0 {
		fmt.Fprintln(w, "\nMovies per year:")
		tw = newTable(w)
		for _, y := range years {
			fmt.Fprintf(tw, "  %d\t%d\t(avg rating %.2f)\n", y.Year, y.MovieCount, y.AvgRating)
		}
		_ = tw.Flush()
	}

	if len(top) > 0 {
		fmt.Fprintf(w, "\nTop movies by %s:\n", topMetric)
		renderMovieTable(w, top)
	}
}

func renderImportStats(w io.Writer, stats *gemimport.Stats) {
	verb := "Imported"
	if stats.DryRun {
		verb = "Validated"
	}
	fmt.Fprintf(w, "%s %d of %d records in %s",
		verb, stats.Imported, stats.Processed, stats.Duration().Round(time.Millisecond))
	if rps := stats.RecordsPerSecond(); rps > 0 {
		fmt.Fprintf(w, " (%.0f records/s)", rps)
	}
	fmt.Fprintln(w)
	if stats.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d invalid records.\n", stats.Skipped)
	}
	if stats.Errors > 0 {
		fmt.Fprintf(w, "%d records failed to write.\n", stats.Errors)
	}
}

// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package discover

import (
	"math"
	"reflect"
	"testing"
	"time"
)

// gem builds a minimal movie for ranking tests.
func gem(id int64, rating, popularity float64, votes int64) Movie {
	return Movie{ID: id, Rating: rating, Popularity: popularity, VoteCount: votes}
}

// released builds a release date at midnight UTC.
func released(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// movieIDs extracts IDs in result order.
func movieIDs(movies []Movie) []int64 {
	ids := make([]int64, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}

// allParams admits every movie and requests one large page.
func allParams() Params {
	return Params{MaxPopularity: 1000, Page: 1, PageSize: 100}
}

// --- Test: GemScore ---

func TestGemScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rating     float64
		popularity float64
		want       float64
	}{
		{
			name:       "well rated and fairly obscure",
			rating:     8.2,
			popularity: 8.5,
			want:       4.4324,
		},
		{
			name:       "slightly lower rating but much more obscure wins",
			rating:     7.8,
			popularity: 3.2,
			want:       5.9091,
		},
		{
			name:       "perfect rating at zero popularity is the maximum",
			rating:     10.0,
			popularity: 0.0,
			want:       10.0,
		},
		{
			name:       "zero rating scores zero",
			rating:     0.0,
			popularity: 3.0,
			want:       0.0,
		},
		{
			name:       "blockbuster popularity crushes the score",
			rating:     8.0,
			popularity: 150.0,
			want:       0.5,
		},
		{
			name:       "zero popularity still damped by the constant",
			rating:     5.0,
			popularity: 0.0,
			want:       5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := GemScore(tt.rating, tt.popularity)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("GemScore(%v, %v) = %v, want %v", tt.rating, tt.popularity, got, tt.want)
			}
		})
	}
}

func TestGemScore_ObscurityOutweighsRating(t *testing.T) {
	t.Parallel()

	// The 8.2-rated movie at popularity 8.5 loses to the 7.8-rated movie
	// at popularity 3.2. Obscurity buys more score than a few tenths of
	// rating.
	higherRated := GemScore(8.2, 8.5)
	moreObscure := GemScore(7.8, 3.2)

	if moreObscure <= higherRated {
		t.Errorf("GemScore(7.8, 3.2) = %v should exceed GemScore(8.2, 8.5) = %v",
			moreObscure, higherRated)
	}
}

// --- Test: GenreOverlap ---

func TestGenreOverlap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    []int64
		b    []int64
		want int
	}{
		{name: "both empty", a: nil, b: nil, want: 0},
		{name: "one empty", a: []int64{28, 18}, b: nil, want: 0},
		{name: "disjoint", a: []int64{28, 18}, b: []int64{35, 99}, want: 0},
		{name: "single shared", a: []int64{28, 18}, b: []int64{28, 35}, want: 1},
		{name: "all shared", a: []int64{28, 18}, b: []int64{18, 28}, want: 2},
		{name: "order does not matter", a: []int64{12, 16, 10751}, b: []int64{10751, 12}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GenreOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("GenreOverlap(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// --- Test: Discover filtering ---

func TestDiscover_Filtering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		catalog   []Movie
		params    Params
		wantIDs   []int64
		wantTotal int
	}{
		{
			name: "rating floor is inclusive",
			catalog: []Movie{
				gem(1, 6.9, 5.0, 100),
				gem(2, 7.0, 5.0, 100),
			},
			params:    Params{MinRating: 7.0, MaxPopularity: 20.0, MinVotes: 50, Page: 1, PageSize: 10},
			wantIDs:   []int64{2},
			wantTotal: 1,
		},
		{
			name: "popularity ceiling is inclusive and excludes blockbusters",
			catalog: []Movie{
				gem(1, 8.0, 150.0, 5000),
				gem(2, 8.0, 20.0, 100),
			},
			params:    Params{MinRating: 7.0, MaxPopularity: 20.0, MinVotes: 50, Page: 1, PageSize: 10},
			wantIDs:   []int64{2},
			wantTotal: 1,
		},
		{
			name: "vote floor is inclusive",
			catalog: []Movie{
				gem(1, 8.0, 5.0, 49),
				gem(2, 8.0, 5.0, 50),
			},
			params:    Params{MinRating: 7.0, MaxPopularity: 20.0, MinVotes: 50, Page: 1, PageSize: 10},
			wantIDs:   []int64{2},
			wantTotal: 1,
		},
		{
			name: "genre filter requires containment",
			catalog: []Movie{
				{ID: 1, Rating: 8.0, Popularity: 5.0, VoteCount: 100, GenreIDs: []int64{28, 18}},
				{ID: 2, Rating: 8.0, Popularity: 5.0, VoteCount: 100, GenreIDs: []int64{35}},
				{ID: 3, Rating: 8.0, Popularity: 5.0, VoteCount: 100, GenreIDs: []int64{18}},
			},
			params:    Params{MaxPopularity: 20.0, Genre: 18, Page: 1, PageSize: 10},
			wantIDs:   []int64{1, 3},
			wantTotal: 2,
		},
		{
			name: "decade covers exactly ten years",
			catalog: []Movie{
				{ID: 1, Rating: 8.0, Popularity: 5.0, VoteCount: 100, ReleaseDate: released(1989, 12, 31)},
				{ID: 2, Rating: 8.0, Popularity: 5.0, VoteCount: 100, ReleaseDate: released(1990, 1, 1)},
				{ID: 3, Rating: 8.0, Popularity: 5.0, VoteCount: 100, ReleaseDate: released(1999, 12, 31)},
				{ID: 4, Rating: 8.0, Popularity: 5.0, VoteCount: 100, ReleaseDate: released(2000, 1, 1)},
			},
			params:    Params{MaxPopularity: 20.0, Decade: 1990, Page: 1, PageSize: 10},
			wantIDs:   []int64{2, 3},
			wantTotal: 2,
		},
		{
			name: "unknown release date never matches a decade",
			catalog: []Movie{
				gem(1, 8.0, 5.0, 100),
				{ID: 2, Rating: 8.0, Popularity: 5.0, VoteCount: 100, ReleaseDate: released(1994, 6, 1)},
			},
			params:    Params{MaxPopularity: 20.0, Decade: 1990, Page: 1, PageSize: 10},
			wantIDs:   []int64{2},
			wantTotal: 1,
		},
		{
			name: "zero thresholds are honored not treated as unset",
			catalog: []Movie{
				gem(1, 0.0, 0.0, 0),
				gem(2, 9.0, 0.1, 500),
			},
			params:    Params{MinRating: 0.0, MaxPopularity: 0.0, MinVotes: 0, Page: 1, PageSize: 10},
			wantIDs:   []int64{1},
			wantTotal: 1,
		},
		{
			name:      "empty catalog yields empty page and zero total",
			catalog:   nil,
			params:    Params{MinRating: 7.0, MaxPopularity: 20.0, MinVotes: 50, Page: 1, PageSize: 10},
			wantIDs:   []int64{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, total := Discover(tt.catalog, tt.params)

			if got == nil {
				t.Fatal("Discover() returned nil page, want empty slice")
			}
			if total != tt.wantTotal {
				t.Errorf("Discover() total = %d, want %d", total, tt.wantTotal)
			}
			if !reflect.DeepEqual(movieIDs(got), tt.wantIDs) {
				t.Errorf("Discover() IDs = %v, want %v", movieIDs(got), tt.wantIDs)
			}
		})
	}
}

// --- Test: Discover ranking ---

func TestDiscover_ObscureBeatsPopular(t *testing.T) {
	t.Parallel()

	// Both survive the default thresholds; the more obscure movie scores
	// roughly 5.91 against 4.43 and must come first. The blockbuster is
	// filtered out entirely, not ranked last.
	catalog := []Movie{
		gem(1, 8.2, 8.5, 200),
		gem(2, 7.8, 3.2, 80),
		gem(3, 8.0, 150.0, 5000),
	}

	got, total := Discover(catalog, DefaultParams())

	if total != 2 {
		t.Fatalf("Discover() total = %d, want 2", total)
	}
	if want := []int64{2, 1}; !reflect.DeepEqual(movieIDs(got), want) {
		t.Errorf("Discover() IDs = %v, want %v", movieIDs(got), want)
	}
}

func TestDiscover_SortModes(t *testing.T) {
	t.Parallel()

	// Gem scores: movie 1 = 4.5, movie 2 = 6.67, movie 3 = 4.8,
	// movie 4 = 5.0. Movies 2 and 4 share a release date, movies 2 and 4
	// share a rating.
	catalog := []Movie{
		{ID: 1, Rating: 9.0, Popularity: 10.0, VoteCount: 500, ReleaseDate: released(2005, 6, 1)},
		{ID: 2, Rating: 8.0, Popularity: 2.0, VoteCount: 100, ReleaseDate: released(2015, 3, 10)},
		{ID: 3, Rating: 7.2, Popularity: 5.0, VoteCount: 80, ReleaseDate: released(1995, 11, 20)},
		{ID: 4, Rating: 8.0, Popularity: 6.0, VoteCount: 300, ReleaseDate: released(2015, 3, 10)},
	}

	tests := []struct {
		name    string
		sort    SortMode
		wantIDs []int64
	}{
		{
			name:    "gem score descending",
			sort:    SortGemScore,
			wantIDs: []int64{2, 4, 3, 1},
		},
		{
			name:    "rating descending with vote count tiebreak",
			sort:    SortRating,
			wantIDs: []int64{1, 4, 2, 3},
		},
		{
			name:    "most hidden is popularity ascending",
			sort:    SortMostHidden,
			wantIDs: []int64{2, 3, 4, 1},
		},
		{
			name:    "newest with ID tiebreak on shared dates",
			sort:    SortNewest,
			wantIDs: []int64{2, 4, 1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			params := allParams()
			params.Sort = tt.sort

			got, _ := Discover(catalog, params)

			if !reflect.DeepEqual(movieIDs(got), tt.wantIDs) {
				t.Errorf("Discover(%v) IDs = %v, want %v", tt.sort, movieIDs(got), tt.wantIDs)
			}
		})
	}
}

func TestDiscover_GemTiebreaks(t *testing.T) {
	t.Parallel()

	// Movies 1 and 2 share rating and popularity, so their gem scores are
	// bit-identical and the ID decides. Movies 3 and 4 collide a different
	// way: 0.8*5 and 0.4*10 both round to exactly 4.0 in float64, so the
	// higher rating decides.
	catalog := []Movie{
		gem(2, 8.5, 4.0, 100),
		gem(1, 8.5, 4.0, 100),
		gem(4, 4.0, 0.0, 100),
		gem(3, 8.0, 10.0, 100),
	}

	params := allParams()
	got, _ := Discover(catalog, params)

	// Scores: 1 and 2 at 6.07, then 3 and 4 tied at 4.0.
	if want := []int64{1, 2, 3, 4}; !reflect.DeepEqual(movieIDs(got), want) {
		t.Errorf("Discover() IDs = %v, want %v", movieIDs(got), want)
	}
}

func TestDiscover_DeterministicAcrossInputOrder(t *testing.T) {
	t.Parallel()

	forward := []Movie{
		gem(1, 8.0, 3.0, 100),
		gem(2, 8.0, 3.0, 100),
		gem(3, 7.5, 1.0, 60),
		gem(4, 9.1, 12.0, 900),
	}
	reversed := []Movie{forward[3], forward[2], forward[1], forward[0]}

	for _, mode := range []SortMode{SortGemScore, SortRating, SortMostHidden, SortNewest} {
		params := allParams()
		params.Sort = mode

		a, _ := Discover(forward, params)
		b, _ := Discover(reversed, params)

		if !reflect.DeepEqual(movieIDs(a), movieIDs(b)) {
			t.Errorf("sort %v not deterministic: %v vs %v", mode, movieIDs(a), movieIDs(b))
		}
	}
}

func TestDiscover_DoesNotMutateCatalog(t *testing.T) {
	t.Parallel()

	catalog := []Movie{
		gem(3, 7.5, 1.0, 60),
		gem(1, 8.0, 3.0, 100),
		gem(2, 9.1, 12.0, 900),
	}
	before := make([]Movie, len(catalog))
	copy(before, catalog)

	_, _ = Discover(catalog, allParams())

	if !reflect.DeepEqual(catalog, before) {
		t.Errorf("Discover() reordered the input catalog: %v, want %v", movieIDs(catalog), movieIDs(before))
	}
}

// --- Test: Discover pagination ---

func TestDiscover_Pagination(t *testing.T) {
	t.Parallel()

	// Seven movies with strictly decreasing gem scores, so the full
	// ordering is 1 through 7.
	catalog := make([]Movie, 0, 7)
	for i := int64(1); i <= 7; i++ {
		catalog = append(catalog, gem(i, 8.0, float64(i), 100))
	}

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantIDs  []int64
	}{
		{name: "first page", page: 1, pageSize: 3, wantIDs: []int64{1, 2, 3}},
		{name: "middle page", page: 2, pageSize: 3, wantIDs: []int64{4, 5, 6}},
		{name: "short last page", page: 3, pageSize: 3, wantIDs: []int64{7}},
		{name: "page past the end is empty", page: 4, pageSize: 3, wantIDs: []int64{}},
		{name: "far past the end is empty", page: 1000, pageSize: 3, wantIDs: []int64{}},
		{name: "page zero serves page one", page: 0, pageSize: 3, wantIDs: []int64{1, 2, 3}},
		{name: "negative page serves page one", page: -5, pageSize: 3, wantIDs: []int64{1, 2, 3}},
		{name: "zero page size yields empty page", page: 1, pageSize: 0, wantIDs: []int64{}},
		{name: "negative page size yields empty page", page: 1, pageSize: -3, wantIDs: []int64{}},
		{name: "oversized page returns everything", page: 1, pageSize: 50, wantIDs: []int64{1, 2, 3, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			params := Params{MaxPopularity: 1000, Page: tt.page, PageSize: tt.pageSize}

			got, total := Discover(catalog, params)

			if total != 7 {
				t.Errorf("Discover() total = %d, want 7 regardless of paging", total)
			}
			if !reflect.DeepEqual(movieIDs(got), tt.wantIDs) {
				t.Errorf("Discover() IDs = %v, want %v", movieIDs(got), tt.wantIDs)
			}
		})
	}
}

func TestDiscover_PagesConcatenateToFullRanking(t *testing.T) {
	t.Parallel()

	catalog := make([]Movie, 0, 25)
	for i := int64(1); i <= 25; i++ {
		catalog = append(catalog, gem(i, 7.0+float64(i%3), float64(i%11), 50+i))
	}

	full, fullTotal := Discover(catalog, Params{MaxPopularity: 1000, Page: 1, PageSize: 1000})

	var stitched []int64
	for page := 1; ; page++ {
		got, total := Discover(catalog, Params{MaxPopularity: 1000, Page: page, PageSize: 4})
		if total != fullTotal {
			t.Fatalf("page %d total = %d, want %d", page, total, fullTotal)
		}
		if len(got) == 0 {
			break
		}
		stitched = append(stitched, movieIDs(got)...)
	}

	if !reflect.DeepEqual(stitched, movieIDs(full)) {
		t.Errorf("concatenated pages = %v, want full ranking %v", stitched, movieIDs(full))
	}
}

// --- Test: Similar ---

func TestSimilar(t *testing.T) {
	t.Parallel()

	ref := Movie{ID: 100, Rating: 8.0, GenreIDs: []int64{28, 18}}

	tests := []struct {
		name    string
		catalog []Movie
		ref     Movie
		limit   int
		wantIDs []int64
	}{
		{
			name: "ranked by overlap then rating",
			catalog: []Movie{
				{ID: 1, Rating: 7.0, GenreIDs: []int64{28, 35}},
				{ID: 2, Rating: 6.5, GenreIDs: []int64{28, 18}},
				{ID: 3, Rating: 9.0, GenreIDs: []int64{35}},
			},
			ref:     ref,
			limit:   10,
			wantIDs: []int64{2, 1},
		},
		{
			name: "zero overlap is excluded not ranked last",
			catalog: []Movie{
				{ID: 1, Rating: 9.9, GenreIDs: []int64{35}},
				{ID: 2, Rating: 1.0, GenreIDs: []int64{18}},
			},
			ref:     ref,
			limit:   10,
			wantIDs: []int64{2},
		},
		{
			name: "reference is never its own neighbor",
			catalog: []Movie{
				{ID: 100, Rating: 8.0, GenreIDs: []int64{28, 18}},
				{ID: 1, Rating: 7.0, GenreIDs: []int64{28}},
			},
			ref:     ref,
			limit:   10,
			wantIDs: []int64{1},
		},
		{
			name: "limit truncates the ranking",
			catalog: []Movie{
				{ID: 1, Rating: 7.0, GenreIDs: []int64{28}},
				{ID: 2, Rating: 8.0, GenreIDs: []int64{28}},
				{ID: 3, Rating: 9.0, GenreIDs: []int64{28}},
			},
			ref:     ref,
			limit:   2,
			wantIDs: []int64{3, 2},
		},
		{
			name: "equal overlap and rating falls back to ID",
			catalog: []Movie{
				{ID: 7, Rating: 7.0, GenreIDs: []int64{28}},
				{ID: 4, Rating: 7.0, GenreIDs: []int64{18}},
			},
			ref:     ref,
			limit:   10,
			wantIDs: []int64{4, 7},
		},
		{
			name: "zero limit yields nothing",
			catalog: []Movie{
				{ID: 1, Rating: 7.0, GenreIDs: []int64{28}},
			},
			ref:     ref,
			limit:   0,
			wantIDs: []int64{},
		},
		{
			name: "reference without genres yields nothing",
			catalog: []Movie{
				{ID: 1, Rating: 7.0, GenreIDs: []int64{28}},
			},
			ref:     Movie{ID: 100, Rating: 8.0},
			limit:   10,
			wantIDs: []int64{},
		},
		{
			name:    "empty catalog yields nothing",
			catalog: nil,
			ref:     ref,
			limit:   10,
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Similar(tt.catalog, tt.ref, tt.limit)

			if got == nil {
				t.Fatal("Similar() returned nil, want empty slice")
			}
			if !reflect.DeepEqual(movieIDs(got), tt.wantIDs) {
				t.Errorf("Similar() IDs = %v, want %v", movieIDs(got), tt.wantIDs)
			}
		})
	}
}

func TestSimilar_FullOverlapBeatsPartial(t *testing.T) {
	t.Parallel()

	ref := Movie{ID: 1, GenreIDs: []int64{28, 18, 53}}
	catalog := []Movie{
		{ID: 2, Rating: 9.5, GenreIDs: []int64{28}},
		{ID: 3, Rating: 5.0, GenreIDs: []int64{28, 18, 53}},
		{ID: 4, Rating: 7.0, GenreIDs: []int64{18, 53}},
	}

	got := Similar(catalog, ref, 10)

	// Overlap counts 3, 2, 1 dominate any rating difference.
	if want := []int64{3, 4, 2}; !reflect.DeepEqual(movieIDs(got), want) {
		t.Errorf("Similar() IDs = %v, want %v", movieIDs(got), want)
	}
}

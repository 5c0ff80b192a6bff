// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package gemimport

import (
	"reflect"
	"testing"
	"time"
)

// --- Test: validateSeedMovie ---

func TestValidateSeedMovie(t *testing.T) {
	t.Parallel()

	valid := func() SeedMovie {
		return SeedMovie{
			ID:          1,
			Title:       "Night Courier",
			VoteAverage: 8.2,
			Popularity:  8.5,
			VoteCount:   200,
			ReleaseDate: "2019-05-10",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*SeedMovie)
		wantErr bool
	}{
		{name: "valid record", mutate: func(_ *SeedMovie) {}, wantErr: false},
		{name: "no release date", mutate: func(r *SeedMovie) { r.ReleaseDate = "" }, wantErr: false},
		{name: "zero ID", mutate: func(r *SeedMovie) { r.ID = 0 }, wantErr: true},
		{name: "negative ID", mutate: func(r *SeedMovie) { r.ID = -7 }, wantErr: true},
		{name: "empty title", mutate: func(r *SeedMovie) { r.Title = "" }, wantErr: true},
		{name: "rating above scale", mutate: func(r *SeedMovie) { r.VoteAverage = 10.1 }, wantErr: true},
		{name: "negative rating", mutate: func(r *SeedMovie) { r.VoteAverage = -0.5 }, wantErr: true},
		{name: "negative popularity", mutate: func(r *SeedMovie) { r.Popularity = -1 }, wantErr: true},
		{name: "negative vote count", mutate: func(r *SeedMovie) { r.VoteCount = -1 }, wantErr: true},
		{name: "unparseable date", mutate: func(r *SeedMovie) { r.ReleaseDate = "next tuesday" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := valid()
			tt.mutate(&rec)

			err := validateSeedMovie(&rec)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSeedMovie() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// --- Test: parseReleaseDate ---

func TestParseReleaseDate(t *testing.T) {
	t.Parallel()

	t.Run("date only", func(t *testing.T) {
		t.Parallel()

		got, err := parseReleaseDate("2019-05-10")
		if err != nil {
			t.Fatalf("parseReleaseDate() error = %v", err)
		}
		want := time.Date(2019, 5, 10, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("parseReleaseDate() = %v, want %v", got, want)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		t.Parallel()

		got, err := parseReleaseDate("2019-05-10T12:30:00Z")
		if err != nil {
			t.Fatalf("parseReleaseDate() error = %v", err)
		}
		if got.Hour() != 12 || got.Minute() != 30 {
			t.Errorf("parseReleaseDate() = %v, want 12:30 preserved", got)
		}
	})

	t.Run("empty means unknown", func(t *testing.T) {
		t.Parallel()

		got, err := parseReleaseDate("")
		if err != nil {
			t.Fatalf("parseReleaseDate() error = %v", err)
		}
		if !got.IsZero() {
			t.Errorf("parseReleaseDate(\"\") = %v, want zero time", got)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		if _, err := parseReleaseDate("10/05/2019"); err == nil {
			t.Error("parseReleaseDate(slash format) = nil error, want error")
		}
	})
}

// --- Test: toMovieRecord ---

func TestToMovieRecord_MapsFields(t *testing.T) {
	t.Parallel()

	rec := SeedMovie{
		ID:               42,
		Title:            "Paper Lantern",
		OriginalTitle:    "Zhi Deng",
		Overview:         "A lantern maker in a fading town.",
		Tagline:          "Light carries.",
		ReleaseDate:      "2021-09-01",
		Runtime:          104,
		VoteAverage:      7.8,
		Popularity:       3.2,
		VoteCount:        80,
		PosterPath:       "/paper.jpg",
		BackdropPath:     "/lantern.jpg",
		OriginalLanguage: "zh",
		Adult:            false,
	}

	got := toMovieRecord(&rec)

	if got.ID != 42 || got.Title != "Paper Lantern" || got.OriginalTitle != "Zhi Deng" {
		t.Errorf("identity fields = %d %q %q", got.ID, got.Title, got.OriginalTitle)
	}
	if got.Rating != 7.8 {
		t.Errorf("Rating = %g, want vote_average 7.8", got.Rating)
	}
	if got.Popularity != 3.2 || got.VoteCount != 80 || got.Runtime != 104 {
		t.Errorf("numeric fields = %g/%d/%d, want 3.2/80/104", got.Popularity, got.VoteCount, got.Runtime)
	}
	if got.ReleaseDate.Year() != 2021 || got.ReleaseDate.Month() != time.September {
		t.Errorf("ReleaseDate = %v, want September 2021", got.ReleaseDate)
	}
	if got.PosterPath != "/paper.jpg" || got.OriginalLanguage != "zh" {
		t.Errorf("asset fields = %q %q", got.PosterPath, got.OriginalLanguage)
	}
}

func TestToMovieRecord_UnknownDateIsZero(t *testing.T) {
	t.Parallel()

	got := toMovieRecord(&SeedMovie{ID: 1, Title: "Undated Reel", VoteAverage: 7.5})
	if !got.ReleaseDate.IsZero() {
		t.Errorf("ReleaseDate = %v, want zero time", got.ReleaseDate)
	}
}

// --- Test: mergeGenreIDs ---

func TestMergeGenreIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  SeedMovie
		want []int64
	}{
		{
			name: "bare IDs only",
			rec:  SeedMovie{GenreIDs: []int64{28, 18}},
			want: []int64{28, 18},
		},
		{
			name: "embedded objects only",
			rec:  SeedMovie{Genres: []SeedGenre{{ID: 18, Name: "Drama"}, {ID: 35, Name: "Comedy"}}},
			want: []int64{18, 35},
		},
		{
			name: "union keeps first-seen order",
			rec: SeedMovie{
				GenreIDs: []int64{28, 18},
				Genres:   []SeedGenre{{ID: 18, Name: "Drama"}, {ID: 878, Name: "Science Fiction"}},
			},
			want: []int64{28, 18, 878},
		},
		{
			name: "duplicates collapse",
			rec:  SeedMovie{GenreIDs: []int64{28, 28, 28}},
			want: []int64{28},
		},
		{
			name: "non-positive IDs dropped",
			rec:  SeedMovie{GenreIDs: []int64{0, -5, 35}},
			want: []int64{35},
		},
		{
			name: "no genres",
			rec:  SeedMovie{},
			want: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mergeGenreIDs(&tt.rec)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mergeGenreIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- Test: credit conversion ---

func TestToCastCredits(t *testing.T) {
	t.Parallel()

	rec := SeedMovie{
		Credits: &SeedCredits{
			Cast: []SeedCastMember{
				{ID: 101, Name: "Mara Ellis", Character: "Rhea", Order: 0, Popularity: 4.1},
				{ID: 0, Name: "No ID", Character: "Dropped"},
				{ID: 105, Name: "", Character: "Nameless"},
				{ID: 102, Name: "Theo Brandt", Character: "The Dispatcher", Order: 1},
			},
		},
	}

	got := toCastCredits(&rec)
	if len(got) != 2 {
		t.Fatalf("toCastCredits() kept %d credits, want 2", len(got))
	}
	if got[0].Person.ID != 101 || got[0].CharacterName != "Rhea" || got[0].CastOrder != 0 {
		t.Errorf("first credit = %+v", got[0])
	}
	if got[0].Person.Popularity != 4.1 {
		t.Errorf("person popularity = %g, want 4.1", got[0].Person.Popularity)
	}
	if got[1].Person.ID != 102 || got[1].CastOrder != 1 {
		t.Errorf("second credit = %+v", got[1])
	}
}

func TestToCrewCredits(t *testing.T) {
	t.Parallel()

	rec := SeedMovie{
		Credits: &SeedCredits{
			Crew: []SeedCrewMember{
				{ID: 103, Name: "Iris Kwan", Job: "Director", Department: "Directing"},
				{ID: 104, Name: "Sam Oduro", Job: "", Department: "Writing"},
				{ID: 0, Name: "No ID", Job: "Editor"},
			},
		},
	}

	got := toCrewCredits(&rec)
	if len(got) != 1 {
		t.Fatalf("toCrewCredits() kept %d credits, want 1", len(got))
	}
	if got[0].Person.Name != "Iris Kwan" || got[0].Job != "Director" || got[0].Department != "Directing" {
		t.Errorf("credit = %+v", got[0])
	}
}

func TestCreditConversion_NilCredits(t *testing.T) {
	t.Parallel()

	rec := SeedMovie{ID: 1, Title: "Night Courier"}
	if got := toCastCredits(&rec); got != nil {
		t.Errorf("toCastCredits(no credits) = %v, want nil", got)
	}
	if got := toCrewCredits(&rec); got != nil {
		t.Errorf("toCrewCredits(no credits) = %v, want nil", got)
	}
}

// --- Test: collectPeople ---

func TestCollectPeople_DeduplicatesAcrossRoles(t *testing.T) {
	t.Parallel()

	rec := SeedMovie{
		Credits: &SeedCredits{
			Cast: []SeedCastMember{
				{ID: 101, Name: "Mara Ellis", Character: "Rhea", ProfilePath: "/mara-cast.jpg"},
				{ID: 102, Name: "Theo Brandt", Character: "The Dispatcher"},
			},
			Crew: []SeedCrewMember{
				{ID: 101, Name: "Mara Ellis", Job: "Director", ProfilePath: "/mara-crew.jpg"},
				{ID: 103, Name: "Iris Kwan", Job: "Writer"},
			},
		},
	}

	people := collectPeople(toCastCredits(&rec), toCrewCredits(&rec))
	if len(people) != 3 {
		t.Fatalf("collectPeople() = %d people, want 3", len(people))
	}

	// Cast occurrence wins for someone credited in both roles.
	if people[0].ID != 101 || people[0].ProfilePath != "/mara-cast.jpg" {
		t.Errorf("first person = %+v, want cast profile kept", people[0])
	}
	if people[1].ID != 102 || people[2].ID != 103 {
		t.Errorf("people order = [%d %d %d], want [101 102 103]", people[0].ID, people[1].ID, people[2].ID)
	}
}

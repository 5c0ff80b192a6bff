// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

package discover

import (
	"testing"

	"github.com/tomtom215/gemdex/internal/validation"
)

func TestDefaultParams(t *testing.T) {
	t.Parallel()

	p := DefaultParams()

	if p.MinRating != 7.0 {
		t.Errorf("MinRating = %v, want 7.0", p.MinRating)
	}
	if p.MaxPopularity != 20.0 {
		t.Errorf("MaxPopularity = %v, want 20.0", p.MaxPopularity)
	}
	if p.MinVotes != 50 {
		t.Errorf("MinVotes = %v, want 50", p.MinVotes)
	}
	if p.Genre != 0 {
		t.Errorf("Genre = %v, want 0 (no filter)", p.Genre)
	}
	if p.Decade != 0 {
		t.Errorf("Decade = %v, want 0 (no filter)", p.Decade)
	}
	if p.Sort != SortGemScore {
		t.Errorf("Sort = %v, want SortGemScore", p.Sort)
	}
	if p.Page != 1 {
		t.Errorf("Page = %v, want 1", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %v, want %v", p.PageSize, DefaultPageSize)
	}
}

func TestParams_ValidationTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Params) {},
			wantErr: false,
		},
		{
			name:    "zero value params are valid",
			mutate:  func(p *Params) { *p = Params{} },
			wantErr: false,
		},
		{
			name:    "rating above scale is rejected",
			mutate:  func(p *Params) { p.MinRating = 10.5 },
			wantErr: true,
		},
		{
			name:    "negative rating is rejected",
			mutate:  func(p *Params) { p.MinRating = -0.1 },
			wantErr: true,
		},
		{
			name:    "negative popularity ceiling is rejected",
			mutate:  func(p *Params) { p.MaxPopularity = -1 },
			wantErr: true,
		},
		{
			name:    "zero popularity ceiling is legal",
			mutate:  func(p *Params) { p.MaxPopularity = 0 },
			wantErr: false,
		},
		{
			name:    "negative vote floor is rejected",
			mutate:  func(p *Params) { p.MinVotes = -1 },
			wantErr: true,
		},
		{
			name:    "negative genre is rejected",
			mutate:  func(p *Params) { p.Genre = -5 },
			wantErr: true,
		},
		{
			name:    "two digit decade is rejected",
			mutate:  func(p *Params) { p.Decade = 90 },
			wantErr: true,
		},
		{
			name:    "pre cinema decade is rejected",
			mutate:  func(p *Params) { p.Decade = 1600 },
			wantErr: true,
		},
		{
			name:    "real decade is accepted",
			mutate:  func(p *Params) { p.Decade = 1990 },
			wantErr: false,
		},
		{
			name:    "sort mode outside the enum is rejected",
			mutate:  func(p *Params) { p.Sort = SortMode(9) },
			wantErr: true,
		},
		{
			name:    "negative page is legal and normalized later",
			mutate:  func(p *Params) { p.Page = -3 },
			wantErr: false,
		},
		{
			name:    "negative page size is legal and yields an empty page",
			mutate:  func(p *Params) { p.PageSize = -3 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			params := DefaultParams()
			tt.mutate(&params)

			err := validation.ValidateStruct(&params)

			if tt.wantErr && err == nil {
				t.Errorf("ValidateStruct(%+v) = nil error, want error", params)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStruct(%+v) error = %v, want nil", params, err)
			}
		})
	}
}

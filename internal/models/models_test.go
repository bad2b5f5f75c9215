// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/validation"
)

func TestRawMovie_DecodeStoredDocument(t *testing.T) {
	t.Parallel()

	doc := []byte(`{
		"title": "Heat",
		"averageRating": 8.26,
		"overview": "Bank robbers and the detective who hunts them.",
		"poster": "/heat.jpg",
		"genres": {"Action": true, "Crime": true}
	}`)

	var m RawMovie
	if err := json.Unmarshal(doc, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m.Title != "Heat" || m.AverageRating != 8.26 || m.Poster != "/heat.jpg" {
		t.Errorf("decoded = %+v", m)
	}
	if !m.Genres["Action"] || !m.Genres["Crime"] || len(m.Genres) != 2 {
		t.Errorf("Genres = %v", m.Genres)
	}
	if err := validation.ValidateStruct(&m); err != nil {
		t.Errorf("ValidateStruct() error = %v", err)
	}
}

func TestRawMovie_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		movie     RawMovie
		wantField string
	}{
		{"missing title", RawMovie{AverageRating: 5}, "title"},
		{"negative rating", RawMovie{Title: "x", AverageRating: -1}, "averageRating"},
		{"rating above ten", RawMovie{Title: "x", AverageRating: 10.5}, "averageRating"},
		{"boundary ok", RawMovie{Title: "x", AverageRating: 10}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateStruct(&tt.movie)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateStruct() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateStruct() = nil, want error on %s", tt.wantField)
			}
			if got := err.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("failing field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestReview_FieldNames(t *testing.T) {
	t.Parallel()

	var r Review
	if err := json.Unmarshal([]byte(`{"review_text":"Great","rating":4.5}`), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.ReviewText != "Great" || r.Rating != 4.5 {
		t.Errorf("Review = %+v", r)
	}
}

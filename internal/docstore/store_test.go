// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestQuery_BuilderDoesNotAlias(t *testing.T) {
	base := NewQuery("movies").Where("genres.Drama", true)
	a := base.Where("genres.Action", true)
	b := base.Where("genres.Comedy", true)

	if len(base.Filters) != 1 {
		t.Errorf("base filters = %d, want 1", len(base.Filters))
	}
	if a.Filters[1].Path != "genres.Action" || b.Filters[1].Path != "genres.Comedy" {
		t.Errorf("derived queries share filter storage: %v / %v", a.Filters, b.Filters)
	}
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       Query
		wantErr bool
	}{
		{"ok", NewQuery("movies").Where("genres.Drama", true).Limit(10), false},
		{"no collection", NewQuery(""), true},
		{"negative limit", NewQuery("movies").Limit(-1), true},
		{"empty path", NewQuery("movies").Where("", true), true},
		{"trailing dot", NewQuery("movies").Where("genres.", true), true},
		{"double dot", NewQuery("movies").Where("genres..x", true), true},
		{"operator", NewQuery("movies").Where("$where", "1"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("Validate() error = %v, want ErrInvalidQuery", err)
			}
		})
	}
}

func TestSnapshot_DataToError(t *testing.T) {
	s := Snapshot{Collection: "movies", ID: "bad", Data: []byte(`{"rating":"high"}`)}
	var v struct {
		Rating float64 `json:"rating"`
	}
	err := s.DataTo(&v)
	if err == nil || !strings.Contains(err.Error(), "movies/bad") {
		t.Errorf("DataTo() error = %v, want error naming movies/bad", err)
	}
}

func TestMatchAll(t *testing.T) {
	doc := []byte(`{"title":"Heat","rating":7,"genres":{"Crime":true,"Drama":false}}`)
	tests := []struct {
		name    string
		filters []Filter
		want    bool
	}{
		{"no filters", nil, true},
		{"nested true", []Filter{{"genres.Crime", true}}, true},
		{"nested false value", []Filter{{"genres.Drama", true}}, false},
		{"missing key", []Filter{{"genres.Western", true}}, false},
		{"path through scalar", []Filter{{"title.x", true}}, false},
		{"int equals float", []Filter{{"rating", 7.0}}, true},
		{"string", []Filter{{"title", "Heat"}}, true},
		{"all must match", []Filter{{"genres.Crime", true}, {"title", "Ronin"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchAll(doc, tt.filters)
			if err != nil {
				t.Fatalf("matchAll() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("matchAll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadSeed(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()
	seed := `{
		"movies": {
			"tt1": {"title": "Heat", "rating": 8.3},
			"tt2": {"title": "Ronin", "rating": 7.2}
		},
		"users/u1/reviews": {
			"tt1": {"review": "Great", "rating": 5}
		}
	}`

	n, err := LoadSeed(ctx, s, strings.NewReader(seed))
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	if n != 3 {
		t.Errorf("LoadSeed() = %d, want 3", n)
	}

	snaps, err := s.Query(ctx, NewQuery("movies"))
	if err != nil || len(snaps) != 2 {
		t.Fatalf("Query(movies) = %d docs, %v", len(snaps), err)
	}
	if _, err := s.Get(ctx, "users/u1/reviews", "tt1"); err != nil {
		t.Errorf("Get(review) error = %v", err)
	}
}

func TestLoadSeed_Malformed(t *testing.T) {
	s := newTestBadgerStore(t)

	if _, err := LoadSeed(context.Background(), s, strings.NewReader(`{"movies": [1,2]}`)); err == nil {
		t.Error("LoadSeed() should reject a collection that is not an object")
	}
	if _, err := LoadSeed(context.Background(), s, strings.NewReader(`{"movies": {"x": 5}}`)); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("LoadSeed() error = %v, want ErrInvalidQuery for non-object document", err)
	}
}

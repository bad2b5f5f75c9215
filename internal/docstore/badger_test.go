// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

// newTestBadgerStore opens an on-disk store in a temp directory.
func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open BadgerDB: %v", err)
	}
	s := NewBadgerStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type movieDoc struct {
	Title  string          `json:"title"`
	Rating float64         `json:"rating"`
	Genres map[string]bool `json:"genres,omitempty"`
}

func seedMovies(t *testing.T, s Store, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		doc := movieDoc{
			Title:  fmt.Sprintf("Movie %02d", i),
			Rating: float64(i) / 2,
			Genres: map[string]bool{"Drama": i%2 == 0, "Action": i%3 == 0},
		}
		if err := s.Put(ctx, "movies", fmt.Sprintf("m%02d", i), doc); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
}

func ids(snaps []Snapshot) string {
	out := make([]string, len(snaps))
	for i, s := range snaps {
		out[i] = s.ID
	}
	return strings.Join(out, ",")
}

func TestBadgerStore_PutGet(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "movies", "tt1", movieDoc{Title: "Heat", Rating: 8.3}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	snap, err := s.Get(ctx, "movies", "tt1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.ID != "tt1" || snap.Collection != "movies" {
		t.Errorf("Get() = %s/%s, want movies/tt1", snap.Collection, snap.ID)
	}

	var got movieDoc
	if err := snap.DataTo(&got); err != nil {
		t.Fatalf("DataTo() error = %v", err)
	}
	if got.Title != "Heat" || got.Rating != 8.3 {
		t.Errorf("DataTo() = %+v", got)
	}
}

func TestBadgerStore_GetNotFound(t *testing.T) {
	s := newTestBadgerStore(t)

	_, err := s.Get(context.Background(), "movies", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestBadgerStore_PutRejectsNonObject(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		doc  interface{}
	}{
		{"array", []int{1, 2}},
		{"string", "hello"},
		{"raw invalid", []byte("{not json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Put(ctx, "movies", "x", tt.doc); !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("Put() error = %v, want ErrInvalidQuery", err)
			}
		})
	}
}

func TestBadgerStore_RejectsNUL(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "mov\x00ies", "a", movieDoc{}); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Put() error = %v, want ErrInvalidQuery", err)
	}
	if _, err := s.Get(ctx, "movies", "a\x00b"); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Get() error = %v, want ErrInvalidQuery", err)
	}
}

func TestBadgerStore_QueryPagination(t *testing.T) {
	s := newTestBadgerStore(t)
	seedMovies(t, s, 15)
	ctx := context.Background()
	q := NewQuery("movies").Limit(10)

	first, err := s.Query(ctx, q)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(first) != 10 {
		t.Fatalf("first page len = %d, want 10", len(first))
	}
	if first[0].ID != "m01" || first[9].ID != "m10" {
		t.Errorf("first page = %s", ids(first))
	}

	second, err := s.Query(ctx, q.StartAfter(first[9].Cursor()))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got := ids(second); got != "m11,m12,m13,m14,m15" {
		t.Errorf("second page = %s", got)
	}

	third, err := s.Query(ctx, q.StartAfter(second[len(second)-1].Cursor()))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(third) != 0 {
		t.Errorf("third page = %s, want empty", ids(third))
	}
}

func TestBadgerStore_QueryFilter(t *testing.T) {
	s := newTestBadgerStore(t)
	seedMovies(t, s, 15)
	ctx := context.Background()

	drama, err := s.Query(ctx, NewQuery("movies").Where("genres.Drama", true).Limit(3))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got := ids(drama); got != "m02,m04,m06" {
		t.Errorf("drama page = %s", got)
	}

	both, err := s.Query(ctx, NewQuery("movies").Where("genres.Drama", true).Where("genres.Action", true))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got := ids(both); got != "m06,m12" {
		t.Errorf("drama+action = %s", got)
	}

	none, err := s.Query(ctx, NewQuery("movies").Where("genres.Western", true))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("western = %s, want empty", ids(none))
	}
}

func TestBadgerStore_CollectionsAreIsolated(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	_ = s.Put(ctx, "movie", "a", movieDoc{Title: "one"})
	_ = s.Put(ctx, "movies", "b", movieDoc{Title: "two"})
	_ = s.Put(ctx, "users/u1/movies", "c", movieDoc{Title: "three"})

	snaps, err := s.Query(ctx, NewQuery("movies"))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got := ids(snaps); got != "b" {
		t.Errorf("movies = %s, want b", got)
	}
}

func TestBadgerStore_QueryEmptyCollection(t *testing.T) {
	s := newTestBadgerStore(t)

	snaps, err := s.Query(context.Background(), NewQuery("movies").Limit(10))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("Query() len = %d, want 0", len(snaps))
	}
}

func TestBadgerStore_QueryCanceled(t *testing.T) {
	s := newTestBadgerStore(t)
	seedMovies(t, s, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Query(ctx, NewQuery("movies")); !errors.Is(err, context.Canceled) {
		t.Errorf("Query() error = %v, want context.Canceled", err)
	}
}

func TestBadgerStore_Closed(t *testing.T) {
	s := newTestBadgerStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := s.Ping(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Ping() error = %v, want ErrClosed", err)
	}
	if _, err := s.Query(context.Background(), NewQuery("movies")); !errors.Is(err, ErrClosed) {
		t.Errorf("Query() error = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

func TestBadgerStore_RunGC(t *testing.T) {
	s := newTestBadgerStore(t)
	seedMovies(t, s, 5)
	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}

func TestOpenBadger_InMemory(t *testing.T) {
	s, err := OpenBadger(BadgerOptions{InMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer s.Close()

	seedMovies(t, s, 2)
	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC() on in-memory store error = %v", err)
	}
}

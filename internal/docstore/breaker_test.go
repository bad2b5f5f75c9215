// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// flakyStore fails every call with err until err is cleared.
type flakyStore struct {
	err   error
	calls int
}

func (f *flakyStore) Query(context.Context, Query) ([]Snapshot, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyStore) Get(_ context.Context, c, id string) (Snapshot, error) {
	f.calls++
	if f.err != nil {
		return Snapshot{}, f.err
	}
	return Snapshot{Collection: c, ID: id, Data: []byte(`{}`)}, nil
}

func (f *flakyStore) Put(context.Context, string, string, interface{}) error {
	f.calls++
	return f.err
}

func (f *flakyStore) Ping(context.Context) error { return f.err }
func (f *flakyStore) Backend() string            { return "flaky" }
func (f *flakyStore) Close() error               { return nil }

func testBreakerSettings() BreakerSettings {
	return BreakerSettings{MaxRequests: 1, Interval: time.Minute, Timeout: time.Hour, FailureThreshold: 3}
}

func TestBreakerStore_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyStore{err: errors.New("connection refused")}
	b := WithBreaker(inner, testBreakerSettings())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := b.Query(ctx, NewQuery("movies")); err == nil {
			t.Fatalf("call %d: expected backend error", i)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	_, err := b.Get(ctx, "movies", "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Get() error = %v, want ErrUnavailable", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3 (open circuit must not reach backend)", inner.calls)
	}
}

func TestBreakerStore_NotFoundIsNotAFailure(t *testing.T) {
	inner := &flakyStore{err: fmt.Errorf("get movies/x: %w", ErrNotFound)}
	b := WithBreaker(inner, testBreakerSettings())

	for i := 0; i < 10; i++ {
		if _, err := b.Get(context.Background(), "movies", "x"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	inner := &flakyStore{}
	b := WithBreaker(inner, testBreakerSettings())

	snap, err := b.Get(context.Background(), "movies", "tt1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.ID != "tt1" {
		t.Errorf("Get().ID = %q, want tt1", snap.ID)
	}
	snaps, err := b.Query(context.Background(), NewQuery("movies"))
	if err != nil || snaps != nil {
		t.Errorf("Query() = %v, %v; want nil, nil", snaps, err)
	}
	if b.Backend() != "flaky" {
		t.Errorf("Backend() = %q", b.Backend())
	}
}

func TestBadger_Unwrap(t *testing.T) {
	base := newTestBadgerStore(t)
	wrapped := WithBreaker(Instrument(base), testBreakerSettings())

	got, ok := Badger(wrapped)
	if !ok || got != base {
		t.Errorf("Badger() = %v, %v; want base store", got, ok)
	}

	if _, ok := Badger(Instrument(&flakyStore{})); ok {
		t.Error("Badger() should not find a badger store under flakyStore")
	}
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/metrics"
)

// InstrumentedStore records Prometheus duration and error metrics for every
// call to the wrapped Store.
type InstrumentedStore struct {
	next Store
}

// Instrument wraps next.
func Instrument(next Store) *InstrumentedStore {
	return &InstrumentedStore{next: next}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(s.next.Backend(), op, time.Since(start), err)
}

// Backend implements Store.
func (s *InstrumentedStore) Backend() string { return s.next.Backend() }

// Query implements Store.
func (s *InstrumentedStore) Query(ctx context.Context, q Query) (snaps []Snapshot, err error) {
	defer func(start time.Time) { s.observe("query", start, err) }(time.Now())
	return s.next.Query(ctx, q)
}

// Get implements Store.
func (s *InstrumentedStore) Get(ctx context.Context, collection, id string) (snap Snapshot, err error) {
	defer func(start time.Time) { s.observe("get", start, err) }(time.Now())
	return s.next.Get(ctx, collection, id)
}

// Put implements Store.
func (s *InstrumentedStore) Put(ctx context.Context, collection, id string, doc interface{}) (err error) {
	defer func(start time.Time) { s.observe("put", start, err) }(time.Now())
	return s.next.Put(ctx, collection, id, doc)
}

// Ping implements Store.
func (s *InstrumentedStore) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { s.observe("ping", start, err) }(time.Now())
	return s.next.Ping(ctx)
}

// Close implements Store.
func (s *InstrumentedStore) Close() error { return s.next.Close() }

// Unwrap returns the wrapped Store.
func (s *InstrumentedStore) Unwrap() Store { return s.next }

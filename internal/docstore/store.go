// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package docstore is the document database boundary.
//
// Callers build a Query (collection, equality filters, limit, start-after
// cursor) and receive Snapshots carrying the document ID and its JSON body.
// Every backend orders a collection by document ID, so a Cursor is simply the
// ID of the last document already seen.
//
//	q := docstore.NewQuery("movies").Where("genres.Drama", true).Limit(10)
//	snaps, err := store.Query(ctx, q)
//	next := snaps[len(snaps)-1].Cursor()
//	snaps, err = store.Query(ctx, q.StartAfter(next))
package docstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Store is implemented by BadgerStore, MongoStore and the decorators in this
// package.
type Store interface {
	// Query returns the documents matching q ordered by ID.
	Query(ctx context.Context, q Query) ([]Snapshot, error)

	// Get fetches one document. A missing document returns ErrNotFound.
	Get(ctx context.Context, collection, id string) (Snapshot, error)

	// Put creates or replaces a document. doc must marshal to a JSON object.
	Put(ctx context.Context, collection, id string, doc interface{}) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Backend names the implementation ("badger", "mongo").
	Backend() string

	Close() error
}

// storeError carries a metrics classification alongside the message.
type storeError struct {
	msg  string
	kind string
}

func (e *storeError) Error() string      { return e.msg }
func (e *storeError) MetricKind() string { return e.kind }

var (
	// ErrNotFound is returned by Get when no document has the requested ID.
	ErrNotFound error = &storeError{msg: "document not found", kind: "not_found"}

	// ErrInvalidQuery is returned for queries no backend could execute.
	ErrInvalidQuery error = &storeError{msg: "invalid query", kind: "invalid"}

	// ErrClosed is returned after Close.
	ErrClosed error = &storeError{msg: "document store closed", kind: "closed"}
)

// Cursor marks a position in a collection. The zero value means "from the
// beginning".
type Cursor struct {
	ID string `json:"id"`
}

// IsZero reports whether c is the start position.
func (c Cursor) IsZero() bool { return c.ID == "" }

// Filter is an equality constraint on a dotted field path.
type Filter struct {
	Path  string
	Value interface{}
}

// Query describes a collection scan. Builder methods return a modified copy.
type Query struct {
	Collection string
	Filters    []Filter
	Max        int
	After      Cursor
}

// NewQuery starts a query over collection.
func NewQuery(collection string) Query {
	return Query{Collection: collection}
}

// Where adds the constraint path == value.
func (q Query) Where(path string, value interface{}) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Path: path, Value: value})
	return q
}

// Limit caps the number of returned documents. Zero means unlimited.
func (q Query) Limit(n int) Query {
	q.Max = n
	return q
}

// StartAfter resumes strictly after c.
func (q Query) StartAfter(c Cursor) Query {
	q.After = c
	return q
}

// Validate rejects malformed queries before they reach a backend.
func (q Query) Validate() error {
	if q.Collection == "" {
		return fmt.Errorf("%w: collection is required", ErrInvalidQuery)
	}
	if q.Max < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidQuery, q.Max)
	}
	for _, f := range q.Filters {
		if f.Path == "" || strings.HasPrefix(f.Path, ".") || strings.HasSuffix(f.Path, ".") || strings.Contains(f.Path, "..") {
			return fmt.Errorf("%w: bad field path %q", ErrInvalidQuery, f.Path)
		}
		if strings.HasPrefix(f.Path, "$") {
			return fmt.Errorf("%w: operator paths are not allowed: %q", ErrInvalidQuery, f.Path)
		}
	}
	return nil
}

// Snapshot is one stored document as read.
type Snapshot struct {
	Collection string
	ID         string
	Data       []byte // JSON object
}

// DataTo decodes the document body into v.
func (s Snapshot) DataTo(v interface{}) error {
	if err := json.Unmarshal(s.Data, v); err != nil {
		return fmt.Errorf("decode %s/%s: %w", s.Collection, s.ID, err)
	}
	return nil
}

// Cursor returns the position just after this document.
func (s Snapshot) Cursor() Cursor {
	return Cursor{ID: s.ID}
}

// Unwrap returns the Store a decorator wraps, or nil for a base backend.
func Unwrap(s Store) Store {
	if u, ok := s.(interface{ Unwrap() Store }); ok {
		return u.Unwrap()
	}
	return nil
}

// Badger finds the BadgerStore underneath any decorators.
func Badger(s Store) (*BadgerStore, bool) {
	for s != nil {
		if b, ok := s.(*BadgerStore); ok {
			return b, true
		}
		s = Unwrap(s)
	}
	return nil, false
}

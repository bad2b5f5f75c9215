// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/tomtom215/marquee/internal/logging"
)

// Keys are "doc:<collection>\x00<id>". Badger iterates keys in byte order,
// which gives every collection a stable ID ordering.
const (
	docKeyPrefix = "doc:"
	keySep       = "\x00"
)

// BadgerOptions configures OpenBadger.
type BadgerOptions struct {
	Path     string
	InMemory bool
}

// BadgerStore is an embedded Store backed by BadgerDB. Documents are stored
// as JSON values. Filters are evaluated on the decoded document while
// scanning, so a filtered query reads the collection in ID order until the
// limit is reached.
type BadgerStore struct {
	db       *badger.DB
	inMemory bool
}

// OpenBadger opens (or creates) a Badger database.
func OpenBadger(opts BadgerOptions) (*BadgerStore, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Msg("Badger document store opened")
	return &BadgerStore{db: db, inMemory: opts.InMemory}, nil
}

// NewBadgerStore wraps an already open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, inMemory: db.Opts().InMemory}
}

func collectionPrefix(collection string) []byte {
	return []byte(docKeyPrefix + collection + keySep)
}

func docKey(collection, id string) []byte {
	return []byte(docKeyPrefix + collection + keySep + id)
}

func checkName(kind, s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidQuery, kind)
	}
	if strings.Contains(s, keySep) {
		return fmt.Errorf("%w: %s contains NUL", ErrInvalidQuery, kind)
	}
	return nil
}

// Backend implements Store.
func (s *BadgerStore) Backend() string { return "badger" }

// Query implements Store.
func (s *BadgerStore) Query(ctx context.Context, q Query) ([]Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := checkName("collection", q.Collection); err != nil {
		return nil, err
	}
	if s.db.IsClosed() {
		return nil, ErrClosed
	}

	prefix := collectionPrefix(q.Collection)
	start := prefix
	if !q.After.IsZero() {
		// The smallest key strictly greater than <prefix><id>.
		start = append(docKey(q.Collection, q.After.ID), 0)
	}

	var out []Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			data, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read value: %w", err)
			}
			ok, err := matchAll(data, q.Filters)
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).
					Str("collection", q.Collection).
					Str("id", string(bytes.TrimPrefix(item.Key(), prefix))).
					Msg("Skipping undecodable document during filtered scan")
				continue
			}
			if !ok {
				continue
			}
			out = append(out, Snapshot{
				Collection: q.Collection,
				ID:         string(bytes.TrimPrefix(item.KeyCopy(nil), prefix)),
				Data:       data,
			})
			if q.Max > 0 && len(out) >= q.Max {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	return out, nil
}

// Get implements Store.
func (s *BadgerStore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	if err := checkName("collection", collection); err != nil {
		return Snapshot{}, err
	}
	if err := checkName("id", id); err != nil {
		return Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if s.db.IsClosed() {
		return Snapshot{}, ErrClosed
	}

	snap := Snapshot{Collection: collection, ID: id}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(collection, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		snap.Data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return snap, nil
}

// Put implements Store.
func (s *BadgerStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	if err := checkName("collection", collection); err != nil {
		return err
	}
	if err := checkName("id", id); err != nil {
		return err
	}
	data, err := marshalObject(doc)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return ErrClosed
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(collection, id), data)
	})
}

// Ping implements Store.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

// RunGC reclaims value log space until Badger reports nothing left to rewrite.
// In-memory databases have no value log and return immediately.
func (s *BadgerStore) RunGC(ratio float64) error {
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(ratio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}

// marshalObject encodes doc and checks that the result is a JSON object.
func marshalObject(doc interface{}) ([]byte, error) {
	var data []byte
	switch v := doc.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		var err error
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("marshal document: %w", err)
		}
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: document must be a JSON object", ErrInvalidQuery)
	}
	return trimmed, nil
}

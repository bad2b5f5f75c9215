// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
)

// SeedData maps collection name to document ID to document body:
//
//	{"movies": {"tt0111161": {"title": "...", "rating": 9.3}},
//	 "users/u1/reviews": {"tt0111161": {"review": "...", "rating": 5}}}
type SeedData map[string]map[string]json.RawMessage

// LoadSeed decodes seed data from r and writes every document to store.
// Existing documents with the same ID are replaced. Returns the number of
// documents written.
func LoadSeed(ctx context.Context, store Store, r io.Reader) (int, error) {
	var data SeedData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return 0, fmt.Errorf("decode seed data: %w", err)
	}

	collections := make([]string, 0, len(data))
	for c := range data {
		collections = append(collections, c)
	}
	sort.Strings(collections)

	n := 0
	for _, c := range collections {
		for id, doc := range data[c] {
			if err := store.Put(ctx, c, id, doc); err != nil {
				return n, fmt.Errorf("seed %s/%s: %w", c, id, err)
			}
			n++
		}
		logging.Debug().Str("collection", c).Int("documents", len(data[c])).Msg("Seeded collection")
	}
	return n, nil
}

// LoadSeedFile is LoadSeed over a file path.
func LoadSeedFile(ctx context.Context, store Store, path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn().Err(cerr).Str("path", path).Msg("Failed to close seed file")
		}
	}()
	return LoadSeed(ctx, store, f)
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// matchAll reports whether the JSON document satisfies every filter.
func matchAll(data []byte, filters []Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("decode document: %w", err)
	}

	for _, f := range filters {
		got, ok := lookupPath(doc, f.Path)
		if !ok {
			return false, nil
		}
		eq, err := jsonEqual(got, f.Value)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// lookupPath walks a dotted path through nested objects.
func lookupPath(doc map[string]interface{}, path string) (interface{}, bool) {
	var cur interface{} = doc
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// jsonEqual compares by canonical JSON encoding, so 7 and 7.0 are equal and
// maps compare by content.
func jsonEqual(a, b interface{}) (bool, error) {
	ab, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ab, bb), nil
}

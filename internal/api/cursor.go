// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"encoding/base64"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/docstore"
)

// maxCursorLen bounds the encoded cursor accepted from clients.
const maxCursorLen = 1024

// encodeCursor encodes a page cursor as base64url JSON. The zero cursor
// encodes to "".
func encodeCursor(c docstore.Cursor) string {
	if c.IsZero() {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// decodeCursor reverses encodeCursor. "" decodes to the zero cursor.
func decodeCursor(encoded string) (docstore.Cursor, error) {
	var c docstore.Cursor
	if encoded == "" {
		return c, nil
	}
	if len(encoded) > maxCursorLen {
		return c, fmt.Errorf("%w: too long", ErrInvalidCursor)
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return c, fmt.Errorf("%w: invalid base64 encoding", ErrInvalidCursor)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%w: invalid cursor JSON", ErrInvalidCursor)
	}
	if c.IsZero() {
		return c, fmt.Errorf("%w: empty position", ErrInvalidCursor)
	}
	return c, nil
}

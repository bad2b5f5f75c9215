// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// PaginationInfo contains cursor-based pagination metadata for a movie page.
//
// Fields:
//   - Limit: Page size used for the query
//   - HasMore: False only once a page came back empty
//   - NextCursor: Opaque cursor for the next page (omitted when the
//     collection has not been read yet)
//
// Cursor format: base64url-encoded JSON holding the last document ID.
//
// Example:
//
//	{
//	  "limit": 10,
//	  "has_more": true,
//	  "next_cursor": "eyJpZCI6InR0MDExMzI3NyJ9"
//	}
type PaginationInfo struct {
	Limit      int     `json:"limit"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

// MoviePageResponse is the payload of GET /api/v1/movies.
//
// In myreviews mode Reviews[i] belongs to Movies[i]. DecodeErrors lists
// documents skipped because they could not be decoded.
type MoviePageResponse struct {
	Movies       []Movie         `json:"movies"`
	Reviews      []Review        `json:"reviews,omitempty"`
	DecodeErrors []DecodeFailure `json:"decode_errors,omitempty"`
	Pagination   PaginationInfo  `json:"pagination"`
}

// DecodeFailure reports one document that could not be turned into a movie.
type DecodeFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// AuthStatusResponse is the payload of GET /api/v1/auth/status.
type AuthStatusResponse struct {
	Anonymous bool   `json:"anonymous"`
	Moderator bool   `json:"moderator"`
	UID       string `json:"uid,omitempty"`
}

// ToggleResponse is the payload of POST /api/v1/auth/toggle.
type ToggleResponse struct {
	Anonymous bool `json:"anonymous"`
	Moderator bool `json:"moderator"`
}

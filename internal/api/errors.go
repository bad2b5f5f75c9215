// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/docstore"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/session"
)

var (
	// ErrInvalidCursor is returned for cursor tokens that do not decode.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrCollectionForbidden is returned when a page request names a
	// collection the caller may not read.
	ErrCollectionForbidden = errors.New("collection not readable by caller")
)

// writeServiceError maps service and store errors onto HTTP responses.
func writeServiceError(rw *ResponseWriter, err error) {
	var decodeErr catalog.DecodeError
	switch {
	case errors.Is(err, catalog.ErrInvalidMode),
		errors.Is(err, catalog.ErrInvalidRequest),
		errors.Is(err, docstore.ErrInvalidQuery),
		errors.Is(err, ErrInvalidCursor):
		rw.BadRequest(err.Error())
	case errors.Is(err, ErrCollectionForbidden):
		logging.Ctx(rw.r.Context()).Warn().Err(err).Msg("Rejected read of another collection")
		rw.Forbidden("Collection not accessible")
	case errors.Is(err, auth.ErrNoCurrentUser):
		rw.Unauthorized("Sign in required")
	case errors.Is(err, auth.ErrMalformedToken), errors.Is(err, auth.ErrInvalidToken):
		rw.Unauthorized("Invalid identity token")
	case errors.Is(err, docstore.ErrNotFound):
		rw.NotFound("Movie not found")
	case errors.As(err, &decodeErr):
		logging.Ctx(rw.r.Context()).Warn().Err(err).Str("key", decodeErr.Key).Msg("Stored movie failed to decode")
		rw.Error(http.StatusUnprocessableEntity, ErrCodeInvalidDocument, "Stored movie is invalid")
	case errors.Is(err, docstore.ErrUnavailable), errors.Is(err, session.ErrClosed):
		logging.Ctx(rw.r.Context()).Warn().Err(err).Msg("Document store unavailable")
		rw.ServiceUnavailable("Document store unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(rw.r.Context()).Warn().Err(err).Msg("Document store query timed out")
		rw.Error(http.StatusGatewayTimeout, ErrCodeGatewayTimeout, "Document store query timed out")
	default:
		rw.DatabaseError(err)
	}
}

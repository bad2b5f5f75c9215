// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// Movies returns one page of movies.
//
// Query parameters:
//   - mode: app (default), mymovies or myreviews
//   - genre: only movies whose genres map has this key set to true
//   - cursor: next_cursor of the previous page; omitted for the first page
//   - collection: optional. App mode only reads the movies collection and
//     the other modes only the caller's own users/<uid>/movies or
//     users/<uid>/reviews; "{uid}" stands for the caller's UID. Naming any
//     other collection is rejected with 403.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	pq := parsePageQuery(r)

	if verr := validation.ValidateStruct(&pq); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	cursor, err := decodeCursor(pq.Cursor)
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	sess, err := h.gateway.Session(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	mode := catalog.Mode(pq.Mode)
	collection, err := resolveCollection(r.Context(), sess.Identity, mode, pq.Collection, h.catalog.MoviesCollection())
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	page, err := h.catalog.LoadPage(r.Context(), catalog.PageRequest{
		Mode:       mode,
		Continue:   !cursor.IsZero(),
		Cursor:     cursor,
		Genre:      pq.Genre,
		Collection: collection,
	})
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	resp := models.MoviePageResponse{
		Movies:  page.Movies,
		Reviews: page.Reviews,
		Pagination: models.PaginationInfo{
			Limit:   h.catalog.PageSize(),
			HasMore: page.MoreFound,
		},
	}
	if next := encodeCursor(page.Cursor); next != "" {
		resp.Pagination.NextCursor = &next
	}
	for _, de := range page.DecodeErrors {
		resp.DecodeErrors = append(resp.DecodeErrors, models.DecodeFailure{Key: de.Key, Error: de.Err.Error()})
	}
	if len(resp.DecodeErrors) > 0 {
		logging.Ctx(r.Context()).Warn().
			Int("skipped", len(resp.DecodeErrors)).
			Str("collection", collection).
			Msg("Skipped undecodable documents")
	}

	rw.Success(resp)
}

// Movie returns the movie stored under {key} in the movies collection.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	key := chi.URLParam(r, "key")
	if key == "" || len(key) > 512 {
		rw.BadRequest("Invalid movie key")
		return
	}

	m, err := h.catalog.GetMovie(r.Context(), key)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(m)
}

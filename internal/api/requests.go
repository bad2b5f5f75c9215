// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/session"
)

// uidPlaceholder in a requested collection stands for the current user's UID.
const uidPlaceholder = "{uid}"

// Collection templates for the per-user modes.
const (
	userMoviesCollection  = "users/" + uidPlaceholder + "/movies"
	userReviewsCollection = "users/" + uidPlaceholder + "/reviews"
)

// pageQuery holds the query parameters of GET /api/v1/movies.
type pageQuery struct {
	Mode       string `json:"mode" validate:"required,oneof=app mymovies myreviews"`
	Genre      string `json:"genre" validate:"omitempty,genrekey"`
	Cursor     string `json:"cursor" validate:"omitempty,max=1024"`
	Collection string `json:"collection" validate:"omitempty,max=512"`
}

func parsePageQuery(r *http.Request) pageQuery {
	q := r.URL.Query()
	pq := pageQuery{
		Mode:       strings.TrimSpace(q.Get("mode")),
		Genre:      strings.TrimSpace(q.Get("genre")),
		Cursor:     strings.TrimSpace(q.Get("cursor")),
		Collection: strings.TrimSpace(q.Get("collection")),
	}
	if pq.Mode == "" {
		pq.Mode = string(catalog.ModeApp)
	}
	return pq
}

// resolveCollection returns the collection a page request may read.
//
// App mode reads only moviesCollection. The per-user modes read only the
// caller's own users/<uid>/movies or users/<uid>/reviews collection, with the
// UID taken from the identity source. An explicit collection is accepted when
// it names that same collection, literally or through {uid}; anything else
// fails with ErrCollectionForbidden.
func resolveCollection(ctx context.Context, id session.Identity, mode catalog.Mode, requested, moviesCollection string) (string, error) {
	var template string
	switch mode {
	case catalog.ModeMyMovies:
		template = userMoviesCollection
	case catalog.ModeMyReviews:
		template = userReviewsCollection
	default:
		if requested != "" && requested != moviesCollection {
			return "", fmt.Errorf("%w: %s", ErrCollectionForbidden, requested)
		}
		return moviesCollection, nil
	}

	uid, err := currentUID(ctx, id)
	if err != nil {
		return "", err
	}
	own := strings.ReplaceAll(template, uidPlaceholder, uid)
	if requested != "" && strings.ReplaceAll(requested, uidPlaceholder, uid) != own {
		return "", fmt.Errorf("%w: %s", ErrCollectionForbidden, requested)
	}
	return own, nil
}

// currentUID returns the UID of the signed-in user, which must be usable as
// a single collection path segment.
func currentUID(ctx context.Context, id session.Identity) (string, error) {
	if id == nil {
		return "", auth.ErrNoCurrentUser
	}
	u, err := id.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if u == nil || u.UID == "" {
		return "", auth.ErrNoCurrentUser
	}
	if strings.ContainsAny(u.UID, "/\x00") || strings.Contains(u.UID, uidPlaceholder) {
		return "", fmt.Errorf("%w: user id is not usable in a collection name", catalog.ErrInvalidRequest)
	}
	return u.UID, nil
}

// toggleRequest is the optional body of POST /api/v1/auth/toggle. Anonymous
// is the client's current state; when absent the server derives it.
type toggleRequest struct {
	Anonymous *bool `json:"anonymous"`
}

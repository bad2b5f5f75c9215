// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/session"
)

// maxToggleBody bounds the toggle request body.
const maxToggleBody = 1 << 10

// AuthStatus reports whether the caller is anonymous and, when signed in,
// whether the identity token carries the moderator claim.
func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	checker := auth.NewStatusChecker(h.gateway)

	anonymous, err := checker.IsAnonymous(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	resp := models.AuthStatusResponse{Anonymous: anonymous}
	if u := session.UserFromContext(r.Context()); u != nil {
		resp.UID = u.UID
	}
	if !anonymous {
		resp.Moderator, err = checker.CheckIsModerator(r.Context())
		if err != nil {
			writeServiceError(rw, err)
			return
		}
	}
	rw.Success(resp)
}

// AuthToggle flips the client's anonymous state. The body may carry the
// client's current state as {"anonymous": bool}; otherwise it is derived from
// the identity token. Becoming signed in triggers a moderator check.
func (h *Handler) AuthToggle(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	checker := auth.NewStatusChecker(h.gateway)

	var req toggleRequest
	if r.Body != nil {
		err := json.NewDecoder(io.LimitReader(r.Body, maxToggleBody)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			rw.BadRequest("Invalid request body")
			return
		}
	}

	if req.Anonymous != nil {
		checker.SetAnonymous(*req.Anonymous)
	} else if _, err := checker.IsAnonymous(r.Context()); err != nil {
		writeServiceError(rw, err)
		return
	}

	moderator, err := checker.ToggleAnonStatusAndCheckMod(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(models.ToggleResponse{
		Anonymous: checker.Anonymous(),
		Moderator: moderator,
	})
}

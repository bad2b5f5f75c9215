// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/session"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_movies.go: movie pages and single movies
//   - handlers_auth.go: anonymous and moderator status
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	catalog   *catalog.Service
	gateway   *session.Gateway
	startTime time.Time
}

// NewHandler creates a Handler. The gateway supplies the identity source for
// auth endpoints and the store for readiness checks.
func NewHandler(svc *catalog.Service, gw *session.Gateway) *Handler {
	return &Handler{
		catalog:   svc,
		gateway:   gw,
		startTime: time.Now(),
	}
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/session"
)

// SessionWarmupService initializes the backend session at startup so the
// first request does not pay for it. Failures are returned to the
// supervisor, which retries with backoff. Once the session is up the service
// removes itself.
type SessionWarmupService struct {
	gateway *session.Gateway
}

// NewSessionWarmupService creates a warm-up service for gw.
func NewSessionWarmupService(gw *session.Gateway) *SessionWarmupService {
	return &SessionWarmupService{gateway: gw}
}

// Serve implements suture.Service.
func (s *SessionWarmupService) Serve(ctx context.Context) error {
	sess, err := s.gateway.Session(ctx)
	switch {
	case errors.Is(err, session.ErrClosed):
		return suture.ErrDoNotRestart
	case ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		return fmt.Errorf("session warm-up: %w", err)
	}
	logging.Info().Str("backend", sess.Store.Backend()).Msg("Backend session warmed up")
	return suture.ErrDoNotRestart
}

// String names the service in supervisor events.
func (s *SessionWarmupService) String() string {
	return "session-warmup"
}

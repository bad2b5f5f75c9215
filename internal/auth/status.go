// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/session"
)

// StatusChecker tracks whether a client browses anonymously and checks the
// moderator claim of the signed-in user. Moderator status is read from the
// identity token on every check and never cached.
type StatusChecker struct {
	gateway *session.Gateway

	mu        sync.Mutex
	anonymous bool
}

// NewStatusChecker returns a checker that starts in the anonymous state.
func NewStatusChecker(gw *session.Gateway) *StatusChecker {
	return &StatusChecker{gateway: gw, anonymous: true}
}

// Anonymous returns the locally held anonymous flag.
func (c *StatusChecker) Anonymous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anonymous
}

// SetAnonymous overrides the locally held anonymous flag.
func (c *StatusChecker) SetAnonymous(anonymous bool) {
	c.mu.Lock()
	c.anonymous = anonymous
	c.mu.Unlock()
}

func (c *StatusChecker) currentUser(ctx context.Context) (*session.User, error) {
	sess, err := c.gateway.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtain session: %w", err)
	}
	if sess.Identity == nil {
		return nil, nil
	}
	u, err := sess.Identity.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}

// IsAnonymous refreshes the session and reports true unless the current
// user has an email address. The result is stored as the local flag.
func (c *StatusChecker) IsAnonymous(ctx context.Context) (bool, error) {
	u, err := c.currentUser(ctx)
	if err != nil {
		return false, err
	}
	anonymous := u == nil || u.Email == ""
	c.SetAnonymous(anonymous)
	return anonymous, nil
}

// ToggleAnonStatusAndCheckMod flips the local flag. When the client becomes
// signed in it returns the result of CheckIsModerator; when it becomes
// anonymous it returns false without checking.
func (c *StatusChecker) ToggleAnonStatusAndCheckMod(ctx context.Context) (bool, error) {
	c.mu.Lock()
	c.anonymous = !c.anonymous
	anonymous := c.anonymous
	c.mu.Unlock()

	logging.Ctx(ctx).Debug().Bool("anonymous", anonymous).Msg("Toggled anonymous status")
	if anonymous {
		return false, nil
	}
	return c.CheckIsModerator(ctx)
}

// CheckIsModerator refreshes the session and decodes the current user's
// identity token without verifying it. It reports whether the moderator
// claim is truthy.
func (c *StatusChecker) CheckIsModerator(ctx context.Context) (moderator bool, err error) {
	defer func() {
		switch {
		case err != nil:
			metrics.ModeratorChecks.WithLabelValues("error").Inc()
		case moderator:
			metrics.ModeratorChecks.WithLabelValues("moderator").Inc()
		default:
			metrics.ModeratorChecks.WithLabelValues("member").Inc()
		}
	}()

	u, err := c.currentUser(ctx)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, ErrNoCurrentUser
	}

	claims, err := DecodeClaims(u.Token)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("uid", u.UID).Msg("Could not decode identity token")
		return false, err
	}
	return IsModerator(claims), nil
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/marquee/internal/docstore"
	"github.com/tomtom215/marquee/internal/session"
)

const testSecret = "test_secret_with_at_least_32_characters!"

// signToken issues an HS256 token for tests.
func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return s
}

// countingIdentity reports a fixed user and counts lookups.
type countingIdentity struct {
	user  *session.User
	calls atomic.Int32
}

func (c *countingIdentity) CurrentUser(context.Context) (*session.User, error) {
	c.calls.Add(1)
	return c.user, nil
}

func newTestChecker(t *testing.T, id session.Identity) *StatusChecker {
	t.Helper()
	store, err := docstore.OpenBadger(docstore.BadgerOptions{InMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	gw := session.NewStaticGateway(&session.Session{Store: store, Identity: id})
	t.Cleanup(func() { _ = gw.Close() })
	return NewStatusChecker(gw)
}

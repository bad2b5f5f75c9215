// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package session

import "context"

// User is the signed-in user as reported by the identity source.
type User struct {
	UID   string
	Email string

	// Token is the compact identity token (header.payload.signature).
	Token string
}

// Identity reports the current user. CurrentUser returns nil, nil when
// nobody is signed in.
type Identity interface {
	CurrentUser(ctx context.Context) (*User, error)
}

type userKey struct{}

// WithUser returns a context carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the user stored by WithUser, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userKey{}).(*User) //nolint:errcheck // absent means anonymous
	return u
}

// ContextIdentity reads the current user from the request context.
type ContextIdentity struct{}

// CurrentUser implements Identity.
func (ContextIdentity) CurrentUser(ctx context.Context) (*User, error) {
	return UserFromContext(ctx), nil
}

// StaticIdentity always reports the same user. A nil StaticIdentity.User
// means nobody is signed in.
type StaticIdentity struct {
	User *User
}

// CurrentUser implements Identity.
func (s StaticIdentity) CurrentUser(context.Context) (*User, error) {
	return s.User, nil
}

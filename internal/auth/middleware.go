// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/session"
)

// Middleware places the bearer token's user into the request context, where
// session.ContextIdentity reads it back. Requests without a token pass
// through anonymously.
type Middleware struct {
	verifier *TokenVerifier
}

// NewMiddleware returns a Middleware. With a non-empty secret, tokens must
// carry a valid HS256 signature; otherwise they are only decoded.
func NewMiddleware(secret string) (*Middleware, error) {
	if secret == "" {
		return &Middleware{}, nil
	}
	v, err := NewTokenVerifier(secret)
	if err != nil {
		return nil, err
	}
	return &Middleware{verifier: v}, nil
}

// Verifying reports whether signatures are checked.
func (m *Middleware) Verifying() bool { return m.verifier != nil }

// Handler wraps next.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		var (
			claims jwt.MapClaims
			err    error
		)
		if m.verifier != nil {
			claims, err = m.verifier.Verify(token)
		} else {
			claims, err = DecodeClaims(token)
		}
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Rejected bearer token")
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := session.WithUser(r.Context(), userFromClaims(claims, token))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

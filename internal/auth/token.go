// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/marquee/internal/session"
)

var (
	// ErrNoCurrentUser is returned when a check needs a signed-in user and
	// there is none.
	ErrNoCurrentUser = errors.New("no current user")

	// ErrMalformedToken is returned for identity tokens that are not three
	// dot-separated segments with a JSON object payload.
	ErrMalformedToken = errors.New("malformed identity token")

	// ErrInvalidToken is returned when signature verification fails.
	ErrInvalidToken = errors.New("invalid identity token")
)

// ModeratorClaim is the custom claim that marks moderators.
const ModeratorClaim = "moderator"

// DecodeClaims decodes the payload segment of token without verifying its
// signature. The header and signature segments are not inspected. The
// payload must be a JSON object.
func DecodeClaims(token string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: want 3 segments, got %d", ErrMalformedToken, len(parts))
	}
	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedToken)
	}
	return claims, nil
}

// IsModerator reports whether the moderator claim is truthy.
func IsModerator(claims jwt.MapClaims) bool {
	return truthy(claims[ModeratorClaim])
}

// truthy follows JavaScript truthiness for decoded JSON values: false, 0,
// NaN, "" and null are false, everything else is true.
func truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}

// userFromClaims builds a session.User for token. The UID comes from the
// user_id claim, falling back to sub.
func userFromClaims(claims jwt.MapClaims, token string) *session.User {
	u := &session.User{Token: token}
	if uid, ok := claims["user_id"].(string); ok && uid != "" {
		u.UID = uid
	} else if sub, err := claims.GetSubject(); err == nil {
		u.UID = sub
	}
	if email, ok := claims["email"].(string); ok {
		u.Email = email
	}
	return u
}

// TokenVerifier checks HS256 signatures and registered time claims.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier returns a verifier for secret.
func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("token verifier requires a secret")
	}
	return &TokenVerifier{secret: []byte(secret)}, nil
}

// Verify validates token and returns its claims. Tokens signed with any
// algorithm other than HS256 are rejected.
func (v *TokenVerifier) Verify(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

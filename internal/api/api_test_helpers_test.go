// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/docstore"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/session"
)

// testEnv is a full router over an in-memory Badger store.
type testEnv struct {
	store   docstore.Store
	gateway *session.Gateway
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := docstore.OpenBadger(docstore.BadgerOptions{InMemory: true})
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	gw := session.NewStaticGateway(&session.Session{Store: store, Identity: session.ContextIdentity{}})
	t.Cleanup(func() { _ = gw.Close() })

	authMw, err := auth.NewMiddleware("")
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 0

	svc := catalog.NewService(gw, catalog.Options{})
	router := NewRouter(NewHandler(svc, gw), authMw, NewChiMiddleware(cfg))
	return &testEnv{store: store, gateway: gw, handler: router.SetupChi()}
}

func (e *testEnv) put(t *testing.T, collection, id string, doc interface{}) {
	t.Helper()
	if err := e.store.Put(context.Background(), collection, id, doc); err != nil {
		t.Fatalf("Put(%s/%s) error = %v", collection, id, err)
	}
}

func (e *testEnv) seedMovies(t *testing.T, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		e.put(t, "movies", fmt.Sprintf("m%02d", i), models.RawMovie{
			Title:         fmt.Sprintf("Movie %02d", i),
			AverageRating: 6.66,
			Genres:        map[string]bool{"Drama": i%2 == 0},
		})
	}
}

func (e *testEnv) do(t *testing.T, method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// testResponse mirrors APIResponse with a raw payload.
type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
	if data != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			t.Fatalf("invalid data payload %s: %v", resp.Data, err)
		}
	}
	return resp
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("issuer-key"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return s
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

const testSeed = `{
	"movies": {
		"tt0113277": {
			"title": "Heat",
			"averageRating": 8.26,
			"overview": "",
			"poster": "/heat.jpg",
			"genres": {"Crime": true, "Action": true}
		},
		"tt0122690": {"title": "Ronin", "averageRating": 7.2, "genres": {"Action": true}}
	}
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	seed := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(seed, []byte(testSeed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return &config.Config{
		Store: config.StoreConfig{Backend: "badger", InMemory: true, SeedFile: seed},
		Catalog: config.CatalogConfig{
			PageSize:         10,
			MoviesCollection: "movies",
			PosterPrefix:     "https://image.tmdb.org/t/p/w500",
			DefaultPoster:    "src/assets/Popcorn_Sparky.png",
			FetchConcurrency: 4,
			QueryTimeout:     5 * time.Second,
		},
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ShutdownTimeout: time.Second,
		},
	}
}

func TestNewApp_ServesCatalog(t *testing.T) {
	a, err := newApp(testConfig(t))
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	t.Cleanup(func() { _ = a.gateway.Close() })

	if a.server.Addr != "127.0.0.1:8080" {
		t.Errorf("server.Addr = %q", a.server.Addr)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies?genre=Crime", http.NoBody)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/movies = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool                     `json:"success"`
		Data    models.MoviePageResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Movies) != 1 {
		t.Fatalf("movies = %+v, want only Heat", resp.Data.Movies)
	}
	heat := resp.Data.Movies[0]
	if heat.AverageRating != 8.3 || heat.Poster != "https://image.tmdb.org/t/p/w500/heat.jpg" || heat.GenreList != "Action, Crime" {
		t.Errorf("Heat = %+v", heat)
	}
	if !a.gateway.Ready() {
		t.Error("gateway should be ready after the first request")
	}
}

func TestNewApp_SupervisorLifecycle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = 0
	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	t.Cleanup(func() { _ = a.gateway.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := a.tree.ServeBackground(ctx)

	deadline := time.Now().Add(3 * time.Second)
	for !a.gateway.Ready() {
		if time.Now().After(deadline) {
			t.Fatal("warm-up service did not open the session")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor tree did not stop")
	}
}

func TestNewApp_MovieCacheSweep(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.MovieCacheSize = 8
	cfg.Catalog.MovieCacheTTL = time.Millisecond
	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	t.Cleanup(func() { _ = a.gateway.Close() })

	if !a.catalog.MovieCacheEnabled() {
		t.Fatal("movie cache should be enabled")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/movies/tt0113277", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/movies/tt0113277 = %d: %s", rec.Code, rec.Body.String())
	}

	time.Sleep(5 * time.Millisecond)
	if n := a.catalog.SweepMovieCache(); n != 1 {
		t.Errorf("SweepMovieCache() = %d, want 1", n)
	}
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/docstore"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/session"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("backend", cfg.Store.Backend).
		Str("addr", cfg.Server.Addr()).
		Bool("verify_tokens", cfg.Auth.JWTSecret != "").
		Msg("Starting Marquee")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer func() {
		if err := a.gateway.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing document store")
		}
	}()

	logging.Info().Msg("Starting supervisor tree")
	if err := a.tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := a.tree.UnstoppedServiceReport(); len(unstopped) > 0 { //nolint:errcheck // report only
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	logging.Info().Msg("Marquee stopped")
}

// app holds the wired components of the server.
type app struct {
	gateway *session.Gateway
	catalog *catalog.Service
	handler http.Handler
	server  *http.Server
	tree    *supervisor.SupervisorTree
}

// newApp wires the server from cfg. The backend session is opened lazily,
// by the warm-up service or the first request, whichever comes first.
func newApp(cfg *config.Config) (*app, error) {
	gw := session.NewGateway(func(ctx context.Context) (*session.Session, error) {
		store, err := docstore.Open(ctx, cfg.Store, cfg.Breaker)
		if err != nil {
			return nil, err
		}
		return &session.Session{Store: store, Identity: session.ContextIdentity{}}, nil
	})

	authMw, err := auth.NewMiddleware(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}
	if !authMw.Verifying() {
		logging.Warn().Msg("JWT_SECRET not set: bearer tokens are decoded without signature verification")
	}

	svc := catalog.NewService(gw, catalog.OptionsFromConfig(cfg.Catalog))
	router := api.NewRouter(
		api.NewHandler(svc, gw),
		authMw,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(cfg.Server)),
	)
	handler := router.SetupChi()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return nil, err
	}
	tree.AddStoreService(services.NewSessionWarmupService(gw))
	if cfg.Store.Backend == "badger" && !cfg.Store.InMemory {
		tree.AddStoreService(services.NewBadgerGCService(gw, cfg.Store.GCInterval, cfg.Store.GCDiscardRatio))
	}
	if svc.MovieCacheEnabled() {
		sweepEvery := cfg.Catalog.MovieCacheTTL
		if sweepEvery <= 0 {
			sweepEvery = cache.DefaultTTL
		}
		tree.AddStoreService(services.NewCacheSweepService(svc, sweepEvery))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	return &app{gateway: gw, catalog: svc, handler: handler, server: server, tree: tree}, nil
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - RequestID: Request and correlation IDs for structured logging
  - AccessLog: One zerolog line per request
  - PrometheusMetrics: Request count, duration and in-flight gauge, labeled
    by chi route pattern

All middleware has the func(http.Handler) http.Handler shape so it plugs into
chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware

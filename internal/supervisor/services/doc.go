// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services adapts marquee components to suture's Serve(ctx) model.

  - HTTPServerService wraps *http.Server and shuts it down gracefully when
    its context is canceled.
  - SessionWarmupService opens the backend session at startup and retries
    through the supervisor's backoff until it succeeds.
  - BadgerGCService runs Badger value log GC on an interval. It exits for
    other backends.
  - CacheSweepService drops expired movies from the catalog cache.

Services that have nothing left to do return suture.ErrDoNotRestart.
*/
package services

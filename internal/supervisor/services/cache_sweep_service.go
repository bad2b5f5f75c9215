// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/logging"
)

// CacheSweeper drops expired cache entries and reports how many it removed.
// *catalog.Service implements it.
type CacheSweeper interface {
	SweepMovieCache() int
}

// CacheSweepService periodically removes expired movies from the catalog
// cache so entries that are never read again do not hold memory until they
// are evicted by size.
type CacheSweepService struct {
	sweeper  CacheSweeper
	interval time.Duration
}

// NewCacheSweepService creates a sweep service running every interval.
func NewCacheSweepService(sweeper CacheSweeper, interval time.Duration) *CacheSweepService {
	return &CacheSweepService{sweeper: sweeper, interval: interval}
}

// Serve implements suture.Service.
func (c *CacheSweepService) Serve(ctx context.Context) error {
	if c.interval <= 0 {
		return suture.ErrDoNotRestart
	}
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := c.sweeper.SweepMovieCache(); n > 0 {
				logging.Debug().Int("removed", n).Msg("Swept expired movies from cache")
			}
		}
	}
}

// String names the service in supervisor events.
func (c *CacheSweepService) String() string {
	return "movie-cache-sweep"
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

// Open builds the configured backend, loads seed data when configured and
// applies the instrumentation and circuit breaker decorators.
func Open(ctx context.Context, storeCfg config.StoreConfig, breakerCfg config.BreakerConfig) (Store, error) {
	var base Store
	switch storeCfg.Backend {
	case "badger":
		b, err := OpenBadger(BadgerOptions{Path: storeCfg.Path, InMemory: storeCfg.InMemory})
		if err != nil {
			return nil, err
		}
		base = b
	case "mongo":
		m, err := OpenMongo(ctx, MongoOptions{URI: storeCfg.MongoURI, Database: storeCfg.MongoDatabase})
		if err != nil {
			return nil, err
		}
		base = m
	default:
		return nil, fmt.Errorf("unknown store backend %q", storeCfg.Backend)
	}

	if storeCfg.SeedFile != "" {
		n, err := LoadSeedFile(ctx, base, storeCfg.SeedFile)
		if err != nil {
			if cerr := base.Close(); cerr != nil {
				logging.Warn().Err(cerr).Msg("Failed to close store after seed error")
			}
			return nil, err
		}
		logging.Info().Str("file", storeCfg.SeedFile).Int("documents", n).Msg("Seed data loaded")
	}

	var s Store = Instrument(base)
	if breakerCfg.Enabled {
		s = WithBreaker(s, BreakerSettings{
			MaxRequests:      breakerCfg.MaxRequests,
			Interval:         breakerCfg.Interval,
			Timeout:          breakerCfg.Timeout,
			FailureThreshold: breakerCfg.FailureThreshold,
		})
	}
	return s, nil
}

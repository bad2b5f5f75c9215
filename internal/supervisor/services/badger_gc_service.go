// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/docstore"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/session"
)

// DefaultGCDiscardRatio is Badger's recommended value log rewrite threshold.
const DefaultGCDiscardRatio = 0.5

// BadgerGCService periodically reclaims Badger value log space.
//
// The store is looked up through the gateway on every tick, so the service
// can be started before the session exists. Ticks before initialization are
// skipped. If the session turns out not to be Badger-backed the service
// removes itself.
type BadgerGCService struct {
	gateway  *session.Gateway
	interval time.Duration
	ratio    float64
}

// NewBadgerGCService creates a GC service. A ratio outside (0, 1) falls back
// to DefaultGCDiscardRatio.
func NewBadgerGCService(gw *session.Gateway, interval time.Duration, ratio float64) *BadgerGCService {
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultGCDiscardRatio
	}
	return &BadgerGCService{gateway: gw, interval: interval, ratio: ratio}
}

// Serve implements suture.Service.
func (g *BadgerGCService) Serve(ctx context.Context) error {
	if g.interval <= 0 {
		return suture.ErrDoNotRestart
	}
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.collect(); err != nil {
				return err
			}
		}
	}
}

// collect runs one GC pass. It returns suture.ErrDoNotRestart when there is
// nothing this service can ever collect.
func (g *BadgerGCService) collect() error {
	if !g.gateway.Ready() {
		return nil
	}
	sess, err := g.gateway.Session(context.Background())
	if err != nil {
		if errors.Is(err, session.ErrClosed) {
			return suture.ErrDoNotRestart
		}
		return nil
	}
	store, ok := docstore.Badger(sess.Store)
	if !ok {
		logging.Debug().Str("backend", sess.Store.Backend()).Msg("Value log GC not applicable")
		return suture.ErrDoNotRestart
	}

	start := time.Now()
	if err := store.RunGC(g.ratio); err != nil {
		metrics.StoreGCRuns.WithLabelValues("error").Inc()
		logging.Warn().Err(err).Msg("Badger value log GC failed")
		return nil
	}
	metrics.StoreGCRuns.WithLabelValues("ok").Inc()
	logging.Debug().Dur("duration", time.Since(start)).Msg("Badger value log GC finished")
	return nil
}

// String names the service in supervisor events.
func (g *BadgerGCService) String() string {
	return "badger-gc"
}

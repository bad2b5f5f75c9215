// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// ErrUnavailable wraps breaker rejections so callers can answer 503 without
// importing gobreaker.
var ErrUnavailable error = &storeError{msg: "document store unavailable", kind: "unavailable"}

// BreakerSettings configures WithBreaker.
type BreakerSettings struct {
	MaxRequests      uint32        // requests allowed while half-open
	Interval         time.Duration // closed-state count reset period
	Timeout          time.Duration // open-state duration before half-open
	FailureThreshold uint32        // consecutive failures that open the circuit
}

// BreakerStore guards another Store with a circuit breaker. Not-found
// results, invalid queries and caller cancellation do not count as failures.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// WithBreaker wraps next.
func WithBreaker(next Store, s BreakerSettings) *BreakerStore {
	name := "docstore-" + next.Backend()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= s.FailureThreshold
			if trip {
				logging.Warn().
					Str("breaker", name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("Opening document store circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, ErrInvalidQuery) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// State exposes the breaker state for health reporting.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	res, err := b.cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		return nil, errors.Join(ErrUnavailable, err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "error").Inc()
		return nil, err
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		return res, nil
	}
}

// Backend implements Store.
func (b *BreakerStore) Backend() string { return b.next.Backend() }

// Query implements Store.
func (b *BreakerStore) Query(ctx context.Context, q Query) ([]Snapshot, error) {
	res, err := b.execute(func() (interface{}, error) {
		return b.next.Query(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	snaps, _ := res.([]Snapshot) //nolint:errcheck // nil on empty result
	return snaps, nil
}

// Get implements Store.
func (b *BreakerStore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	res, err := b.execute(func() (interface{}, error) {
		return b.next.Get(ctx, collection, id)
	})
	if err != nil {
		return Snapshot{}, err
	}
	snap, _ := res.(Snapshot) //nolint:errcheck // execute returned the callee's value
	return snap, nil
}

// Put implements Store.
func (b *BreakerStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	_, err := b.execute(func() (interface{}, error) {
		return nil, b.next.Put(ctx, collection, id, doc)
	})
	return err
}

// Ping bypasses the breaker so readiness reflects the backend itself.
func (b *BreakerStore) Ping(ctx context.Context) error { return b.next.Ping(ctx) }

// Close implements Store.
func (b *BreakerStore) Close() error { return b.next.Close() }

// Unwrap returns the wrapped Store.
func (b *BreakerStore) Unwrap() Store { return b.next }

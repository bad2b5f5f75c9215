// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package session

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/docstore"
	"github.com/tomtom215/marquee/internal/logging"
)

// ErrClosed is returned by Session after Close.
var ErrClosed = errors.New("session gateway closed")

// Session is the shared backend handle: the document store and the source of
// the current user's identity.
type Session struct {
	Store    docstore.Store
	Identity Identity
}

// Opener creates a Session. It is called at most once per successful
// initialization.
type Opener func(ctx context.Context) (*Session, error)

// Gateway lazily initializes a Session and hands the same one to every
// caller. Callers that arrive while initialization is running wait for it
// instead of starting their own. A failed initialization is not remembered,
// so the next call tries again.
type Gateway struct {
	open  Opener
	group singleflight.Group

	mu     sync.RWMutex
	sess   *Session
	closed bool
}

// NewGateway returns a Gateway that initializes with open.
func NewGateway(open Opener) *Gateway {
	return &Gateway{open: open}
}

// NewStaticGateway returns a Gateway whose session is already initialized.
func NewStaticGateway(s *Session) *Gateway {
	return &Gateway{
		sess: s,
		open: func(context.Context) (*Session, error) { return s, nil },
	}
}

// Session returns the shared session, initializing it on first use.
//
// The caller's context bounds how long it waits. Initialization itself is
// detached from the caller's cancellation so that one impatient caller does
// not fail the others sharing the flight.
func (g *Gateway) Session(ctx context.Context) (*Session, error) {
	if s, err := g.current(); s != nil || err != nil {
		return s, err
	}

	ch := g.group.DoChan("session", func() (interface{}, error) {
		if s, err := g.current(); s != nil || err != nil {
			return s, err
		}

		logging.Ctx(ctx).Debug().Msg("Initializing backend session")
		s, err := g.open(context.WithoutCancel(ctx))
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Backend session initialization failed")
			return nil, err
		}

		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed {
			closeSession(s)
			return nil, ErrClosed
		}
		g.sess = s
		logging.Ctx(ctx).Info().Str("backend", s.Store.Backend()).Msg("Backend session ready")
		return s, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		s, _ := res.Val.(*Session) //nolint:errcheck // flight only returns *Session
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *Gateway) current() (*Session, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return nil, ErrClosed
	}
	return g.sess, nil
}

// Ready reports whether a session has been initialized.
func (g *Gateway) Ready() bool {
	s, _ := g.current() //nolint:errcheck // closed means not ready
	return s != nil
}

// Close releases the session's store. Later calls to Session fail with
// ErrClosed. Close is idempotent.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	if g.sess == nil {
		return nil
	}
	err := g.sess.Store.Close()
	g.sess = nil
	return err
}

func closeSession(s *Session) {
	if s == nil || s.Store == nil {
		return
	}
	if err := s.Store.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close store of discarded session")
	}
}

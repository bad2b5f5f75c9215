// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// readyTimeout bounds the store ping of the readiness probe.
const readyTimeout = 2 * time.Second

// HealthLive handles liveness probe requests. It never touches the store.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 only when the backend session is available and the
// document store answers a ping. Otherwise it returns 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	backend := ""
	storeConnected := false
	sess, err := h.gateway.Session(ctx)
	if err == nil {
		backend = sess.Store.Backend()
		err = sess.Store.Ping(ctx)
		storeConnected = err == nil
	}
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
	}

	data := map[string]interface{}{
		"store_connected": storeConnected,
		"backend":         backend,
		"ready_to_serve":  storeConnected,
		"uptime":          time.Since(h.startTime).Seconds(),
	}
	if !storeConnected {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service is not ready", data)
		return
	}
	rw.Success(data)
}

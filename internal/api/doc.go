// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP surface of the Marquee service.

Routes:

	GET  /api/v1/movies          one page of movies (mode, genre, cursor, collection)
	GET  /api/v1/movies/{key}    one movie
	GET  /api/v1/auth/status     anonymous and moderator status of the caller
	POST /api/v1/auth/toggle     flip the client's anonymous state
	GET  /api/v1/health/live     liveness probe
	GET  /api/v1/health/ready    readiness probe (document store ping)
	GET  /metrics                Prometheus metrics

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "Movie not found"}}

Page cursors are opaque base64url tokens. Clients pass next_cursor back
unchanged to continue a listing.
*/
package api

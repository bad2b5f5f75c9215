// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee serves a movie catalog and users' saved movies and reviews from a
document store over a small JSON API.

# Application Architecture

	RootSupervisor ("marquee")
	├── StoreSupervisor ("store-layer")
	│   ├── session warm-up
	│   ├── Badger value log GC (on-disk Badger only)
	│   └── movie cache sweep (when MOVIE_CACHE_SIZE > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Session gateway: opens the document store on first use
 4. Catalog service, auth middleware and chi router
 5. Supervisor tree: suture v4

# Configuration

	STORE_BACKEND=badger         # badger or mongo
	BADGER_PATH=/data/marquee
	BADGER_MEMORY=false
	MONGO_URI=mongodb://localhost:27017
	SEED_FILE=                   # JSON {collection: {id: doc}} loaded at startup
	PAGE_SIZE=10
	JWT_SECRET=                  # enables HS256 verification of bearer tokens
	HTTP_PORT=8080
	LOG_LEVEL=info

# Endpoints

	GET  /api/v1/movies?mode=app|mymovies|myreviews&genre=&cursor=
	GET  /api/v1/movies/{key}
	GET  /api/v1/auth/status
	POST /api/v1/auth/toggle
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT, then the document store
is closed.
*/
package main

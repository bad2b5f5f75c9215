// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cache provides a generic in-memory LRU cache with TTL expiration.

The catalog service uses it to keep recently normalized movies, so pages of
a user's saved movies or reviews do not refetch the same movie documents
from the store on every request.

Usage:

	movies := cache.NewLRU[models.Movie](1024, 5*time.Minute)
	movies.Add("tt0113277", heat)
	if m, ok := movies.Get("tt0113277"); ok {
	    // use m
	}
*/
package cache

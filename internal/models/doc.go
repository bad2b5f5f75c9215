// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines data structures for the Marquee service.

Document Models:
  - RawMovie: Movie document as stored, with validation tags
  - Movie: Normalized movie returned to clients
  - Review: A user's review, keyed by the reviewed movie

API Response Models:
  - MoviePageResponse: One page of movies (and reviews) with pagination info
  - AuthStatusResponse, ToggleResponse: Session state for the browser client

JSON field names follow the stored documents (averageRating, review_text) so
that existing catalog data decodes without a migration.
*/
package models

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// RawMovie is a movie document as stored in the catalog collection.
//
// Documents are decoded into RawMovie and validated before normalization.
// A document with an empty title or a rating outside [0, 10] is rejected.
//
// Example document:
//
//	{
//	  "title": "Heat",
//	  "averageRating": 8.26,
//	  "overview": "A group of professional bank robbers...",
//	  "poster": "/rrBuGu0Pjq7Y2BWSI6teGfZzviY.jpg",
//	  "genres": {"Action": true, "Crime": true, "Drama": true}
//	}
type RawMovie struct {
	Title         string          `json:"title" validate:"required"`
	AverageRating float64         `json:"averageRating" validate:"gte=0,lte=10"`
	Overview      string          `json:"overview"`
	Poster        string          `json:"poster"`
	Genres        map[string]bool `json:"genres"`
}

// Movie is a normalized movie ready for display.
//
// Fields:
//   - Key: Document ID the movie was read from
//   - AverageRating: Rounded to one decimal place
//   - Overview: A single space when the document had none
//   - Poster: Absolute image URL, or the default poster asset
//   - GenreList: Genre names joined with ", "
type Movie struct {
	Key           string          `json:"key"`
	Title         string          `json:"title"`
	AverageRating float64         `json:"averageRating"`
	Overview      string          `json:"overview"`
	Poster        string          `json:"poster"`
	Genres        map[string]bool `json:"genres"`
	GenreList     string          `json:"genreList"`
}

// Review is a user's review of one movie. In a user's review collection the
// document ID is the reviewed movie's key.
type Review struct {
	ReviewText string  `json:"review_text"`
	Rating     float64 `json:"rating"`
}

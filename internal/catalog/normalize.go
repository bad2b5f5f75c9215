// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

const (
	// DefaultPosterPrefix is prepended to relative poster paths.
	DefaultPosterPrefix = "https://image.tmdb.org/t/p/w500"

	// DefaultPoster is shown for movies without a poster.
	DefaultPoster = "src/assets/Popcorn_Sparky.png"

	// emptyOverview keeps the overview element from collapsing in the client.
	emptyOverview = " "

	genreSeparator = ", "
)

// Normalizer shapes raw movie documents for display.
type Normalizer struct {
	PosterPrefix  string
	DefaultPoster string
}

// NewNormalizer returns a Normalizer. Empty arguments fall back to
// DefaultPosterPrefix and DefaultPoster.
func NewNormalizer(posterPrefix, defaultPoster string) *Normalizer {
	if posterPrefix == "" {
		posterPrefix = DefaultPosterPrefix
	}
	if defaultPoster == "" {
		defaultPoster = DefaultPoster
	}
	return &Normalizer{PosterPrefix: posterPrefix, DefaultPoster: defaultPoster}
}

var defaultNormalizer = NewNormalizer("", "")

// Normalize applies the default poster settings. See Normalizer.Normalize.
func Normalize(raw models.RawMovie, key string) models.Movie {
	return defaultNormalizer.Normalize(raw, key)
}

// Normalize converts raw into a Movie keyed by key:
//   - the rating is rounded to one decimal place
//   - an empty poster becomes the default poster; a poster that starts
//     with neither "https:" nor the prefix gets the prefix prepended
//   - an empty overview becomes a single space
//   - GenreList is rebuilt from every key of Genres, sorted
//
// raw is not modified.
func (n *Normalizer) Normalize(raw models.RawMovie, key string) models.Movie {
	m := models.Movie{
		Key:           key,
		Title:         raw.Title,
		AverageRating: roundRating(raw.AverageRating),
		Overview:      raw.Overview,
		Poster:        n.poster(raw.Poster),
		Genres:        raw.Genres,
		GenreList:     genreList(raw.Genres),
	}
	if m.Overview == "" {
		m.Overview = emptyOverview
	}

	logging.Debug().
		Str("key", key).
		Float64("rating", m.AverageRating).
		Str("genres", m.GenreList).
		Msg("Normalized movie")
	return m
}

func (n *Normalizer) poster(p string) string {
	switch {
	case p == "":
		return n.DefaultPoster
	case !strings.HasPrefix(p, "https:") && !strings.HasPrefix(p, n.PosterPrefix):
		return n.PosterPrefix + p
	default:
		return p
	}
}

func roundRating(r float64) float64 {
	return math.Round(r*10) / 10
}

func genreList(genres map[string]bool) string {
	if len(genres) == 0 {
		return ""
	}
	names := make([]string, 0, len(genres))
	for name := range genres {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, genreSeparator)
}

// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/docstore"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/session"
	"github.com/tomtom215/marquee/internal/validation"
)

// Mode selects how the documents of a page are interpreted.
type Mode string

const (
	// ModeApp reads movie documents directly.
	ModeApp Mode = "app"
	// ModeMyMovies reads a collection whose document IDs are movie keys.
	ModeMyMovies Mode = "mymovies"
	// ModeMyReviews is ModeMyMovies where each document is also a Review.
	ModeMyReviews Mode = "myreviews"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeApp, ModeMyMovies, ModeMyReviews:
		return true
	}
	return false
}

func (m Mode) followsKeys() bool { return m == ModeMyMovies || m == ModeMyReviews }

var (
	// ErrInvalidMode is returned for a PageRequest with an unknown Mode.
	ErrInvalidMode = errors.New("invalid page mode")

	// ErrInvalidRequest is returned for a PageRequest that fails validation.
	ErrInvalidRequest = errors.New("invalid page request")
)

// Defaults used when Options leaves a field zero.
const (
	DefaultPageSize         = 10
	DefaultMoviesCollection = "movies"
	DefaultFetchConcurrency = 8
)

// PageRequest describes one page to load.
type PageRequest struct {
	Mode Mode `json:"mode"`

	// Continue resumes after Cursor. Without it, or with a zero Cursor, the
	// page starts at the beginning of the collection.
	Continue bool            `json:"continue"`
	Cursor   docstore.Cursor `json:"cursor"`

	// Genre restricts the page to documents with genres.<Genre> == true.
	Genre string `json:"genre" validate:"omitempty,genrekey"`

	// Collection defaults to the movies collection in ModeApp. The other
	// modes require it.
	Collection string `json:"collection" validate:"omitempty,max=512"`
}

// Page is one loaded page.
//
// Cursor points at the last document read. For an empty page it is the
// request's cursor, unchanged, and MoreFound is false. In ModeMyReviews
// Reviews[i] is the review of Movies[i].
type Page struct {
	Cursor       docstore.Cursor
	MoreFound    bool
	Movies       []models.Movie
	Reviews      []models.Review
	DecodeErrors []DecodeError
}

// DecodeError reports a document that was skipped because it could not be
// decoded, failed validation, or referenced a movie that does not exist.
type DecodeError struct {
	Key string
	Err error
}

func (e DecodeError) Error() string { return fmt.Sprintf("document %s: %v", e.Key, e.Err) }
func (e DecodeError) Unwrap() error { return e.Err }

// Options configures a Service.
type Options struct {
	PageSize         int
	MoviesCollection string
	FetchConcurrency int
	QueryTimeout     time.Duration
	Normalizer       *Normalizer

	// MovieCacheSize enables an LRU of normalized movies used by GetMovie
	// and the follow modes. Zero disables caching.
	MovieCacheSize int
	MovieCacheTTL  time.Duration
}

// OptionsFromConfig maps the catalog configuration section to Options.
func OptionsFromConfig(cfg config.CatalogConfig) Options {
	return Options{
		PageSize:         cfg.PageSize,
		MoviesCollection: cfg.MoviesCollection,
		FetchConcurrency: cfg.FetchConcurrency,
		QueryTimeout:     cfg.QueryTimeout,
		Normalizer:       NewNormalizer(cfg.PosterPrefix, cfg.DefaultPoster),
		MovieCacheSize:   cfg.MovieCacheSize,
		MovieCacheTTL:    cfg.MovieCacheTTL,
	}
}

// Service loads pages of movies and single movies from the document store.
// It is safe for concurrent use.
type Service struct {
	gateway *session.Gateway
	opts    Options
	movies  *cache.LRU[models.Movie]
}

// NewService creates a Service that obtains its store from gw.
func NewService(gw *session.Gateway, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MoviesCollection == "" {
		opts.MoviesCollection = DefaultMoviesCollection
	}
	if opts.FetchConcurrency <= 0 {
		opts.FetchConcurrency = DefaultFetchConcurrency
	}
	if opts.Normalizer == nil {
		opts.Normalizer = NewNormalizer("", "")
	}
	s := &Service{gateway: gw, opts: opts}
	if opts.MovieCacheSize > 0 {
		s.movies = cache.NewLRU[models.Movie](opts.MovieCacheSize, opts.MovieCacheTTL)
	}
	return s
}

// PageSize returns the configured page size.
func (s *Service) PageSize() int { return s.opts.PageSize }

// MoviesCollection returns the collection GetMovie reads from.
func (s *Service) MoviesCollection() string { return s.opts.MoviesCollection }

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.QueryTimeout)
}

func (s *Service) store(ctx context.Context) (docstore.Store, error) {
	sess, err := s.gateway.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtain session: %w", err)
	}
	return sess.Store, nil
}

// LoadPage reads the next page described by req.
//
// Documents that cannot be decoded are reported in Page.DecodeErrors and
// left out of Movies and Reviews. Store failures are returned as errors.
func (s *Service) LoadPage(ctx context.Context, req PageRequest) (page Page, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordPageLoad(string(req.Mode), len(page.Movies)+len(page.DecodeErrors), page.MoreFound, err)
	}()

	if !req.Mode.Valid() {
		return Page{}, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return Page{}, fmt.Errorf("%w: %s", ErrInvalidRequest, verr.Error())
	}
	collection := req.Collection
	if collection == "" {
		if req.Mode != ModeApp {
			return Page{}, fmt.Errorf("%w: mode %s requires a collection", ErrInvalidRequest, req.Mode)
		}
		collection = s.opts.MoviesCollection
	}

	store, err := s.store(ctx)
	if err != nil {
		return Page{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := docstore.NewQuery(collection).Limit(s.opts.PageSize)
	if req.Genre != "" {
		q = q.Where("genres."+req.Genre, true)
	}
	if req.Continue && !req.Cursor.IsZero() {
		q = q.StartAfter(req.Cursor)
	}

	snaps, err := store.Query(ctx, q)
	if err != nil {
		return Page{}, fmt.Errorf("query %s: %w", collection, err)
	}

	if len(snaps) == 0 {
		logging.Ctx(ctx).Debug().
			Str("mode", string(req.Mode)).
			Str("collection", collection).
			Msg("No more documents")
		return Page{Cursor: req.Cursor, Movies: []models.Movie{}}, nil
	}

	page = Page{
		Cursor:    snaps[len(snaps)-1].Cursor(),
		MoreFound: true,
	}
	if req.Mode.followsKeys() {
		err = s.assembleFollowed(ctx, store, req.Mode, snaps, &page)
	} else {
		s.assembleDirect(snaps, &page)
	}
	if err != nil {
		return Page{}, err
	}

	logging.Ctx(ctx).Debug().
		Str("mode", string(req.Mode)).
		Str("collection", collection).
		Int("documents", len(snaps)).
		Int("movies", len(page.Movies)).
		Int("skipped", len(page.DecodeErrors)).
		Dur("duration", time.Since(start)).
		Msg("Page loaded")
	return page, nil
}

func (s *Service) assembleDirect(snaps []docstore.Snapshot, page *Page) {
	page.Movies = make([]models.Movie, 0, len(snaps))
	for _, snap := range snaps {
		m, err := s.decodeMovie(snap)
		if err != nil {
			page.DecodeErrors = append(page.DecodeErrors, DecodeError{Key: snap.ID, Err: err})
			metrics.DecodeFailures.WithLabelValues("movie").Inc()
			continue
		}
		page.Movies = append(page.Movies, m)
	}
}

type followed struct {
	movie  models.Movie
	review models.Review
	err    error
}

// assembleFollowed fetches the movie named by each document ID with bounded
// concurrency. All fetches finish before it returns, and results keep page
// order.
func (s *Service) assembleFollowed(ctx context.Context, store docstore.Store, mode Mode, snaps []docstore.Snapshot, page *Page) error {
	slots := make([]followed, len(snaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.FetchConcurrency)
	for i, snap := range snaps {
		g.Go(func() error {
			slot := &slots[i]
			if mode == ModeMyReviews {
				if err := snap.DataTo(&slot.review); err != nil {
					slot.err = err
					metrics.DecodeFailures.WithLabelValues("review").Inc()
					return nil
				}
			}
			m, err := s.getMovie(gctx, store, snap.ID)
			switch {
			case err == nil:
				slot.movie = m
			case errors.Is(err, docstore.ErrNotFound):
				slot.err = err
				metrics.DecodeFailures.WithLabelValues("missing").Inc()
			case errors.As(err, new(DecodeError)):
				slot.err = err
				metrics.DecodeFailures.WithLabelValues("movie").Inc()
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	page.Movies = make([]models.Movie, 0, len(snaps))
	if mode == ModeMyReviews {
		page.Reviews = make([]models.Review, 0, len(snaps))
	}
	for i, slot := range slots {
		if slot.err != nil {
			page.DecodeErrors = append(page.DecodeErrors, DecodeError{Key: snaps[i].ID, Err: slot.err})
			continue
		}
		page.Movies = append(page.Movies, slot.movie)
		if mode == ModeMyReviews {
			page.Reviews = append(page.Reviews, slot.review)
		}
	}
	return nil
}

// GetMovie fetches and normalizes one movie from the movies collection. A
// missing document yields an error wrapping docstore.ErrNotFound; a document
// that fails to decode yields a DecodeError.
func (s *Service) GetMovie(ctx context.Context, key string) (models.Movie, error) {
	store, err := s.store(ctx)
	if err != nil {
		return models.Movie{}, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.getMovie(ctx, store, key)
}

func (s *Service) getMovie(ctx context.Context, store docstore.Store, key string) (models.Movie, error) {
	if s.movies != nil {
		if m, ok := s.movies.Get(key); ok {
			metrics.MovieCacheLookups.WithLabelValues("hit").Inc()
			return cloneMovie(m), nil
		}
		metrics.MovieCacheLookups.WithLabelValues("miss").Inc()
	}
	snap, err := store.Get(ctx, s.opts.MoviesCollection, key)
	if err != nil {
		return models.Movie{}, fmt.Errorf("get movie %s: %w", key, err)
	}
	m, err := s.decodeMovie(snap)
	if err != nil {
		return models.Movie{}, DecodeError{Key: key, Err: err}
	}
	if s.movies != nil {
		s.movies.Add(key, cloneMovie(m))
		metrics.MovieCacheEntries.Set(float64(s.movies.Len()))
	}
	return m, nil
}

// SweepMovieCache drops expired movies from the cache and returns how many
// it removed. It is a no-op when caching is disabled.
func (s *Service) SweepMovieCache() int {
	if s.movies == nil {
		return 0
	}
	removed := s.movies.CleanupExpired()
	metrics.MovieCacheExpired.Add(float64(removed))
	metrics.MovieCacheEntries.Set(float64(s.movies.Len()))
	return removed
}

// MovieCacheEnabled reports whether GetMovie results are cached.
func (s *Service) MovieCacheEnabled() bool { return s.movies != nil }

// cloneMovie copies the Genres map so cached movies never share it with
// callers.
func cloneMovie(m models.Movie) models.Movie {
	m.Genres = maps.Clone(m.Genres)
	return m
}

// decodeMovie decodes and validates a movie document, then normalizes it.
func (s *Service) decodeMovie(snap docstore.Snapshot) (models.Movie, error) {
	var raw models.RawMovie
	if err := snap.DataTo(&raw); err != nil {
		return models.Movie{}, err
	}
	if verr := validation.ValidateStruct(&raw); verr != nil {
		return models.Movie{}, verr
	}
	return s.opts.Normalizer.Normalize(raw, snap.ID), nil
}

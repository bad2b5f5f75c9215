// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Store   StoreConfig   `koanf:"store"`
	Catalog CatalogConfig `koanf:"catalog"`
	Breaker BreakerConfig `koanf:"breaker"`
	Server  ServerConfig  `koanf:"server"`
	Auth    AuthConfig    `koanf:"auth"`
	Logging LoggingConfig `koanf:"logging"`
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	// Backend is "badger" (embedded, default) or "mongo".
	Backend string `koanf:"backend" validate:"oneof=badger mongo"`

	// Path is the Badger data directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs Badger without touching disk. Useful for demos and tests.
	InMemory bool `koanf:"in_memory"`

	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`

	// SeedFile is an optional JSON file of collections loaded at startup.
	SeedFile string `koanf:"seed_file"`

	// GCInterval is how often Badger value log GC runs. Zero disables it.
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio" validate:"gt=0,lt=1"`
}

// CatalogConfig controls page loading and record normalization.
type CatalogConfig struct {
	PageSize         int           `koanf:"page_size" validate:"gte=1,lte=100"`
	MoviesCollection string        `koanf:"movies_collection" validate:"required"`
	PosterPrefix     string        `koanf:"poster_prefix" validate:"required,url"`
	DefaultPoster    string        `koanf:"default_poster" validate:"required"`
	FetchConcurrency int           `koanf:"fetch_concurrency" validate:"gte=1,lte=64"`
	QueryTimeout     time.Duration `koanf:"query_timeout"`

	// MovieCacheSize bounds the normalized movie cache. Zero disables it.
	MovieCacheSize int           `koanf:"movie_cache_size" validate:"gte=0"`
	MovieCacheTTL  time.Duration `koanf:"movie_cache_ttl"`
}

// BreakerConfig configures the circuit breaker around the document store.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// AuthConfig configures identity token handling.
type AuthConfig struct {
	// JWTSecret enables HS256 signature verification of bearer tokens.
	// When empty, tokens are decoded without verification.
	JWTSecret string `koanf:"jwt_secret"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

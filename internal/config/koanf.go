// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:        "badger",
			Path:           "/data/marquee",
			MongoDatabase:  "marquee",
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		Catalog: CatalogConfig{
			PageSize:         10,
			MoviesCollection: "movies",
			PosterPrefix:     "https://image.tmdb.org/t/p/w500",
			DefaultPoster:    "src/assets/Popcorn_Sparky.png",
			FetchConcurrency: 8,
			QueryTimeout:     10 * time.Second,
			MovieCacheSize:   1024,
			MovieCacheTTL:    5 * time.Minute,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from three layers:
//  1. built-in defaults
//  2. an optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. environment variables listed in envMappings
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitCommaSeparated(k, "server.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitCommaSeparated turns an env-provided "a,b" string into a slice.
// Values loaded from YAML are already slices and are left alone.
func splitCommaSeparated(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok || s == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if err := k.Set(path, parts); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

var envMappings = map[string]string{
	"store_backend":  "store.backend",
	"badger_path":    "store.path",
	"badger_memory":  "store.in_memory",
	"mongo_uri":      "store.mongo_uri",
	"mongo_database": "store.mongo_database",
	"seed_file":      "store.seed_file",
	"gc_interval":    "store.gc_interval",
	"gc_ratio":       "store.gc_discard_ratio",

	"page_size":         "catalog.page_size",
	"movies_collection": "catalog.movies_collection",
	"poster_prefix":     "catalog.poster_prefix",
	"default_poster":    "catalog.default_poster",
	"fetch_concurrency": "catalog.fetch_concurrency",
	"query_timeout":     "catalog.query_timeout",
	"movie_cache_size":  "catalog.movie_cache_size",
	"movie_cache_ttl":   "catalog.movie_cache_ttl",

	"breaker_enabled":           "breaker.enabled",
	"breaker_max_requests":      "breaker.max_requests",
	"breaker_interval":          "breaker.interval",
	"breaker_timeout":           "breaker.timeout",
	"breaker_failure_threshold": "breaker.failure_threshold",

	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",

	"jwt_secret": "auth.jwt_secret",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

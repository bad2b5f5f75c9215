// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/validation"
)

// Validate checks field ranges through the shared validator, then the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	return c.validateBreaker()
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case "badger":
		if !c.Store.InMemory && c.Store.Path == "" {
			return fmt.Errorf("BADGER_PATH is required unless BADGER_MEMORY=true")
		}
	case "mongo":
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_BACKEND=mongo")
		}
		if !strings.HasPrefix(c.Store.MongoURI, "mongodb://") && !strings.HasPrefix(c.Store.MongoURI, "mongodb+srv://") {
			return fmt.Errorf("MONGO_URI must start with mongodb:// or mongodb+srv://")
		}
		if c.Store.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required when STORE_BACKEND=mongo")
		}
		if c.Store.SeedFile != "" {
			return fmt.Errorf("SEED_FILE is only supported with the badger backend")
		}
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	if c.Catalog.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT must be positive, got %s", c.Catalog.QueryTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when RATE_LIMIT_REQUESTS is set")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

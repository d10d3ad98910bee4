// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (Notion clients, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Notion credentials are deliberately not marked required: a missing key or
database id fails the content operation that needs it, not process startup.
*/
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/atelier/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the portfolio server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Notion Data API (works database)
	NotionAPIKey    string `env:"NOTION_API_KEY"`
	NotionWorksDBID string `env:"NOTION_WORKS_DB_ID"`
	NotionBaseURL   string `env:"NOTION_API_BASE_URL" envDefault:"https://api.notion.com/v1"`
	NotionVersion   string `env:"NOTION_VERSION"      envDefault:"2022-06-28"`

	// Notion record API (page content)
	NotionRecordURL string `env:"NOTION_RECORD_API_URL" envDefault:"https://www.notion.so/api/v3"`

	// Revalidation cache. Redis is optional; without it pages are cached in memory.
	RedisURL          string `env:"REDIS_URL"`
	RevalidateSeconds int    `env:"REVALIDATE_SECONDS"`
	RevalidateDisable bool   `env:"REVALIDATE_DISABLE" envDefault:"false"`

	// Cross-Origin Resource Sharing (production allow-list suffix)
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX"`

	// StaticPages holds every NOTION_{SLUG}_ID_{LOCALE} variable present at startup.
	StaticPages map[string]string
}

// # Configuration Loading

// Load parses the process environment into a [Config] struct.
func Load() (*Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {

	// Defaults that live in constants; env leaves them alone when unset
	cfg := &Config{
		RevalidateSeconds: int(constants.DefaultRevalidateInterval / time.Second),
	}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.RevalidateSeconds < 0 {
		return nil, fmt.Errorf("config: REVALIDATE_SECONDS must not be negative, got %d", cfg.RevalidateSeconds)
	}

	// Snapshot static page ids; they are looked up by computed key per request.
	cfg.StaticPages = make(map[string]string)
	for key, value := range environment {
		if isStaticPageKey(key) && value != "" {
			cfg.StaticPages[key] = value
		}
	}

	return cfg, nil
}

// isStaticPageKey matches NOTION_{SLUG}_ID_{LOCALE}.
func isStaticPageKey(key string) bool {
	rest, ok := strings.CutPrefix(key, "NOTION_")
	if !ok {
		return false
	}
	slug, suffix, ok := cutLast(rest, "_ID_")
	return ok && slug != "" && suffix != ""
}

func cutLast(s, sep string) (before, after string, found bool) {
	index := strings.LastIndex(s, sep)
	if index < 0 {
		return s, "", false
	}
	return s[:index], s[index+len(sep):], true
}

// Revalidate returns the page freshness interval; zero disables caching.
func (c *Config) Revalidate() time.Duration {
	if c.RevalidateDisable {
		return 0
	}
	return time.Duration(c.RevalidateSeconds) * time.Second
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

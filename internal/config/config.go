// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package config loads and validates the application configuration from
// layered sources: built-in defaults, an optional YAML file, and
// environment variables, in increasing precedence.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	History  HistoryConfig  `koanf:"history"`
	Semantic SemanticConfig `koanf:"semantic"`
	Suggest  SuggestConfig  `koanf:"suggest"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures the process-wide logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig locates the game catalog.
type CatalogConfig struct {
	// Path of the YAML catalog file. Empty uses the built-in game set.
	Path string `koanf:"path"`
}

// HistoryConfig configures the session history store.
type HistoryConfig struct {
	// Path of the badger database directory. Empty keeps history
	// in memory only, which loses it on restart.
	Path string `koanf:"path"`

	// GCInterval controls value-log garbage collection frequency.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SemanticConfig configures the optional semantic extraction service.
type SemanticConfig struct {
	Enabled    bool          `koanf:"enabled"`
	BaseURL    string        `koanf:"base_url"`
	Collection string        `koanf:"collection"`
	Timeout    time.Duration `koanf:"timeout"`
	MinWeight  float64       `koanf:"min_weight"`
	MaxResults int           `koanf:"max_results"`
	RateLimit  float64       `koanf:"rate_limit"`
	RateBurst  int           `koanf:"rate_burst"`
}

// SuggestConfig tunes the suggestion engine.
type SuggestConfig struct {
	DefaultTopN int           `koanf:"default_top_n"`
	MaxTopN     int           `koanf:"max_top_n"`
	Weights     WeightsConfig `koanf:"weights"`
}

// WeightsConfig is the scoring factor blend. Values are normalized by the
// engine; only the proportions matter.
type WeightsConfig struct {
	Theme      float64 `koanf:"theme"`
	Time       float64 `koanf:"time"`
	Level      float64 `koanf:"level"`
	Freshness  float64 `koanf:"freshness"`
	Preference float64 `koanf:"preference"`
}

// defaultConfig returns the built-in defaults, applied before the config
// file and environment overrides.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		History: HistoryConfig{
			Path:       "/data/attune/history",
			GCInterval: 5 * time.Minute,
		},
		Semantic: SemanticConfig{
			Enabled:    false,
			Collection: "relationship_themes",
			Timeout:    2 * time.Second,
			MinWeight:  0.15,
			MaxResults: 5,
			RateLimit:  20,
			RateBurst:  40,
		},
		Suggest: SuggestConfig{
			DefaultTopN: 4,
			MaxTopN:     10,
			Weights: WeightsConfig{
				Theme:      0.40,
				Time:       0.20,
				Level:      0.15,
				Freshness:  0.15,
				Preference: 0.10,
			},
		},
	}
}

// Validate checks the assembled configuration. Bad configuration is a
// startup failure, never a silently adjusted value.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Semantic.Enabled && c.Semantic.BaseURL == "" {
		return fmt.Errorf("semantic.base_url is required when semantic extraction is enabled")
	}
	if c.Semantic.MinWeight < 0 || c.Semantic.MinWeight > 1 {
		return fmt.Errorf("semantic.min_weight must be in [0, 1], got %g", c.Semantic.MinWeight)
	}

	if c.Suggest.DefaultTopN < 1 {
		return fmt.Errorf("suggest.default_top_n must be >= 1, got %d", c.Suggest.DefaultTopN)
	}
	if c.Suggest.MaxTopN < c.Suggest.DefaultTopN {
		return fmt.Errorf("suggest.max_top_n %d must be >= suggest.default_top_n %d",
			c.Suggest.MaxTopN, c.Suggest.DefaultTopN)
	}

	w := c.Suggest.Weights
	for name, v := range map[string]float64{
		"theme":      w.Theme,
		"time":       w.Time,
		"level":      w.Level,
		"freshness":  w.Freshness,
		"preference": w.Preference,
	} {
		if v < 0 {
			return fmt.Errorf("suggest.weights.%s must be non-negative, got %g", name, v)
		}
	}
	if w.Theme+w.Time+w.Level+w.Freshness+w.Preference <= 0 {
		return fmt.Errorf("suggest.weights must not all be zero")
	}

	return nil
}

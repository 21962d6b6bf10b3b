// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "semantic enabled without base url",
			mutate:  func(c *Config) { c.Semantic.Enabled = true },
			wantErr: true,
		},
		{
			name: "semantic enabled with base url",
			mutate: func(c *Config) {
				c.Semantic.Enabled = true
				c.Semantic.BaseURL = "http://localhost:8000"
			},
		},
		{
			name:    "min weight above one",
			mutate:  func(c *Config) { c.Semantic.MinWeight = 1.5 },
			wantErr: true,
		},
		{
			name:    "max top n below default",
			mutate:  func(c *Config) { c.Suggest.MaxTopN = 2 },
			wantErr: true,
		},
		{
			name:    "negative weight",
			mutate:  func(c *Config) { c.Suggest.Weights.Theme = -0.1 },
			wantErr: true,
		},
		{
			name: "all-zero weights",
			mutate: func(c *Config) {
				c.Suggest.Weights = WeightsConfig{}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SUGGEST_DEFAULT_TOP_N", "6")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("HISTORY_GC_INTERVAL", "90s")
	t.Setenv(ConfigPathEnvVar, "/nonexistent/attune.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Suggest.DefaultTopN != 6 {
		t.Errorf("Suggest.DefaultTopN = %d, want 6", cfg.Suggest.DefaultTopN)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("Server.CORSOrigins = %v, want two trimmed origins", cfg.Server.CORSOrigins)
	}
	if cfg.History.GCInterval != 90*time.Second {
		t.Errorf("History.GCInterval = %s, want 90s", cfg.History.GCInterval)
	}
}

func TestEnvTransformDropsUnknownKeys(t *testing.T) {
	t.Parallel()

	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("envTransformFunc(PATH) = %q, want dropped", got)
	}
	if got := envTransformFunc("HTTP_PORT"); got != "server.port" {
		t.Errorf("envTransformFunc(HTTP_PORT) = %q, want server.port", got)
	}
}

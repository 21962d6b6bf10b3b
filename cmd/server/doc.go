// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Command server runs the Attune suggestion service.
//
// Startup order: configuration, logging, game catalog, session history
// store, theme extraction chain, suggestion engine, HTTP API. Long-running
// components (the HTTP listener and the history store's garbage collection
// loop) run under a supervisor tree and are restarted on failure. SIGINT
// and SIGTERM trigger a graceful shutdown.
//
// Configuration comes from built-in defaults, an optional YAML file
// (CONFIG_PATH or a well-known location), and environment variables, in
// increasing precedence. See internal/config for the full surface.
package main

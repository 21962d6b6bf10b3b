// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package api exposes the suggestion engine over HTTP using chi.
//
// All endpoints speak the APIResponse envelope. Routes:
//
//	GET  /health                        liveness and catalog size
//	GET  /metrics                       Prometheus metrics
//	POST /api/v1/suggestions            ranked game suggestions
//	GET  /api/v1/games                  full catalog listing
//	GET  /api/v1/games/{gameID}         single game
//	POST /api/v1/sessions/start         record a session start
//	POST /api/v1/sessions/complete      record a session completion
//	POST /api/v1/sessions/feedback      record helpful/unhelpful feedback
//	POST /api/v1/admin/catalog/reload   atomically reload the catalog
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig tunes the HTTP middleware stack.
type RouterConfig struct {
	CORSOrigins       []string
	RateLimitReqs     int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// NewRouter assembles the chi router with the full middleware stack.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(AccessLog())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(PrometheusMetrics())
		if !cfg.RateLimitDisabled {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}

		r.Post("/suggestions", h.Suggestions)

		r.Get("/games", h.ListGames)
		r.Get("/games/{gameID}", h.GetGame)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/start", h.SessionStart)
			r.Post("/complete", h.SessionComplete)
			r.Post("/feedback", h.SessionFeedback)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/catalog/reload", h.ReloadCatalog)
		})
	})

	return r
}

// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/attune-labs/attune/internal/catalog"
	"github.com/attune-labs/attune/internal/history"
	"github.com/attune-labs/attune/internal/logging"
	"github.com/attune-labs/attune/internal/metrics"
	"github.com/attune-labs/attune/internal/suggest"
	"github.com/attune-labs/attune/internal/validation"
)

// Handler carries the dependencies for all API endpoints.
type Handler struct {
	engine   *suggest.Engine
	catalogs *catalog.Store
	hist     history.Store
	logger   zerolog.Logger
	version  string
}

// NewHandler creates the API handler.
func NewHandler(engine *suggest.Engine, catalogs *catalog.Store, hist history.Store, version string) *Handler {
	return &Handler{
		engine:   engine,
		catalogs: catalogs,
		hist:     hist,
		logger:   logging.WithComponent("api"),
		version:  version,
	}
}

// Suggestions handles POST /api/v1/suggestions.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SuggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return
	}

	resp, err := h.engine.Suggest(r.Context(), req.toEngine())
	if err != nil {
		if errors.Is(err, suggest.ErrInvalidRequest) {
			rw.BadRequest(err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Suggestion pipeline failed")
		rw.InternalError("Failed to produce suggestions")
		return
	}

	rw.Success(resp)
}

// ListGames handles GET /api/v1/games.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	cat := h.catalogs.Current()
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"games": cat.Games(),
		"count": cat.Len(),
	})
}

// GetGame handles GET /api/v1/games/{gameID}.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	gameID := chi.URLParam(r, "gameID")
	game := h.catalogs.Current().Get(gameID)
	if game == nil {
		rw.NotFound("Unknown game: " + gameID)
		return
	}

	rw.Success(game)
}

// SessionStart handles POST /api/v1/sessions/start.
func (h *Handler) SessionStart(w http.ResponseWriter, r *http.Request) {
	h.recordSession(w, r, func(req *SessionEventRequest) error {
		return h.hist.RecordStart(r.Context(), req.CoupleID, req.GameID)
	})
}

// SessionComplete handles POST /api/v1/sessions/complete.
func (h *Handler) SessionComplete(w http.ResponseWriter, r *http.Request) {
	h.recordSession(w, r, func(req *SessionEventRequest) error {
		return h.hist.RecordComplete(r.Context(), req.CoupleID, req.GameID)
	})
}

// recordSession shares the decode/validate/lookup path of the session
// event endpoints.
func (h *Handler) recordSession(w http.ResponseWriter, r *http.Request, record func(*SessionEventRequest) error) {
	rw := NewResponseWriter(w, r)

	var req SessionEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return
	}
	if h.catalogs.Current().Get(req.GameID) == nil {
		rw.NotFound("Unknown game: " + req.GameID)
		return
	}

	if err := record(&req); err != nil {
		rw.StorageError(err)
		return
	}

	rw.Created(map[string]string{
		"couple_id": req.CoupleID,
		"game_id":   req.GameID,
	})
}

// SessionFeedback handles POST /api/v1/sessions/feedback.
func (h *Handler) SessionFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return
	}
	if h.catalogs.Current().Get(req.GameID) == nil {
		rw.NotFound("Unknown game: " + req.GameID)
		return
	}

	if err := h.hist.RecordFeedback(r.Context(), req.CoupleID, req.GameID, *req.Helpful); err != nil {
		rw.StorageError(err)
		return
	}

	rw.Created(map[string]interface{}{
		"couple_id": req.CoupleID,
		"game_id":   req.GameID,
		"helpful":   *req.Helpful,
	})
}

// ReloadCatalog handles POST /api/v1/admin/catalog/reload.
// The new catalog swaps in atomically; on failure the previous one stays
// active and the error is reported.
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.catalogs.Reload()
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("error").Inc()
		h.logger.Error().Err(err).Msg("Catalog reload failed")
		rw.ErrorWithDetails(http.StatusUnprocessableEntity, ErrCodeBadRequest,
			"Catalog reload failed; previous catalog remains active", err.Error())
		return
	}

	metrics.CatalogReloads.WithLabelValues("ok").Inc()
	metrics.CatalogGames.Set(float64(cat.Len()))
	h.logger.Info().Int("games", cat.Len()).Msg("Catalog reloaded")

	rw.Success(map[string]int{"games": cat.Len()})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"games":   h.catalogs.Current().Len(),
	})
}

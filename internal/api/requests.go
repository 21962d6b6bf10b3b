// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/attune-labs/attune/internal/suggest"
)

// maxRequestBody caps request body size. Transcripts are conversation
// snippets, not documents.
const maxRequestBody = 1 << 20 // 1MB

// SuggestionRequest is the POST /api/v1/suggestions payload.
type SuggestionRequest struct {
	CoupleID             string   `json:"couple_id" validate:"required,max=128"`
	Transcript           string   `json:"transcript" validate:"max=65536"`
	EmotionalState       string   `json:"emotional_state" validate:"max=512"`
	ElevationLevel       *float64 `json:"elevation_level" validate:"omitempty,gte=0,lte=10"`
	TimeAvailableMinutes *int     `json:"time_available_minutes" validate:"omitempty,gt=0"`
	UserLevel            int      `json:"user_level" validate:"required,gte=1"`
	TopN                 int      `json:"top_n" validate:"omitempty,gte=1,lte=10"`
}

// toEngine converts the DTO into the engine's request type.
func (r *SuggestionRequest) toEngine() *suggest.Request {
	return &suggest.Request{
		CoupleID:             r.CoupleID,
		Transcript:           r.Transcript,
		EmotionalState:       r.EmotionalState,
		ElevationLevel:       r.ElevationLevel,
		TimeAvailableMinutes: r.TimeAvailableMinutes,
		UserLevel:            r.UserLevel,
		TopN:                 r.TopN,
	}
}

// SessionEventRequest is the payload for session start/complete endpoints.
type SessionEventRequest struct {
	CoupleID string `json:"couple_id" validate:"required,max=128"`
	GameID   string `json:"game_id" validate:"required,max=128"`
}

// FeedbackRequest is the POST /api/v1/sessions/feedback payload.
// Helpful is a pointer so an absent field fails validation instead of
// silently counting as negative feedback.
type FeedbackRequest struct {
	CoupleID string `json:"couple_id" validate:"required,max=128"`
	GameID   string `json:"game_id" validate:"required,max=128"`
	Helpful  *bool  `json:"helpful" validate:"required"`
}

// decodeJSON parses a JSON request body into dst, enforcing the body size
// cap and rejecting unknown garbage with a useful message.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

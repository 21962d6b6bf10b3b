// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package suggest

import (
	"errors"
	"fmt"

	"github.com/attune-labs/attune/internal/catalog"
	"github.com/attune-labs/attune/internal/themes"
)

// ErrInvalidRequest wraps request validation failures. Invalid input is
// rejected outright, never clamped into range.
var ErrInvalidRequest = errors.New("invalid suggestion request")

// Request carries everything known about the couple's current situation.
// Nil pointer fields mean the signal was not provided.
type Request struct {
	// CoupleID identifies the couple for history lookups. Required.
	CoupleID string `json:"couple_id"`

	// Transcript is recent conversation text for theme extraction.
	Transcript string `json:"transcript,omitempty"`

	// EmotionalState is a short free-text mood descriptor.
	EmotionalState string `json:"emotional_state,omitempty"`

	// ElevationLevel is the conflict elevation reading in [0, 10].
	ElevationLevel *float64 `json:"elevation_level,omitempty"`

	// TimeAvailableMinutes is how long the couple has right now.
	TimeAvailableMinutes *int `json:"time_available_minutes,omitempty"`

	// UserLevel is the couple's development level, >= 1. Required.
	UserLevel int `json:"user_level"`

	// TopN caps the number of suggestions; 0 uses the configured default.
	TopN int `json:"top_n,omitempty"`
}

// Validate rejects out-of-range input. Callers get a definite error rather
// than silently adjusted values.
func (r *Request) Validate(maxTopN int) error {
	if r.CoupleID == "" {
		return fmt.Errorf("%w: couple_id is required", ErrInvalidRequest)
	}
	if r.UserLevel < 1 {
		return fmt.Errorf("%w: user_level must be >= 1, got %d", ErrInvalidRequest, r.UserLevel)
	}
	if r.ElevationLevel != nil && (*r.ElevationLevel < 0 || *r.ElevationLevel > 10) {
		return fmt.Errorf("%w: elevation_level must be in [0, 10], got %g", ErrInvalidRequest, *r.ElevationLevel)
	}
	if r.TimeAvailableMinutes != nil && *r.TimeAvailableMinutes <= 0 {
		return fmt.Errorf("%w: time_available_minutes must be positive, got %d", ErrInvalidRequest, *r.TimeAvailableMinutes)
	}
	if r.TopN < 0 || r.TopN > maxTopN {
		return fmt.Errorf("%w: top_n must be in [0, %d], got %d", ErrInvalidRequest, maxTopN, r.TopN)
	}
	return nil
}

// FactorBreakdown exposes the per-factor scores behind a suggestion.
type FactorBreakdown struct {
	Theme      float64 `json:"theme"`
	Time       float64 `json:"time"`
	Level      float64 `json:"level"`
	Freshness  float64 `json:"freshness"`
	Preference float64 `json:"preference"`
}

// Suggestion is one ranked game with everything the couple needs to play
// it and the reasoning behind the pick.
type Suggestion struct {
	GameID          string                `json:"game_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Objective       string                `json:"objective"`
	HowToPlay       string                `json:"how_to_play"`
	SafetyNotes     string                `json:"safety_notes,omitempty"`
	DurationMinutes catalog.DurationRange `json:"duration_minutes"`
	LevelRequired   int                   `json:"level_required"`
	Themes          []string              `json:"themes"`
	Score           float64               `json:"score"`
	Rationale       string                `json:"rationale"`
	Factors         FactorBreakdown       `json:"factors"`
}

// Response is a full suggestion result.
type Response struct {
	// Suggestions in descending score order.
	Suggestions []Suggestion `json:"suggestions"`

	// Warnings are advisory notes accompanying the suggestions.
	Warnings []string `json:"warnings,omitempty"`

	// Flags are the contraindication flags asserted for this situation.
	Flags []string `json:"flags,omitempty"`

	// ExtractionSource reports which path produced the theme signal.
	ExtractionSource themes.Source `json:"extraction_source"`

	// Fallback reports that no candidate survived filtering and the
	// default safe set was served instead.
	Fallback bool `json:"fallback"`
}

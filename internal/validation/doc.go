// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator backs ValidateStruct, which translates
// field failures into human-readable messages for API error responses:
//
//	type SuggestionRequest struct {
//	    CoupleID       string   `validate:"required"`
//	    UserLevel      int      `validate:"required,gte=1"`
//	    ElevationLevel *float64 `validate:"omitempty,gte=0,lte=10"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // respond 400 with verr.Error() and verr.Details()
//	}
package validation

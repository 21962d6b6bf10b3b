// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package history records per-couple game sessions and feedback.
//
// Two views are kept: an append-only event log for audit and replay, and
// per-game aggregates that feed the freshness and preference scoring
// signals. Both are updated in a single transaction so they never drift.
package history

import (
	"context"
	"time"
)

// EventKind classifies a session event.
type EventKind string

const (
	EventStart    EventKind = "start"
	EventComplete EventKind = "complete"
	EventFeedback EventKind = "feedback"
)

// Event is one append-only history record.
type Event struct {
	Kind     EventKind `json:"kind"`
	CoupleID string    `json:"couple_id"`
	GameID   string    `json:"game_id"`
	Helpful  *bool     `json:"helpful,omitempty"`
	At       time.Time `json:"at"`
}

// GameStats aggregates a couple's history with one game. The zero value
// means the couple has never played the game.
type GameStats struct {
	// LastPlayed is the most recent start or completion.
	LastPlayed time.Time `json:"last_played"`

	// Plays counts started sessions.
	Plays int `json:"plays"`

	// Completions counts completed sessions.
	Completions int `json:"completions"`

	// HelpfulCount counts positive feedback events.
	HelpfulCount int `json:"helpful_count"`

	// FeedbackCount counts all feedback events.
	FeedbackCount int `json:"feedback_count"`
}

// Store persists session history and serves the aggregates the scorer
// consumes. Implementations must be safe for concurrent use.
type Store interface {
	// RecordStart marks a game session as started.
	RecordStart(ctx context.Context, coupleID, gameID string) error

	// RecordComplete marks a game session as completed.
	RecordComplete(ctx context.Context, coupleID, gameID string) error

	// RecordFeedback records whether the couple found a game helpful.
	RecordFeedback(ctx context.Context, coupleID, gameID string, helpful bool) error

	// Stats returns the couple's per-game aggregates. Games never played
	// are absent from the map.
	Stats(ctx context.Context, coupleID string) (map[string]GameStats, error)

	// Close releases underlying resources.
	Close() error
}

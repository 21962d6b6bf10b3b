// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package catalog

import "fmt"

// Theme identifiers form a fixed vocabulary. Games and extracted context
// weights both reference these identifiers; anything outside the vocabulary
// is a catalog configuration error.
const (
	ThemeResentment     = "resentment"
	ThemeDisconnection  = "disconnection"
	ThemeHouseholdLabor = "household_labor"
	ThemeAppreciation   = "appreciation"
	ThemeCommunication  = "communication"
	ThemeTimeTogether   = "time_together"
	ThemeFinancial      = "financial_stress"
	ThemeIntimacy       = "intimacy"
	ThemeParenting      = "parenting"
	ThemeTrust          = "trust"
	ThemeControl        = "control"
	ThemeSupport        = "support"
	ThemeInLaws         = "in_laws"
	ThemeJealousy       = "jealousy"
	ThemePersonalGrowth = "personal_growth"
)

// Contraindication flags describe situations under which a game must never
// be suggested. The safety checker derives the asserted flags from context.
const (
	FlagActiveConflict = "active_conflict"
	FlagRecentBetrayal = "recent_betrayal"
	FlagHighElevation  = "high_elevation"
	FlagAcuteGrief     = "acute_grief"
)

// KnownThemes is the set of valid theme identifiers.
var KnownThemes = map[string]struct{}{
	ThemeResentment:     {},
	ThemeDisconnection:  {},
	ThemeHouseholdLabor: {},
	ThemeAppreciation:   {},
	ThemeCommunication:  {},
	ThemeTimeTogether:   {},
	ThemeFinancial:      {},
	ThemeIntimacy:       {},
	ThemeParenting:      {},
	ThemeTrust:          {},
	ThemeControl:        {},
	ThemeSupport:        {},
	ThemeInLaws:         {},
	ThemeJealousy:       {},
	ThemePersonalGrowth: {},
}

// KnownFlags is the set of valid contraindication flags.
var KnownFlags = map[string]struct{}{
	FlagActiveConflict: {},
	FlagRecentBetrayal: {},
	FlagHighElevation:  {},
	FlagAcuteGrief:     {},
}

// DurationRange is an inclusive range of minutes a game takes to play.
type DurationRange struct {
	// Min is the shortest realistic playthrough in minutes.
	Min int `json:"min" koanf:"min"`

	// Max is the longest realistic playthrough in minutes.
	Max int `json:"max" koanf:"max"`
}

// Game is a short, structured relational exercise. Games are immutable once
// loaded; all fields are read-only after catalog construction.
type Game struct {
	// ID is the stable identifier, unique across the catalog.
	ID string `json:"id" koanf:"id"`

	// Title is the display name.
	Title string `json:"title" koanf:"title"`

	// Description summarizes the game for the couple.
	Description string `json:"description" koanf:"description"`

	// Objective states what the game is meant to accomplish.
	Objective string `json:"objective" koanf:"objective"`

	// HowToPlay contains the play instructions.
	HowToPlay string `json:"how_to_play" koanf:"how_to_play"`

	// SafetyNotes contains cautions shown alongside the game.
	SafetyNotes string `json:"safety_notes" koanf:"safety_notes"`

	// Duration is the inclusive minute range, Min <= Max, both positive.
	Duration DurationRange `json:"duration_minutes" koanf:"duration_minutes"`

	// LevelRequired gates the game to users at or above this level.
	LevelRequired int `json:"level_required" koanf:"level_required"`

	// Themes is the non-empty set of theme identifiers the game addresses.
	Themes []string `json:"themes" koanf:"themes"`

	// Tags are free-form labels for UI filtering only; never scored.
	Tags []string `json:"tags,omitempty" koanf:"tags"`

	// Contraindications are situational flags under which the game must
	// never be suggested.
	Contraindications []string `json:"contraindications,omitempty" koanf:"contraindications"`
}

// HasTheme reports whether the game addresses the given theme.
func (g *Game) HasTheme(theme string) bool {
	for _, t := range g.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// HasContraindication reports whether the game carries the given flag.
func (g *Game) HasContraindication(flag string) bool {
	for _, c := range g.Contraindications {
		if c == flag {
			return true
		}
	}
	return false
}

// validate checks a single game definition.
func (g *Game) validate() error {
	if g.ID == "" {
		return fmt.Errorf("game has empty id")
	}
	if g.Title == "" {
		return fmt.Errorf("game %q: empty title", g.ID)
	}
	if g.Duration.Min <= 0 || g.Duration.Max <= 0 {
		return fmt.Errorf("game %q: duration bounds must be positive, got {%d,%d}", g.ID, g.Duration.Min, g.Duration.Max)
	}
	if g.Duration.Min > g.Duration.Max {
		return fmt.Errorf("game %q: duration min %d > max %d", g.ID, g.Duration.Min, g.Duration.Max)
	}
	if g.LevelRequired < 1 {
		return fmt.Errorf("game %q: level_required must be >= 1, got %d", g.ID, g.LevelRequired)
	}
	if len(g.Themes) == 0 {
		return fmt.Errorf("game %q: at least one theme required", g.ID)
	}
	for _, t := range g.Themes {
		if _, ok := KnownThemes[t]; !ok {
			return fmt.Errorf("game %q: unknown theme %q", g.ID, t)
		}
	}
	for _, c := range g.Contraindications {
		if _, ok := KnownFlags[c]; !ok {
			return fmt.Errorf("game %q: unknown contraindication %q", g.ID, c)
		}
	}
	return nil
}

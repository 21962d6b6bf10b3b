// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package safety gates games against the couple's current situation.
//
// The checker is a hard gate: a game carrying an asserted contraindication
// flag, or one that cannot physically fit the available time, is removed
// from consideration entirely. Scoring never sees unsafe games and no
// weighting can resurrect them. All functions here are pure; the caller
// owns logging and metrics.
package safety

import (
	"fmt"
	"strings"

	"github.com/attune-labs/attune/internal/catalog"
)

// Elevation thresholds. Above High the high_elevation flag is asserted;
// above Advisory an advisory warning accompanies the response.
const (
	AdvisoryElevation = 5.0
	HighElevation     = 7.0
)

// Situation is the safety-relevant view of a suggestion request.
// Nil pointer fields mean the signal was not provided.
type Situation struct {
	// Flags is the set of asserted contraindication flags.
	Flags map[string]struct{}

	// Elevation is the conflict elevation reading in [0, 10], if provided.
	Elevation *float64

	// TimeAvailable is the couple's available minutes, if provided.
	TimeAvailable *int
}

// Result is the safety verdict for a single game.
type Result struct {
	// Safe reports whether the game may be suggested at all.
	Safe bool

	// DeniedFlags lists the contraindication flags that removed the game.
	DeniedFlags []string

	// TimeDenied reports removal because the game's minimum duration
	// exceeds the available time.
	TimeDenied bool
}

// conflictTerms assert active_conflict when found in the emotional state.
// The transcript deliberately doesn't count here: a couple describing a
// pattern of fighting is not mid-fight.
var conflictTerms = []string{
	"fighting", "screaming", "yelling", "mid-fight", "shouting match",
}

// crisisTerms maps the remaining vocabulary-derived flags to terms matched
// against both the emotional state and the transcript.
var crisisTerms = map[string][]string{
	catalog.FlagRecentBetrayal: {
		"betrayal", "betrayed", "affair", "cheated", "cheating", "unfaithful",
	},
	catalog.FlagAcuteGrief: {
		"grieving", "grief", "mourning", "passed away", "just died", "miscarriage",
	},
}

// DeriveFlags computes the asserted contraindication flags from context.
// high_elevation is asserted when elevation exceeds HighElevation; the
// remaining flags are asserted by crisis vocabulary. Matching is
// case-insensitive substring matching. Derivation is conservative: absent
// signals assert nothing.
func DeriveFlags(transcript, emotionalState string, elevation *float64) map[string]struct{} {
	flags := make(map[string]struct{})

	if elevation != nil && *elevation > HighElevation {
		flags[catalog.FlagHighElevation] = struct{}{}
	}

	state := strings.ToLower(emotionalState)
	for _, term := range conflictTerms {
		if strings.Contains(state, term) {
			flags[catalog.FlagActiveConflict] = struct{}{}
			break
		}
	}

	haystack := state + " " + strings.ToLower(transcript)
	for flag, terms := range crisisTerms {
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				flags[flag] = struct{}{}
				break
			}
		}
	}

	return flags
}

// Check evaluates one game against the situation. It is total: every game
// gets a definite verdict.
func Check(g *catalog.Game, sit Situation) Result {
	res := Result{Safe: true}

	for _, contra := range g.Contraindications {
		if _, asserted := sit.Flags[contra]; asserted {
			res.Safe = false
			res.DeniedFlags = append(res.DeniedFlags, contra)
		}
	}

	if sit.TimeAvailable != nil && g.Duration.Min > *sit.TimeAvailable {
		res.Safe = false
		res.TimeDenied = true
	}

	return res
}

// Warnings returns advisory warnings for the situation. Advisories
// accompany otherwise-safe suggestions; they never remove games.
func Warnings(sit Situation) []string {
	var warnings []string

	if sit.Elevation != nil && *sit.Elevation > AdvisoryElevation && *sit.Elevation <= HighElevation {
		warnings = append(warnings, fmt.Sprintf(
			"Elevation is raised (%.1f). Consider a brief cool-down before starting any game.",
			*sit.Elevation))
	}

	if _, ok := sit.Flags[catalog.FlagHighElevation]; ok && sit.Elevation != nil {
		warnings = append(warnings, fmt.Sprintf(
			"Elevation is high (%.1f). Emotionally intense games are excluded; a calming reset is suggested first.",
			*sit.Elevation))
	}

	return warnings
}

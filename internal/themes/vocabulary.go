// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package themes

import "github.com/attune-labs/attune/internal/catalog"

// Definition describes one theme in the fixed vocabulary: its identifier,
// the description indexed by the semantic search service, and the trigger
// terms used by the keyword fallback path.
//
// Single-word triggers match whole tokens; multi-word triggers match as
// substrings of the normalized transcript.
type Definition struct {
	ID          string
	Description string
	Triggers    []string
}

// Vocabulary returns the fixed theme vocabulary. The keyword extractor and
// the semantic service index are both built from this list; the identifiers
// match the catalog theme constants.
func Vocabulary() []Definition {
	return []Definition{
		{
			ID:          catalog.ThemeResentment,
			Description: "Built-up anger, frustration, or bitterness toward partner",
			Triggers:    []string{"resent", "resentment", "bitter", "fed up", "tired of doing everything", "taken for granted", "never help"},
		},
		{
			ID:          catalog.ThemeDisconnection,
			Description: "Feeling emotionally distant or unconnected from partner",
			Triggers:    []string{"distant", "disconnected", "roommates", "alone", "drifted", "parallel lives", "miss feeling close"},
		},
		{
			ID:          catalog.ThemeHouseholdLabor,
			Description: "Conflicts about division of housework and domestic responsibilities",
			Triggers:    []string{"chores", "dishes", "laundry", "cleaning", "housework", "cooking", "the house is always a mess"},
		},
		{
			ID:          catalog.ThemeAppreciation,
			Description: "Need for recognition and gratitude from partner",
			Triggers:    []string{"appreciate", "appreciated", "unappreciated", "notice", "acknowledgment", "no thanks", "grateful"},
		},
		{
			ID:          catalog.ThemeCommunication,
			Description: "Issues with how partners talk to each other",
			Triggers:    []string{"listen", "listening", "interrupt", "shut down", "can't talk", "never listen", "hear me"},
		},
		{
			ID:          catalog.ThemeTimeTogether,
			Description: "Desire for more quality time and attention from partner",
			Triggers:    []string{"quality time", "always working", "on your phone", "never see each other", "date night", "couple time"},
		},
		{
			ID:          catalog.ThemeFinancial,
			Description: "Money-related tensions and disagreements",
			Triggers:    []string{"money", "afford", "spending", "budget", "debt", "finances", "bills"},
		},
		{
			ID:          catalog.ThemeIntimacy,
			Description: "Physical and emotional intimacy concerns",
			Triggers:    []string{"intimacy", "intimate", "affection", "physical", "sex", "rejected", "spark"},
		},
		{
			ID:          catalog.ThemeParenting,
			Description: "Disagreements about child-rearing and parenting approaches",
			Triggers:    []string{"kids", "children", "parenting", "discipline", "bedtime", "too strict", "school"},
		},
		{
			ID:          catalog.ThemeTrust,
			Description: "Issues with honesty, reliability, and faith in partner",
			Triggers:    []string{"trust", "lied", "lying", "promise", "honest", "hide things", "rely on you"},
		},
		{
			ID:          catalog.ThemeControl,
			Description: "Power dynamics and control issues in the relationship",
			Triggers:    []string{"controlling", "controlled", "always right", "my way", "decisions", "your way or"},
		},
		{
			ID:          catalog.ThemeSupport,
			Description: "Need for emotional and practical support from partner",
			Triggers:    []string{"support", "supportive", "have my back", "there for me", "on my own", "encourage"},
		},
		{
			ID:          catalog.ThemeInLaws,
			Description: "Conflicts involving extended family members",
			Triggers:    []string{"in-laws", "your mother", "your father", "your parents", "your family", "relatives"},
		},
		{
			ID:          catalog.ThemeJealousy,
			Description: "Feelings of jealousy or insecurity about partner's relationships",
			Triggers:    []string{"jealous", "jealousy", "flirt", "flirting", "coworker", "texting them", "insecure"},
		},
		{
			ID:          catalog.ThemePersonalGrowth,
			Description: "Individual development and self-improvement journeys",
			Triggers:    []string{"growing", "goals", "dreams", "space to", "changing", "hold me back", "different things now"},
		},
	}
}

// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package catalog

// DefaultGames returns the built-in game set used when no catalog file is
// configured. The set deliberately includes at least one short, level-1,
// zero-contraindication game so the fallback suggestion path always has
// something playable.
func DefaultGames() []Game {
	return []Game{
		{
			ID:          "and-what-else",
			Title:       "And What Else?",
			Description: "Take turns voicing small resentments without rebuttal, each answered only with the question: and what else?",
			Objective:   "Drain accumulated resentment by letting it be heard without defense.",
			HowToPlay:   "Partner A speaks one frustration. Partner B responds only with \"and what else?\" until A says \"that's everything\". Swap roles.",
			SafetyNotes: "Listener must not defend, explain, or correct. Stop if either partner feels flooded.",
			Duration:    DurationRange{Min: 10, Max: 15},
			LevelRequired: 2,
			Themes:      []string{ThemeResentment, ThemeHouseholdLabor, ThemeAppreciation},
			Tags:        []string{"listening", "turn-based"},
			Contraindications: []string{FlagActiveConflict},
		},
		{
			ID:          "appreciation-ping",
			Title:       "Appreciation Ping",
			Description: "A rapid exchange of one specific appreciation each.",
			Objective:   "Reconnect through concrete, recent gratitude.",
			HowToPlay:   "Each partner names one specific thing the other did this week that they appreciated, and what it meant to them.",
			SafetyNotes: "Keep it specific and recent; avoid backhanded compliments.",
			Duration:    DurationRange{Min: 2, Max: 3},
			LevelRequired: 1,
			Themes:      []string{ThemeAppreciation, ThemeTimeTogether},
			Tags:        []string{"quick", "daily"},
		},
		{
			ID:          "breath-sync",
			Title:       "Breath Sync",
			Description: "Two minutes of matched breathing, facing each other.",
			Objective:   "Re-establish physical co-regulation before talking.",
			HowToPlay:   "Sit facing each other, hands touching if comfortable. Match breath pace for two minutes. No words.",
			SafetyNotes: "Eye contact is optional; closed eyes are fine.",
			Duration:    DurationRange{Min: 2, Max: 5},
			LevelRequired: 1,
			Themes:      []string{ThemeDisconnection, ThemeCommunication},
			Tags:        []string{"quick", "somatic"},
		},
		{
			ID:          "chore-draft",
			Title:       "Chore Draft",
			Description: "Draft household tasks like a sports draft, alternating picks.",
			Objective:   "Surface and rebalance invisible household labor.",
			HowToPlay:   "List every recurring task on cards. Alternate picks, explaining why you chose each. Unclaimed cards get negotiated last.",
			SafetyNotes: "This is about visibility, not scorekeeping. Park disputes about history.",
			Duration:    DurationRange{Min: 15, Max: 25},
			LevelRequired: 2,
			Themes:      []string{ThemeHouseholdLabor, ThemeResentment},
			Tags:        []string{"structured", "practical"},
			Contraindications: []string{FlagActiveConflict},
		},
		{
			ID:          "closeness-ladder",
			Title:       "Closeness Ladder",
			Description: "Escalating questions from light to vulnerable, stopping anywhere.",
			Objective:   "Rebuild emotional and physical intimacy at a consensual pace.",
			HowToPlay:   "Take turns drawing question cards ordered by depth. Either partner may stop the climb at any rung without explanation.",
			SafetyNotes: "Stopping is success, not failure. Never push past a declined rung.",
			Duration:    DurationRange{Min: 10, Max: 20},
			LevelRequired: 3,
			Themes:      []string{ThemeIntimacy, ThemeDisconnection},
			Tags:        []string{"cards", "vulnerability"},
			Contraindications: []string{FlagHighElevation, FlagRecentBetrayal},
		},
		{
			ID:          "daily-debrief",
			Title:       "Daily Debrief",
			Description: "A five-minute structured check-in: high, low, and one need.",
			Objective:   "Keep a steady communication channel open with minimal effort.",
			HowToPlay:   "Each partner shares the day's high point, low point, and one thing they need tomorrow. Listener reflects back the need.",
			SafetyNotes: "Needs are requests, not demands.",
			Duration:    DurationRange{Min: 5, Max: 10},
			LevelRequired: 1,
			Themes:      []string{ThemeCommunication, ThemeTimeTogether},
			Tags:        []string{"daily", "check-in"},
		},
		{
			ID:          "gratitude-volley",
			Title:       "Gratitude Volley",
			Description: "Alternate gratitudes back and forth until someone runs dry.",
			Objective:   "Shift attention from deficits to what is already working.",
			HowToPlay:   "Volley one-sentence gratitudes back and forth. No repeats. Play until a genuine pause, then sit with the last one.",
			SafetyNotes: "Keep gratitudes about the partner or the relationship, not the weather.",
			Duration:    DurationRange{Min: 3, Max: 5},
			LevelRequired: 1,
			Themes:      []string{ThemeAppreciation, ThemeSupport},
			Tags:        []string{"quick"},
		},
		{
			ID:          "jealousy-journal",
			Title:       "Jealousy Journal",
			Description: "Write, then trade, the story each partner tells themselves.",
			Objective:   "Separate the triggering event from the narrative built on it.",
			HowToPlay:   "Each writes the event, the story they told themselves, and the feeling underneath. Trade pages and read silently before talking.",
			SafetyNotes: "Read the whole page before responding to any of it.",
			Duration:    DurationRange{Min: 10, Max: 15},
			LevelRequired: 3,
			Themes:      []string{ThemeJealousy, ThemeTrust},
			Tags:        []string{"writing"},
			Contraindications: []string{FlagHighElevation},
		},
		{
			ID:          "money-map",
			Title:       "Money Map",
			Description: "Map each partner's money story before touching the budget.",
			Objective:   "Understand the history behind each partner's financial reflexes.",
			HowToPlay:   "Each partner sketches how money worked in their childhood home, then links one current habit to that history. Only then discuss the budget item at hand.",
			SafetyNotes: "No fixing during the mapping phase.",
			Duration:    DurationRange{Min: 20, Max: 30},
			LevelRequired: 3,
			Themes:      []string{ThemeFinancial, ThemeControl},
			Tags:        []string{"structured"},
			Contraindications: []string{FlagHighElevation, FlagActiveConflict},
		},
		{
			ID:          "parenting-pact",
			Title:       "Parenting Pact",
			Description: "Agree on one united front for one recurring kid situation.",
			Objective:   "Replace in-the-moment disagreement with a pre-agreed script.",
			HowToPlay:   "Pick one recurring situation. Each proposes a response, then negotiate a single shared script both will use for one week.",
			SafetyNotes: "One situation at a time. Revisit after a week before adding more.",
			Duration:    DurationRange{Min: 15, Max: 25},
			LevelRequired: 2,
			Themes:      []string{ThemeParenting, ThemeSupport},
			Tags:        []string{"practical"},
			Contraindications: []string{FlagActiveConflict},
		},
		{
			ID:          "repair-attempt",
			Title:       "Repair Attempt",
			Description: "A scripted de-escalation exchange for after a rupture.",
			Objective:   "Practice turning toward each other right after conflict.",
			HowToPlay:   "The initiator says \"I want to get back to us\". The other names one thing they can own. Swap. End with one agreed next step.",
			SafetyNotes: "Ownership statements only; no \"I own that you...\" constructions.",
			Duration:    DurationRange{Min: 5, Max: 10},
			LevelRequired: 2,
			Themes:      []string{ThemeCommunication, ThemeResentment},
			Tags:        []string{"repair"},
		},
		{
			ID:          "trust-rebuild",
			Title:       "Trust Ledger",
			Description: "A weekly review of kept and missed commitments, without blame.",
			Objective:   "Rebuild reliability through small, visible commitments.",
			HowToPlay:   "Review last week's commitments: kept, missed, and why. Each partner sets one small commitment for the coming week.",
			SafetyNotes: "Missed commitments get curiosity, not prosecution.",
			Duration:    DurationRange{Min: 20, Max: 40},
			LevelRequired: 4,
			Themes:      []string{ThemeTrust, ThemePersonalGrowth},
			Tags:        []string{"weekly", "structured"},
			Contraindications: []string{FlagHighElevation, FlagAcuteGrief},
		},
	}
}

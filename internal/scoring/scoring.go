// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package scoring ranks safety-approved games for a couple's situation.
//
// Every factor scores in [0, 1] and the total is their weighted blend, so
// the total is also bounded in [0, 1]. Scoring is pure: identical inputs
// always produce identical scores. The safety checker has already removed
// unsafe games before any of this runs.
package scoring

import (
	"time"

	"github.com/attune-labs/attune/internal/catalog"
	"github.com/attune-labs/attune/internal/history"
	"github.com/attune-labs/attune/internal/themes"
)

// FreshnessHorizonDays is the repetition-avoidance horizon: a game played
// this many days ago (or longer) scores full freshness.
const FreshnessHorizonDays = 30

// Weights blends the five scoring factors. Use DefaultWeights unless
// configuration overrides them; Normalize before scoring.
type Weights struct {
	Theme      float64 `koanf:"theme"`
	Time       float64 `koanf:"time"`
	Level      float64 `koanf:"level"`
	Freshness  float64 `koanf:"freshness"`
	Preference float64 `koanf:"preference"`
}

// DefaultWeights returns the production factor blend.
func DefaultWeights() Weights {
	return Weights{
		Theme:      0.40,
		Time:       0.20,
		Level:      0.15,
		Freshness:  0.15,
		Preference: 0.10,
	}
}

// Normalize scales the weights to sum to 1.0. A non-positive sum resets to
// the defaults rather than producing degenerate scores.
func (w *Weights) Normalize() {
	sum := w.Theme + w.Time + w.Level + w.Freshness + w.Preference
	if sum <= 0 {
		*w = DefaultWeights()
		return
	}
	w.Theme /= sum
	w.Time /= sum
	w.Level /= sum
	w.Freshness /= sum
	w.Preference /= sum
}

// Candidate is a scored game with its factor breakdown. The breakdown is
// exposed so rationale generation and tests can see why a game ranked
// where it did.
type Candidate struct {
	Game       *catalog.Game
	Theme      float64
	Time       float64
	Level      float64
	Freshness  float64
	Preference float64
	Total      float64
}

// Score computes the full factor breakdown for one game.
// stats may be the zero value for a never-played game.
func (w Weights) Score(g *catalog.Game, tw themes.Weights, userLevel int, timeAvailable *int, stats history.GameStats, now time.Time) Candidate {
	c := Candidate{
		Game:       g,
		Theme:      ThemeScore(g, tw),
		Time:       TimeScore(g, timeAvailable),
		Level:      LevelScore(g, userLevel),
		Freshness:  FreshnessScore(stats.LastPlayed, now),
		Preference: PreferenceScore(stats),
	}
	c.Total = w.Theme*c.Theme +
		w.Time*c.Time +
		w.Level*c.Level +
		w.Freshness*c.Freshness +
		w.Preference*c.Preference
	return c
}

// ThemeScore measures how well the game's themes match the extracted
// context weights. With no theme signal every game scores a neutral 0.5,
// letting the other factors decide.
func ThemeScore(g *catalog.Game, tw themes.Weights) float64 {
	if len(tw) == 0 {
		return 0.5
	}

	sum := 0.0
	for _, theme := range g.Themes {
		sum += tw[theme]
	}
	score := sum / float64(len(g.Themes))
	return clamp01(score)
}

// TimeScore measures fit between the game's duration range and the
// available time. With no time constraint every game scores 1.0. Games
// whose whole range fits score by fit quality, preferring ranges that
// leave slack; games whose maximum overshoots decay toward zero. Games
// whose minimum exceeds the available time are removed upstream by the
// safety checker and score zero here.
func TimeScore(g *catalog.Game, timeAvailable *int) float64 {
	if timeAvailable == nil {
		return 1.0
	}

	avail := float64(*timeAvailable)
	if avail <= 0 {
		return 0
	}
	maxDur := float64(g.Duration.Max)
	minDur := float64(g.Duration.Min)

	switch {
	case maxDur <= avail:
		return 1.0 - 0.4*(maxDur/avail)
	case minDur <= avail:
		over := (maxDur - avail) / (0.5 * avail)
		return clamp01(0.6 * (1.0 - over))
	default:
		return 0
	}
}

// LevelScore rewards games matched to the user's development level. An
// exact match scores 1.0; easier games decay with the gap but never below
// 0.5, so mastered games stay viable. Games above the user's level score
// zero and are filtered out before scoring anyway.
func LevelScore(g *catalog.Game, userLevel int) float64 {
	gap := userLevel - g.LevelRequired
	if gap < 0 {
		return 0
	}
	score := 1.0 - 0.125*float64(gap)
	if score < 0.5 {
		return 0.5
	}
	return score
}

// FreshnessScore rewards games the couple has not played recently. A
// never-played game scores 1.0; a just-played game scores near zero,
// recovering linearly over the horizon.
func FreshnessScore(lastPlayed, now time.Time) float64 {
	if lastPlayed.IsZero() {
		return 1.0
	}

	days := now.Sub(lastPlayed).Hours() / 24
	return clamp01(days / FreshnessHorizonDays)
}

// PreferenceScore is the couple's helpful-feedback ratio for the game,
// with a neutral 0.5 prior when no feedback exists.
func PreferenceScore(stats history.GameStats) float64 {
	if stats.FeedbackCount == 0 {
		return 0.5
	}
	return clamp01(float64(stats.HelpfulCount) / float64(stats.FeedbackCount))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

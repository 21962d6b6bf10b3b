// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/attune-labs/attune/internal/catalog"
	"github.com/attune-labs/attune/internal/history"
	"github.com/attune-labs/attune/internal/themes"
)

func intPtr(i int) *int { return &i }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWeightsNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    Weights
		check func(t *testing.T, w Weights)
	}{
		{
			name: "defaults already sum to one",
			in:   DefaultWeights(),
			check: func(t *testing.T, w Weights) {
				if !almostEqual(w.Theme, 0.40) || !almostEqual(w.Preference, 0.10) {
					t.Errorf("Normalize() changed already-normalized weights: %+v", w)
				}
			},
		},
		{
			name: "scaled weights normalize to unit sum",
			in:   Weights{Theme: 4, Time: 2, Level: 1.5, Freshness: 1.5, Preference: 1},
			check: func(t *testing.T, w Weights) {
				sum := w.Theme + w.Time + w.Level + w.Freshness + w.Preference
				if !almostEqual(sum, 1.0) {
					t.Errorf("Normalize() sum = %v, want 1.0", sum)
				}
				if !almostEqual(w.Theme, 0.40) {
					t.Errorf("Normalize() theme = %v, want 0.40", w.Theme)
				}
			},
		},
		{
			name: "zero weights reset to defaults",
			in:   Weights{},
			check: func(t *testing.T, w Weights) {
				if w != DefaultWeights() {
					t.Errorf("Normalize() = %+v, want defaults", w)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := tt.in
			w.Normalize()
			tt.check(t, w)
		})
	}
}

func TestThemeScore(t *testing.T) {
	t.Parallel()

	game := &catalog.Game{
		Themes: []string{catalog.ThemeResentment, catalog.ThemeHouseholdLabor, catalog.ThemeAppreciation},
	}

	tests := []struct {
		name string
		tw   themes.Weights
		want float64
	}{
		{
			name: "no theme signal is neutral",
			tw:   themes.Weights{},
			want: 0.5,
		},
		{
			name: "full match on all themes",
			tw: themes.Weights{
				catalog.ThemeResentment:     1.0,
				catalog.ThemeHouseholdLabor: 1.0,
				catalog.ThemeAppreciation:   1.0,
			},
			want: 1.0,
		},
		{
			name: "partial match averages over game themes",
			tw:   themes.Weights{catalog.ThemeHouseholdLabor: 0.9},
			want: 0.3,
		},
		{
			name: "signal on unrelated themes scores zero",
			tw:   themes.Weights{catalog.ThemeFinancial: 1.0},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ThemeScore(game, tt.tw); !almostEqual(got, tt.want) {
				t.Errorf("ThemeScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		game  catalog.Game
		avail *int
		want  float64
	}{
		{
			name: "no time constraint scores full",
			game: catalog.Game{Duration: catalog.DurationRange{Min: 20, Max: 40}},
			want: 1.0,
		},
		{
			name:  "short game with generous time leaves slack",
			game:  catalog.Game{Duration: catalog.DurationRange{Min: 2, Max: 3}},
			avail: intPtr(25),
			want:  1.0 - 0.4*(3.0/25.0),
		},
		{
			name:  "long game consuming the whole window scores lower",
			game:  catalog.Game{Duration: catalog.DurationRange{Min: 10, Max: 20}},
			avail: intPtr(25),
			want:  1.0 - 0.4*(20.0/25.0),
		},
		{
			name:  "maximum overshooting available time decays",
			game:  catalog.Game{Duration: catalog.DurationRange{Min: 15, Max: 25}},
			avail: intPtr(20),
			want:  0.6 * (1.0 - (25.0-20.0)/(0.5*20.0)),
		},
		{
			name:  "minimum exceeding available time scores zero",
			game:  catalog.Game{Duration: catalog.DurationRange{Min: 30, Max: 45}},
			avail: intPtr(20),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TimeScore(&tt.game, tt.avail); !almostEqual(got, tt.want) {
				t.Errorf("TimeScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestTimeScorePrefersShorterFit checks the documented discrimination: with
// 25 minutes available, a 2-minute game outranks a 20-minute game on time
// fit alone.
func TestTimeScorePrefersShorterFit(t *testing.T) {
	t.Parallel()

	short := &catalog.Game{Duration: catalog.DurationRange{Min: 2, Max: 3}}
	long := &catalog.Game{Duration: catalog.DurationRange{Min: 10, Max: 20}}
	avail := intPtr(25)

	if TimeScore(short, avail) <= TimeScore(long, avail) {
		t.Errorf("TimeScore(short)=%v should exceed TimeScore(long)=%v",
			TimeScore(short, avail), TimeScore(long, avail))
	}
}

func TestLevelScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		required  int
		userLevel int
		want      float64
	}{
		{name: "exact match", required: 3, userLevel: 3, want: 1.0},
		{name: "one level below", required: 2, userLevel: 3, want: 0.875},
		{name: "two levels below", required: 1, userLevel: 3, want: 0.75},
		{name: "floor holds for mastered games", required: 1, userLevel: 9, want: 0.5},
		{name: "above user level scores zero", required: 4, userLevel: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := &catalog.Game{LevelRequired: tt.required}
			if got := LevelScore(g, tt.userLevel); !almostEqual(got, tt.want) {
				t.Errorf("LevelScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFreshnessScore(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		lastPlayed time.Time
		want       float64
	}{
		{name: "never played scores full", want: 1.0},
		{name: "played just now scores zero", lastPlayed: now, want: 0},
		{name: "played half a horizon ago", lastPlayed: now.AddDate(0, 0, -15), want: 0.5},
		{name: "played a full horizon ago", lastPlayed: now.AddDate(0, 0, -30), want: 1.0},
		{name: "older than the horizon caps at full", lastPlayed: now.AddDate(0, 0, -90), want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FreshnessScore(tt.lastPlayed, now); !almostEqual(got, tt.want) {
				t.Errorf("FreshnessScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreferenceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats history.GameStats
		want  float64
	}{
		{name: "no feedback is neutral", want: 0.5},
		{name: "all helpful", stats: history.GameStats{HelpfulCount: 3, FeedbackCount: 3}, want: 1.0},
		{name: "mixed feedback", stats: history.GameStats{HelpfulCount: 1, FeedbackCount: 4}, want: 0.25},
		{name: "all unhelpful", stats: history.GameStats{FeedbackCount: 2}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PreferenceScore(tt.stats); !almostEqual(got, tt.want) {
				t.Errorf("PreferenceScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestScoreFreshnessBreaksTies mirrors the repetition-avoidance behavior:
// two otherwise identical games diverge only on freshness, and the
// never-played one must score higher overall.
func TestScoreFreshnessBreaksTies(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	w := DefaultWeights()

	twin := func(id string) *catalog.Game {
		return &catalog.Game{
			ID:            id,
			Duration:      catalog.DurationRange{Min: 5, Max: 10},
			LevelRequired: 1,
			Themes:        []string{catalog.ThemeCommunication},
		}
	}

	played := w.Score(twin("twin-played"), nil, 2, intPtr(15),
		history.GameStats{LastPlayed: now.AddDate(0, 0, -1), Plays: 1}, now)
	fresh := w.Score(twin("twin-fresh"), nil, 2, intPtr(15),
		history.GameStats{}, now)

	if fresh.Total <= played.Total {
		t.Errorf("fresh total %v should exceed recently played total %v",
			fresh.Total, played.Total)
	}
	if fresh.Theme != played.Theme || fresh.Time != played.Time || fresh.Level != played.Level {
		t.Error("twins should differ only on freshness and preference factors")
	}
}

// TestScoreBounded checks the composite invariant: every factor and the
// total stay within [0, 1] across representative inputs.
func TestScoreBounded(t *testing.T) {
	t.Parallel()

	now := time.Now()
	w := DefaultWeights()

	cat, err := catalog.New(catalog.DefaultGames())
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	tw := themes.Weights{
		catalog.ThemeResentment:     1.0,
		catalog.ThemeHouseholdLabor: 0.8,
	}
	stats := history.GameStats{LastPlayed: now.AddDate(0, 0, -3), HelpfulCount: 2, FeedbackCount: 3}

	for _, g := range cat.Games() {
		c := w.Score(&g, tw, 3, intPtr(20), stats, now)
		for name, v := range map[string]float64{
			"theme":      c.Theme,
			"time":       c.Time,
			"level":      c.Level,
			"freshness":  c.Freshness,
			"preference": c.Preference,
			"total":      c.Total,
		} {
			if v < 0 || v > 1 {
				t.Errorf("game %s: %s score %v out of [0,1]", g.ID, name, v)
			}
		}
	}
}

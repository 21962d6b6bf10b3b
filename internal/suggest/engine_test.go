// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package suggest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/attune-labs/attune/internal/catalog"
	"github.com/attune-labs/attune/internal/history"
	"github.com/attune-labs/attune/internal/themes"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// mockHistory is a canned history.Store for engine tests.
type mockHistory struct {
	stats map[string]history.GameStats
	err   error
}

func (m *mockHistory) RecordStart(context.Context, string, string) error          { return nil }
func (m *mockHistory) RecordComplete(context.Context, string, string) error       { return nil }
func (m *mockHistory) RecordFeedback(context.Context, string, string, bool) error { return nil }
func (m *mockHistory) Close() error                                               { return nil }

func (m *mockHistory) Stats(context.Context, string) (map[string]history.GameStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stats == nil {
		return map[string]history.GameStats{}, nil
	}
	return m.stats, nil
}

func newTestEngine(t *testing.T, games []catalog.Game, hist history.Store) *Engine {
	t.Helper()

	cat, err := catalog.New(games)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	chain := themes.NewChain(nil, themes.NewKeywordExtractor())

	eng, err := NewEngine(DefaultConfig(), catalog.NewStore(cat, ""), chain, hist)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return eng
}

func TestSuggestMatchesConversationThemes(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, catalog.DefaultGames(), &mockHistory{})

	resp, err := eng.Suggest(context.Background(), &Request{
		CoupleID:             "couple-1",
		Transcript:           "We keep fighting about household chores and I feel like I do everything.",
		TimeAvailableMinutes: intPtr(20),
		ElevationLevel:       floatPtr(6.0),
		UserLevel:            2,
	})
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}

	if resp.Fallback {
		t.Error("Fallback = true, want ranked suggestions")
	}
	if len(resp.Suggestions) == 0 || len(resp.Suggestions) > 4 {
		t.Fatalf("got %d suggestions, want 1..4", len(resp.Suggestions))
	}
	if resp.ExtractionSource != themes.SourceKeyword {
		t.Errorf("ExtractionSource = %q, want keyword", resp.ExtractionSource)
	}

	top := resp.Suggestions[0]
	if !containsString(top.Themes, catalog.ThemeHouseholdLabor) {
		t.Errorf("top suggestion %s themes %v, want household_labor", top.GameID, top.Themes)
	}
	if top.Rationale == "" {
		t.Error("top suggestion has empty rationale")
	}

	// Elevation 6.0 sits in the advisory band.
	if len(resp.Warnings) == 0 {
		t.Error("want an advisory warning for moderate elevation")
	}
	if len(resp.Flags) != 0 {
		t.Errorf("Flags = %v, want none (describing fights is not an active fight)", resp.Flags)
	}
}

func TestSuggestHighElevationExcludesIntenseGames(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, catalog.DefaultGames(), &mockHistory{})

	resp, err := eng.Suggest(context.Background(), &Request{
		CoupleID:             "couple-2",
		Transcript:           "I found the texts. I can't even look at him right now.",
		EmotionalState:       "angry and hurt",
		TimeAvailableMinutes: intPtr(30),
		ElevationLevel:       floatPtr(8.5),
		UserLevel:            3,
	})
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}

	if !containsString(resp.Flags, catalog.FlagHighElevation) {
		t.Errorf("Flags = %v, want high_elevation asserted", resp.Flags)
	}
	if len(resp.Warnings) == 0 {
		t.Error("want a warning accompanying high elevation")
	}

	cat, _ := catalog.New(catalog.DefaultGames())
	for _, s := range resp.Suggestions {
		g := cat.Get(s.GameID)
		if g.HasContraindication(catalog.FlagHighElevation) {
			t.Errorf("suggestion %s carries high_elevation contraindication", s.GameID)
		}
	}
}

func TestSuggestRespectsTinyTimeWindow(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, catalog.DefaultGames(), &mockHistory{})

	resp, err := eng.Suggest(context.Background(), &Request{
		CoupleID:             "couple-3",
		TimeAvailableMinutes: intPtr(2),
		UserLevel:            1,
	})
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}

	if len(resp.Suggestions) == 0 {
		t.Fatal("want at least one two-minute game")
	}
	for _, s := range resp.Suggestions {
		if s.DurationMinutes.Min > 2 {
			t.Errorf("suggestion %s needs %d minutes, only 2 available",
				s.GameID, s.DurationMinutes.Min)
		}
	}
}

func TestSuggestFallbackWhenNothingSurvives(t *testing.T) {
	t.Parallel()

	advanced := []catalog.Game{
		{
			ID: "deep-work", Title: "Deep Work",
			Duration:      catalog.DurationRange{Min: 20, Max: 30},
			LevelRequired: 3,
			Themes:        []string{catalog.ThemeTrust},
		},
		{
			ID: "long-haul", Title: "Long Haul",
			Duration:      catalog.DurationRange{Min: 30, Max: 45},
			LevelRequired: 4,
			Themes:        []string{catalog.ThemeIntimacy},
		},
	}

	t.Run("empty default set yields empty suggestions with warning", func(t *testing.T) {
		t.Parallel()

		eng := newTestEngine(t, advanced, &mockHistory{})
		resp, err := eng.Suggest(context.Background(), &Request{
			CoupleID:  "couple-4",
			UserLevel: 1,
		})
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}
		if !resp.Fallback {
			t.Error("Fallback = false, want true")
		}
		if len(resp.Suggestions) != 0 {
			t.Errorf("got %d suggestions from a catalog with no gentle defaults", len(resp.Suggestions))
		}
		if len(resp.Warnings) == 0 {
			t.Error("want a warning explaining the empty result")
		}
	})

	t.Run("default set serves gentle level-1 games", func(t *testing.T) {
		t.Parallel()

		games := append(advanced, catalog.Game{
			ID: "tiny-reset", Title: "Tiny Reset",
			Duration:      catalog.DurationRange{Min: 2, Max: 4},
			LevelRequired: 1,
			Themes:        []string{catalog.ThemeCommunication},
		})

		eng := newTestEngine(t, games, &mockHistory{})
		// Level 2 user, but one minute of time denies even tiny-reset,
		// emptying the candidate list.
		resp, err := eng.Suggest(context.Background(), &Request{
			CoupleID:             "couple-5",
			UserLevel:            2,
			TimeAvailableMinutes: intPtr(3),
			ElevationLevel:       floatPtr(9.0),
			Transcript:           "He cheated on me.",
		})
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}
		// tiny-reset survives normally here; this request must NOT fall
		// back since a clean candidate exists.
		if resp.Fallback {
			t.Error("Fallback = true with a surviving candidate")
		}
		if len(resp.Suggestions) != 1 || resp.Suggestions[0].GameID != "tiny-reset" {
			t.Errorf("Suggestions = %+v, want only tiny-reset", resp.Suggestions)
		}
	})
}

func TestSuggestAvoidsRecentRepeats(t *testing.T) {
	t.Parallel()

	now := time.Now()
	hist := &mockHistory{stats: map[string]history.GameStats{
		"daily-debrief":    {LastPlayed: now.Add(-24 * time.Hour), Plays: 1},
		"gratitude-volley": {HelpfulCount: 2, FeedbackCount: 2},
	}}

	eng := newTestEngine(t, catalog.DefaultGames(), hist)

	resp, err := eng.Suggest(context.Background(), &Request{
		CoupleID:             "couple-6",
		TimeAvailableMinutes: intPtr(10),
		UserLevel:            1,
	})
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(resp.Suggestions) < 2 {
		t.Fatalf("got %d suggestions, want several", len(resp.Suggestions))
	}

	if got := resp.Suggestions[0].GameID; got != "gratitude-volley" {
		t.Errorf("top suggestion = %s, want gratitude-volley (helpful feedback, never stale)", got)
	}
	if got := resp.Suggestions[len(resp.Suggestions)-1].GameID; got != "daily-debrief" {
		t.Errorf("last suggestion = %s, want daily-debrief (played yesterday)", got)
	}
}

func TestSuggestRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, catalog.DefaultGames(), &mockHistory{})

	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "missing couple id",
			req:  Request{UserLevel: 1},
		},
		{
			name: "zero user level",
			req:  Request{CoupleID: "c", UserLevel: 0},
		},
		{
			name: "elevation above range",
			req:  Request{CoupleID: "c", UserLevel: 1, ElevationLevel: floatPtr(11)},
		},
		{
			name: "negative elevation",
			req:  Request{CoupleID: "c", UserLevel: 1, ElevationLevel: floatPtr(-0.1)},
		},
		{
			name: "non-positive time",
			req:  Request{CoupleID: "c", UserLevel: 1, TimeAvailableMinutes: intPtr(0)},
		},
		{
			name: "top_n above cap",
			req:  Request{CoupleID: "c", UserLevel: 1, TopN: 11},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := eng.Suggest(context.Background(), &tt.req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Suggest() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestSuggestBoundaryElevationIsValid(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, catalog.DefaultGames(), &mockHistory{})

	for _, elevation := range []float64{0, 10} {
		if _, err := eng.Suggest(context.Background(), &Request{
			CoupleID:       "couple-7",
			UserLevel:      1,
			ElevationLevel: floatPtr(elevation),
		}); err != nil {
			t.Errorf("Suggest() with elevation %g: unexpected error %v", elevation, err)
		}
	}
}

func TestSuggestDegradesWithoutHistory(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, catalog.DefaultGames(), &mockHistory{err: fmt.Errorf("disk on fire")})

	resp, err := eng.Suggest(context.Background(), &Request{
		CoupleID:  "couple-8",
		UserLevel: 2,
	})
	if err != nil {
		t.Fatalf("Suggest() error = %v, want graceful degradation", err)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("want suggestions despite history being unavailable")
	}
}

func TestSuggestIsDeterministic(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, catalog.DefaultGames(), &mockHistory{})
	eng.now = func() time.Time { return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC) }

	req := &Request{
		CoupleID:             "couple-9",
		Transcript:           "I feel unappreciated and we never have couple time anymore.",
		TimeAvailableMinutes: intPtr(15),
		UserLevel:            3,
	}

	first, err := eng.Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	second, err := eng.Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical requests produced different responses:\n%+v\n%+v", first, second)
	}
}

func TestSuggestHonorsTopN(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, catalog.DefaultGames(), &mockHistory{})

	resp, err := eng.Suggest(context.Background(), &Request{
		CoupleID:  "couple-10",
		UserLevel: 4,
		TopN:      2,
	})
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(resp.Suggestions) != 2 {
		t.Errorf("got %d suggestions, want exactly 2", len(resp.Suggestions))
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

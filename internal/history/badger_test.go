// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package history

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()

	store, err := NewBadgerStore("")
	if err != nil {
		t.Fatalf("NewBadgerStore() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func TestBadgerStoreAggregates(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordStart(ctx, "couple-1", "breath-sync"); err != nil {
		t.Fatalf("RecordStart() error = %v", err)
	}
	if err := store.RecordComplete(ctx, "couple-1", "breath-sync"); err != nil {
		t.Fatalf("RecordComplete() error = %v", err)
	}
	if err := store.RecordFeedback(ctx, "couple-1", "breath-sync", true); err != nil {
		t.Fatalf("RecordFeedback() error = %v", err)
	}
	if err := store.RecordFeedback(ctx, "couple-1", "breath-sync", false); err != nil {
		t.Fatalf("RecordFeedback() error = %v", err)
	}
	if err := store.RecordStart(ctx, "couple-1", "daily-debrief"); err != nil {
		t.Fatalf("RecordStart() error = %v", err)
	}

	stats, err := store.Stats(ctx, "couple-1")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Stats() returned %d games, want 2", len(stats))
	}

	bs := stats["breath-sync"]
	if bs.Plays != 1 || bs.Completions != 1 {
		t.Errorf("breath-sync plays=%d completions=%d, want 1/1", bs.Plays, bs.Completions)
	}
	if bs.FeedbackCount != 2 || bs.HelpfulCount != 1 {
		t.Errorf("breath-sync feedback=%d helpful=%d, want 2/1", bs.FeedbackCount, bs.HelpfulCount)
	}
	if bs.LastPlayed.IsZero() {
		t.Error("breath-sync LastPlayed is zero, want recent timestamp")
	}

	dd := stats["daily-debrief"]
	if dd.Plays != 1 || dd.FeedbackCount != 0 {
		t.Errorf("daily-debrief plays=%d feedback=%d, want 1/0", dd.Plays, dd.FeedbackCount)
	}
}

func TestBadgerStoreIsolatesCouples(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordStart(ctx, "couple-a", "breath-sync"); err != nil {
		t.Fatalf("RecordStart() error = %v", err)
	}

	stats, err := store.Stats(ctx, "couple-b")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("Stats() for untouched couple returned %d games, want 0", len(stats))
	}
}

func TestBadgerStoreFeedbackOnlyLeavesLastPlayedZero(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordFeedback(ctx, "couple-1", "gratitude-volley", true); err != nil {
		t.Fatalf("RecordFeedback() error = %v", err)
	}

	stats, err := store.Stats(ctx, "couple-1")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	gv := stats["gratitude-volley"]
	if !gv.LastPlayed.IsZero() {
		t.Errorf("LastPlayed = %v, want zero (feedback alone is not a play)", gv.LastPlayed)
	}
	if gv.HelpfulCount != 1 {
		t.Errorf("HelpfulCount = %d, want 1", gv.HelpfulCount)
	}
}

func TestBadgerStoreRejectsEmptyIDs(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.RecordStart(ctx, "", "breath-sync"); err == nil {
		t.Error("RecordStart() with empty couple ID: want error, got nil")
	}
	if err := store.RecordStart(ctx, "couple-1", ""); err == nil {
		t.Error("RecordStart() with empty game ID: want error, got nil")
	}
}

func TestBadgerStoreStampsEventTime(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	ctx := context.Background()
	if err := store.RecordComplete(ctx, "couple-1", "breath-sync"); err != nil {
		t.Fatalf("RecordComplete() error = %v", err)
	}

	stats, err := store.Stats(ctx, "couple-1")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if got := stats["breath-sync"].LastPlayed; !got.Equal(fixed) {
		t.Errorf("LastPlayed = %v, want %v", got, fixed)
	}
}

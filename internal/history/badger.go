// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/attune-labs/attune/internal/logging"
	"github.com/attune-labs/attune/internal/metrics"
)

// Key layout:
//
//	event:{couple}:{unixnano}:{uuid}  -> Event (append-only)
//	agg:{couple}:{game}               -> GameStats
const (
	eventPrefix = "event:"
	aggPrefix   = "agg:"
)

// BadgerStore is the embedded persistent Store implementation.
type BadgerStore struct {
	db     *badger.DB
	logger zerolog.Logger
	now    func() time.Time
}

// NewBadgerStore opens (or creates) the history database at path.
// An empty path opens an in-memory database, used in tests.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	return &BadgerStore{
		db:     db,
		logger: logging.WithComponent("history"),
		now:    time.Now,
	}, nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// RecordStart implements Store.
func (s *BadgerStore) RecordStart(ctx context.Context, coupleID, gameID string) error {
	return s.record(ctx, Event{Kind: EventStart, CoupleID: coupleID, GameID: gameID})
}

// RecordComplete implements Store.
func (s *BadgerStore) RecordComplete(ctx context.Context, coupleID, gameID string) error {
	return s.record(ctx, Event{Kind: EventComplete, CoupleID: coupleID, GameID: gameID})
}

// RecordFeedback implements Store.
func (s *BadgerStore) RecordFeedback(ctx context.Context, coupleID, gameID string, helpful bool) error {
	return s.record(ctx, Event{Kind: EventFeedback, CoupleID: coupleID, GameID: gameID, Helpful: &helpful})
}

// record appends the event and folds it into the aggregate in one
// transaction.
func (s *BadgerStore) record(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ev.CoupleID == "" || ev.GameID == "" {
		return fmt.Errorf("history event requires couple and game IDs")
	}
	ev.At = s.now().UTC()

	eventKey := fmt.Sprintf("%s%s:%020d:%s", eventPrefix, ev.CoupleID, ev.At.UnixNano(), uuid.NewString())
	aggKey := aggKey(ev.CoupleID, ev.GameID)

	err := s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		if err := txn.Set([]byte(eventKey), data); err != nil {
			return fmt.Errorf("write event: %w", err)
		}

		stats, err := readStats(txn, aggKey)
		if err != nil {
			return err
		}
		applyEvent(&stats, ev)

		data, err = json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("marshal aggregate: %w", err)
		}
		if err := txn.Set([]byte(aggKey), data); err != nil {
			return fmt.Errorf("write aggregate: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record %s event: %w", ev.Kind, err)
	}

	metrics.HistoryEvents.WithLabelValues(string(ev.Kind)).Inc()
	s.logger.Debug().
		Str("couple_id", ev.CoupleID).
		Str("game_id", ev.GameID).
		Str("kind", string(ev.Kind)).
		Msg("Recorded session event")
	return nil
}

// applyEvent folds one event into the running aggregate.
func applyEvent(stats *GameStats, ev Event) {
	switch ev.Kind {
	case EventStart:
		stats.Plays++
		stats.LastPlayed = ev.At
	case EventComplete:
		stats.Completions++
		stats.LastPlayed = ev.At
	case EventFeedback:
		stats.FeedbackCount++
		if ev.Helpful != nil && *ev.Helpful {
			stats.HelpfulCount++
		}
	}
}

// Stats implements Store.
func (s *BadgerStore) Stats(ctx context.Context, coupleID string) (map[string]GameStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(aggPrefix + coupleID + ":")
	out := make(map[string]GameStats)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			gameID := strings.TrimPrefix(string(item.Key()), string(prefix))
			var stats GameStats
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &stats)
			}); err != nil {
				return fmt.Errorf("decode aggregate %s: %w", item.Key(), err)
			}
			out[gameID] = stats
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history for couple %s: %w", coupleID, err)
	}

	return out, nil
}

// RunGC runs badger value-log garbage collection until ctx is cancelled.
// Intended to run as a supervised service.
func (s *BadgerStore) RunGC(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// ErrNoRewrite just means nothing needed collecting.
			if err := s.db.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
				s.logger.Warn().Err(err).Msg("History value log GC failed")
			}
		}
	}
}

func aggKey(coupleID, gameID string) string {
	return aggPrefix + coupleID + ":" + gameID
}

// readStats loads the aggregate at key, returning the zero value when the
// couple has never touched the game.
func readStats(txn *badger.Txn, key string) (GameStats, error) {
	var stats GameStats

	item, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("read aggregate: %w", err)
	}

	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &stats)
	}); err != nil {
		return stats, fmt.Errorf("decode aggregate: %w", err)
	}
	return stats, nil
}

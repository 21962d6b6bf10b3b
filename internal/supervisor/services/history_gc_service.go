// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package services

import (
	"context"
	"time"
)

// GCRunner matches the history store's garbage collection loop.
type GCRunner interface {
	RunGC(ctx context.Context, interval time.Duration) error
}

// HistoryGCService runs the history store's value-log garbage collection
// as a supervised service in the data layer.
type HistoryGCService struct {
	runner   GCRunner
	interval time.Duration
}

// NewHistoryGCService wraps the history store's GC loop.
func NewHistoryGCService(runner GCRunner, interval time.Duration) *HistoryGCService {
	return &HistoryGCService{
		runner:   runner,
		interval: interval,
	}
}

// Serve implements suture.Service. It returns only when the context is
// canceled; suture treats the context error as a normal stop.
func (s *HistoryGCService) Serve(ctx context.Context) error {
	return s.runner.RunGC(ctx, s.interval)
}

// String implements fmt.Stringer for suture's event logging.
func (s *HistoryGCService) String() string {
	return "history-gc"
}

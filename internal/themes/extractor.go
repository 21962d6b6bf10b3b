// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package themes extracts weighted theme signals from conversation context.
//
// Two extraction paths exist: a semantic path backed by an external vector
// search service, and a deterministic keyword path built from the theme
// vocabulary. The Chain composes them so semantic failures degrade
// transparently to keyword matching without failing the request.
package themes

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/attune-labs/attune/internal/logging"
	"github.com/attune-labs/attune/internal/metrics"
)

// Weights maps theme identifiers to relevance weights in [0, 1].
// An empty map means no theme signal was found.
type Weights map[string]float64

// Source identifies which extraction path produced a set of weights.
type Source string

const (
	// SourceSemantic means the vector search service produced the weights.
	SourceSemantic Source = "semantic"

	// SourceKeyword means the deterministic keyword fallback produced them.
	SourceKeyword Source = "keyword"

	// SourceNone means no transcript was supplied; no extraction ran.
	SourceNone Source = "none"
)

// Extractor turns a transcript into theme weights.
type Extractor interface {
	// Extract analyzes the transcript and returns theme weights.
	// The transcript is never empty; callers short-circuit blank input.
	Extract(ctx context.Context, transcript string) (Weights, error)

	// Name identifies the extractor for logging and metrics.
	Name() string
}

// Chain runs the primary extractor and falls back to the secondary when the
// primary fails for any reason. Extraction through a Chain never fails: the
// keyword path is total.
type Chain struct {
	primary  Extractor
	fallback Extractor
	logger   zerolog.Logger
}

// NewChain builds an extraction chain. primary may be nil, in which case
// only the fallback runs (semantic extraction disabled by configuration).
func NewChain(primary, fallback Extractor) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		logger:   logging.WithComponent("themes"),
	}
}

// Extract returns theme weights and the source that produced them.
// A blank transcript yields empty weights and SourceNone.
func (c *Chain) Extract(ctx context.Context, transcript string) (Weights, Source) {
	if transcript == "" {
		metrics.ExtractionTotal.WithLabelValues(string(SourceNone)).Inc()
		return Weights{}, SourceNone
	}

	if c.primary != nil {
		weights, err := c.primary.Extract(ctx, transcript)
		if err == nil {
			metrics.ExtractionTotal.WithLabelValues(string(SourceSemantic)).Inc()
			return weights, SourceSemantic
		}
		c.logger.Warn().
			Err(err).
			Str("extractor", c.primary.Name()).
			Msg("Semantic extraction failed, falling back to keyword matching")
		metrics.ExtractionFallbackTotal.Inc()
	}

	weights, err := c.fallback.Extract(ctx, transcript)
	if err != nil {
		// The keyword extractor never returns an error; this path exists
		// only to satisfy the interface.
		c.logger.Error().Err(err).Msg("Keyword extraction failed")
		metrics.ExtractionTotal.WithLabelValues(string(SourceNone)).Inc()
		return Weights{}, SourceNone
	}

	metrics.ExtractionTotal.WithLabelValues(string(SourceKeyword)).Inc()
	return weights, SourceKeyword
}

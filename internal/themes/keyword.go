// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package themes

import (
	"context"
	"strings"
	"unicode"
)

// KeywordExtractor matches vocabulary trigger terms against the transcript.
// It is deterministic, has no external dependencies, and never fails.
//
// A theme's raw weight is the fraction of its distinct triggers found in
// the transcript; weights are then normalized so the strongest matched
// theme scores 1.0, matching the semantic path's scale. Single-word
// triggers match whole tokens only, so "mess" does not fire on "message";
// multi-word triggers match as substrings.
type KeywordExtractor struct {
	defs []Definition
}

// NewKeywordExtractor builds the extractor from the fixed vocabulary.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{defs: Vocabulary()}
}

// Name implements Extractor.
func (e *KeywordExtractor) Name() string {
	return "keyword"
}

// Extract implements Extractor. The returned error is always nil.
func (e *KeywordExtractor) Extract(_ context.Context, transcript string) (Weights, error) {
	normalized := normalize(transcript)
	tokens := tokenSet(normalized)

	weights := make(Weights)
	best := 0.0
	for _, def := range e.defs {
		matched := 0
		for _, trigger := range def.Triggers {
			if triggerMatches(trigger, normalized, tokens) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		w := float64(matched) / float64(len(def.Triggers))
		weights[def.ID] = w
		if w > best {
			best = w
		}
	}

	for id, w := range weights {
		weights[id] = w / best
	}
	return weights, nil
}

func triggerMatches(trigger, normalized string, tokens map[string]struct{}) bool {
	if strings.ContainsRune(trigger, ' ') {
		return strings.Contains(normalized, trigger)
	}
	_, ok := tokens[trigger]
	return ok
}

// normalize lowercases the text and maps punctuation to spaces, keeping
// intra-word apostrophes and hyphens so triggers like "can't talk" and
// "in-laws" survive.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case r == '\'' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func tokenSet(normalized string) map[string]struct{} {
	fields := strings.Fields(normalized)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.Trim(f, "'-")] = struct{}{}
	}
	return set
}

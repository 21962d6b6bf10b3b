// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package suggest orchestrates the suggestion pipeline: theme extraction,
// level filtering, safety gating, scoring, and ranking.
//
// The pipeline is strictly ordered. Safety runs before scoring and removes
// games outright; nothing downstream can resurrect an unsafe game. Given
// identical inputs (catalog, history, extracted weights, time) the output
// order is deterministic.
package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/attune-labs/attune/internal/catalog"
	"github.com/attune-labs/attune/internal/history"
	"github.com/attune-labs/attune/internal/logging"
	"github.com/attune-labs/attune/internal/metrics"
	"github.com/attune-labs/attune/internal/safety"
	"github.com/attune-labs/attune/internal/scoring"
	"github.com/attune-labs/attune/internal/themes"
)

// Config tunes the engine. Zero values fall back to defaults.
type Config struct {
	// DefaultTopN is the suggestion count when the request doesn't ask.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps what a request may ask for.
	MaxTopN int `koanf:"max_top_n"`

	// Weights blends the scoring factors.
	Weights scoring.Weights `koanf:"weights"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTopN: 4,
		MaxTopN:     10,
		Weights:     scoring.DefaultWeights(),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be >= 1, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n %d must be >= default_top_n %d", c.MaxTopN, c.DefaultTopN)
	}
	return nil
}

// Engine runs the suggestion pipeline against the active catalog.
type Engine struct {
	cfg       Config
	catalogs  *catalog.Store
	extractor *themes.Chain
	hist      history.Store
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEngine builds an engine. The weights are normalized once here so
// every request scores against the same blend.
func NewEngine(cfg Config, catalogs *catalog.Store, extractor *themes.Chain, hist history.Store) (*Engine, error) {
	if cfg.DefaultTopN == 0 {
		cfg.DefaultTopN = DefaultConfig().DefaultTopN
	}
	if cfg.MaxTopN == 0 {
		cfg.MaxTopN = DefaultConfig().MaxTopN
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("suggest config: %w", err)
	}
	cfg.Weights.Normalize()

	return &Engine{
		cfg:       cfg,
		catalogs:  catalogs,
		extractor: extractor,
		hist:      hist,
		logger:    logging.WithComponent("suggest"),
		now:       time.Now,
	}, nil
}

// Suggest runs the full pipeline for one request.
func (e *Engine) Suggest(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	if err := req.Validate(e.cfg.MaxTopN); err != nil {
		metrics.SuggestionRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}

	cat := e.catalogs.Current()
	weights, source := e.extractor.Extract(ctx, req.Transcript)

	flags := safety.DeriveFlags(req.Transcript, req.EmotionalState, req.ElevationLevel)
	sit := safety.Situation{
		Flags:         flags,
		Elevation:     req.ElevationLevel,
		TimeAvailable: req.TimeAvailableMinutes,
	}

	candidates := e.filter(cat, req.UserLevel, sit)
	metrics.CandidatesRanked.Observe(float64(len(candidates)))

	stats, err := e.hist.Stats(ctx, req.CoupleID)
	if err != nil {
		// History is a ranking signal, not a prerequisite; degrade to
		// the never-played priors rather than failing the request.
		e.logger.Warn().Err(err).Str("couple_id", req.CoupleID).
			Msg("History unavailable, scoring without it")
		stats = map[string]history.GameStats{}
	}

	topN := req.TopN
	if topN == 0 {
		topN = e.cfg.DefaultTopN
	}

	resp := &Response{
		Warnings:         safety.Warnings(sit),
		Flags:            sortedFlags(flags),
		ExtractionSource: source,
	}

	if len(candidates) == 0 {
		resp.Suggestions = e.fallback(cat, sit, topN)
		resp.Fallback = true
		resp.Warnings = append(resp.Warnings,
			"No games matched the current situation; showing gentle defaults that are safe to try.")
		metrics.FallbackServed.Inc()
		metrics.SuggestionRequests.WithLabelValues("fallback").Inc()
		metrics.SuggestionDuration.Observe(time.Since(start).Seconds())
		return resp, nil
	}

	scored := e.rank(candidates, weights, req, stats)
	if len(scored) > topN {
		scored = scored[:topN]
	}
	resp.Suggestions = e.present(scored, weights)

	metrics.SuggestionRequests.WithLabelValues("ok").Inc()
	metrics.SuggestionDuration.Observe(time.Since(start).Seconds())

	e.logger.Debug().
		Str("couple_id", req.CoupleID).
		Int("candidates", len(candidates)).
		Int("returned", len(resp.Suggestions)).
		Str("extraction_source", string(source)).
		Msg("Suggestion pipeline completed")

	return resp, nil
}

// filter applies the level gate and the safety gate, in that order.
// Removed games are gone for good; scoring never sees them.
func (e *Engine) filter(cat *catalog.Catalog, userLevel int, sit safety.Situation) []*catalog.Game {
	eligible := cat.ForLevel(userLevel)
	out := make([]*catalog.Game, 0, len(eligible))

	for i := range eligible {
		g := &eligible[i]
		res := safety.Check(g, sit)
		if res.Safe {
			out = append(out, g)
			continue
		}
		for _, flag := range res.DeniedFlags {
			metrics.SafetyDenials.WithLabelValues(flag).Inc()
		}
		if res.TimeDenied {
			metrics.SafetyTimeDenials.Inc()
		}
	}
	return out
}

// rank scores the candidates and orders them by total score descending,
// breaking ties by freshness descending and then game ID ascending.
func (e *Engine) rank(candidates []*catalog.Game, weights themes.Weights, req *Request, stats map[string]history.GameStats) []scoring.Candidate {
	now := e.now()
	scored := make([]scoring.Candidate, 0, len(candidates))
	for _, g := range candidates {
		scored = append(scored, e.cfg.Weights.Score(
			g, weights, req.UserLevel, req.TimeAvailableMinutes, stats[g.ID], now))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Total != scored[j].Total {
			return scored[i].Total > scored[j].Total
		}
		if scored[i].Freshness != scored[j].Freshness {
			return scored[i].Freshness > scored[j].Freshness
		}
		return scored[i].Game.ID < scored[j].Game.ID
	})
	return scored
}

// fallback serves the default safe set: level-1 games with no
// contraindications, shortest first. The time gate still applies so a
// two-minute window never gets a ten-minute game.
func (e *Engine) fallback(cat *catalog.Catalog, sit safety.Situation, topN int) []Suggestion {
	var safeSet []*catalog.Game
	for _, g := range cat.Games() {
		g := g
		if g.LevelRequired != 1 || len(g.Contraindications) > 0 {
			continue
		}
		if sit.TimeAvailable != nil && g.Duration.Min > *sit.TimeAvailable {
			continue
		}
		safeSet = append(safeSet, &g)
	}

	sort.Slice(safeSet, func(i, j int) bool {
		if safeSet[i].Duration.Min != safeSet[j].Duration.Min {
			return safeSet[i].Duration.Min < safeSet[j].Duration.Min
		}
		return safeSet[i].ID < safeSet[j].ID
	})
	if len(safeSet) > topN {
		safeSet = safeSet[:topN]
	}

	out := make([]Suggestion, 0, len(safeSet))
	for _, g := range safeSet {
		s := toSuggestion(g, 0, FactorBreakdown{})
		s.Rationale = "A gentle default that is safe to try in most situations."
		out = append(out, s)
	}
	return out
}

// present converts scored candidates into the response shape, attaching a
// rationale grounded in the dominant factors.
func (e *Engine) present(scored []scoring.Candidate, weights themes.Weights) []Suggestion {
	out := make([]Suggestion, 0, len(scored))
	for i := range scored {
		c := &scored[i]
		s := toSuggestion(c.Game, c.Total, FactorBreakdown{
			Theme:      c.Theme,
			Time:       c.Time,
			Level:      c.Level,
			Freshness:  c.Freshness,
			Preference: c.Preference,
		})
		s.Rationale = rationale(c, weights)
		out = append(out, s)
	}
	return out
}

func toSuggestion(g *catalog.Game, score float64, factors FactorBreakdown) Suggestion {
	return Suggestion{
		GameID:          g.ID,
		Title:           g.Title,
		Description:     g.Description,
		Objective:       g.Objective,
		HowToPlay:       g.HowToPlay,
		SafetyNotes:     g.SafetyNotes,
		DurationMinutes: g.Duration,
		LevelRequired:   g.LevelRequired,
		Themes:          g.Themes,
		Score:           score,
		Factors:         factors,
	}
}

// rationale explains a pick in couple-facing language. Theme matches lead
// when present; otherwise the strongest remaining factor carries it.
func rationale(c *scoring.Candidate, weights themes.Weights) string {
	matched := matchedThemes(c.Game, weights)
	if len(matched) > 0 {
		return fmt.Sprintf("Speaks to the %s coming up in your conversation.",
			humanThemeList(matched))
	}

	switch {
	case c.Freshness >= 1.0 && c.Preference > 0.5:
		return "A game you've found helpful before and haven't played in a while."
	case c.Freshness >= 1.0:
		return "Something you haven't tried recently, matched to your level."
	case c.Preference > 0.5:
		return "A game you've told us works well for you two."
	default:
		return "A solid fit for your level and the time you have."
	}
}

// matchedThemes returns the game's themes that carry extraction weight,
// strongest first.
func matchedThemes(g *catalog.Game, weights themes.Weights) []string {
	var matched []string
	for _, t := range g.Themes {
		if weights[t] > 0 {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if weights[matched[i]] != weights[matched[j]] {
			return weights[matched[i]] > weights[matched[j]]
		}
		return matched[i] < matched[j]
	})
	return matched
}

func humanThemeList(ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = strings.ReplaceAll(id, "_", " ")
	}
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func sortedFlags(flags map[string]struct{}) []string {
	if len(flags) == 0 {
		return nil
	}
	out := make([]string, 0, len(flags))
	for f := range flags {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

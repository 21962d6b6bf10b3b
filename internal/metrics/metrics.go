// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SuggestionRequests counts suggestion requests by outcome
	// (ok, fallback, invalid, error).
	SuggestionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "suggest",
			Name:      "requests_total",
			Help:      "Suggestion requests by outcome",
		},
		[]string{"outcome"},
	)

	// SuggestionDuration tracks end-to-end suggestion pipeline latency.
	SuggestionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "attune",
			Subsystem: "suggest",
			Name:      "duration_seconds",
			Help:      "End-to-end suggestion pipeline latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// CandidatesRanked tracks how many candidates survived to scoring.
	CandidatesRanked = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "attune",
			Subsystem: "suggest",
			Name:      "candidates_ranked",
			Help:      "Candidates reaching the scoring stage per request",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	// FallbackServed counts requests answered from the default safe set.
	FallbackServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "suggest",
			Name:      "fallback_total",
			Help:      "Requests answered from the default safe game set",
		},
	)

	// ExtractionTotal counts theme extractions by source
	// (semantic, keyword, none).
	ExtractionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "themes",
			Name:      "extraction_total",
			Help:      "Theme extractions by source",
		},
		[]string{"source"},
	)

	// ExtractionFallbackTotal counts semantic failures that degraded to
	// keyword matching.
	ExtractionFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "themes",
			Name:      "extraction_fallback_total",
			Help:      "Semantic extraction failures degraded to keyword matching",
		},
	)

	// SemanticQueryDuration tracks vector service round-trip latency.
	SemanticQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "attune",
			Subsystem: "themes",
			Name:      "semantic_query_seconds",
			Help:      "Vector search service query latency in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 5},
		},
	)

	// BreakerState exposes circuit breaker state
	// (0 closed, 0.5 half-open, 1 open).
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "attune",
			Subsystem: "breaker",
			Name:      "state",
			Help:      "Circuit breaker state (0 closed, 0.5 half-open, 1 open)",
		},
		[]string{"name"},
	)

	// SafetyDenials counts games removed by the safety checker, by flag.
	SafetyDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "safety",
			Name:      "denials_total",
			Help:      "Games removed by the safety checker, by contraindication flag",
		},
		[]string{"flag"},
	)

	// SafetyTimeDenials counts games removed because they cannot fit the
	// available time.
	SafetyTimeDenials = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "safety",
			Name:      "time_denials_total",
			Help:      "Games removed because their minimum duration exceeds available time",
		},
	)

	// HistoryEvents counts recorded session events by kind
	// (start, complete, feedback).
	HistoryEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "history",
			Name:      "events_total",
			Help:      "Recorded session events by kind",
		},
		[]string{"kind"},
	)

	// CatalogGames exposes the size of the active catalog.
	CatalogGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "attune",
			Subsystem: "catalog",
			Name:      "games",
			Help:      "Games in the active catalog",
		},
	)

	// CatalogReloads counts administrative catalog reloads by result.
	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "catalog",
			Name:      "reloads_total",
			Help:      "Catalog reloads by result (ok, error)",
		},
		[]string{"result"},
	)

	// HTTPRequests counts HTTP requests by route pattern and status class.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attune",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status class",
		},
		[]string{"route", "status"},
	)

	// HTTPDuration tracks HTTP handler latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "attune",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP handler latency by route pattern in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route"},
	)
)

// StatusClass buckets an HTTP status code into its class label
// (2xx, 3xx, 4xx, 5xx) to bound metric cardinality.
func StatusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package themes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/attune-labs/attune/internal/catalog"
	"github.com/attune-labs/attune/internal/logging"
	"github.com/attune-labs/attune/internal/metrics"
)

// SemanticConfig configures the semantic extraction client.
type SemanticConfig struct {
	// BaseURL of the vector search service, e.g. "http://localhost:8000".
	// Empty disables the semantic path entirely.
	BaseURL string `koanf:"base_url"`

	// Collection is the indexed theme collection name.
	Collection string `koanf:"collection"`

	// Timeout bounds a single query round-trip.
	Timeout time.Duration `koanf:"timeout"`

	// MinWeight drops matches below this normalized weight.
	MinWeight float64 `koanf:"min_weight"`

	// MaxResults caps the number of theme matches requested per query.
	MaxResults int `koanf:"max_results"`

	// RateLimit is the sustained queries-per-second budget toward the
	// service; RateBurst the burst allowance.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// DefaultSemanticConfig returns production defaults.
func DefaultSemanticConfig() SemanticConfig {
	return SemanticConfig{
		Collection: "relationship_themes",
		Timeout:    2 * time.Second,
		MinWeight:  0.15,
		MaxResults: 5,
		RateLimit:  20,
		RateBurst:  40,
	}
}

// SemanticExtractor queries an external vector search service that indexes
// the theme vocabulary descriptions. Calls are rate limited and wrapped in a
// circuit breaker so a degraded service sheds load quickly instead of
// holding every request for the full timeout.
type SemanticExtractor struct {
	cfg     SemanticConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[Weights]
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewSemanticExtractor creates the client. Returns an error if cfg.BaseURL
// is empty; callers should disable the semantic path instead.
func NewSemanticExtractor(cfg SemanticConfig) (*SemanticExtractor, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("semantic extractor requires a base URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}

	logger := logging.WithComponent("themes.semantic")

	e := &SemanticExtractor{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		logger:  logger,
	}

	e.breaker = gobreaker.NewCircuitBreaker[Weights](gobreaker.Settings{
		Name:        "semantic-extraction",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			metrics.BreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	})

	return e, nil
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 0.5
	default:
		return 0
	}
}

// Name implements Extractor.
func (e *SemanticExtractor) Name() string {
	return "semantic"
}

// queryRequest is the vector service query payload.
type queryRequest struct {
	QueryTexts []string `json:"query_texts"`
	NResults   int      `json:"n_results"`
}

// queryResponse is the vector service response: per-query result lists of
// matched document IDs and their distances (smaller is closer).
type queryResponse struct {
	IDs       [][]string  `json:"ids"`
	Distances [][]float64 `json:"distances"`
}

// Extract implements Extractor. Weights are derived from match distances,
// normalized so the closest theme scores 1.0, with weak matches below the
// configured floor dropped.
func (e *SemanticExtractor) Extract(ctx context.Context, transcript string) (Weights, error) {
	if !e.limiter.Allow() {
		return nil, fmt.Errorf("semantic extraction rate limit exceeded")
	}

	return e.breaker.Execute(func() (Weights, error) {
		return e.query(ctx, transcript)
	})
}

func (e *SemanticExtractor) query(ctx context.Context, transcript string) (Weights, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(queryRequest{
		QueryTexts: []string{transcript},
		NResults:   e.cfg.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/collections/%s/query", e.cfg.BaseURL, e.cfg.Collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query vector service: %w", err)
	}
	defer resp.Body.Close()

	metrics.SemanticQueryDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("vector service returned %d: %s", resp.StatusCode, string(data))
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decode vector service response: %w", err)
	}
	if len(qr.IDs) == 0 || len(qr.Distances) == 0 || len(qr.IDs[0]) != len(qr.Distances[0]) {
		return nil, fmt.Errorf("vector service returned malformed result")
	}

	return e.toWeights(qr.IDs[0], qr.Distances[0]), nil
}

// toWeights converts distances to similarities, normalizes the best match to
// 1.0, and drops entries under the configured floor. Unknown theme IDs from
// the service are ignored rather than propagated.
func (e *SemanticExtractor) toWeights(ids []string, distances []float64) Weights {
	similarities := make([]float64, len(distances))
	best := 0.0
	for i, d := range distances {
		if d < 0 {
			d = 0
		}
		similarities[i] = 1.0 / (1.0 + d)
		if similarities[i] > best {
			best = similarities[i]
		}
	}
	if best == 0 {
		return Weights{}
	}

	weights := make(Weights, len(ids))
	for i, id := range ids {
		w := similarities[i] / best
		if w < e.cfg.MinWeight {
			continue
		}
		if _, ok := catalog.KnownThemes[id]; !ok {
			e.logger.Debug().Str("theme", id).Msg("Dropping unknown theme from vector service")
			continue
		}
		weights[id] = w
	}
	return weights
}

// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/attune-labs/attune/internal/api"
	"github.com/attune-labs/attune/internal/catalog"
	"github.com/attune-labs/attune/internal/config"
	"github.com/attune-labs/attune/internal/history"
	"github.com/attune-labs/attune/internal/logging"
	"github.com/attune-labs/attune/internal/metrics"
	"github.com/attune-labs/attune/internal/scoring"
	"github.com/attune-labs/attune/internal/suggest"
	"github.com/attune-labs/attune/internal/supervisor"
	"github.com/attune-labs/attune/internal/supervisor/services"
	"github.com/attune-labs/attune/internal/themes"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.WithComponent("server")
	logger.Info().
		Str("version", version).
		Str("log_level", cfg.Logging.Level).
		Msg("starting attune")

	// Catalog. An invalid or empty catalog is fatal: the service has
	// nothing to suggest without one.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	catalogs := catalog.NewStore(cat, cfg.Catalog.Path)
	metrics.CatalogGames.Set(float64(cat.Len()))
	logger.Info().
		Int("games", cat.Len()).
		Str("path", cfg.Catalog.Path).
		Msg("catalog loaded")

	// Session history.
	hist, err := history.NewBadgerStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() {
		if cerr := hist.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("closing history store")
		}
	}()

	// Theme extraction: semantic when configured, keyword always as the
	// fallback. The chain degrades transparently when the semantic
	// service is unavailable.
	var primary themes.Extractor
	if cfg.Semantic.Enabled {
		sem, serr := themes.NewSemanticExtractor(themes.SemanticConfig{
			BaseURL:    cfg.Semantic.BaseURL,
			Collection: cfg.Semantic.Collection,
			Timeout:    cfg.Semantic.Timeout,
			MinWeight:  cfg.Semantic.MinWeight,
			MaxResults: cfg.Semantic.MaxResults,
			RateLimit:  cfg.Semantic.RateLimit,
			RateBurst:  cfg.Semantic.RateBurst,
		})
		if serr != nil {
			return fmt.Errorf("semantic extractor: %w", serr)
		}
		primary = sem
		logger.Info().Str("base_url", cfg.Semantic.BaseURL).Msg("semantic extraction enabled")
	}
	chain := themes.NewChain(primary, themes.NewKeywordExtractor())

	engine, err := suggest.NewEngine(suggest.Config{
		DefaultTopN: cfg.Suggest.DefaultTopN,
		MaxTopN:     cfg.Suggest.MaxTopN,
		Weights: scoring.Weights{
			Theme:      cfg.Suggest.Weights.Theme,
			Time:       cfg.Suggest.Weights.Time,
			Level:      cfg.Suggest.Weights.Level,
			Freshness:  cfg.Suggest.Weights.Freshness,
			Preference: cfg.Suggest.Weights.Preference,
		},
	}, catalogs, chain, hist)
	if err != nil {
		return fmt.Errorf("suggestion engine: %w", err)
	}

	handler := api.NewHandler(engine, catalogs, hist, version)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitReqs:     cfg.Server.RateLimitReqs,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
		RateLimitDisabled: cfg.Server.RateLimitDisabled,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(services.NewHTTPServerService(server, treeCfg.ShutdownTimeout))
	tree.AddDataService(services.NewHistoryGCService(hist, cfg.History.GCInterval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("addr", addr).Msg("listening")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	if unstopped, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(unstopped) > 0 {
		for _, s := range unstopped {
			logger.Warn().Str("service", s.Name).Msg("service did not stop before timeout")
		}
	}

	logger.Info().Msg("shutdown complete")
	return nil
}

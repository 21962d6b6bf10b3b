// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry via promauto at
package init and exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Suggestion Metrics:
  - attune_suggest_requests_total: Suggestion requests (counter)
    Labels: outcome (ok, fallback, invalid, error)
  - attune_suggest_duration_seconds: Pipeline latency (histogram)
  - attune_suggest_candidates_ranked: Candidates reaching scoring (histogram)
  - attune_suggest_fallback_total: Requests served from the default set (counter)

Theme Extraction Metrics:
  - attune_themes_extraction_total: Extractions by source (counter)
    Labels: source (semantic, keyword, none)
  - attune_themes_extraction_fallback_total: Semantic-to-keyword degradations (counter)
  - attune_themes_semantic_query_seconds: Vector service latency (histogram)
  - attune_breaker_state: Circuit breaker state (gauge)
    Labels: name
    Values: 0=closed, 0.5=half-open, 1=open

Safety Metrics:
  - attune_safety_denials_total: Games removed by contraindication (counter)
    Labels: flag
  - attune_safety_time_denials_total: Games removed for not fitting time (counter)

History and Catalog Metrics:
  - attune_history_events_total: Session events by kind (counter)
    Labels: kind (start, complete, feedback)
  - attune_catalog_games: Active catalog size (gauge)
  - attune_catalog_reloads_total: Catalog reloads by result (counter)

HTTP Metrics:
  - attune_http_requests_total: Requests by route and status class (counter)
  - attune_http_request_duration_seconds: Handler latency by route (histogram)

# Cardinality Management

Route labels use the chi route pattern, never the raw URL path, and status
codes are grouped into classes (2xx, 4xx, 5xx) to bound series counts.
*/
package metrics

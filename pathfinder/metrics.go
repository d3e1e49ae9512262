package pathfinder

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for search operations.
var (
	tracer = otel.Tracer("tilepath.pathfinder")
	meter  = otel.Meter("tilepath.pathfinder")
)

// Search outcomes, used as the "outcome" metric attribute.
const (
	outcomeFound          = "found"
	outcomeUnreachable    = "unreachable"
	outcomeOutOfBounds    = "out_of_bounds"
	outcomeExpansionLimit = "expansion_limit"
	outcomeInvalidState   = "invalid_state"
	outcomeSuperseded     = "superseded"
	outcomeCancelled      = "cancelled"
)

var (
	searchTotal    metric.Int64Counter
	searchTurns    metric.Int64Histogram
	searchExpanded metric.Int64Histogram
	searchLatency  metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		searchTotal, err = meter.Int64Counter(
			"pathfinder_searches_total",
			metric.WithDescription("Total number of finished or abandoned search requests"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchTurns, err = meter.Int64Histogram(
			"pathfinder_turns",
			metric.WithDescription("Scheduling turns consumed per request"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchExpanded, err = meter.Int64Histogram(
			"pathfinder_expanded_nodes",
			metric.WithDescription("Nodes expanded per request"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchLatency, err = meter.Float64Histogram(
			"pathfinder_search_duration_seconds",
			metric.WithDescription("Wall-clock time from FindPath to outcome"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordSearchMetrics records one request's outcome.
func recordSearchMetrics(ctx context.Context, outcome string, duration time.Duration, turns, expanded int) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	searchTotal.Add(ctx, 1, attrs)
	searchTurns.Record(ctx, int64(turns), attrs)
	searchExpanded.Record(ctx, int64(expanded), attrs)
	searchLatency.Record(ctx, duration.Seconds(), attrs)
}

// startSearchSpan opens the span that covers a request across all its turns.
func startSearchSpan(ctx context.Context, t Ticket, start, goal string) trace.Span {
	_, span := tracer.Start(ctx, "Finder.Search",
		trace.WithAttributes(
			attribute.String("search.id", t.ID),
			attribute.Int64("search.generation", int64(t.Generation)),
			attribute.String("search.start", start),
			attribute.String("search.goal", goal),
		),
	)
	return span
}

// endSearchSpan sets the result attributes and ends the span.
func endSearchSpan(span trace.Span, outcome string, turns, expanded, pathLen int, err error) {
	span.SetAttributes(
		attribute.String("search.outcome", outcome),
		attribute.Int("search.turns", turns),
		attribute.Int("search.expanded", expanded),
		attribute.Int("search.path_len", pathLen),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	span.End()
}

package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Parse outcomes reported on tradestats_parses_total
const (
	OutcomeSuccess  = "success"
	OutcomeNoTrades = "no_trades"
	OutcomeFailure  = "failure"
)

// Metrics holds the application instruments
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Statement parsing metrics
	ParsesTotal     metric.Int64Counter
	TradesRecovered metric.Int64Counter
	RowsSkipped     metric.Int64Counter
	ParseDuration   metric.Float64Histogram
}

// NewMetrics creates the application instruments on meter. A nil meter gets
// no-op instruments.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(MeterName)
	}

	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	httpActiveRequests, err := meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	parsesTotal, err := meter.Int64Counter(
		"tradestats_parses_total",
		metric.WithDescription("Total number of statement parses by format and outcome"),
	)
	if err != nil {
		return nil, err
	}

	tradesRecovered, err := meter.Int64Counter(
		"tradestats_trades_recovered_total",
		metric.WithDescription("Total number of trades recovered from statements"),
	)
	if err != nil {
		return nil, err
	}

	rowsSkipped, err := meter.Int64Counter(
		"tradestats_rows_skipped_total",
		metric.WithDescription("Total number of statement rows skipped with a warning"),
	)
	if err != nil {
		return nil, err
	}

	parseDuration, err := meter.Float64Histogram(
		"tradestats_parse_duration_seconds",
		metric.WithDescription("Statement parse duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		HTTPActiveRequests:  httpActiveRequests,
		ParsesTotal:         parsesTotal,
		TradesRecovered:     tradesRecovered,
		RowsSkipped:         rowsSkipped,
		ParseDuration:       parseDuration,
	}, nil
}

// RecordParse records one statement parse. Safe on a nil receiver.
func (m *Metrics) RecordParse(ctx context.Context, format, outcome string, trades, skipped int, duration time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("outcome", outcome),
	)
	m.ParsesTotal.Add(ctx, 1, attrs)
	m.ParseDuration.Record(ctx, duration.Seconds(), attrs)

	formatAttr := metric.WithAttributes(attribute.String("format", format))
	if trades > 0 {
		m.TradesRecovered.Add(ctx, int64(trades), formatAttr)
	}
	if skipped > 0 {
		m.RowsSkipped.Add(ctx, int64(skipped), formatAttr)
	}
}

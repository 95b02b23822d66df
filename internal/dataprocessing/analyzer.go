package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tradestats/internal/infrastructure"
	"tradestats/internal/statistics"
	"tradestats/pkg/contracts/domain"
)

// Analyzer parses a statement and derives its statistics bundle
type Analyzer struct {
	parser *TradeParser
	engine *statistics.Engine
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewAnalyzer creates an analyzer over parser and engine
func NewAnalyzer(parser *TradeParser, engine *statistics.Engine, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		parser: parser,
		engine: engine,
		logger: infrastructure.WithComponent(logger, "analyzer"),
		tracer: otel.Tracer(infrastructure.MeterName),
		now:    time.Now,
	}
}

// Parser returns the parser used by Analyze
func (a *Analyzer) Parser() *TradeParser {
	return a.parser
}

// Analyze parses data and computes statistics in the statement's currency
func (a *Analyzer) Analyze(ctx context.Context, filename string, data []byte) (*domain.Report, error) {
	parsed, err := a.parser.Parse(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	return a.Report(ctx, parsed), nil
}

// Report computes statistics for an already parsed statement
func (a *Analyzer) Report(ctx context.Context, parsed *domain.ParseResult) *domain.Report {
	ctx, span := a.tracer.Start(ctx, "tradestats.statistics",
		trace.WithAttributes(attribute.Int("trades", len(parsed.Trades))))
	defer span.End()

	stats := a.engine.Compute(parsed.Trades, parsed.Account.Currency)

	report := &domain.Report{
		ID:          uuid.NewString(),
		GeneratedAt: a.now().UTC(),
		Parse:       parsed,
		Statistics:  stats,
	}

	a.logger.InfoContext(ctx, "statistics computed",
		slog.String("report_id", report.ID),
		slog.Int("trades", stats.TotalTrades),
		slog.Float64("net_profit", stats.NetProfit),
		slog.Float64("max_drawdown", stats.MaxDrawdown))

	return report
}

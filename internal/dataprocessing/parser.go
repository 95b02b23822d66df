package dataprocessing

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tradestats/internal/charset"
	"tradestats/internal/errors"
	"tradestats/internal/extract"
	"tradestats/internal/infrastructure"
	"tradestats/internal/normalize"
	"tradestats/internal/schema"
	"tradestats/internal/validation"
	"tradestats/pkg/contracts/domain"
)

// TradeParser turns statement bytes into trades. A parser holds no per-parse
// state and can be shared between goroutines.
type TradeParser struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.Metrics
	lenient *normalize.Builder
	strict  *normalize.Builder
}

// NewTradeParser creates a parser. Builder options (location, clock, ticket
// synthesis) apply to every trade it builds. A nil metrics disables recording.
func NewTradeParser(logger *slog.Logger, metrics *infrastructure.Metrics, opts ...normalize.Option) *TradeParser {
	v := validation.NewTradeValidator()
	strictOpts := append(append([]normalize.Option{}, opts...), normalize.WithStrictSide())

	return &TradeParser{
		logger:  infrastructure.WithComponent(logger, "trade_parser"),
		tracer:  otel.Tracer(infrastructure.MeterName),
		metrics: metrics,
		lenient: normalize.NewBuilder(v, opts...),
		strict:  normalize.NewBuilder(v, strictOpts...),
	}
}

// collector accumulates the output of one parse
type collector struct {
	trades   []domain.Trade
	warnings []domain.RowWarning
	seen     int
}

func (c *collector) add(trade domain.Trade, err error) {
	c.seen++
	if err != nil {
		var rowErr *errors.RowError
		if stderrors.As(err, &rowErr) {
			reason := rowErr.Reason
			if rowErr.Cause != nil {
				reason += ": " + rowErr.Cause.Error()
			}
			c.warnings = append(c.warnings, domain.RowWarning{Row: rowErr.Row, Reason: reason})
			return
		}
		c.warnings = append(c.warnings, domain.RowWarning{Reason: err.Error()})
		return
	}
	c.trades = append(c.trades, trade)
}

func (c *collector) skip(row int, reason string) {
	c.seen++
	c.warnings = append(c.warnings, domain.RowWarning{Row: row, Reason: reason})
}

// Parse selects a format from the filename extension and recovers trades
// from data. It fails with ErrUnsupportedFormat, ErrEmptyInput or ErrNoTrades
// when nothing usable can be read; rows that cannot be built are reported as
// warnings on the result.
func (p *TradeParser) Parse(ctx context.Context, filename string, data []byte) (*domain.ParseResult, error) {
	format, err := validation.FormatFor(filename)
	if err != nil {
		p.metrics.RecordParse(ctx, "unknown", infrastructure.OutcomeFailure, 0, 0, 0)
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, "tradestats.parse",
		trace.WithAttributes(
			attribute.String("file.name", filename),
			attribute.String("file.format", string(format)),
			attribute.Int("file.size", len(data)),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := p.parse(ctx, filename, format, data)
	duration := time.Since(start)

	if err != nil {
		outcome := infrastructure.OutcomeFailure
		if stderrors.Is(err, errors.ErrNoTrades) {
			outcome = infrastructure.OutcomeNoTrades
		}
		p.metrics.RecordParse(ctx, string(format), outcome, 0, 0, duration)
		infrastructure.RecordError(ctx, err)
		p.logger.ErrorContext(ctx, "statement parse failed",
			slog.String("filename", filename),
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		return nil, err
	}

	p.metrics.RecordParse(ctx, string(format), infrastructure.OutcomeSuccess, len(result.Trades), len(result.Warnings), duration)
	span.SetAttributes(
		attribute.Int("parse.trades", len(result.Trades)),
		attribute.Int("parse.warnings", len(result.Warnings)),
		attribute.String("parse.encoding", result.Encoding),
	)

	p.logger.InfoContext(ctx, "statement parsed",
		slog.String("filename", filename),
		slog.String("format", string(format)),
		slog.String("encoding", result.Encoding),
		slog.Int("trades", len(result.Trades)),
		slog.Int("warnings", len(result.Warnings)),
		slog.Duration("duration", duration))

	return result, nil
}

func (p *TradeParser) parse(ctx context.Context, filename string, format domain.SourceFormat, data []byte) (*domain.ParseResult, error) {
	markup := format == domain.SourceFormatMarkup

	text, enc, err := charset.Decode(data, markup)
	if err != nil {
		return nil, errors.NewUnreadableInputError(filename, err)
	}

	result := &domain.ParseResult{
		Filename: filename,
		Format:   format,
		Encoding: string(enc),
	}

	var c *collector
	if markup {
		c, result.Account, err = p.parseMarkup(text)
	} else {
		c, err = p.parseDelimited(text)
	}
	if err != nil {
		return nil, err
	}

	for _, w := range c.warnings {
		p.logger.WarnContext(ctx, "row skipped",
			slog.String("filename", filename),
			slog.Int("row", w.Row),
			slog.String("reason", w.Reason))
	}

	if len(c.trades) == 0 {
		return nil, errors.NewNoTradesError(c.seen, len(c.warnings)).WithContext("filename", filename)
	}

	domain.SortByCloseTime(c.trades)
	result.Trades = c.trades
	result.Warnings = c.warnings
	return result, nil
}

// parseDelimited reads a header-or-not delimited text. Rows are numbered from
// 1 in line order.
func (p *TradeParser) parseDelimited(text string) (*collector, error) {
	lines := extract.Lines(text)
	if len(lines) < 2 {
		return nil, errors.NewEmptyInputError("delimited input needs at least two non-empty lines")
	}

	c := &collector{}

	first := extract.TokenizeLine(lines[0])
	if columns, ok := schema.InferColumns(first); ok {
		for i, line := range lines[1:] {
			c.add(p.lenient.Build(i+2, extract.TokenizeLine(line), columns))
		}
		return c, nil
	}

	for i, line := range lines {
		cells := extract.TokenizeLine(line)
		columns, ok := schema.DelimitedLayout(len(cells))
		if !ok {
			c.skip(i+1, fmt.Sprintf("unrecognized layout of %d cells", len(cells)))
			continue
		}
		// An unlabeled first line is data only if its profit cell is a number
		if i == 0 && normalize.Number(columns.Cell(cells, schema.FieldProfit)).Fallback {
			continue
		}
		c.add(p.lenient.Build(i+1, cells, columns))
	}

	return c, nil
}

// parseMarkup tries the Positions section first and falls back to reading
// every table.
func (p *TradeParser) parseMarkup(text string) (*collector, domain.AccountInfo, error) {
	doc, err := extract.ParseDocument(text)
	if err != nil {
		return nil, domain.AccountInfo{}, errors.NewAppError(errors.ErrTypeEmptyInput, "markup could not be parsed", err)
	}
	if doc.RowCount() == 0 {
		return nil, domain.AccountInfo{}, errors.NewEmptyInputError("markup input contains no table rows")
	}

	account := schema.HarvestAccount(doc)

	c := p.parsePositions(doc.PositionsRows())
	if len(c.trades) > 0 {
		return c, account, nil
	}

	fallback := &collector{}
	for _, table := range doc.Tables() {
		p.parseTable(fallback, table)
	}
	return fallback, account, nil
}

// parsePositions reads rows of the Positions section. Full rows use the
// fixed layout; partial rows are scanned only when they carry a buy or sell
// type cell.
func (p *TradeParser) parsePositions(rows [][]string) *collector {
	c := &collector{}

	for i, cells := range rows {
		row := i + 1
		if _, isHeader := schema.InferColumns(cells); isHeader {
			continue
		}
		if len(cells) == schema.PositionsLayoutCells {
			c.add(p.strict.Build(row, cells, schema.PositionsLayout))
			continue
		}
		if !hasStrictSide(cells) {
			continue
		}
		guess, ok := schema.ScanCells(cells)
		if !ok {
			c.skip(row, "no symbol and profit found")
			continue
		}
		c.add(p.lenient.BuildGuess(row, guess))
	}

	return c
}

// parseTable reads one table of the generic fallback. The first row that
// names the columns becomes the header for the rows after it.
func (p *TradeParser) parseTable(c *collector, table [][]string) {
	var columns schema.ColumnMap

	for i, cells := range table {
		row := i + 1
		if columns == nil {
			if inferred, ok := schema.InferColumns(cells); ok {
				columns = inferred
				continue
			}
			guess, ok := schema.ScanCells(cells)
			if !ok || normalize.IsNonTradeRow(cells) {
				continue
			}
			c.add(p.lenient.BuildGuess(row, guess))
			continue
		}
		if !columns.Has(cells, schema.FieldProfit) {
			c.skip(row, "row has no profit cell")
			continue
		}
		c.add(p.lenient.Build(row, cells, columns))
	}
}

func hasStrictSide(cells []string) bool {
	for _, cell := range cells {
		if _, ok := normalize.StrictSide(cell); ok {
			return true
		}
	}
	return false
}

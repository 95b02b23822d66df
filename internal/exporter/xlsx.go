package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"tradestats/internal/infrastructure"
	"tradestats/pkg/contracts/domain"
)

// Sheet names of the workbook export
const (
	SheetTrades     = "Trades"
	SheetStatistics = "Statistics"
	SheetSymbols    = "Symbols"
)

// XLSXReport writes a full report as a workbook with a trades sheet and a
// statistics sheet
type XLSXReport struct {
	logger *slog.Logger
}

// NewXLSXReport creates a workbook report writer
func NewXLSXReport(logger *slog.Logger) *XLSXReport {
	return &XLSXReport{logger: infrastructure.WithComponent(logger, "xlsx_report")}
}

// Write renders report as a workbook into w
func (x *XLSXReport) Write(w io.Writer, report *domain.Report) error {
	var trades []domain.Trade
	if report.Parse != nil {
		trades = report.Parse.Trades
	}

	book, err := newWorkbook(trades, report.Statistics)
	if err != nil {
		return err
	}
	defer book.Close()

	if err := book.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	x.logger.Debug("workbook written",
		slog.String("report_id", report.ID),
		slog.Int("trades", len(trades)))
	return nil
}

// Save writes the workbook to path
func (x *XLSXReport) Save(report *domain.Report, path string) error {
	return saveFile(path, func(w io.Writer) error { return x.Write(w, report) })
}

// newWorkbook builds the workbook. The statistics sheets are added only
// when stats is not nil.
func newWorkbook(trades []domain.Trade, stats *domain.Statistics) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetTrades); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name trades sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeTradesSheet(f, header, trades); err != nil {
		f.Close()
		return nil, err
	}

	if stats != nil {
		if err := writeStatisticsSheet(f, header, stats); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeSymbolsSheet(f, header, stats); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeTradesSheet(f *excelize.File, header int, trades []domain.Trade) error {
	if err := writeHeader(f, SheetTrades, header, tradeHeaders); err != nil {
		return err
	}

	for i, t := range trades {
		row := []interface{}{
			t.Ticket, t.Symbol, string(t.Side), t.Volume,
			formatTime(t.OpenTime), t.OpenPrice,
			formatTime(t.CloseTime), t.ClosePrice,
			optionalCell(t.StopLoss), optionalCell(t.TakeProfit),
			t.GrossProfit, t.Commission, t.Swap, t.NetProfit,
			t.Defaulted.Any(),
		}
		if err := setRow(f, SheetTrades, i+2, row); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetTrades, "A", "O", 14)
}

func writeStatisticsSheet(f *excelize.File, header int, stats *domain.Statistics) error {
	if _, err := f.NewSheet(SheetStatistics); err != nil {
		return fmt.Errorf("failed to add statistics sheet: %w", err)
	}
	if err := writeHeader(f, SheetStatistics, header, []string{"Metric", "Value"}); err != nil {
		return err
	}

	for i, r := range Summary(stats) {
		if err := setRow(f, SheetStatistics, i+2, []interface{}{r.Metric, r.Value}); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetStatistics, "A", "B", 24)
}

func writeSymbolsSheet(f *excelize.File, header int, stats *domain.Statistics) error {
	if _, err := f.NewSheet(SheetSymbols); err != nil {
		return fmt.Errorf("failed to add symbols sheet: %w", err)
	}
	if err := writeHeader(f, SheetSymbols, header, symbolHeaders); err != nil {
		return err
	}

	for i, s := range stats.Symbols {
		row := []interface{}{s.Symbol, s.Count, s.Profit, s.WinRate, s.Volume}
		if err := setRow(f, SheetSymbols, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func optionalCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// symbolHeaders is the column order of symbol tables
var symbolHeaders = []string{"Symbol", "Trades", "Profit", "Win Rate", "Volume"}

package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	apperrors "tradestats/internal/errors"
	"tradestats/pkg/contracts/domain"
)

// Supported trade export formats
const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
	FormatXLSX    = "xlsx"
)

// TradeSaver writes a trade collection in one file format
type TradeSaver interface {
	Write(w io.Writer, trades []domain.Trade) error
	Save(trades []domain.Trade, path string) error
	Extension() string
	ContentType() string
}

// NewTradeSaver returns the saver for format (csv, json, parquet, xlsx)
func NewTradeSaver(format string) (TradeSaver, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV:
		return CSVSaver{}, nil
	case FormatJSON:
		return JSONSaver{}, nil
	case FormatParquet:
		return ParquetSaver{}, nil
	case FormatXLSX:
		return XLSXSaver{}, nil
	default:
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("unsupported export format %q (use: csv, json, parquet, xlsx)", format))
	}
}

// saveFile creates path and its directory and hands the file to write
func saveFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create export directory", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create export file", err)
	}

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewStorageError("failed to close export file", err)
	}
	return nil
}

// CSVSaver writes trades as a BOM-prefixed CSV table
type CSVSaver struct{}

func (CSVSaver) Extension() string   { return "csv" }
func (CSVSaver) ContentType() string { return "text/csv; charset=utf-8" }

func (s CSVSaver) Write(w io.Writer, trades []domain.Trade) error {
	records := make([][]string, len(trades))
	for i, t := range trades {
		records[i] = tradeRow(t)
	}
	return NewCSVWriter("", nil).WriteTo(w, WriteOptions{
		Headers:   tradeHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}

func (s CSVSaver) Save(trades []domain.Trade, path string) error {
	return saveFile(path, func(w io.Writer) error { return s.Write(w, trades) })
}

// JSONSaver writes trades as an indented JSON array
type JSONSaver struct{}

func (JSONSaver) Extension() string   { return "json" }
func (JSONSaver) ContentType() string { return "application/json" }

func (JSONSaver) Write(w io.Writer, trades []domain.Trade) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewTradeRecords(trades))
}

func (s JSONSaver) Save(trades []domain.Trade, path string) error {
	return saveFile(path, func(w io.Writer) error { return s.Write(w, trades) })
}

// ParquetSaver writes trades as a parquet file of TradeRecord rows
type ParquetSaver struct{}

func (ParquetSaver) Extension() string   { return "parquet" }
func (ParquetSaver) ContentType() string { return "application/vnd.apache.parquet" }

func (ParquetSaver) Write(w io.Writer, trades []domain.Trade) error {
	return parquet.Write(w, NewTradeRecords(trades))
}

func (ParquetSaver) Save(trades []domain.Trade, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create export directory", err)
	}
	return parquet.WriteFile(path, NewTradeRecords(trades))
}

// XLSXSaver writes trades as a single-sheet workbook
type XLSXSaver struct{}

func (XLSXSaver) Extension() string { return "xlsx" }
func (XLSXSaver) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXSaver) Write(w io.Writer, trades []domain.Trade) error {
	book, err := newWorkbook(trades, nil)
	if err != nil {
		return err
	}
	defer book.Close()
	return book.Write(w)
}

func (s XLSXSaver) Save(trades []domain.Trade, path string) error {
	return saveFile(path, func(w io.Writer) error { return s.Write(w, trades) })
}

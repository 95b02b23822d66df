package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"tradestats/internal/dataprocessing"
	apperrors "tradestats/internal/errors"
	"tradestats/internal/exporter"
	"tradestats/internal/infrastructure"
	"tradestats/internal/validation"
	"tradestats/pkg/contracts/domain"
)

// AnalysisService turns uploaded statements into reports and trade exports
type AnalysisService struct {
	analyzer  *dataprocessing.Analyzer
	validator *validation.FileValidator
	logger    *slog.Logger
}

// ExportResult is a rendered trade file ready to be served
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
	Trades      int
}

// NewAnalysisService creates the analysis service
func NewAnalysisService(analyzer *dataprocessing.Analyzer, validator *validation.FileValidator, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		analyzer:  analyzer,
		validator: validator,
		logger:    infrastructure.WithComponent(logger, "analysis_service"),
	}
}

// MaxUploadBytes is the largest statement the service accepts
func (s *AnalysisService) MaxUploadBytes() int64 {
	return s.validator.MaxBytes()
}

// Analyze parses the statement and computes its statistics report
func (s *AnalysisService) Analyze(ctx context.Context, filename string, data []byte) (*domain.Report, error) {
	if err := s.check(filename, data); err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(ctx, filename, data)
}

// Export parses the statement and renders its trades in format
func (s *AnalysisService) Export(ctx context.Context, filename string, data []byte, format string) (*ExportResult, error) {
	saver, err := exporter.NewTradeSaver(format)
	if err != nil {
		return nil, err
	}
	if err := s.check(filename, data); err != nil {
		return nil, err
	}

	parsed, err := s.analyzer.Parser().Parse(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := saver.Write(&buf, parsed.Trades); err != nil {
		s.logger.ErrorContext(ctx, "trade export failed",
			slog.String("format", saver.Extension()),
			slog.String("error", err.Error()))
		return nil, apperrors.ExportError(saver.Extension(), err)
	}

	s.logger.InfoContext(ctx, "trades exported",
		slog.String("filename", filename),
		slog.String("format", saver.Extension()),
		slog.Int("trades", len(parsed.Trades)),
		slog.Int("bytes", buf.Len()))

	return &ExportResult{
		Filename:    exportName(filename, saver.Extension()),
		ContentType: saver.ContentType(),
		Data:        buf.Bytes(),
		Trades:      len(parsed.Trades),
	}, nil
}

// check rejects oversize payloads and unknown formats before any decoding
func (s *AnalysisService) check(filename string, data []byte) error {
	if err := s.validator.ValidateSize(int64(len(data))); err != nil {
		return err
	}
	if _, err := validation.FormatFor(filename); err != nil {
		return err
	}
	return nil
}

// exportName derives the download name from the uploaded statement name
func exportName(filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "trades"
	}
	return fmt.Sprintf("%s-trades.%s", base, ext)
}

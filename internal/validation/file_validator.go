package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "tradestats/internal/errors"
	"tradestats/pkg/contracts/domain"
)

// DefaultMaxFileBytes caps statement files read from disk
const DefaultMaxFileBytes int64 = 20 * 1024 * 1024

// FileValidator checks statement inputs and export destinations
type FileValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewFileValidator creates a new file validator. A maxBytes of zero or less
// selects DefaultMaxFileBytes.
func NewFileValidator(logger *slog.Logger, maxBytes int64) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	return &FileValidator{
		logger:   logger.With(slog.String("component", "file_validator")),
		maxBytes: maxBytes,
	}
}

// MaxBytes returns the configured size limit
func (v *FileValidator) MaxBytes() int64 {
	return v.maxBytes
}

// FormatFor selects the parse format from the filename extension.
// Matching is case-insensitive.
func FormatFor(filename string) (domain.SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return domain.SourceFormatDelimited, nil
	case ".html", ".htm":
		return domain.SourceFormatMarkup, nil
	default:
		return "", apperrors.NewUnsupportedFormatError(filename)
	}
}

// ValidateSize rejects payloads larger than the configured limit
func (v *FileValidator) ValidateSize(size int64) error {
	if size > v.maxBytes {
		return apperrors.NewAppValidationError(
			fmt.Sprintf("file is %d bytes, limit is %d", size, v.maxBytes)).
			WithContext("size", size).
			WithContext("limit", v.maxBytes)
	}
	return nil
}

// ValidateStatementFile checks that path is a readable statement file of a
// supported format and within the size limit.
func (v *FileValidator) ValidateStatementFile(path string) (domain.SourceFormat, error) {
	format, err := FormatFor(path)
	if err != nil {
		v.logger.Warn("Unsupported statement file",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return "", err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return "", fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}
	if err := v.ValidateSize(info.Size()); err != nil {
		v.logger.Error("Statement file too large",
			slog.String("file", path),
			slog.Int64("size", info.Size()),
			slog.Int64("limit", v.maxBytes))
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Statement file validated",
		slog.String("file", path),
		slog.String("format", string(format)),
		slog.Int64("size", info.Size()))
	return format, nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeEmptyInput        ErrorType = "EMPTY_INPUT"
	ErrTypeNoTrades          ErrorType = "NO_TRADES"
	ErrTypeRow               ErrorType = "ROW"
	ErrTypeValidation        ErrorType = "VALIDATION"
	ErrTypeStorage           ErrorType = "STORAGE"
	ErrTypeConfig            ErrorType = "CONFIG"
)

// Sentinels for the fatal parse conditions. AppErrors of the matching type
// satisfy errors.Is against them.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyInput        = errors.New("input is empty or unreadable")
	ErrNoTrades          = errors.New("no trades found")
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the fatal sentinels by error type
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrUnsupportedFormat:
		return e.Type == ErrTypeUnsupportedFormat
	case ErrEmptyInput:
		return e.Type == ErrTypeEmptyInput
	case ErrNoTrades:
		return e.Type == ErrTypeNoTrades
	}
	return false
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewUnsupportedFormatError reports a filename whose extension selects no parser
func NewUnsupportedFormatError(filename string) *AppError {
	return NewAppError(ErrTypeUnsupportedFormat,
		fmt.Sprintf("unsupported file format %q (expected .csv, .html or .htm)", filename), nil).
		WithContext("filename", filename)
}

// NewEmptyInputError reports input with nothing to extract
func NewEmptyInputError(message string) *AppError {
	return NewAppError(ErrTypeEmptyInput, message, nil)
}

// NewUnreadableInputError reports input whose bytes could not be decoded
func NewUnreadableInputError(filename string, cause error) *AppError {
	return NewAppError(ErrTypeEmptyInput, "input could not be decoded", cause).
		WithContext("filename", filename)
}

// NewNoTradesError reports input that was read but yielded no valid trade
func NewNoTradesError(rowsSeen, rowsSkipped int) *AppError {
	return NewAppError(ErrTypeNoTrades, "no trades could be recovered from the file", nil).
		WithContext("rows_seen", rowsSeen).
		WithContext("rows_skipped", rowsSkipped)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsFatalParseError reports whether err is one of the conditions that abort a parse
func IsFatalParseError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrNoTrades)
}

// RowError is a recoverable failure on a single source row
type RowError struct {
	Row    int
	Reason string
	Cause  error
}

// NewRowError creates a row-level error
func NewRowError(row int, reason string, cause error) *RowError {
	return &RowError{Row: row, Reason: reason, Cause: cause}
}

// Error implements the error interface
func (e *RowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] row %d: %s: %v", ErrTypeRow, e.Row, e.Reason, e.Cause)
	}
	return fmt.Sprintf("[%s] row %d: %s", ErrTypeRow, e.Row, e.Reason)
}

// Unwrap returns the underlying cause
func (e *RowError) Unwrap() error {
	return e.Cause
}

package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradestats/internal/shared/testutil"
)

func requestID(context.Context) string { return "req-42" }

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantTitle  string
	}{
		{
			name:       "unsupported format",
			err:        NewUnsupportedFormatError("a.pdf"),
			wantStatus: http.StatusUnsupportedMediaType,
			wantType:   TypeUnsupportedFormat,
			wantTitle:  "Unsupported Format",
		},
		{
			name:       "empty input",
			err:        NewEmptyInputError("no rows"),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeEmptyInput,
			wantTitle:  "Empty Statement",
		},
		{
			name:       "undecodable input",
			err:        NewUnreadableInputError("report.htm", errors.New("bad utf-16")),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeEmptyInput,
			wantTitle:  "Empty Statement",
		},
		{
			name:       "no trades",
			err:        fmt.Errorf("wrapped: %w", NewNoTradesError(4, 4)),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeNoTrades,
			wantTitle:  "No Trades Found",
		},
		{
			name:       "validation",
			err:        NewAppValidationError("too big"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantTitle:  "Validation Failed",
		},
		{
			name:       "storage is internal",
			err:        NewStorageError("disk", errors.New("full")),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantTitle:  "Internal Server Error",
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantTitle:  "Request Timeout",
		},
		{
			name:       "payload too large",
			err:        PayloadTooLarge(1024),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
			wantTitle:  "Request Entity Too Large",
		},
		{
			name:       "service unavailable",
			err:        ServiceUnavailable("exporter disabled"),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeServiceDown,
			wantTitle:  "Service Unavailable",
		},
		{
			name:       "field validation",
			err:        ErrValidation("filename", "required"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantTitle:  "Bad Request",
		},
		{
			name:       "export failure",
			err:        ExportError("xlsx", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeExportFailed,
			wantTitle:  "Internal Server Error",
		},
		{
			name:       "plain error",
			err:        errors.New("unexpected"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantTitle:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false, requestID)

			rec := httptest.NewRecorder()
			handler.HandleError(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, tt.wantTitle, body["title"])
			assert.EqualValues(t, tt.wantStatus, body["status"])
			assert.Equal(t, "/api/v1/analyze", body["instance"])
			assert.Equal(t, "req-42", body["trace_id"])
			assert.NotContains(t, body, "stack")
		})
	}
}

func TestErrorHandler_AppErrorContextBecomesExtensions(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false, nil)

	rec := httptest.NewRecorder()
	err := NewNoTradesError(5, 3).WithContext("filename", "a.csv")
	handler.HandleError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	body := decodeProblem(t, rec)
	assert.Equal(t, "NO_TRADES", body["error_type"])
	assert.EqualValues(t, 5, body["rows_seen"])
	assert.EqualValues(t, 3, body["rows_skipped"])
	assert.Equal(t, "a.csv", body["filename"])
	assert.NotContains(t, body, "trace_id")
}

func TestErrorHandler_LogLevels(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, true, requestID)

	handler.HandleError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), NewAppValidationError("x"))
	handler.HandleError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))
	handler.HandleError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Len(t, logs.GetRecordsByLevel(slog.LevelWarn), 1, "one warning")
	assert.Len(t, logs.GetRecordsByLevel(slog.LevelError), 1, "one error")
	assert.Equal(t, 2, logs.Count())
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, true, nil)

	rec := httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))
	assert.NotEmpty(t, decodeProblem(t, rec)["stack"])

	rec = httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), NewAppValidationError("x"))
	assert.NotContains(t, decodeProblem(t, rec), "stack")
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false, requestID)

	rec := httptest.NewRecorder()
	handler.HandlePanic(rec, httptest.NewRequest(http.MethodGet, "/", nil), "boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, body["type"])
	assert.NotContains(t, body, "panic")
	assert.True(t, logs.ContainsMessage("panic recovered"))
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false, requestID)

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, rec)["type"])

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, decodeProblem(t, rec)["detail"], "DELETE")
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "", "/x").
		WithExtension("field", "file").
		WithExtension("type", "ignored")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, TypeValidation, body["type"], "standard members win over extensions")
	assert.Equal(t, "file", body["field"])
	assert.NotContains(t, body, "detail")
}

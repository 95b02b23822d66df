package app

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradestats/internal/config"
	apperrors "tradestats/internal/errors"
	"tradestats/internal/shared/testutil"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := config.Default()
	cfg.Server.ShutdownTimeout = 5 * time.Second

	application, err := NewApplication(cfg)
	require.NoError(t, err)
	return application
}

func TestNewApplication_Routes(t *testing.T) {
	application := newTestApplication(t)
	statement := testutil.CSV(
		"EURUSD,buy,0.1,1.1000,1.1050,50.00",
		"GBPUSD,sell,0.2,1.2700,1.2710,-20.00",
	)

	tests := []struct {
		name       string
		method     string
		path       string
		body       []byte
		wantStatus int
		wantBody   string
	}{
		{name: "health", method: http.MethodGet, path: config.HealthEndpoint, wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "analyze", method: http.MethodPost, path: config.AnalyzeEndpoint + "?filename=a.csv", body: statement, wantStatus: http.StatusOK, wantBody: `"total_trades":2`},
		{name: "export", method: http.MethodPost, path: config.ExportEndpoint + "?filename=a.csv&format=json", body: statement, wantStatus: http.StatusOK, wantBody: `"symbol": "GBPUSD"`},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound, wantBody: apperrors.TypeNotFound},
		{name: "wrong method", method: http.MethodGet, path: config.AnalyzeEndpoint, wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(tt.body))
			application.Router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, config.MetricsEndpoint, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tradestats_parses_total")
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestApplication_ServeAndShutdown(t *testing.T) {
	application := newTestApplication(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + config.HealthEndpoint)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), config.AppVersion)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewAnalyzer_InvalidTimezone(t *testing.T) {
	cfg := config.Default().Analysis
	cfg.Timezone = "Mars/Olympus"

	_, err := NewAnalyzer(cfg, nil, nil)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeConfig, appErr.Type)
}

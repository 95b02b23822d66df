package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"tradestats/internal/infrastructure"
)

// HealthService reports process health and build information
type HealthService struct {
	version   string
	startTime time.Time
	now       func() time.Time
	logger    *slog.Logger
}

// HealthStatus is the health check response
type HealthStatus struct {
	Status        string       `json:"status"`
	Timestamp     time.Time    `json:"timestamp"`
	Version       string       `json:"version"`
	UptimeSeconds float64      `json:"uptime_seconds"`
	Runtime       *RuntimeInfo `json:"runtime,omitempty"`
}

// RuntimeInfo describes the Go runtime serving the API
type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Goroutines int    `json:"goroutines"`
}

// NewHealthService creates a health service for the given build version
func NewHealthService(version string, logger *slog.Logger) *HealthService {
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		now:       time.Now,
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck returns the overall health status. The service has no
// external dependencies, so a running process is a healthy one.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	now := hs.now()
	status := HealthStatus{
		Status:        "ok",
		Timestamp:     now.UTC(),
		Version:       hs.version,
		UptimeSeconds: now.Sub(hs.startTime).Seconds(),
		Runtime: &RuntimeInfo{
			GoVersion:  runtime.Version(),
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Goroutines: runtime.NumGoroutine(),
		},
	}

	hs.logger.DebugContext(ctx, "health check",
		slog.String("status", status.Status),
		slog.Float64("uptime_seconds", status.UptimeSeconds))
	return status
}

package config

// Application constants
const (
	// Application Info
	AppName    = "tradestats"
	AppVersion = "1.0.0"

	// API Endpoints
	APIBasePath     = "/api/v1"
	AnalyzeEndpoint = "/api/v1/analyze"
	ExportEndpoint  = "/api/v1/analyze/export"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"

	// Multipart form field carrying the statement file
	UploadFormField = "file"
)

// ExportFormats lists the formats accepted by the exporter
var ExportFormats = []string{"csv", "json", "parquet", "xlsx"}

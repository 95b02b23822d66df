// Package services holds the application logic behind the HTTP handlers.
//
// AnalysisService validates an uploaded statement, runs it through the
// parse and statistics pipeline, and renders trade exports. HealthService
// reports liveness and build information. Handlers stay thin and only
// translate between HTTP and these services.
package services

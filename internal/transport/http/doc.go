// Package http implements the HTTP handlers of the tradestats API.
//
// Handlers stay thin: they read the upload, call a service and render
// the result. Failures go through errors.ErrorHandler, which answers with
// RFC 7807 problem details.
//
//	POST /api/v1/analyze          statement in, statistics report out
//	POST /api/v1/analyze/export   statement in, trade file out
//	GET  /api/health              liveness and build information
//	GET  /metrics                 Prometheus exposition
//
// A statement is sent either as the multipart field "file" or as the raw
// request body with its name in the filename query parameter. The name's
// extension selects the parser.
package http

package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "tradestats/internal/errors"
)

// ProblemContentType is the media type of RFC 7807 responses
const ProblemContentType = "application/problem+json"

// writeProblem writes problem with the request id attached. Middleware
// runs outside chi/render's content negotiation, so it encodes directly.
func writeProblem(w http.ResponseWriter, r *http.Request, problem *apperrors.ProblemDetails) {
	if reqID := GetRequestID(r.Context()); reqID != "" {
		problem.WithExtension("trace_id", reqID)
	}

	w.Header().Set("Content-Type", ProblemContentType)
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}

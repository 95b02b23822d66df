package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tradestats/internal/config"
	apperrors "tradestats/internal/errors"
	"tradestats/internal/infrastructure"
	"tradestats/internal/services"
)

// multipartOverhead is the body allowance for multipart boundaries and part
// headers on top of the file size limit
const multipartOverhead = 64 * 1024

// AnalysisHandler handles statement uploads
type AnalysisHandler struct {
	service       *services.AnalysisService
	defaultFormat string
	logger        *slog.Logger
	errorHandler  *apperrors.ErrorHandler
}

// NewAnalysisHandler creates the handler. defaultFormat is used by export
// requests without a format parameter.
func NewAnalysisHandler(service *services.AnalysisService, defaultFormat string, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:       service,
		defaultFormat: defaultFormat,
		logger:        infrastructure.WithComponent(logger, "analysis_handler"),
		errorHandler:  errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Analyze)
	r.Post("/export", h.Export)
	return r
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Analyze(r.Context(), filename, data)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, report)
}

// Export handles POST /api/v1/analyze/export?format=csv|json|parquet|xlsx
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = h.defaultFormat
	}

	filename, data, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Export(r.Context(), filename, data, format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Header().Set("X-Trade-Count", strconv.Itoa(result.Trades))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		h.logger.WarnContext(r.Context(), "export response write failed",
			slog.String("error", err.Error()))
	}
}

// readUpload returns the statement name and bytes from either a multipart
// form field or a raw body named by the filename query parameter
func (h *AnalysisHandler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	limit := h.service.MaxUploadBytes()
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	multipart := strings.HasPrefix(mediaType, "multipart/")
	if multipart {
		limit += multipartOverhead
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if !multipart {
		filename := r.URL.Query().Get("filename")
		if filename == "" {
			return "", nil, apperrors.ErrValidation("filename", "filename query parameter is required for raw uploads")
		}
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, uploadError(err)
		}
		return filename, data, nil
	}

	file, header, err := r.FormFile(config.UploadFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, apperrors.ErrValidation(config.UploadFormField,
				fmt.Sprintf("multipart field %q is required", config.UploadFormField))
		}
		return "", nil, uploadError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, uploadError(err)
	}

	h.logger.DebugContext(r.Context(), "statement uploaded",
		slog.String("filename", header.Filename),
		slog.Int("bytes", len(data)))
	return header.Filename, data, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.PayloadTooLarge(tooLarge.Limit)
	}
	return apperrors.InvalidRequestWithError(err)
}

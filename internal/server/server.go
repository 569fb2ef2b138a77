// Package server exposes the viability calculator over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iwvelando/pv-viability/pkg/constants"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: version}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.handleHealth)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Post("/calculate", h.handleCalculate)
		r.Post("/calculate/upload", h.handleUpload)
		r.Post("/calculate/config", h.handleConfig)
		r.Post("/config/export", h.handleConfigExport)
	})

	return router
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// apiError carries the HTTP status a failure should be reported with.
type apiError struct {
	status int
	msg    string
}

func (e *apiError) Error() string {
	return e.msg
}

func badRequest(format string, args ...interface{}) error {
	return &apiError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// bodyError turns a failed body read into 413 when the size limit was hit
// and 400 otherwise.
func (h *handler) bodyError(err error, what string) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return &apiError{
			status: http.StatusRequestEntityTooLarge,
			msg:    fmt.Sprintf("%s exceeds limit of %d bytes", what, h.maxUploadSize),
		}
	}
	return badRequest("failed to decode %s: %v", what, err)
}

// decodeJSON reads a size-limited JSON body into dst.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, strict bool, what string) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("failed to decode %s: empty body", what)
		}
		return h.bodyError(err, what)
	}
	return nil
}

// fail logs err under op and writes it as {"error": msg}. Errors that are not
// an apiError are reported as internal.
func (h *handler) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		status = apiErr.status
	}

	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	)
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/abubakr3800/sc-standards/internal/common"
	"github.com/abubakr3800/sc-standards/internal/compliance"
	"github.com/abubakr3800/sc-standards/internal/export"
	"github.com/abubakr3800/sc-standards/internal/pipeline"
	"github.com/abubakr3800/sc-standards/internal/repository"
)

// Server is the HTTP surface of the daemon. Handlers serialize and display;
// all analysis lives in the pipeline packages.
type Server struct {
	processor *pipeline.Processor
	standards *compliance.DB
	documents repository.DocumentRepository
	reports   repository.ReportRepository
	exporter  *export.Service
	db        *repository.DB

	uploadDir      string
	maxUploadBytes int64
	logger         *slog.Logger
}

type Options struct {
	UploadDir      string
	MaxUploadBytes int64
}

func New(processor *pipeline.Processor, standards *compliance.DB, documents repository.DocumentRepository, reports repository.ReportRepository, exporter *export.Service, db *repository.DB, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 64 << 20
	}
	return &Server{
		processor:      processor,
		standards:      standards,
		documents:      documents,
		reports:        reports,
		exporter:       exporter,
		db:             db,
		uploadDir:      opts.UploadDir,
		maxUploadBytes: opts.MaxUploadBytes,
		logger:         logger,
	}
}

// Router wires all routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.logRequests)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/documents", s.handleProcessDocument).Methods(http.MethodPost)
	v1.HandleFunc("/documents/{id}", s.handleGetDocument).Methods(http.MethodGet)
	v1.HandleFunc("/reports", s.handleListReports).Methods(http.MethodGet)
	v1.HandleFunc("/reports/{id}", s.handleGetReport).Methods(http.MethodGet)
	v1.HandleFunc("/reports/{id}/xlsx", s.handleExportReport).Methods(http.MethodGet)
	v1.HandleFunc("/standards", s.handleListStandards).Methods(http.MethodGet)
	return r
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", common.RequestIDFromContext(r.Context()),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context(), 5*time.Second); err != nil {
			s.writeError(w, r.Context(), http.StatusServiceUnavailable, "database unavailable", err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("http.encode_failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, ctx context.Context, status int, message string, err error) {
	if err != nil {
		s.logger.Error("http.error", "status", status, "message", message, "request_id", common.RequestIDFromContext(ctx), "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps repository errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

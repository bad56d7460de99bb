// Package chi exposes the HTTP API: document upload, the analysis endpoints,
// document chat, and health.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/legalens/docuverify/internal/domain"
	"github.com/legalens/docuverify/internal/repository/docstore"
	analysisuc "github.com/legalens/docuverify/internal/usecase/analysis"
	chatuc "github.com/legalens/docuverify/internal/usecase/chat"
	healthuc "github.com/legalens/docuverify/internal/usecase/health"
	"github.com/legalens/docuverify/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	store          docstore.Store
	analysis       *analysisuc.Service
	chat           *chatuc.Service
	health         *healthuc.Service
	logger         *zap.Logger
	maxUploadBytes int64
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server. maxUploadBytes caps the accepted
// multipart body size.
func NewServer(
	store docstore.Store,
	analysis *analysisuc.Service,
	chat *chatuc.Service,
	health *healthuc.Service,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Server {
	s := &Server{
		store:          store,
		analysis:       analysis,
		chat:           chat,
		health:         health,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrNoFile, http.StatusBadRequest, CodeNoFile),
		sentinelHandler(domain.ErrUnprocessableDocument, http.StatusBadRequest, CodeUnprocessableDocument),
		sentinelHandler(domain.ErrEmptyDocument, http.StatusBadRequest, CodeEmptyDocument),
		sentinelHandler(domain.ErrQuotaExceeded, http.StatusServiceUnavailable, CodeQuotaExceeded),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Post("/upload", s.Upload)
	r.Post("/verify", s.Verify)
	r.Post("/analyze-alterability", s.Alterability)
	r.Post("/summarize", s.Summarize)
	r.Post("/chat", s.Chat)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// Upload handles POST /upload. The document arrives as the multipart form
// field "file"; everything else in the form is ignored.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleDomainError(w, domain.ErrNoFile)
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Failed to read uploaded file")
		return
	}

	doc := domain.StoredDocument{
		ID:          uuid.NewString(),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(content)),
		UploadedAt:  time.Now().UTC(),
		Content:     content,
	}

	if err := s.store.Put(r.Context(), doc); err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.logger.Info("document uploaded",
		zap.String("file_id", doc.ID),
		zap.String("filename", doc.Filename),
		zap.Int64("size", doc.Size))

	writeJSON(w, http.StatusOK, UploadResponse{
		FileID:   doc.ID,
		Filename: doc.Filename,
		Size:     doc.Size,
	})
}

// Verify handles POST /verify.
func (s *Server) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.FileID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "file_id is required")
		return
	}

	result, err := s.analysis.Verify(r.Context(), req.FileID, req.DocumentType)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Alterability handles POST /analyze-alterability.
func (s *Server) Alterability(w http.ResponseWriter, r *http.Request) {
	fileID, ok := decodeFileRequest(w, r)
	if !ok {
		return
	}

	result, err := s.analysis.Alterability(r.Context(), fileID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Summarize handles POST /summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	fileID, ok := decodeFileRequest(w, r)
	if !ok {
		return
	}

	result, err := s.analysis.Summarize(r.Context(), fileID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.FileID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "file_id is required")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "message is required")
		return
	}

	result, err := s.chat.Ask(r.Context(), req.FileID, req.Message, req.ChatHistory)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:   result.Response,
		Confidence: result.Confidence,
		Sources:    result.Sources,
	})
}

func decodeFileRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req FileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return "", false
	}
	if req.FileID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "file_id is required")
		return "", false
	}
	return req.FileID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDocumentNotFound,
		domain.ErrNoFile,
		domain.ErrUnprocessableDocument,
		domain.ErrEmptyDocument,
		domain.ErrQuotaExceeded,
		domain.ErrRateLimited,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

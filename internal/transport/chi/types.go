package chi

import "github.com/legalens/docuverify/internal/domain"

// ErrorCode is the machine-readable error identifier in error responses.
type ErrorCode string

const (
	CodeBadRequest            ErrorCode = "bad_request"
	CodeValidationFailed      ErrorCode = "validation_failed"
	CodeNoFile                ErrorCode = "no_file"
	CodeDocumentNotFound      ErrorCode = "document_not_found"
	CodeUnprocessableDocument ErrorCode = "unprocessable_document"
	CodeEmptyDocument         ErrorCode = "empty_document"
	CodeQuotaExceeded         ErrorCode = "quota_exceeded"
	CodeRateLimited           ErrorCode = "rate_limited"
	CodeInternalError         ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// VerifyRequest is the body of POST /verify.
type VerifyRequest struct {
	FileID       string `json:"file_id"`
	DocumentType string `json:"document_type"`
}

// FileRequest is the body of the endpoints that only need a document handle.
type FileRequest struct {
	FileID string `json:"file_id"`
}

// ChatRequest is the body of POST /chat. The caller resends the full
// conversation history on every request; the server holds no chat state.
type ChatRequest struct {
	FileID      string        `json:"file_id"`
	Message     string        `json:"message"`
	ChatHistory []domain.Turn `json:"chat_history"`
}

// ChatResponse is returned by POST /chat.
type ChatResponse struct {
	Response   string   `json:"response"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

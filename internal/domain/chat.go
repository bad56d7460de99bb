// Package domain holds the core types and sentinel errors shared across the
// upload, analysis and chat pipelines.
package domain

// Prompt message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Source tags mark where a chat answer came from, so callers can tell a
// genuine document-grounded completion from a degraded canned one.
const (
	SourceDocumentContext = "document_context"
	SourceLegalReference  = "legal_reference_guide"
)

// Fixed confidence scores. A fallback answer is always reported with lower
// confidence than a real completion.
const (
	CompletionConfidence = 0.95
	FallbackConfidence   = 0.85
)

// Turn is one entry of the caller-supplied conversation history,
// ordered oldest first. The server keeps no history between requests.
type Turn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// PromptMessage is one role/content entry of an assembled prompt.
type PromptMessage struct {
	Role    string
	Content string
}

// Chunk is a bounded-size slice of document text prepared for prompt context.
type Chunk struct {
	Text string
}

// ChatResult is the outcome of a chat request.
type ChatResult struct {
	Response   string   `json:"response"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

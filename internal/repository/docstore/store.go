// Package docstore holds uploaded documents and cached analysis results.
// The memory driver keeps everything process-local (the demo default); the
// redis driver gives documents a TTL-bounded life outside the process.
package docstore

import (
	"context"
	"encoding/json"

	"github.com/legalens/docuverify/internal/domain"
)

// Store is the document storage contract. Implementations must be safe for
// concurrent use: every request runs on its own goroutine.
type Store interface {
	// Put stores a document under its ID. The document's content must not be
	// modified by the caller afterwards.
	Put(ctx context.Context, doc domain.StoredDocument) error
	// Get returns the document for id, or domain.ErrDocumentNotFound.
	Get(ctx context.Context, id string) (domain.StoredDocument, error)
	// PutAnalysis caches an analysis result payload for a document.
	PutAnalysis(ctx context.Context, id string, result json.RawMessage) error
	// GetAnalysis returns the cached analysis for id, or domain.ErrDocumentNotFound.
	GetAnalysis(ctx context.Context, id string) (json.RawMessage, error)
	// Ping checks the backing store's availability.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close()
}

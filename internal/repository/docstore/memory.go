package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/legalens/docuverify/internal/domain"
)

// Compile-time check: Memory implements Store.
var _ Store = (*Memory)(nil)

// Memory is a volatile in-process store. Handlers run on separate goroutines
// that genuinely execute in parallel, so the maps are mutex-guarded.
type Memory struct {
	mu       sync.RWMutex
	docs     map[string]domain.StoredDocument
	analyses map[string]json.RawMessage
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:     make(map[string]domain.StoredDocument),
		analyses: make(map[string]json.RawMessage),
	}
}

// Put stores a document. The content is copied so later mutation of the
// caller's slice cannot reach the stored record.
func (m *Memory) Put(_ context.Context, doc domain.StoredDocument) error {
	content := make([]byte, len(doc.Content))
	copy(content, doc.Content)
	doc.Content = content

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return nil
}

// Get returns the document for id.
func (m *Memory) Get(_ context.Context, id string) (domain.StoredDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return domain.StoredDocument{}, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
	}
	return doc, nil
}

// PutAnalysis caches an analysis result for a document.
func (m *Memory) PutAnalysis(_ context.Context, id string, result json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[id] = result
	return nil
}

// GetAnalysis returns the cached analysis result for id.
func (m *Memory) GetAnalysis(_ context.Context, id string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res, ok := m.analyses[id]
	if !ok {
		return nil, fmt.Errorf("analysis for document %q: %w", id, domain.ErrDocumentNotFound)
	}
	return res, nil
}

// Ping always succeeds for the in-memory store.
func (m *Memory) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close() {}

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/legalens/docuverify/internal/domain"
)

func testDoc(id string, content []byte) domain.StoredDocument {
	return domain.StoredDocument{
		ID:          id,
		Filename:    "contract.txt",
		ContentType: "text/plain",
		Size:        int64(len(content)),
		UploadedAt:  time.Now().UTC(),
		Content:     content,
	}
}

func TestMemory_PutGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	doc := testDoc("doc-1", []byte("the parties agree"))
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Filename != "contract.txt" || string(got.Content) != "the parties agree" {
		t.Errorf("unexpected document: %+v", got)
	}
}

func TestMemory_GetUnknown(t *testing.T) {
	s := NewMemory()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestMemory_ContentImmutableAfterPut(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	content := []byte("original text")
	if err := s.Put(ctx, testDoc("doc-1", content)); err != nil {
		t.Fatalf("put: %v", err)
	}

	copy(content, []byte("tampered!!!!!"))

	got, err := s.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Content) != "original text" {
		t.Errorf("stored content changed after caller mutation: %q", got.Content)
	}
}

func TestMemory_EmptyContentAllowed(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Put(ctx, testDoc("empty", nil)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "empty")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Size != 0 || len(got.Content) != 0 {
		t.Errorf("expected zero-size document, got size=%d len=%d", got.Size, len(got.Content))
	}
}

func TestMemory_AnalysisCache(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, err := s.GetAnalysis(ctx, "doc-1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound before caching, got %v", err)
	}

	payload := json.RawMessage(`{"isValid":true}`)
	if err := s.PutAnalysis(ctx, "doc-1", payload); err != nil {
		t.Fatalf("put analysis: %v", err)
	}

	got, err := s.GetAnalysis(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get analysis: %v", err)
	}
	if string(got) != `{"isValid":true}` {
		t.Errorf("unexpected cached analysis %s", got)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%8))
			_ = s.Put(ctx, testDoc(id, []byte("content")))
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	if err := s.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

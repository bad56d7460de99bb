package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/legalens/docuverify/internal/domain"
	"github.com/legalens/docuverify/internal/domain/chunk"
	"github.com/legalens/docuverify/internal/domain/prompt"
)

// --- Mocks ---

type mockStore struct {
	doc domain.StoredDocument
	err error
}

func (m *mockStore) Get(_ context.Context, _ string) (domain.StoredDocument, error) {
	return m.doc, m.err
}

type mockCompleter struct {
	result domain.ChatResult
	err    error
	calls  int
	msgs   []domain.PromptMessage
}

func (m *mockCompleter) Complete(_ context.Context, msgs []domain.PromptMessage) (domain.ChatResult, error) {
	m.calls++
	m.msgs = msgs
	if m.err != nil {
		return domain.ChatResult{}, m.err
	}
	return m.result, nil
}

func docWith(content string) domain.StoredDocument {
	return domain.StoredDocument{
		ID:      "doc-1",
		Content: []byte(content),
		Size:    int64(len(content)),
	}
}

func newService(store Store, completer Completer, development bool) *Service {
	return New(store, completer, chunk.New(2000, 200), prompt.New(4000), development)
}

// --- Tests ---

func TestAsk_NoCredentialUsesFallback(t *testing.T) {
	store := &mockStore{doc: docWith("a contract between two parties")}
	svc := newService(store, nil, true)

	res, err := svc.Ask(context.Background(), "doc-1", "What are the key clauses?", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Responder{}.Respond("What are the key clauses?")
	if res.Response != want.Response {
		t.Errorf("expected the canned clause answer, got %q", res.Response)
	}
	if res.Confidence != domain.FallbackConfidence {
		t.Errorf("expected fallback confidence, got %v", res.Confidence)
	}
	if res.Sources[0] != domain.SourceLegalReference {
		t.Errorf("expected degraded source tag, got %v", res.Sources)
	}
}

func TestAsk_UnknownDocument(t *testing.T) {
	store := &mockStore{err: fmt.Errorf("document %q: %w", "nope", domain.ErrDocumentNotFound)}
	completer := &mockCompleter{}
	svc := newService(store, completer, true)

	_, err := svc.Ask(context.Background(), "nope", "anything", nil)
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
	if completer.calls != 0 {
		t.Error("completer must not be called for an unknown document")
	}
}

func TestAsk_EmptyDocument(t *testing.T) {
	store := &mockStore{doc: docWith("")}
	completer := &mockCompleter{}
	svc := newService(store, completer, true)

	_, err := svc.Ask(context.Background(), "doc-1", "anything", nil)
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
	if completer.calls != 0 {
		t.Error("completer must not be called for an empty document")
	}
}

func TestAsk_EmptyDocumentWithoutCredential(t *testing.T) {
	store := &mockStore{doc: docWith("   ")}
	svc := newService(store, nil, true)

	_, err := svc.Ask(context.Background(), "doc-1", "anything", nil)
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("empty document must surface even in fallback mode, got %v", err)
	}
}

func TestAsk_Success(t *testing.T) {
	store := &mockStore{doc: docWith("the parties agree to the following terms")}
	completer := &mockCompleter{result: domain.ChatResult{
		Response:   "It is a services agreement.",
		Confidence: domain.CompletionConfidence,
		Sources:    []string{domain.SourceDocumentContext},
	}}
	svc := newService(store, completer, true)

	history := []domain.Turn{{Role: "user", Message: "hi"}, {Role: "ai", Message: "hello"}}
	res, err := svc.Ask(context.Background(), "doc-1", "what kind of document is this?", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Response != "It is a services agreement." {
		t.Errorf("unexpected response %q", res.Response)
	}
	if completer.calls != 1 {
		t.Fatalf("expected exactly one completion call, got %d", completer.calls)
	}

	msgs := completer.msgs
	if msgs[0].Role != domain.RoleSystem {
		t.Errorf("prompt must start with a system message, got %q", msgs[0].Role)
	}
	last := msgs[len(msgs)-1]
	if last.Role != domain.RoleUser || last.Content != "what kind of document is this?" {
		t.Errorf("prompt must end with the question, got %+v", last)
	}
}

func TestAsk_QuotaDegradesToFallback(t *testing.T) {
	store := &mockStore{doc: docWith("content")}
	completer := &mockCompleter{err: fmt.Errorf("api: %w", domain.ErrQuotaExceeded)}
	svc := newService(store, completer, true)

	res, err := svc.Ask(context.Background(), "doc-1", "summarize this", nil)
	if err != nil {
		t.Fatalf("quota must degrade, not fail: %v", err)
	}
	if res.Sources[0] != domain.SourceLegalReference {
		t.Errorf("expected degraded source tag, got %v", res.Sources)
	}
}

func TestAsk_RateLimitDegradesToFallback(t *testing.T) {
	store := &mockStore{doc: docWith("content")}
	completer := &mockCompleter{err: fmt.Errorf("api: %w", domain.ErrRateLimited)}
	svc := newService(store, completer, false)

	res, err := svc.Ask(context.Background(), "doc-1", "explain", nil)
	if err != nil {
		t.Fatalf("rate limit must degrade, not fail: %v", err)
	}
	if res.Confidence != domain.FallbackConfidence {
		t.Errorf("expected fallback confidence, got %v", res.Confidence)
	}
}

func TestAsk_OtherUpstreamErrorSurfacesInDevelopment(t *testing.T) {
	store := &mockStore{doc: docWith("content")}
	upstream := errors.New("connection reset")
	completer := &mockCompleter{err: upstream}
	svc := newService(store, completer, true)

	_, err := svc.Ask(context.Background(), "doc-1", "explain", nil)
	if !errors.Is(err, upstream) {
		t.Errorf("development must surface the upstream error, got %v", err)
	}
}

func TestAsk_OtherUpstreamErrorDegradesOutsideDevelopment(t *testing.T) {
	store := &mockStore{doc: docWith("content")}
	completer := &mockCompleter{err: errors.New("connection reset")}
	svc := newService(store, completer, false)

	res, err := svc.Ask(context.Background(), "doc-1", "explain", nil)
	if err != nil {
		t.Fatalf("non-development must degrade, not fail: %v", err)
	}
	if res.Sources[0] != domain.SourceLegalReference {
		t.Errorf("expected degraded source tag, got %v", res.Sources)
	}
}

func TestAsk_MalformedCompletionSurfacesInDevelopment(t *testing.T) {
	store := &mockStore{doc: docWith("content")}
	completer := &mockCompleter{err: fmt.Errorf("no choices: %w", domain.ErrMalformedCompletion)}
	svc := newService(store, completer, true)

	_, err := svc.Ask(context.Background(), "doc-1", "explain", nil)
	if !errors.Is(err, domain.ErrMalformedCompletion) {
		t.Errorf("expected ErrMalformedCompletion, got %v", err)
	}
}

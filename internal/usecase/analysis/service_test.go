package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/legalens/docuverify/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	doc      domain.StoredDocument
	getErr   error
	putErr   error
	cached   json.RawMessage
	cachedID string
}

func (m *mockStore) Get(_ context.Context, _ string) (domain.StoredDocument, error) {
	return m.doc, m.getErr
}

func (m *mockStore) PutAnalysis(_ context.Context, id string, result json.RawMessage) error {
	m.cachedID = id
	m.cached = result
	return m.putErr
}

// --- Tests ---

func TestVerify_MockVerdict(t *testing.T) {
	store := &mockStore{doc: domain.StoredDocument{ID: "doc-1"}}
	svc := New(store)

	res, err := svc.Verify(context.Background(), "doc-1", "contract")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.IsValid {
		t.Error("expected isValid=true")
	}
	if res.Confidence != 95 {
		t.Errorf("expected confidence 95, got %d", res.Confidence)
	}
	if res.AuthenticityScore != 92 {
		t.Errorf("expected authenticity score 92, got %d", res.AuthenticityScore)
	}
	if res.RiskLevel != "Low" {
		t.Errorf("expected risk level Low, got %q", res.RiskLevel)
	}
	if res.AnalysisDetails.SignatureVerification {
		t.Error("signature verification must be false in the verdict")
	}
	if res.LegalCompliance.ComplianceScore != 85 {
		t.Errorf("expected compliance score 85, got %d", res.LegalCompliance.ComplianceScore)
	}
}

func TestVerify_CachesResult(t *testing.T) {
	store := &mockStore{doc: domain.StoredDocument{ID: "doc-1"}}
	svc := New(store)

	if _, err := svc.Verify(context.Background(), "doc-1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.cachedID != "doc-1" {
		t.Fatalf("expected verdict cached under doc-1, got %q", store.cachedID)
	}
	var cached VerificationResult
	if err := json.Unmarshal(store.cached, &cached); err != nil {
		t.Fatalf("cached verdict is not valid JSON: %v", err)
	}
	if cached.AuthenticityScore != 92 {
		t.Errorf("cached verdict differs from returned one: %+v", cached)
	}
}

func TestVerify_CacheFailureIsNotFatal(t *testing.T) {
	store := &mockStore{doc: domain.StoredDocument{ID: "doc-1"}, putErr: errors.New("store down")}
	svc := New(store)

	res, err := svc.Verify(context.Background(), "doc-1", "")
	if err != nil {
		t.Fatalf("cache failure must not fail the verdict: %v", err)
	}
	if !res.IsValid {
		t.Error("expected the verdict despite the cache failure")
	}
}

func TestVerify_UnknownDocument(t *testing.T) {
	store := &mockStore{getErr: fmt.Errorf("document %q: %w", "nope", domain.ErrDocumentNotFound)}
	svc := New(store)

	_, err := svc.Verify(context.Background(), "nope", "")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestAlterability_MockVerdict(t *testing.T) {
	store := &mockStore{doc: domain.StoredDocument{ID: "doc-1"}}
	svc := New(store)

	res, err := svc.Alterability(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.AlterabilityRisk != "Low" {
		t.Errorf("expected risk Low, got %q", res.AlterabilityRisk)
	}
	if res.Confidence != 88 {
		t.Errorf("expected confidence 88, got %d", res.Confidence)
	}
	if len(res.Findings) != 4 {
		t.Errorf("expected 4 findings, got %d", len(res.Findings))
	}
	if res.TechnicalDetails.TextInsertion {
		t.Error("text insertion must be false in the verdict")
	}
}

func TestAlterability_UnknownDocument(t *testing.T) {
	store := &mockStore{getErr: fmt.Errorf("document %q: %w", "nope", domain.ErrDocumentNotFound)}
	svc := New(store)

	_, err := svc.Alterability(context.Background(), "nope")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestSummarize_MockDigest(t *testing.T) {
	store := &mockStore{doc: domain.StoredDocument{ID: "doc-1"}}
	svc := New(store)

	res, err := svc.Summarize(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Summary == "" {
		t.Error("expected a non-empty summary")
	}
	if len(res.KeyPoints) != 5 {
		t.Errorf("expected 5 key points, got %d", len(res.KeyPoints))
	}
}

func TestSummarize_UnknownDocument(t *testing.T) {
	store := &mockStore{getErr: fmt.Errorf("document %q: %w", "nope", domain.ErrDocumentNotFound)}
	svc := New(store)

	_, err := svc.Summarize(context.Background(), "nope")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

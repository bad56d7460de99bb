package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/legalens/docuverify/internal/logger"
)

// Service runs document analyses. Every operation first resolves the document
// in the store so an unknown id fails with domain.ErrDocumentNotFound before
// any verdict is produced.
type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// Verify produces the verification verdict for the document and caches it in
// the store so later consumers can fetch it without re-running the analysis.
func (s *Service) Verify(ctx context.Context, fileID, documentType string) (VerificationResult, error) {
	if _, err := s.store.Get(ctx, fileID); err != nil {
		return VerificationResult{}, fmt.Errorf("get document: %w", err)
	}

	result := mockVerification()

	raw, err := json.Marshal(result)
	if err != nil {
		return VerificationResult{}, fmt.Errorf("encode verification result: %w", err)
	}
	if err := s.store.PutAnalysis(ctx, fileID, raw); err != nil {
		// The verdict is still good; losing the cache entry only costs a
		// recomputation on the next call.
		logger.FromContext(ctx).Warn("failed to cache verification result",
			zap.String("file_id", fileID), zap.Error(err))
	}

	logger.FromContext(ctx).Info("document verified",
		zap.String("file_id", fileID),
		zap.String("document_type", documentType),
		zap.Int("authenticity_score", result.AuthenticityScore))

	return result, nil
}

// Alterability produces the tampering-risk verdict for the document.
func (s *Service) Alterability(ctx context.Context, fileID string) (AlterabilityResult, error) {
	if _, err := s.store.Get(ctx, fileID); err != nil {
		return AlterabilityResult{}, fmt.Errorf("get document: %w", err)
	}
	return mockAlterability(), nil
}

// Summarize produces the document digest.
func (s *Service) Summarize(ctx context.Context, fileID string) (SummaryResult, error) {
	if _, err := s.store.Get(ctx, fileID); err != nil {
		return SummaryResult{}, fmt.Errorf("get document: %w", err)
	}
	return mockSummary(), nil
}

package analysis

import (
	"context"
	"encoding/json"

	"github.com/legalens/docuverify/internal/domain"
)

// Store reads uploaded documents and caches verification verdicts.
type Store interface {
	Get(ctx context.Context, id string) (domain.StoredDocument, error)
	PutAnalysis(ctx context.Context, id string, result json.RawMessage) error
}

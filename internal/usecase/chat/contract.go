package chat

import (
	"context"

	"github.com/legalens/docuverify/internal/domain"
)

// Store reads uploaded documents.
type Store interface {
	Get(ctx context.Context, id string) (domain.StoredDocument, error)
}

// Completer calls the external chat completion API.
type Completer interface {
	Complete(ctx context.Context, msgs []domain.PromptMessage) (domain.ChatResult, error)
}

// Splitter cuts normalized document text into prompt-sized chunks.
type Splitter interface {
	Split(text string) ([]domain.Chunk, error)
}

// Assembler builds the prompt message sequence from chunks, history and the
// new question.
type Assembler interface {
	Assemble(chunks []domain.Chunk, history []domain.Turn, question string) []domain.PromptMessage
}

// Package prompt assembles the ordered message sequence sent to the
// completion API.
package prompt

import (
	"strings"

	"github.com/legalens/docuverify/internal/domain"
)

const systemPreamble = "You are a legal document analysis assistant. You have access to the following " +
	"document context. Use this information to provide accurate answers about the document. " +
	"Keep responses clear and focused on the legal aspects.\n\n"

// Assembler builds prompt message sequences under an approximate length budget.
type Assembler struct {
	tokenCeiling int
}

// New creates an assembler. A non-positive ceiling falls back to 4000.
func New(tokenCeiling int) *Assembler {
	if tokenCeiling <= 0 {
		tokenCeiling = 4000
	}
	return &Assembler{tokenCeiling: tokenCeiling}
}

// Assemble builds the message sequence: one system message carrying the
// instruction preamble and every chunk, the prior turns role-mapped, and the
// new question as the final user message.
//
// When the approximate token count exceeds the ceiling, everything but the
// system message, the second-to-last message and the question is dropped.
// That is a safety valve against oversized requests, not a relevance
// heuristic: the surviving context is whatever happened to be last.
func (a *Assembler) Assemble(chunks []domain.Chunk, history []domain.Turn, question string) []domain.PromptMessage {
	var sb strings.Builder
	sb.WriteString(systemPreamble)
	for _, c := range chunks {
		sb.WriteString(c.Text)
		sb.WriteString("\n")
	}

	msgs := make([]domain.PromptMessage, 0, len(history)+2)
	msgs = append(msgs, domain.PromptMessage{Role: domain.RoleSystem, Content: sb.String()})
	for _, t := range history {
		msgs = append(msgs, domain.PromptMessage{Role: mapRole(t.Role), Content: t.Message})
	}
	msgs = append(msgs, domain.PromptMessage{Role: domain.RoleUser, Content: question})

	if approxTokens(msgs) > a.tokenCeiling {
		msgs = []domain.PromptMessage{msgs[0], msgs[len(msgs)-2], msgs[len(msgs)-1]}
	}

	return msgs
}

// mapRole maps a history turn role onto a prompt role. Assistant-labeled
// turns keep the assistant role, everything else is treated as the user.
func mapRole(role string) string {
	switch role {
	case domain.RoleAssistant, "ai":
		return domain.RoleAssistant
	default:
		return domain.RoleUser
	}
}

// approxTokens estimates prompt size as the total whitespace-delimited word
// count. A heuristic stand-in for real tokenization, not an exact limit.
func approxTokens(msgs []domain.PromptMessage) int {
	n := 0
	for _, m := range msgs {
		n += len(strings.Fields(m.Content))
	}
	return n
}

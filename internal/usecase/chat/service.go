// Package chat orchestrates the document chat pipeline: store lookup, text
// normalization, chunking, prompt assembly, the completion call, and the
// tiered degradation to canned answers when the call cannot be made.
package chat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/legalens/docuverify/internal/domain"
	"github.com/legalens/docuverify/internal/domain/textnorm"
	"github.com/legalens/docuverify/internal/logger"
	"github.com/legalens/docuverify/internal/metrics"
)

// Service answers chat questions about stored documents.
type Service struct {
	store       Store
	completer   Completer // nil when no API credential is configured
	splitter    Splitter
	assembler   Assembler
	fallback    Responder
	development bool
}

// New creates a chat service. Pass a nil completer when no API credential is
// configured: the service then answers every question from the fallback
// responder. development controls whether unclassified upstream errors are
// surfaced to the caller or degraded as a last-resort availability measure.
func New(store Store, completer Completer, splitter Splitter, assembler Assembler, development bool) *Service {
	return &Service{
		store:       store,
		completer:   completer,
		splitter:    splitter,
		assembler:   assembler,
		development: development,
	}
}

// Ask answers a question about the document with the given id, given the
// caller-resent conversation history.
//
// Degradation policy: quota exhaustion and rate limiting always degrade to
// the fallback responder, wherever they are detected. Other upstream errors
// degrade too, except in development where they surface for debugging.
// Document problems (unknown id, undecodable or empty content) always
// surface: they are caller-data errors, not upstream failures.
func (s *Service) Ask(ctx context.Context, fileID, message string, history []domain.Turn) (domain.ChatResult, error) {
	log := logger.FromContext(ctx)

	doc, err := s.store.Get(ctx, fileID)
	if err != nil {
		return domain.ChatResult{}, fmt.Errorf("get document: %w", err)
	}

	text, err := textnorm.Decode(doc.Content)
	if err != nil {
		return domain.ChatResult{}, fmt.Errorf("normalize document %q: %w", fileID, err)
	}

	// Split before the credential check: a document with no usable text is a
	// caller error even when the answer would come from the fallback anyway.
	chunks, err := s.splitter.Split(text)
	if err != nil {
		return domain.ChatResult{}, fmt.Errorf("chunk document %q: %w", fileID, err)
	}

	if s.completer == nil {
		log.Warn("no completion credential configured, serving canned answer",
			zap.String("file_id", fileID))
		metrics.ChatFallbackTotal.WithLabelValues("no_credential").Inc()
		return s.fallback.Respond(message), nil
	}

	msgs := s.assembler.Assemble(chunks, history, message)

	res, err := s.completer.Complete(ctx, msgs)
	if err == nil {
		return res, nil
	}

	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		log.Warn("completion quota exceeded, serving canned answer", zap.Error(err))
		metrics.ChatFallbackTotal.WithLabelValues("quota").Inc()
		return s.fallback.Respond(message), nil
	case errors.Is(err, domain.ErrRateLimited):
		log.Warn("completion rate limited, serving canned answer", zap.Error(err))
		metrics.ChatFallbackTotal.WithLabelValues("rate_limit").Inc()
		return s.fallback.Respond(message), nil
	}

	if !s.development {
		log.Error("completion failed, serving canned answer", zap.Error(err))
		metrics.ChatFallbackTotal.WithLabelValues("upstream_error").Inc()
		return s.fallback.Respond(message), nil
	}

	return domain.ChatResult{}, fmt.Errorf("complete chat for document %q: %w", fileID, err)
}

// Package openai adapts the OpenAI-compatible chat completion API to the
// chat pipeline's Completer contract.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/legalens/docuverify/internal/domain"
	"github.com/legalens/docuverify/internal/metrics"
)

// Completer invokes the chat completion API with fixed sampling parameters.
type Completer struct {
	client      *openai.Client
	model       string
	temperature float32
	topP        float32
	maxTokens   int
	timeout     time.Duration
	logger      *zap.Logger
}

// Config holds the completion provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
	Timeout     time.Duration
	Logger      *zap.Logger
}

// NewCompleter creates an OpenAI-compatible completion client.
func NewCompleter(cfg *Config) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Completer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		logger:      cfg.Logger,
	}
}

// Complete sends the assembled messages to the completion API. The call is
// bounded by the configured timeout; expiry surfaces as an upstream error so
// the resilience policy can degrade. A response without a non-empty first
// choice fails with domain.ErrMalformedCompletion.
func (c *Completer) Complete(ctx context.Context, msgs []domain.PromptMessage) (domain.ChatResult, error) {
	req := openai.ChatCompletionRequest{
		Model:            c.model,
		Messages:         toAPIMessages(msgs),
		Temperature:      c.temperature,
		TopP:             c.topP,
		MaxTokens:        c.maxTokens,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return domain.ChatResult{}, classifyAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return domain.ChatResult{}, fmt.Errorf("no message in completion response: %w", domain.ErrMalformedCompletion)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(c.model, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	return domain.ChatResult{
		Response:   resp.Choices[0].Message.Content,
		Confidence: domain.CompletionConfidence,
		Sources:    []string{domain.SourceDocumentContext},
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func toAPIMessages(msgs []domain.PromptMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}

// classifyAPIError translates the provider's untyped errors into domain
// sentinels. Matching on upstream error text is confined to this one place.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if isQuotaSignature(apiErr.Message) || isQuotaCode(apiErr.Code) {
			return fmt.Errorf("completion API error %d: %s: %w",
				apiErr.HTTPStatusCode, apiErr.Message, domain.ErrQuotaExceeded)
		}
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("completion API error %d: %s: %w",
				apiErr.HTTPStatusCode, apiErr.Message, domain.ErrRateLimited)
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("completion API error %d: %w", reqErr.HTTPStatusCode, domain.ErrRateLimited)
	}

	// Last resort: substring signatures on the raw error text.
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "insufficient_quota") || strings.Contains(text, "exceeded your current quota"):
		return fmt.Errorf("completion API quota: %v: %w", err, domain.ErrQuotaExceeded)
	case strings.Contains(text, "rate_limit") || strings.Contains(text, "429"):
		return fmt.Errorf("completion API rate limit: %v: %w", err, domain.ErrRateLimited)
	}

	return fmt.Errorf("completion request failed: %w", err)
}

func isQuotaCode(code any) bool {
	s, ok := code.(string)
	return ok && s == "insufficient_quota"
}

func isQuotaSignature(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "insufficient_quota") ||
		strings.Contains(lower, "exceeded your current quota")
}

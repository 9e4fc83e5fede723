package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"macro-outlook/internal/domain"
	apperrors "macro-outlook/pkg/errors"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionOptions configures OpenAICompletionClient
type CompletionOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	// Timeout bounds one call; zero leaves only the request context.
	Timeout time.Duration
}

// OpenAICompletionClient sends a single user message to the chat completions API
type OpenAICompletionClient struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      domain.Logger
}

// NewCompletionClient creates a client for the chat completions API
func NewCompletionClient(opts CompletionOptions, logger domain.Logger) *OpenAICompletionClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	return &OpenAICompletionClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: requestTemperature(opts.Temperature),
		timeout:     opts.Timeout,
		logger:      logger,
	}
}

// Model returns the configured model name
func (c *OpenAICompletionClient) Model() string {
	return c.model
}

// Complete returns the content of the first choice. Every failure is a
// service unavailable error; nothing is retried.
func (c *OpenAICompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		status, detail := describeCompletionError(err)
		c.logger.Error("Completion request failed", err, "model", c.model, "status_code", status)
		return "", apperrors.NewUnavailableError(
			"Der KI-Dienst ist derzeit nicht erreichbar.",
			detail,
			fmt.Errorf("%w: %w", domain.ErrCompletionFailed, err),
		)
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn("Completion returned no choices", "model", c.model)
		return "", apperrors.NewUnavailableError(
			"Der KI-Dienst hat keine Antwort geliefert.",
			"",
			domain.ErrEmptyCompletion,
		)
	}

	c.logger.Info("Completion received",
		"model", c.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp.Choices[0].Message.Content, nil
}

// describeCompletionError extracts the upstream HTTP status where the client exposes one
func describeCompletionError(err error) (int, string) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, fmt.Sprintf("HTTP %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, fmt.Sprintf("HTTP %d", reqErr.HTTPStatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return 0, "timeout"
	}
	return 0, err.Error()
}

// requestTemperature maps 0 to the smallest positive float32; the request
// field is omitempty and a literal 0 would fall back to the API default.
func requestTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

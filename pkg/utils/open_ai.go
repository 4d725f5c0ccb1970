package utils

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const enrichmentPersona = "You are a helpful travel assistant. Provide current, accurate information about attractions, " +
	"restaurants, and activities. Include hours, prices, and accessibility info where possible."

// OpenAIGenerationClient asks an OpenAI chat model for an itinerary in JSON mode.
type OpenAIGenerationClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewOpenAIGenerationClient(apiKey, baseURL, model string, timeout time.Duration, logger *zap.Logger) *OpenAIGenerationClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIGenerationClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		logger:  logger.Named("openai"),
	}
}

func (c *OpenAIGenerationClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		status, detail := upstreamFailure(ctxWithTimeout, err)
		return "", NewGenerationError(status, detail, err)
	}

	content, ok := firstChoiceContent(resp)
	if !ok || strings.TrimSpace(content) == "" {
		return "", NewGenerationError(0, "empty response", nil)
	}

	c.logger.Debug("generation completed",
		zap.String("model", c.model),
		zap.Duration("took", time.Since(start)),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return content, nil
}

// PerplexityEnrichmentClient queries Perplexity's OpenAI compatible chat endpoint.
type PerplexityEnrichmentClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewPerplexityEnrichmentClient(apiKey, baseURL, model string, timeout time.Duration, logger *zap.Logger) *PerplexityEnrichmentClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")

	return &PerplexityEnrichmentClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		logger:  logger.Named("perplexity"),
	}
}

// Search returns whatever text the service answers with, including an empty answer.
func (c *PerplexityEnrichmentClient) Search(ctx context.Context, query string) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: enrichmentPersona},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		MaxTokens: 1000,
	})
	if err != nil {
		status, detail := upstreamFailure(ctxWithTimeout, err)
		return "", NewEnrichmentError(status, detail, err)
	}

	content, ok := firstChoiceContent(resp)
	if !ok {
		return "", NewEnrichmentError(0, "response has no choices", nil)
	}

	c.logger.Debug("enrichment completed", zap.Int("chars", len(content)))
	return content, nil
}

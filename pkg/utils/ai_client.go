package utils

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// GenerationClientInterface produces raw itinerary text from a system and a user instruction.
type GenerationClientInterface interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// EnrichmentClientInterface answers a natural-language query with current information.
type EnrichmentClientInterface interface {
	Search(ctx context.Context, query string) (string, error)
}

// upstreamFailure extracts the HTTP status and a short detail from a chat completion error.
func upstreamFailure(ctx context.Context, err error) (int, string) {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return 0, "timeout"
	case errors.As(err, &apiErr):
		return apiErr.HTTPStatusCode, apiErr.Message
	case errors.As(err, &reqErr):
		return reqErr.HTTPStatusCode, reqErr.Error()
	default:
		return 0, err.Error()
	}
}

func firstChoiceContent(resp openai.ChatCompletionResponse) (string, bool) {
	if len(resp.Choices) == 0 {
		return "", false
	}
	return resp.Choices[0].Message.Content, true
}

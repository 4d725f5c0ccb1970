package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type chatRequest struct {
	Model          string `json:"model"`
	MaxTokens      int    `json:"max_tokens"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, status int, content *string, delay time.Duration, seen *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			fmt.Fprint(w, `{"error": {"message": "upstream exploded", "type": "server_error"}}`)
			return
		}
		if content == nil {
			fmt.Fprint(w, `{"id": "1", "choices": []}`)
			return
		}
		body, _ := json.Marshal(map[string]any{
			"id": "1",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": *content}, "finish_reason": "stop"},
			},
		})
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func strPtr(s string) *string { return &s }

func TestOpenAIGenerationClient_Generate(t *testing.T) {
	var seen chatRequest
	srv := chatServer(t, http.StatusOK, strPtr(`{"days": []}`), 0, &seen)

	client := NewOpenAIGenerationClient("test-key", srv.URL, "gpt-4o-mini", 5*time.Second, zaptest.NewLogger(t))
	out, err := client.Generate(context.Background(), "system text", "user text")
	require.NoError(t, err)

	assert.Equal(t, `{"days": []}`, out)
	assert.Equal(t, "gpt-4o-mini", seen.Model)
	require.NotNil(t, seen.ResponseFormat)
	assert.Equal(t, "json_object", seen.ResponseFormat.Type)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, "system text", seen.Messages[0].Content)
	assert.Equal(t, "user text", seen.Messages[1].Content)
}

func TestOpenAIGenerationClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content *string
		delay   time.Duration
		wantSt  int
		detail  string
	}{
		{name: "non-2xx", status: http.StatusInternalServerError, wantSt: http.StatusInternalServerError, detail: "upstream exploded"},
		{name: "unauthorized", status: http.StatusUnauthorized, wantSt: http.StatusUnauthorized, detail: "upstream exploded"},
		{name: "no choices", status: http.StatusOK, detail: "empty response"},
		{name: "blank content", status: http.StatusOK, content: strPtr("  "), detail: "empty response"},
		{name: "timeout", status: http.StatusOK, content: strPtr("{}"), delay: time.Second, detail: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, tt.status, tt.content, tt.delay, nil)
			client := NewOpenAIGenerationClient("test-key", srv.URL, "gpt-4o-mini", 100*time.Millisecond, zaptest.NewLogger(t))

			out, err := client.Generate(context.Background(), "s", "u")
			assert.Empty(t, out)

			var genErr *GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, "generation", genErr.Service)
			assert.Equal(t, tt.wantSt, genErr.Status)
			assert.Equal(t, tt.detail, genErr.Detail)
		})
	}
}

func TestPerplexityEnrichmentClient_Search(t *testing.T) {
	var seen chatRequest
	srv := chatServer(t, http.StatusOK, strPtr("Temples open at 9."), 0, &seen)

	client := NewPerplexityEnrichmentClient("test-key", srv.URL+"/", "sonar", 5*time.Second, zaptest.NewLogger(t))
	out, err := client.Search(context.Background(), "Find top attractions in Kyoto")
	require.NoError(t, err)

	assert.Equal(t, "Temples open at 9.", out)
	assert.Equal(t, "sonar", seen.Model)
	assert.Equal(t, 1000, seen.MaxTokens)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, enrichmentPersona, seen.Messages[0].Content)
	assert.Equal(t, "Find top attractions in Kyoto", seen.Messages[1].Content)
}

func TestPerplexityEnrichmentClient_EmptyAnswerIsNotAnError(t *testing.T) {
	srv := chatServer(t, http.StatusOK, strPtr(""), 0, nil)

	client := NewPerplexityEnrichmentClient("test-key", srv.URL, "sonar", 5*time.Second, zaptest.NewLogger(t))
	out, err := client.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPerplexityEnrichmentClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		delay  time.Duration
		detail string
	}{
		{name: "non-2xx", status: http.StatusBadGateway, detail: "upstream exploded"},
		{name: "no choices", status: http.StatusOK, detail: "response has no choices"},
		{name: "timeout", status: http.StatusOK, delay: time.Second, detail: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, tt.status, nil, tt.delay, nil)
			client := NewPerplexityEnrichmentClient("test-key", srv.URL, "sonar", 100*time.Millisecond, zaptest.NewLogger(t))

			_, err := client.Search(context.Background(), "q")

			var enrErr *EnrichmentError
			require.ErrorAs(t, err, &enrErr)
			assert.Equal(t, "enrichment", enrErr.Service)
			assert.Equal(t, tt.detail, enrErr.Detail)
		})
	}
}

func TestUpstreamErrorsUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewGenerationError(0, cause.Error(), cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

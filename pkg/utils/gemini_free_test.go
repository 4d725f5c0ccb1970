package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/option"
)

func geminiServer(t *testing.T, body string, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiGenerationClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		delay  time.Duration
		detail string
	}{
		{name: "no candidates", body: `{"candidates": []}`},
		{name: "timeout", body: `{"candidates": []}`, delay: time.Second, detail: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := geminiServer(t, tt.body, tt.delay)
			client, err := NewGeminiGenerationClient("test-key", "gemini-1.5-flash", 100*time.Millisecond,
				zaptest.NewLogger(t), option.WithEndpoint(srv.URL), option.WithHTTPClient(srv.Client()))
			require.NoError(t, err)
			t.Cleanup(func() { _ = client.Close() })

			out, err := client.Generate(context.Background(), "system", "user")
			assert.Empty(t, out)

			var genErr *GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, "generation", genErr.Service)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, genErr.Detail)
			}
		})
	}
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_Summarize_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Select the 2 most important sentences")

		resp := openai.ChatCompletionResponse{
			ID:    "chatcmpl-123",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "1. Surgery is covered.\n2. Room rent is capped.",
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 100},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	})
	require.NoError(t, err)

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{
		Text:          "Surgery is covered. Room rent is capped.",
		SentenceCount: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Surgery is covered.", "Room rent is capped."}, resp.Sentences)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, 100, resp.TokensUsed)
}

func TestOpenAIProvider_Summarize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "k", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	_, err = provider.Summarize(context.Background(), SummarizeRequest{Text: "A.", SentenceCount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API error")
}

func TestOpenAIProvider_Summarize_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "x"})
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "k", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	_, err = provider.Summarize(context.Background(), SummarizeRequest{Text: "A.", SentenceCount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response")
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{})
	require.Error(t, err)
}

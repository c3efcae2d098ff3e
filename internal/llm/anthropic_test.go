package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicProvider_Summarize_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, systemPrompt, req.System)
		assert.Equal(t, defaultAnthropicModel, req.Model)

		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"model": "claude-3-5-haiku-20241022",
			"content": [{"type": "text", "text": "- Claims must be filed in 30 days.\n- Dental is excluded."}],
			"usage": {"input_tokens": 40, "output_tokens": 12}
		}`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/", Timeout: 5})
	require.NoError(t, err)

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{Text: "ignored", SentenceCount: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"Claims must be filed in 30 days.", "Dental is excluded."}, resp.Sentences)
	assert.Equal(t, 52, resp.TokensUsed)
}

func TestAnthropicProvider_Summarize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "bad", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	_, err = provider.Summarize(context.Background(), SummarizeRequest{Text: "A.", SentenceCount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
	assert.False(t, provider.IsAvailable(context.Background()))
}

func TestAnthropicProvider_Summarize_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{malformed json`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "k", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	_, err = provider.Summarize(context.Background(), SummarizeRequest{Text: "A.", SentenceCount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(Config{})
	require.Error(t, err)
}

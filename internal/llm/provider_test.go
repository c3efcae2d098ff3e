package llm

import (
	"testing"

	"github.com/ppiankov/policylens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSentences_StripsListMarkers(t *testing.T) {
	out := "1. First line.\n2) Second line.\n- Third line.\n* Fourth line.\n• Fifth line.\n\n\"Quoted line.\"\n"

	assert.Equal(t, []string{
		"First line.", "Second line.", "Third line.", "Fourth line.", "Fifth line.", "Quoted line.",
	}, ParseSentences(out))
}

func TestBuildPrompt_EmbedsTextAndCount(t *testing.T) {
	prompt := BuildPrompt("Dental is excluded.", 5)

	assert.Contains(t, prompt, "Select the 5 most important sentences")
	assert.Contains(t, prompt, "Dental is excluded.")
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantErr  bool
	}{
		{name: "default is extractive", config: Config{}, wantName: ExtractiveName},
		{name: "extractive", config: Config{Provider: "Extractive"}, wantName: ExtractiveName},
		{name: "openai", config: Config{Provider: "openai", APIKey: "k"}, wantName: "openai"},
		{name: "claude alias", config: Config{Provider: "claude", APIKey: "k"}, wantName: "anthropic"},
		{name: "ollama", config: Config{Provider: "ollama"}, wantName: "ollama"},
		{name: "openai without key", config: Config{Provider: "openai"}, wantErr: true},
		{name: "unknown", config: Config{Provider: "bard"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.SummarizerConfig{
		Provider:         "ollama",
		Model:            "mistral",
		BaseURL:          "http://gpu:11434",
		Timeout:          60,
		StrictExtraction: true,
		MaxTokens:        500,
		NoProxy:          "gpu",
	})

	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "mistral", cfg.Model)
	assert.Equal(t, 60, cfg.Timeout)
	assert.True(t, cfg.StrictExtraction)
	assert.Equal(t, "gpu", cfg.NoProxy)
}

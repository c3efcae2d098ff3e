package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a summarization backend based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case ExtractiveName, "":
		// Local backend, no network and no credentials
		return NewExtractiveProvider(), nil

	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown summarizer provider: %s (supported: extractive, openai, anthropic, ollama)", config.Provider)
	}
}

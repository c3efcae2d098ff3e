package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/policylens/internal/model"
)

// Provider defines the interface for summarization backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize selects representative sentences from the request text
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for one summarization call
type SummarizeRequest struct {
	// Text is the section text to summarize
	Text string

	// SentenceCount is the maximum number of sentences to return
	SentenceCount int

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the backend's selected sentences
type SummarizeResponse struct {
	// Sentences in the backend's importance order, not document order
	Sentences []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption (zero for local backends)
	TokensUsed int
}

// Config holds summarizer backend configuration
type Config struct {
	// Provider name: "extractive", "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for a single summarization call
	Timeout int // seconds

	// StrictExtraction accepts only whole input sentences; otherwise contained fragments are kept too
	StrictExtraction bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:         ExtractiveName,
		Timeout:          30,
		StrictExtraction: true,
		MaxTokens:        1000,
	}
}

// ConfigFromModel converts model.SummarizerConfig to llm.Config
func ConfigFromModel(c model.SummarizerConfig) Config {
	return Config{
		Provider:         c.Provider,
		Model:            c.Model,
		APIKey:           c.APIKey,
		BaseURL:          c.BaseURL,
		Timeout:          c.Timeout,
		StrictExtraction: c.StrictExtraction,
		MaxTokens:        c.MaxTokens,
		HTTPProxy:        c.HTTPProxy,
		HTTPSProxy:       c.HTTPSProxy,
		NoProxy:          c.NoProxy,
	}
}

const systemPrompt = "You are an extractive summarizer for insurance policy documents. You only ever copy sentences from the supplied text."

// BuildPrompt constructs the default extractive prompt
func BuildPrompt(text string, sentenceCount int) string {
	return fmt.Sprintf(`Select the %d most important sentences from the insurance policy section below.

RULES:
1. Copy each sentence EXACTLY as it appears in the text. Do not rephrase, merge or shorten.
2. Output one sentence per line, most important first.
3. No numbering, bullets, headings or commentary.
4. If the section has fewer sentences, return all of them.

Section:
"""
%s
"""`, sentenceCount, text)
}

var listMarker = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// ParseSentences turns a model response into candidate sentences, one per non-empty line
func ParseSentences(output string) []string {
	var sentences []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		line = listMarker.ReplaceAllString(line, "")
		line = strings.Trim(line, `"`)
		if line != "" {
			sentences = append(sentences, line)
		}
	}
	return sentences
}

func resolveModel(reqModel, configModel, fallback string) string {
	if reqModel != "" {
		return reqModel
	}
	if configModel != "" {
		return configModel
	}
	return fallback
}

func resolveMaxTokens(reqMax, configMax int) int {
	if reqMax > 0 {
		return reqMax
	}
	if configMax > 0 {
		return configMax
	}
	return 1000
}

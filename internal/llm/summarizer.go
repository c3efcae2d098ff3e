package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/policylens/internal/cache"
	"github.com/ppiankov/policylens/internal/extract"
	"github.com/ppiankov/policylens/internal/model"
	"go.uber.org/zap"
)

// Limiter gates calls to a remote backend
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// Summarizer wraps a Provider behind the adapter contract:
// empty input yields no sentences, at most sentenceCount sentences are returned,
// and (in strict mode) every returned sentence occurs in the input.
// The order is the backend's importance order; callers must not assume document order.
type Summarizer struct {
	provider Provider
	config   Config
	cache    cache.Cache
	limiter  Limiter
	logger   *zap.Logger
}

// Option configures a Summarizer
type Option func(*Summarizer)

// WithCache stores results in c
func WithCache(c cache.Cache) Option {
	return func(s *Summarizer) { s.cache = c }
}

// WithLimiter rate limits remote backends
func WithLimiter(l Limiter) Option {
	return func(s *Summarizer) { s.limiter = l }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Summarizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSummarizer creates a summarizer for the configured backend
func NewSummarizer(config Config, opts ...Option) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return NewSummarizerWithProvider(provider, config, opts...), nil
}

// NewSummarizerWithProvider wraps an already constructed provider
func NewSummarizerWithProvider(provider Provider, config Config, opts ...Option) *Summarizer {
	s := &Summarizer{
		provider: provider,
		config:   config,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProviderName returns the backend name
func (s *Summarizer) ProviderName() string {
	return s.provider.Name()
}

// IsAvailable reports whether the backend can be reached
func (s *Summarizer) IsAvailable(ctx context.Context) bool {
	return s.provider.IsAvailable(ctx)
}

// Summarize returns up to sentenceCount representative sentences of text.
// Backend failures and timeouts are reported as model.ErrSummarizationUnavailable.
func (s *Summarizer) Summarize(ctx context.Context, text string, sentenceCount int) ([]string, error) {
	if strings.TrimSpace(text) == "" || sentenceCount <= 0 {
		return []string{}, nil
	}

	key := cache.Key(s.provider.Name(), s.config.Model, strconv.Itoa(sentenceCount), strconv.FormatBool(s.config.StrictExtraction), text)
	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			var cached []string
			if err := json.Unmarshal(data, &cached); err == nil {
				s.logger.Debug("summary cache hit", zap.String("provider", s.provider.Name()))
				return cached, nil
			}
		}
	}

	if s.limiter != nil && s.provider.Name() != ExtractiveName {
		if err := s.limiter.Wait(ctx, s.provider.Name()); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", model.ErrSummarizationUnavailable, err)
		}
	}

	timeout := time.Duration(s.config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.provider.Summarize(callCtx, SummarizeRequest{
		Text:          text,
		SentenceCount: sentenceCount,
		Model:         s.config.Model,
		MaxTokens:     s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrSummarizationUnavailable, s.provider.Name(), err)
	}

	sentences := s.enforce(text, resp.Sentences, sentenceCount)

	if s.cache != nil {
		if data, err := json.Marshal(sentences); err == nil {
			if err := s.cache.Set(key, data, 0); err != nil {
				s.logger.Warn("summary cache write failed", zap.Error(err))
			}
		}
	}

	return sentences, nil
}

// enforce drops backend lines that are not in the input and applies the sentence count bound.
// Strict mode accepts only whole input sentences and returns them as written in the input.
// Otherwise a line may be any fragment contained in the input, compared case and space insensitively.
func (s *Summarizer) enforce(text string, candidates []string, sentenceCount int) []string {
	source := make(map[string]string)
	for _, sentence := range extract.SplitSentences(text) {
		source[extract.NormalizeSentence(sentence)] = sentence
	}
	folded := extract.NormalizeSentence(text)

	out := make([]string, 0, sentenceCount)
	seen := make(map[string]bool)
	dropped := 0
	for _, c := range candidates {
		if len(out) >= sentenceCount {
			break
		}
		key := extract.NormalizeSentence(c)
		if key == "" || seen[key] {
			continue
		}

		line, ok := source[key]
		if !ok && !s.config.StrictExtraction && strings.Contains(folded, key) {
			line, ok = strings.TrimSpace(c), true
		}
		if !ok {
			dropped++
			continue
		}
		seen[key] = true
		out = append(out, line)
	}

	if dropped > 0 {
		s.logger.Warn("dropped summary lines not found in source text",
			zap.String("provider", s.provider.Name()),
			zap.Int("dropped", dropped))
	}

	return out
}

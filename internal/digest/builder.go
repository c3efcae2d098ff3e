// Package digest builds the per-section bullet digest of a policy.
package digest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/policylens/internal/model"
	"github.com/ppiankov/policylens/internal/worker"
	"go.uber.org/zap"
)

// Defaults for the section summary builder
const (
	DefaultSentenceCount   = 5
	DefaultMinBulletLength = 20
)

// Summarizer selects representative sentences from a block of text
type Summarizer interface {
	Summarize(ctx context.Context, text string, sentenceCount int) ([]string, error)
}

// Builder summarizes segmented sections into bullets
type Builder struct {
	summarizer      Summarizer
	sentenceCount   int
	minBulletLength int
	workers         int
	logger          *zap.Logger
}

// NewBuilder creates a builder. Zero config values fall back to the defaults.
func NewBuilder(summarizer Summarizer, cfg model.DigestConfig, logger *zap.Logger) *Builder {
	if cfg.SentenceCount <= 0 {
		cfg.SentenceCount = DefaultSentenceCount
	}
	if cfg.MinBulletLength <= 0 {
		cfg.MinBulletLength = DefaultMinBulletLength
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		summarizer:      summarizer,
		sentenceCount:   cfg.SentenceCount,
		minBulletLength: cfg.MinBulletLength,
		workers:         cfg.Workers,
		logger:          logger,
	}
}

// Build summarizes every section in keys order (sorted keys when keys is nil).
// Every processed key is present in the digest. A failed section gets no bullets
// and one entry in the returned warnings.
func (b *Builder) Build(ctx context.Context, sections model.Sections, keys []model.SectionKey) (model.PolicyDigest, []string) {
	if keys == nil {
		keys = sortedKeys(sections)
	}

	jobs := make([]worker.Job, 0, len(keys))
	for _, key := range keys {
		jobs = append(jobs, &sectionJob{builder: b, key: key, text: sections[key]})
	}

	digest := make(model.PolicyDigest, len(keys))
	var warnings []string

	for i, r := range worker.Run(ctx, b.workers, jobs) {
		key := keys[i]
		if r == nil {
			digest[key] = []string{}
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, ctx.Err()))
			continue
		}

		res := r.(*sectionResult)
		digest[key] = res.bullets
		if res.err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, res.err))
		}
	}

	return digest, warnings
}

// summarizeSection returns the filtered bullets of one section, never nil
func (b *Builder) summarizeSection(ctx context.Context, key model.SectionKey, text string) ([]string, error) {
	bullets := []string{}
	if strings.TrimSpace(text) == "" {
		return bullets, nil
	}

	sentences, err := b.summarizer.Summarize(ctx, text, b.sentenceCount)
	if err != nil {
		if errors.Is(err, model.ErrSummarizationUnavailable) {
			b.logger.Warn("section summary unavailable",
				zap.String("section", string(key)),
				zap.Error(err))
		} else {
			b.logger.Error("section summary failed",
				zap.String("section", string(key)),
				zap.Error(err))
		}
		return bullets, err
	}

	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) < b.minBulletLength {
			continue
		}
		bullets = append(bullets, s)
	}

	b.logger.Debug("section summarized",
		zap.String("section", string(key)),
		zap.Int("candidates", len(sentences)),
		zap.Int("bullets", len(bullets)))

	return bullets, nil
}

type sectionJob struct {
	builder *Builder
	key     model.SectionKey
	text    string
}

func (j *sectionJob) Execute(ctx context.Context) worker.Result {
	bullets, err := j.builder.summarizeSection(ctx, j.key, j.text)
	return &sectionResult{bullets: bullets, err: err}
}

type sectionResult struct {
	bullets []string
	err     error
}

func (r *sectionResult) GetError() error {
	return r.err
}

func sortedKeys(sections model.Sections) []model.SectionKey {
	keys := make([]model.SectionKey, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/policylens/internal/analyze"
	"github.com/ppiankov/policylens/internal/appeal"
	"github.com/ppiankov/policylens/internal/cache"
	"github.com/ppiankov/policylens/internal/digest"
	"github.com/ppiankov/policylens/internal/extract"
	"github.com/ppiankov/policylens/internal/lexicon"
	"github.com/ppiankov/policylens/internal/llm"
	"github.com/ppiankov/policylens/internal/model"
	"github.com/ppiankov/policylens/internal/worker"
	"go.uber.org/zap"
)

// Pipeline is the policylens core: classification, digest and rejection analysis.
// It holds only read-only tables after construction and is safe for concurrent use.
type Pipeline struct {
	lexicon        *lexicon.Lexicon
	classifier     *extract.Classifier
	segmenter      *extract.Segmenter
	loader         *extract.Loader
	builder        *digest.Builder
	analyzer       *analyze.Analyzer
	summarizer     digest.Summarizer
	summarizerName string
	renderer       *Renderer
	config         *model.Config
	logger         *zap.Logger
	now            func() time.Time
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithSummarizer replaces the configured summarizer backend
func WithSummarizer(s digest.Summarizer, name string) Option {
	return func(p *Pipeline) {
		p.summarizer = s
		p.summarizerName = name
	}
}

// WithLexicon replaces the lexicon named in the config
func WithLexicon(lex *lexicon.Lexicon) Option {
	return func(p *Pipeline) { p.lexicon = lex }
}

// WithClock sets the time source used for report timestamps and letter dates
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.lexicon == nil {
		lex, err := loadLexicon(cfg.Lexicon.Path)
		if err != nil {
			return nil, err
		}
		p.lexicon = lex
	}

	if p.summarizer == nil {
		s, err := newSummarizer(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("summarizer: %w", err)
		}
		p.summarizer = s
		p.summarizerName = s.ProviderName()
	}

	p.classifier = extract.NewClassifier(p.lexicon, cfg.Classifier.Threshold)
	p.segmenter = extract.NewSegmenter(p.lexicon)
	p.loader = extract.NewLoader(cfg.Loader.MaxBytes)
	p.builder = digest.NewBuilder(p.summarizer, cfg.Digest, logger)
	p.analyzer = analyze.New(p.lexicon)
	p.renderer = NewRenderer(cfg.Output.IncludeFooter)

	return p, nil
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.Load(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}
	return lex, nil
}

// newLimiter builds the shared backend limiter with per-backend overrides applied
func newLimiter(cfg model.RateLimitingConfig) *worker.Limiter {
	limiter := worker.NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize)
	for name, r := range cfg.Backends {
		limiter.SetRate(strings.ToLower(name), r.RequestsPerSecond, r.BurstSize)
	}
	return limiter
}

func newSummarizer(cfg *model.Config, logger *zap.Logger) (*llm.Summarizer, error) {
	opts := []llm.Option{
		llm.WithLogger(logger),
		llm.WithLimiter(newLimiter(cfg.RateLimiting)),
	}
	if c := cache.New(cfg.Cache); c != nil {
		opts = append(opts, llm.WithCache(c))
	}
	return llm.NewSummarizer(llm.ConfigFromModel(cfg.Summarizer), opts...)
}

// Lexicon returns the tables the pipeline was built with
func (p *Pipeline) Lexicon() *lexicon.Lexicon {
	return p.lexicon
}

// SummarizerName returns the name of the summarization backend
func (p *Pipeline) SummarizerName() string {
	return p.summarizerName
}

// Renderer returns the report renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Classify reports whether text is an insurance policy document
func (p *Pipeline) Classify(text string) bool {
	return p.classifier.Classify(text)
}

// MatchedKeywords returns the distinct domain keywords found in text
func (p *Pipeline) MatchedKeywords(text string) []string {
	return p.classifier.MatchedKeywords(text)
}

// Segment splits text into named sections
func (p *Pipeline) Segment(text string) model.Sections {
	return p.segmenter.Segment(text)
}

// LoadText reads a document from disk
func (p *Pipeline) LoadText(path string) (string, error) {
	return p.loader.Load(path)
}

// BuildDigest classifies, segments and summarizes text.
// Blank or non-policy text fails with model.ErrNotAPolicyDocument; a failed
// section summary is reported in the warnings and never fails the digest.
func (p *Pipeline) BuildDigest(ctx context.Context, source, text string) (*model.DigestReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %w", model.ErrNotAPolicyDocument, model.ErrEmptyInput)
	}

	keywords := p.classifier.MatchedKeywords(text)
	if !p.classifier.Classify(text) {
		p.logger.Debug("document rejected by classifier",
			zap.String("source", source),
			zap.Strings("keywords", keywords))
		return nil, fmt.Errorf("%w: found %d domain keywords, need %d",
			model.ErrNotAPolicyDocument, len(keywords), p.threshold())
	}

	sections := p.segmenter.Segment(text)
	keys := p.segmenter.Keys(sections)
	if keys == nil {
		keys = []model.SectionKey{}
	}
	p.logger.Debug("document segmented",
		zap.String("source", source),
		zap.Int("sections", len(keys)))

	bullets, warnings := p.builder.Build(ctx, sections, keys)

	return &model.DigestReport{
		Source:      source,
		GeneratedAt: p.now().UTC(),
		IsPolicy:    true,
		Keywords:    keywords,
		Sections:    keys,
		Digest:      bullets,
		Summarizer:  p.summarizerName,
		Warnings:    warnings,
		Principles:  model.DefaultPrinciples(),
	}, nil
}

// DigestFile loads the document at path and digests it
func (p *Pipeline) DigestFile(ctx context.Context, path string) (*model.DigestReport, error) {
	text, err := p.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return p.BuildDigest(ctx, path, text)
}

// AnalyzeRequest carries everything a rejection analysis needs.
// The policy text is supplied by the caller on every request.
type AnalyzeRequest struct {
	PolicyText       string
	RejectionReason  string
	ClaimDetails     string
	PolicyholderName string
}

// AnalyzeRejection checks a claim rejection against the policy text.
// The appeal letter is set only when an appeal is recommended.
func (p *Pipeline) AnalyzeRejection(ctx context.Context, req AnalyzeRequest) (*model.RejectionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PolicyText) == "" {
		return nil, model.ErrMissingPriorContext
	}
	if strings.TrimSpace(req.RejectionReason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", model.ErrInvalidRequest)
	}

	now := p.now()
	analysis := p.analyzer.Analyze(req.PolicyText, req.RejectionReason, req.ClaimDetails)

	report := &model.RejectionReport{
		GeneratedAt:      now.UTC(),
		RejectionReason:  req.RejectionReason,
		ClaimDetails:     req.ClaimDetails,
		PolicyholderName: req.PolicyholderName,
		Analysis:         analysis,
		Principles:       model.DefaultPrinciples(),
	}

	if analysis.RecommendAppeal {
		letter := appeal.ComposeLetter(analysis.AppealPoints, req.PolicyholderName, now)
		report.AppealLetter = &letter
	}

	p.logger.Debug("rejection analyzed",
		zap.Bool("recommend_appeal", analysis.RecommendAppeal),
		zap.Int("discrepancies", len(analysis.Discrepancies)),
		zap.Int("notes", len(analysis.Notes)))

	return report, nil
}

func (p *Pipeline) threshold() int {
	if p.config.Classifier.Threshold > 0 {
		return p.config.Classifier.Threshold
	}
	return extract.DefaultThreshold
}

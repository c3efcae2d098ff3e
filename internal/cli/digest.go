package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/policylens/internal/llm"
	"github.com/ppiankov/policylens/internal/model"
	"github.com/ppiankov/policylens/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outJSON            string
	outMD              string
	timeout            time.Duration
	noCache            bool
	noFooter           bool
	summarizerProvider string
	summarizerModel    string
	sentenceCount      int
)

// digestCmd represents the digest command
var digestCmd = &cobra.Command{
	Use:   "digest <file>",
	Short: "Summarize an insurance policy section by section",
	Long: `Digest reads a policy document (plain text, Markdown or HTML) and:
- Checks that it is an insurance policy
- Splits it into coverage, exclusions, claims, premium and terms sections
- Summarizes each section into short bullet points

Example:
  policylens digest policy.txt
  policylens digest policy.txt --json digest.json --md digest.md
  policylens digest policy.html --summarizer openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runDigest,
}

func init() {
	rootCmd.AddCommand(digestCmd)

	// Output flags
	digestCmd.Flags().StringVar(&outJSON, "json", "digest.json", "output JSON path")
	digestCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	digestCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	digestCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall digest timeout")
	addSummarizerFlags(digestCmd)
}

// addSummarizerFlags registers the flags shared by commands that summarize
func addSummarizerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&summarizerProvider, "summarizer", "extractive", "summarizer backend (extractive, openai, anthropic, ollama)")
	cmd.Flags().StringVar(&summarizerModel, "model", "", "summarizer model name (backend specific)")
	cmd.Flags().IntVar(&sentenceCount, "sentences", 5, "sentences requested per section")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the summary cache")
}

// applyFlags overrides config values with flags the user actually set
func applyFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("summarizer") {
		cfg.Summarizer.Provider = summarizerProvider
	}
	if flags.Changed("model") {
		cfg.Summarizer.Model = summarizerModel
	}
	if flags.Changed("sentences") {
		cfg.Digest.SentenceCount = sentenceCount
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if verbose {
		cfg.Output.Verbose = true
	}
}

// buildPipeline resolves configuration and constructs the pipeline for cmd.
// Commands that never summarize get the local backend so no credentials are needed.
func buildPipeline(cmd *cobra.Command, summarize bool) (*pipeline.Pipeline, *model.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	applyFlags(cmd, cfg)
	if !summarize {
		cfg.Summarizer.Provider = llm.ExtractiveName
		cfg.Cache.Enabled = false
	}
	if err := applyProviderEnv(cfg); err != nil {
		return nil, nil, nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	return p, cfg, logger, nil
}

func runDigest(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p, cfg, logger, err := buildPipeline(cmd, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("digesting document",
		zap.String("path", path),
		zap.String("summarizer", p.SummarizerName()),
		zap.Bool("cache", cfg.Cache.Enabled),
		zap.Duration("timeout", timeout))

	report, err := p.DigestFile(ctx, path)
	if err != nil {
		if errors.Is(err, model.ErrNotAPolicyDocument) {
			return fmt.Errorf("%s: %w", path, err)
		}
		return fmt.Errorf("digest failed: %w", err)
	}

	for _, w := range report.Warnings {
		logger.Warn("section summary missing", zap.String("detail", w))
	}

	renderer := p.Renderer()
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		logger.Info("wrote JSON", zap.String("path", outJSON))
	}
	if outMD != "" {
		if err := renderer.RenderDigestMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		logger.Info("wrote Markdown", zap.String("path", outMD))
	}

	renderer.PrintDigestSummary(os.Stdout, report)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/policylens/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rejectionReason  string
	claimDetails     string
	policyholderName string
	analyzeJSON      string
	analyzeMD        string
	letterPath       string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <policy-file>",
	Short: "Check a claim rejection against the policy wording",
	Long: `Analyze looks for policy passages about coverage and exclusions and checks
whether the insurer's rejection reason is backed by them. When a passage
suggests the rejection may be contestable, an appeal letter is drafted.

Findings are lexical hints for review, not legal advice.

Example:
  policylens analyze policy.txt --reason "pre-existing condition" --details "hospitalization in May"
  policylens analyze policy.txt --reason "late submission" --name "Jane Doe" --letter appeal.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&rejectionReason, "reason", "", "rejection reason given by the insurer (required)")
	analyzeCmd.Flags().StringVar(&claimDetails, "details", "", "details of the rejected claim")
	analyzeCmd.Flags().StringVar(&policyholderName, "name", "", "policyholder name for the letter signature")
	analyzeCmd.Flags().StringVar(&analyzeJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&analyzeMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&letterPath, "letter", "", "write the appeal letter to this path when an appeal is recommended")
	_ = analyzeCmd.MarkFlagRequired("reason")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, _, logger, err := buildPipeline(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	policyText, err := p.LoadText(args[0])
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}
	if !p.Classify(policyText) {
		logger.Warn("document does not look like an insurance policy", zap.String("path", args[0]))
	}

	report, err := p.AnalyzeRejection(context.Background(), pipeline.AnalyzeRequest{
		PolicyText:       policyText,
		RejectionReason:  strings.TrimSpace(rejectionReason),
		ClaimDetails:     strings.TrimSpace(claimDetails),
		PolicyholderName: strings.TrimSpace(policyholderName),
	})
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	renderer := p.Renderer()
	if analyzeJSON != "" {
		if err := renderer.RenderJSON(report, analyzeJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		logger.Info("wrote JSON", zap.String("path", analyzeJSON))
	}
	if analyzeMD != "" {
		if err := renderer.RenderRejectionMarkdown(report, analyzeMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		logger.Info("wrote Markdown", zap.String("path", analyzeMD))
	}
	if letterPath != "" {
		if report.AppealLetter == nil {
			logger.Info("no appeal recommended, letter not written", zap.String("path", letterPath))
		} else {
			if err := renderer.RenderLetter(*report.AppealLetter, letterPath); err != nil {
				return fmt.Errorf("write letter: %w", err)
			}
			logger.Info("wrote appeal letter", zap.String("path", letterPath))
		}
	}

	renderer.PrintRejectionSummary(os.Stdout, report)
	return nil
}

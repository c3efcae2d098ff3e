package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyJSON bool

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Check whether a document is an insurance policy",
	Long: `Classify counts the distinct insurance keywords in a document.
A document with at least the configured threshold (default 3) is a policy.

Example:
  policylens classify policy.txt
  policylens classify letter.html --json`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print the result as JSON")
}

type classifyResult struct {
	Source   string   `json:"source"`
	IsPolicy bool     `json:"is_policy"`
	Keywords []string `json:"matched_keywords"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	p, _, logger, err := buildPipeline(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	text, err := p.LoadText(args[0])
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	result := classifyResult{
		Source:   args[0],
		IsPolicy: p.Classify(text),
		Keywords: p.MatchedKeywords(text),
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}

	out := cmd.OutOrStdout()
	if classifyJSON {
		return p.Renderer().WriteJSON(out, result)
	}

	verdict := "no"
	if result.IsPolicy {
		verdict = "yes"
	}
	fmt.Fprintf(out, "%s\n", result.Source)
	fmt.Fprintf(out, "  Policy document:  %s\n", verdict)
	fmt.Fprintf(out, "  Keywords (%d):     %s\n", len(result.Keywords), strings.Join(result.Keywords, ", "))
	return nil
}

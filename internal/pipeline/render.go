package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/policylens/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const footer = "_Generated by policylens. Findings are lexical and non-normative; this is not legal advice._"

// Renderer writes digest and rejection reports as JSON, Markdown and plain text
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes v as indented JSON to path
func (r *Renderer) RenderJSON(v any, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return r.WriteJSON(w, v)
	})
}

// WriteJSON writes v as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RenderDigestMarkdown writes a digest report as Markdown to path
func (r *Renderer) RenderDigestMarkdown(report *model.DigestReport, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return r.WriteDigestMarkdown(w, report)
	})
}

// WriteDigestMarkdown writes a digest report as Markdown
func (r *Renderer) WriteDigestMarkdown(w io.Writer, report *model.DigestReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Policy Digest: %s\n\n", report.Source)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Summarizer: %s\n", report.Summarizer)
	fmt.Fprintf(&b, "- Matched keywords: %s\n\n", strings.Join(report.Keywords, ", "))

	if len(report.Sections) == 0 {
		b.WriteString("No recognizable sections were found.\n\n")
	}

	for _, key := range report.Sections {
		fmt.Fprintf(&b, "## %s\n\n", sectionTitle(key))
		bullets := report.Digest[key]
		if len(bullets) == 0 {
			b.WriteString("_No summary points._\n\n")
			continue
		}
		for _, bullet := range bullets {
			fmt.Fprintf(&b, "- %s\n", bullet)
		}
		b.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		b.WriteString("\n")
	}

	r.writeFooter(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderRejectionMarkdown writes a rejection report as Markdown to path
func (r *Renderer) RenderRejectionMarkdown(report *model.RejectionReport, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return r.WriteRejectionMarkdown(w, report)
	})
}

// WriteRejectionMarkdown writes a rejection report as Markdown
func (r *Renderer) WriteRejectionMarkdown(w io.Writer, report *model.RejectionReport) error {
	var b strings.Builder
	a := report.Analysis

	b.WriteString("# Claim Rejection Analysis\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Rejection reason: %s\n", report.RejectionReason)
	if report.ClaimDetails != "" {
		fmt.Fprintf(&b, "- Claim details: %s\n", report.ClaimDetails)
	}
	if len(a.ReasonCategories) > 0 {
		fmt.Fprintf(&b, "- Reason categories: %s\n", strings.Join(a.ReasonCategories, ", "))
	}
	fmt.Fprintf(&b, "- Verdict: **%s**\n\n", verdict(a))

	if len(a.Discrepancies) > 0 {
		b.WriteString("## Discrepancies\n\n")
		for _, d := range a.Discrepancies {
			fmt.Fprintf(&b, "- %s\n", d)
		}
		b.WriteString("\n")
	}

	if len(a.Notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, n := range a.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		b.WriteString("\n")
	}

	if len(a.PolicyReferences) > 0 {
		b.WriteString("## Policy References\n\n")
		for _, ref := range a.PolicyReferences {
			b.WriteString(blockquote(ref))
			b.WriteString("\n")
		}
	}

	if len(a.AppealPoints) > 0 {
		b.WriteString("## Appeal Points\n\n")
		for i, point := range a.AppealPoints {
			// Continuation lines stay inside the list item
			fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, point.Kind, strings.ReplaceAll(point.Content, "\n", "\n   "))
		}
		b.WriteString("\n")
	}

	if report.AppealLetter != nil {
		b.WriteString("## Appeal Letter\n\n```text\n")
		b.WriteString(*report.AppealLetter)
		b.WriteString("```\n\n")
	}

	r.writeFooter(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderLetter writes an appeal letter as plain text to path
func (r *Renderer) RenderLetter(letter, path string) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, letter)
		return err
	})
}

// PrintDigestSummary prints a short digest overview
func (r *Renderer) PrintDigestSummary(w io.Writer, report *model.DigestReport) {
	fmt.Fprintf(w, "\n%s\n", report.Source)
	fmt.Fprintf(w, "  Policy document:  yes (%d keywords)\n", len(report.Keywords))
	fmt.Fprintf(w, "  Sections:         %d\n", len(report.Sections))
	for _, key := range report.Sections {
		fmt.Fprintf(w, "    %-12s %d points\n", key, len(report.Digest[key]))
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "  Warnings:         %d\n", len(report.Warnings))
	}
	fmt.Fprintln(w)
}

// PrintRejectionSummary prints a short rejection analysis overview
func (r *Renderer) PrintRejectionSummary(w io.Writer, report *model.RejectionReport) {
	a := report.Analysis
	fmt.Fprintf(w, "\nRejection: %s\n", report.RejectionReason)
	fmt.Fprintf(w, "  Verdict:          %s\n", verdict(a))
	fmt.Fprintf(w, "  Discrepancies:    %d\n", len(a.Discrepancies))
	fmt.Fprintf(w, "  References:       %d\n", len(a.PolicyReferences))
	for _, d := range a.Discrepancies {
		fmt.Fprintf(w, "    - %s\n", d)
	}
	for _, n := range a.Notes {
		fmt.Fprintf(w, "    note: %s\n", n)
	}
	fmt.Fprintln(w)
}

func (r *Renderer) writeFooter(b *strings.Builder) {
	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString(footer)
		b.WriteString("\n")
	}
}

// sectionTitle builds a fresh Caser each call; Casers are not safe for concurrent use
func sectionTitle(key model.SectionKey) string {
	return cases.Title(language.English).String(string(key))
}

func verdict(a model.RejectionAnalysis) string {
	if a.RecommendAppeal {
		return "appeal recommended"
	}
	return "rejection appears consistent with policy wording"
}

func blockquote(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("> "+line, " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// writeFile creates path (and its directory) and fills it with write
func writeFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close file: %w", closeErr)
		}
	}()

	return write(f)
}

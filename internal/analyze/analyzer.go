// Package analyze checks a claim rejection reason against the policy's own wording.
//
// The checks are lexical. They surface possible grounds for appeal and lean toward
// flagging; a finding is never a legal determination.
package analyze

import (
	"strings"

	"github.com/ppiankov/policylens/internal/appeal"
	"github.com/ppiankov/policylens/internal/lexicon"
	"github.com/ppiankov/policylens/internal/model"
)

// Finding messages
const (
	MsgNotListedInExclusions = "Rejection reason not explicitly listed in policy exclusions"
	MsgPossibleException     = "Possible exception to exclusion found"
	MsgTimelineExceptions    = "Timeline requirements may have exceptions"
)

var (
	exceptionWords = []string{"except", "unless"}
	timelineWords  = []string{"days", "within"}
)

// Analyzer runs the rejection checks using the lexicon's heading and phrase tables
type Analyzer struct {
	lex *lexicon.Lexicon
}

// New creates an analyzer. A nil lexicon means the built-in one.
func New(lex *lexicon.Lexicon) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Analyzer{lex: lex}
}

// Analyze checks reason against every exclusions and coverage passage of policyText.
// Appeal points are composed only when an appeal is recommended.
func (a *Analyzer) Analyze(policyText, reason, claimDetails string) model.RejectionAnalysis {
	result := model.RejectionAnalysis{
		Discrepancies:    []string{},
		PolicyReferences: []string{},
		AppealPoints:     []model.AppealPoint{},
	}

	reasonLower := strings.ToLower(strings.TrimSpace(reason))
	if reasonLower == "" {
		result.ValidRejection = true
		return result
	}

	result.ReasonCategories = a.categories(reasonLower)

	reasonTokens := strings.Fields(reasonLower)
	exclusionPhrases := a.lex.Phrases(lexicon.PhrasesPolicyExclusion)
	timelineReason := containsAny(reasonLower, a.lex.Phrases(lexicon.PhrasesTimeline))

	for _, passage := range a.Passages(policyText) {
		lower := strings.ToLower(passage)

		if containsAny(lower, exclusionPhrases) && !containsAny(lower, reasonTokens) {
			result.Discrepancies = append(result.Discrepancies, MsgNotListedInExclusions)
			result.PolicyReferences = append(result.PolicyReferences, passage)
			result.RecommendAppeal = true
		}

		if strings.Contains(lower, "coverage") && strings.Contains(lower, reasonLower) && containsAny(lower, exceptionWords) {
			result.Discrepancies = append(result.Discrepancies, MsgPossibleException)
			result.PolicyReferences = append(result.PolicyReferences, passage)
			result.RecommendAppeal = true
		}

		// Advisory only: kept out of Discrepancies so it cannot trigger an appeal
		if timelineReason && containsAny(lower, timelineWords) {
			result.Notes = append(result.Notes, MsgTimelineExceptions)
			result.PolicyReferences = append(result.PolicyReferences, passage)
		}
	}

	result.ValidRejection = !result.RecommendAppeal
	if result.RecommendAppeal {
		result.AppealPoints = appeal.ComposePoints(reason, claimDetails, result.Discrepancies, result.PolicyReferences)
	}

	return result
}

// Passages returns the candidate passages of policyText: for each exclusions synonym,
// then each coverage synonym, the text from its first case-insensitive occurrence up to
// the next blank line. Overlapping and duplicate passages are kept.
func (a *Analyzer) Passages(policyText string) []string {
	var passages []string
	for _, key := range []model.SectionKey{model.SectionExclusions, model.SectionCoverage} {
		for _, synonym := range a.lex.Synonyms(key) {
			start := indexFold(policyText, synonym)
			if start < 0 {
				continue
			}
			rest := policyText[start:]
			if end := strings.Index(rest, "\n\n"); end >= 0 {
				rest = rest[:end]
			}
			passages = append(passages, strings.TrimSpace(rest))
		}
	}
	return passages
}

// categories returns the names of phrase sets with a phrase inside reason
func (a *Analyzer) categories(reasonLower string) []string {
	var out []string
	for _, set := range a.lex.Rejection {
		if containsAny(reasonLower, set.Phrases) {
			out = append(out, set.Name)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// indexFold is strings.Index with Unicode case folding. The returned offset is into s.
func indexFold(s, substr string) int {
	n := len(substr)
	if n == 0 {
		return 0
	}
	for i := range s {
		if i+n > len(s) {
			break
		}
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

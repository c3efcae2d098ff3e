package extract

import (
	"strings"

	"github.com/ppiankov/policylens/internal/lexicon"
)

// DefaultThreshold is the number of distinct domain keywords a policy must contain
const DefaultThreshold = 3

// Classifier decides whether a text is an insurance policy
type Classifier struct {
	keywords  []string
	threshold int
}

// NewClassifier creates a classifier over the lexicon's domain keywords
func NewClassifier(lex *lexicon.Lexicon, threshold int) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Classifier{
		keywords:  lex.Keywords,
		threshold: threshold,
	}
}

// Classify reports whether text contains at least threshold distinct domain keywords
func (c *Classifier) Classify(text string) bool {
	return len(c.MatchedKeywords(text)) >= c.threshold
}

// MatchedKeywords returns the domain keywords present as exact whitespace tokens, in lexicon order.
// Multi-word keywords can never match a single token; that limitation is kept on purpose.
func (c *Classifier) MatchedKeywords(text string) []string {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tokens[tok] = struct{}{}
	}

	var matched []string
	for _, kw := range c.keywords {
		if _, ok := tokens[kw]; ok {
			matched = append(matched, kw)
			delete(tokens, kw) // count each keyword once
		}
	}
	return matched
}

package llm

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/ppiankov/policylens/internal/extract"
)

// ExtractiveName is the provider name of the built-in local summarizer
const ExtractiveName = "extractive"

// ExtractiveProvider ranks sentences by the document frequency of their content words.
// It runs locally, is deterministic, and never returns text that is not in the input.
type ExtractiveProvider struct {
	stopwords map[string]bool
}

// NewExtractiveProvider creates the local summarizer
func NewExtractiveProvider() *ExtractiveProvider {
	stop := make(map[string]bool, len(stopwords))
	for _, w := range stopwords {
		stop[w] = true
	}
	return &ExtractiveProvider{stopwords: stop}
}

// Name returns the provider name
func (p *ExtractiveProvider) Name() string {
	return ExtractiveName
}

// IsAvailable always reports true; nothing external is involved
func (p *ExtractiveProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// Summarize returns up to SentenceCount sentences, highest scoring first
func (p *ExtractiveProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sentences := extract.SplitSentences(req.Text)
	if len(sentences) == 0 || req.SentenceCount <= 0 {
		return &SummarizeResponse{Model: ExtractiveName}, nil
	}

	freq := make(map[string]int)
	words := make([][]string, len(sentences))
	for i, s := range sentences {
		words[i] = p.contentWords(s)
		for _, w := range words[i] {
			freq[w]++
		}
	}

	type ranked struct {
		index int
		score float64
	}
	ranks := make([]ranked, 0, len(sentences))
	for i := range sentences {
		score := 0.0
		if len(words[i]) > 0 {
			total := 0
			for _, w := range words[i] {
				total += freq[w]
			}
			score = float64(total) / float64(len(words[i]))
		}
		ranks = append(ranks, ranked{index: i, score: score})
	}

	// Ties keep document order so the output is stable across runs
	sort.SliceStable(ranks, func(a, b int) bool {
		return ranks[a].score > ranks[b].score
	})

	seen := make(map[string]bool)
	var selected []string
	for _, r := range ranks {
		if len(selected) >= req.SentenceCount {
			break
		}
		key := extract.NormalizeSentence(sentences[r.index])
		if seen[key] {
			continue
		}
		seen[key] = true
		selected = append(selected, sentences[r.index])
	}

	return &SummarizeResponse{
		Sentences: selected,
		Model:     ExtractiveName,
	}, nil
}

func (p *ExtractiveProvider) contentWords(sentence string) []string {
	fields := strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	var out []string
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if len(f) < 2 || p.stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

var stopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "been", "but", "by", "can", "do",
	"for", "from", "has", "have", "if", "in", "into", "is", "it", "its", "may",
	"no", "not", "of", "on", "or", "our", "shall", "such", "that", "the", "their",
	"them", "then", "there", "these", "this", "those", "to", "under", "upon", "was",
	"we", "were", "which", "will", "with", "within", "you", "your",
}

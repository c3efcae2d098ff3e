package extract

import "strings"

// SplitSentences splits text into trimmed sentences (simple heuristic).
// A terminator only ends a sentence when followed by whitespace, so "3.5" and "U.S.A" stay whole.
func SplitSentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")

	var sentences []string
	var current strings.Builder

	for i := 0; i < len(text); i++ {
		c := text[i]
		current.WriteByte(c)

		if c == '.' || c == '!' || c == '?' {
			if i+1 < len(text) && text[i+1] == ' ' {
				if sentence := strings.TrimSpace(current.String()); sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

// NormalizeSentence folds whitespace and case so sentences can be compared
func NormalizeSentence(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

package extract

import (
	"strings"

	"github.com/ppiankov/policylens/internal/lexicon"
	"github.com/ppiankov/policylens/internal/model"
)

// Segmenter partitions a policy document into named sections by heading synonyms
type Segmenter struct {
	headings []lexicon.Heading
}

// NewSegmenter creates a segmenter over the lexicon's ordered heading table
func NewSegmenter(lex *lexicon.Lexicon) *Segmenter {
	return &Segmenter{headings: lex.Headings}
}

// Segment scans the document once per section key, in heading order.
//
// A line opens a section when the section is the first key (in heading order)
// with a synonym contained in the line. Once open, trimmed lines accumulate
// until a line contains a synonym of any key. Sections with no content are omitted.
func (s *Segmenter) Segment(text string) model.Sections {
	lines := strings.Split(text, "\n")
	lowered := make([]string, len(lines))
	for i, line := range lines {
		lowered[i] = strings.ToLower(line)
	}

	sections := make(model.Sections)
	for _, h := range s.headings {
		content := s.collect(h.Key, lines, lowered)
		if content != "" {
			sections[h.Key] = content
		}
	}
	return sections
}

// Keys returns the keys present in sections, in heading order
func (s *Segmenter) Keys(sections model.Sections) []model.SectionKey {
	var keys []model.SectionKey
	for _, h := range s.headings {
		if _, ok := sections[h.Key]; ok {
			keys = append(keys, h.Key)
		}
	}
	return keys
}

func (s *Segmenter) collect(key model.SectionKey, lines, lowered []string) string {
	var parts []string
	open := false

	for i, line := range lines {
		if !open {
			if owner, ok := s.owner(lowered[i]); ok && owner == key {
				open = true
			}
			continue
		}

		if _, ok := s.owner(lowered[i]); ok {
			break
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, " ")
}

// owner returns the first section key whose synonyms appear in the lower-cased line
func (s *Segmenter) owner(lower string) (model.SectionKey, bool) {
	for _, h := range s.headings {
		for _, syn := range h.Synonyms {
			if strings.Contains(lower, syn) {
				return h.Key, true
			}
		}
	}
	return "", false
}

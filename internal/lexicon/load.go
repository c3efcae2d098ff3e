package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML lexicon file and overlays it on the defaults.
// A table present in the file replaces the built-in table wholesale; absent tables keep their defaults.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML lexicon data and overlays it on the defaults
func Parse(data []byte) (*Lexicon, error) {
	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := Default()
	if len(override.Keywords) > 0 {
		lex.Keywords = override.Keywords
	}
	if len(override.Headings) > 0 {
		lex.Headings = override.Headings
	}
	if len(override.Rejection) > 0 {
		lex.Rejection = override.Rejection
	}

	lex.normalize()
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return lex, nil
}

// Validate checks that section keys are unique and every table entry is usable
func (l *Lexicon) Validate() error {
	seen := make(map[string]bool)
	for i, h := range l.Headings {
		if h.Key == "" {
			return fmt.Errorf("heading %d: empty section key", i)
		}
		if seen[string(h.Key)] {
			return fmt.Errorf("heading %q declared twice", h.Key)
		}
		seen[string(h.Key)] = true
		if len(h.Synonyms) == 0 {
			return fmt.Errorf("heading %q has no synonyms", h.Key)
		}
	}

	names := make(map[string]bool)
	for _, set := range l.Rejection {
		if set.Name == "" {
			return fmt.Errorf("rejection phrase set with empty name")
		}
		if names[set.Name] {
			return fmt.Errorf("rejection phrase set %q declared twice", set.Name)
		}
		names[set.Name] = true
	}
	return nil
}

// Marshal encodes the lexicon as YAML
func (l *Lexicon) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}

// normalize lower-cases and trims every entry; matching is always case-insensitive
func (l *Lexicon) normalize() {
	l.Keywords = normalizeList(l.Keywords)
	for i := range l.Headings {
		l.Headings[i].Synonyms = normalizeList(l.Headings[i].Synonyms)
	}
	for i := range l.Rejection {
		l.Rejection[i].Phrases = normalizeList(l.Rejection[i].Phrases)
	}
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

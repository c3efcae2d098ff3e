// Package lexicon holds the static keyword tables used by the classifier,
// the segmenter and the rejection analyzer.
//
// All tables are ordered. The order of Headings is part of the segmenter's
// contract: a line matching synonyms of two sections opens only the first.
package lexicon

import (
	"github.com/ppiankov/policylens/internal/model"
)

// Heading lists the heading synonyms of one section
type Heading struct {
	Key      model.SectionKey `yaml:"key"`
	Synonyms []string         `yaml:"synonyms"`
}

// PhraseSet is a named group of rejection-reason phrases
type PhraseSet struct {
	Name    string   `yaml:"name"`
	Phrases []string `yaml:"phrases"`
}

// Rejection phrase set names used by the analyzer
const (
	PhrasesPolicyExclusion  = "policy_exclusion"
	PhrasesTimeline         = "timeline"
	PhrasesDocumentation    = "documentation"
	PhrasesPreExisting      = "pre_existing"
	PhrasesMedicalNecessity = "medical_necessity"
)

// Lexicon is the complete set of domain tables. Treat it as read-only once built.
type Lexicon struct {
	Keywords  []string    `yaml:"keywords"`
	Headings  []Heading   `yaml:"headings"`
	Rejection []PhraseSet `yaml:"rejection_phrases"`
}

// Default returns the built-in lexicon
func Default() *Lexicon {
	return &Lexicon{
		Keywords: []string{
			"insurance", "policy", "premium", "coverage", "deductible",
			"claim", "claims", "insured", "insurer", "policyholder",
			"exclusions", "beneficiary", "underwriting", "copayment",
			"endorsement", "rider", "indemnity", "hospitalization",
			"sum insured", "policy term", "waiting period",
		},
		Headings: []Heading{
			{Key: model.SectionCoverage, Synonyms: []string{"coverage", "what is covered", "benefits", "scope of cover", "insuring agreement"}},
			{Key: model.SectionExclusions, Synonyms: []string{"exclusions", "what is not covered", "not covered", "limitations"}},
			{Key: model.SectionClaims, Synonyms: []string{"claims", "how to claim", "claim procedure", "claim settlement"}},
			{Key: model.SectionPremium, Synonyms: []string{"premium", "payment of premium", "grace period"}},
			{Key: model.SectionTerms, Synonyms: []string{"terms and conditions", "general conditions", "policy term", "definitions"}},
		},
		Rejection: []PhraseSet{
			{Name: PhrasesPolicyExclusion, Phrases: []string{"not covered", "excluded", "exclusion", "is not payable", "no coverage"}},
			{Name: PhrasesTimeline, Phrases: []string{"late submission", "filed late", "delay", "deadline", "time limit", "not submitted within"}},
			{Name: PhrasesDocumentation, Phrases: []string{"missing document", "documents not", "insufficient documentation", "incomplete", "not provided"}},
			{Name: PhrasesPreExisting, Phrases: []string{"pre-existing", "preexisting", "prior condition"}},
			{Name: PhrasesMedicalNecessity, Phrases: []string{"not medically necessary", "medical necessity", "elective", "cosmetic"}},
		},
	}
}

// Synonyms returns the heading synonyms of a section, or nil if the key is unknown
func (l *Lexicon) Synonyms(key model.SectionKey) []string {
	for _, h := range l.Headings {
		if h.Key == key {
			return h.Synonyms
		}
	}
	return nil
}

// Phrases returns the phrases of a named rejection phrase set
func (l *Lexicon) Phrases(name string) []string {
	for _, set := range l.Rejection {
		if set.Name == name {
			return set.Phrases
		}
	}
	return nil
}

// SectionKeys returns the section keys in declaration order
func (l *Lexicon) SectionKeys() []model.SectionKey {
	keys := make([]model.SectionKey, 0, len(l.Headings))
	for _, h := range l.Headings {
		keys = append(keys, h.Key)
	}
	return keys
}

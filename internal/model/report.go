package model

import "time"

// DigestReport is the complete result of digesting one policy document
type DigestReport struct {
	Source      string       `json:"source"`             // File or label the text came from
	GeneratedAt time.Time    `json:"generated_at"`       // When the digest was built
	IsPolicy    bool         `json:"is_policy"`          // Classifier verdict
	Keywords    []string     `json:"matched_keywords"`   // Distinct domain keywords found
	Sections    []SectionKey `json:"sections"`           // Sections found, lexicon order
	Digest      PolicyDigest `json:"digest"`             // Bullets per section
	Summarizer  string       `json:"summarizer"`         // Backend that produced the bullets
	Warnings    []string     `json:"warnings,omitempty"` // Per-section summarization failures
	Principles  Principles   `json:"principles"`         // Core principles applied
}

// RejectionReport is the complete result of analyzing one claim rejection
type RejectionReport struct {
	GeneratedAt      time.Time         `json:"generated_at"`
	RejectionReason  string            `json:"rejection_reason"`
	ClaimDetails     string            `json:"claim_details,omitempty"`
	PolicyholderName string            `json:"policyholder_name,omitempty"`
	Analysis         RejectionAnalysis `json:"analysis"`
	AppealLetter     *string           `json:"appeal_letter,omitempty"` // Present only when an appeal is recommended
	Principles       Principles        `json:"principles"`
}

// Principles documents which core principles were applied
type Principles struct {
	Lexical      bool `json:"lexical"`       // Keyword and phrase matching only, no semantic judgement
	NonNormative bool `json:"non_normative"` // Flags possible contestability, not a legal determination
	Transparent  bool `json:"transparent"`   // Every finding quotes the policy text it came from
}

// DefaultPrinciples returns the standard policylens principles
func DefaultPrinciples() Principles {
	return Principles{
		Lexical:      true,
		NonNormative: true,
		Transparent:  true,
	}
}

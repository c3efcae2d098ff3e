package model

// SectionKey names a region of a policy document
type SectionKey string

const (
	SectionCoverage   SectionKey = "coverage"   // What the policy pays for
	SectionExclusions SectionKey = "exclusions" // What the policy does not pay for
	SectionClaims     SectionKey = "claims"     // How to file a claim
	SectionPremium    SectionKey = "premium"    // Payment obligations
	SectionTerms      SectionKey = "terms"      // General terms and conditions
)

// Sections maps a section key to its raw segmented text
type Sections map[SectionKey]string

// PolicyDigest maps a section key to its summary bullets.
// A key that was processed is always present, even with no bullets.
type PolicyDigest map[SectionKey][]string

// AppealPointKind classifies a paragraph of an appeal letter
type AppealPointKind string

const (
	AppealIntroduction    AppealPointKind = "introduction"
	AppealPolicyReference AppealPointKind = "policy_reference"
	AppealDiscrepancy     AppealPointKind = "discrepancy"
	AppealClaimDetails    AppealPointKind = "claim_details"
	AppealConclusion      AppealPointKind = "conclusion"
)

// AppealPoint is one paragraph unit of an appeal letter
type AppealPoint struct {
	Kind    AppealPointKind `json:"kind"`
	Content string          `json:"content"`
}

// RejectionAnalysis is the outcome of checking a claim rejection against policy text.
// RecommendAppeal is true iff Discrepancies is non-empty, and ValidRejection is its negation.
type RejectionAnalysis struct {
	ValidRejection   bool          `json:"valid_rejection"`
	Discrepancies    []string      `json:"discrepancies"`
	PolicyReferences []string      `json:"policy_references"`
	AppealPoints     []AppealPoint `json:"appeal_points"`
	RecommendAppeal  bool          `json:"recommend_appeal"`

	ReasonCategories []string `json:"reason_categories,omitempty"` // Rejection phrase sets the reason falls into
	Notes            []string `json:"notes,omitempty"`             // Advisory findings that do not trigger an appeal
}

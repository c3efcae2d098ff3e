// Package appeal turns rejection analysis findings into appeal points and letter text.
package appeal

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/policylens/internal/model"
)

// DateLayout is the date header format of generated letters
const DateLayout = "January 2, 2006"

// ComposePoints builds the ordered appeal points for a rejection.
// The result always has 3 + len(discrepancies) + len(references) entries:
// introduction, every policy reference, every discrepancy, claim details, conclusion.
// References and discrepancies each keep their input order; references come first.
// Quoted text is copied verbatim, line breaks included.
func ComposePoints(reason, claimDetails string, discrepancies, references []string) []model.AppealPoint {
	points := make([]model.AppealPoint, 0, 3+len(discrepancies)+len(references))

	points = append(points, model.AppealPoint{
		Kind: model.AppealIntroduction,
		Content: fmt.Sprintf(
			"I am writing to appeal the rejection of my claim, which was denied for the following reason: \"%s\". "+
				"Having reviewed my policy, I believe this decision should be reconsidered.",
			strings.TrimSpace(reason)),
	})

	for _, ref := range references {
		points = append(points, model.AppealPoint{
			Kind:    model.AppealPolicyReference,
			Content: fmt.Sprintf("My policy states: \"%s\"", ref),
		})
	}

	for _, d := range discrepancies {
		points = append(points, model.AppealPoint{
			Kind:    model.AppealDiscrepancy,
			Content: fmt.Sprintf("On review of the policy wording: %s.", strings.TrimSuffix(d, ".")),
		})
	}

	details := strings.TrimSpace(claimDetails)
	if details == "" {
		details = "as submitted with my original claim"
	}
	points = append(points, model.AppealPoint{
		Kind:    model.AppealClaimDetails,
		Content: fmt.Sprintf("The details of my claim are: %s.", strings.TrimSuffix(details, ".")),
	})

	points = append(points, model.AppealPoint{
		Kind: model.AppealConclusion,
		Content: "In light of the above, I respectfully request a full review of this decision and reconsideration of my claim. " +
			"Please let me know if any further documentation is required.",
	})

	return points
}

// ComposeLetter assembles the fixed letter template around points.
// The introduction opens the body, the conclusion closes it, and every other point
// becomes its own paragraph in order.
func ComposeLetter(points []model.AppealPoint, policyholderName string, date time.Time) string {
	var intro, conclusion string
	var middle []string
	for _, p := range points {
		switch p.Kind {
		case model.AppealIntroduction:
			intro = p.Content
		case model.AppealConclusion:
			conclusion = p.Content
		default:
			middle = append(middle, p.Content)
		}
	}

	name := strings.TrimSpace(policyholderName)
	if name == "" {
		name = "Policyholder"
	}

	var b strings.Builder
	b.WriteString(date.Format(DateLayout))
	b.WriteString("\n\n")
	b.WriteString("To: Claims Review Department\n")
	b.WriteString("Subject: Appeal Against Claim Rejection\n\n")
	b.WriteString("Dear Sir/Madam,\n\n")

	paragraphs := make([]string, 0, len(middle)+2)
	if intro != "" {
		paragraphs = append(paragraphs, intro)
	}
	paragraphs = append(paragraphs, middle...)
	if conclusion != "" {
		paragraphs = append(paragraphs, conclusion)
	}
	for _, p := range paragraphs {
		b.WriteString(p)
		b.WriteString("\n\n")
	}

	b.WriteString("Sincerely,\n")
	b.WriteString(name)
	b.WriteString("\n")

	return b.String()
}

package appeal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/policylens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(points []model.AppealPoint) []model.AppealPointKind {
	out := make([]model.AppealPointKind, len(points))
	for i, p := range points {
		out[i] = p.Kind
	}
	return out
}

func TestComposePoints_Shape(t *testing.T) {
	tests := []struct {
		name          string
		discrepancies []string
		references    []string
	}{
		{name: "none"},
		{name: "one each", discrepancies: []string{"d1"}, references: []string{"r1"}},
		{name: "uneven", discrepancies: []string{"d1", "d2", "d3"}, references: []string{"r1"}},
		{name: "references only", references: []string{"r1", "r2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := ComposePoints("late submission", "hospital stay", tt.discrepancies, tt.references)

			require.Len(t, points, 3+len(tt.discrepancies)+len(tt.references))
			assert.Equal(t, model.AppealIntroduction, points[0].Kind)
			assert.Equal(t, model.AppealConclusion, points[len(points)-1].Kind)
			assert.Equal(t, model.AppealClaimDetails, points[len(points)-2].Kind)
		})
	}
}

func TestComposePoints_Order(t *testing.T) {
	points := ComposePoints("pre-existing condition", "hospitalization",
		[]string{"Possible exception to exclusion found"},
		[]string{"Exclusions Coverage is not provided unless stabilized.", "Second passage"})

	assert.Equal(t, []model.AppealPointKind{
		model.AppealIntroduction,
		model.AppealPolicyReference,
		model.AppealPolicyReference,
		model.AppealDiscrepancy,
		model.AppealClaimDetails,
		model.AppealConclusion,
	}, kinds(points))

	assert.Contains(t, points[0].Content, `"pre-existing condition"`)
	assert.Contains(t, points[1].Content, `"Exclusions Coverage is not provided unless stabilized."`)
	assert.Contains(t, points[2].Content, "Second passage")
	assert.Contains(t, points[3].Content, "Possible exception to exclusion found")
	assert.Contains(t, points[4].Content, "hospitalization")
}

func TestComposePoints_BlankClaimDetails(t *testing.T) {
	points := ComposePoints("reason", "  ", nil, nil)

	require.Len(t, points, 3)
	assert.Contains(t, points[1].Content, "as submitted with my original claim")
}

func TestComposeLetter_Template(t *testing.T) {
	points := ComposePoints("pre-existing condition", "hospitalization",
		[]string{"Possible exception to exclusion found"},
		[]string{"Coverage is not provided unless stabilized."})
	date := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	letter := ComposeLetter(points, "Jane Doe", date)

	assert.True(t, strings.HasPrefix(letter, "March 5, 2024\n\n"))
	assert.Contains(t, letter, "To: Claims Review Department\n")
	assert.Contains(t, letter, "Subject: Appeal Against Claim Rejection\n")
	assert.Contains(t, letter, "Dear Sir/Madam,\n\n")
	assert.True(t, strings.HasSuffix(letter, "Sincerely,\nJane Doe\n"))

	// Paragraphs follow point order
	last := -1
	for _, p := range points {
		idx := strings.Index(letter, p.Content)
		require.GreaterOrEqual(t, idx, 0, "missing paragraph %q", p.Content)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestComposeLetter_Deterministic(t *testing.T) {
	points := ComposePoints("delay", "claim filed on day 40", nil, []string{"Claims must be filed within 30 days."})
	date := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, ComposeLetter(points, "A. Smith", date), ComposeLetter(points, "A. Smith", date))
}

func TestComposeLetter_DefaultSignature(t *testing.T) {
	letter := ComposeLetter(ComposePoints("r", "d", nil, nil), "", time.Now())

	assert.True(t, strings.HasSuffix(letter, "Sincerely,\nPolicyholder\n"))
}

func TestComposePoints_QuotesVerbatim(t *testing.T) {
	passage := "Exclusions\nCoverage does not extend to \"pre-existing\" condition claims unless stabilized."
	points := ComposePoints(`pre-existing "condition"`, "hospitalization", nil, []string{passage})

	require.Len(t, points, 4)
	assert.Equal(t, "My policy states: \""+passage+"\"", points[1].Content)
	assert.NotContains(t, points[1].Content, `\n`)
	assert.NotContains(t, points[1].Content, `\"`)
	assert.Contains(t, points[0].Content, `"pre-existing "condition""`)
}

func TestComposeLetter_KeepsPassageLineBreaks(t *testing.T) {
	passage := "Exclusions\nCoverage does not extend to pre-existing condition claims unless stabilized."
	points := ComposePoints("pre-existing condition", "hospitalization",
		[]string{"Possible exception to exclusion found"}, []string{passage})

	letter := ComposeLetter(points, "Jane Doe", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, letter, "My policy states: \"Exclusions\nCoverage does not extend")
	assert.NotContains(t, letter, `\n`)
}

func TestAppealPoint_JSONUsesKind(t *testing.T) {
	data, err := json.Marshal(model.AppealPoint{Kind: model.AppealConclusion, Content: "c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"conclusion","content":"c"}`, string(data))
}

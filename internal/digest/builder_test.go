package digest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/policylens/internal/llm"
	"github.com/ppiankov/policylens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSummarizer returns canned sentences per input text
type stubSummarizer struct {
	mu      sync.Mutex
	byText  map[string][]string
	failOn  map[string]bool
	counts  []int
	unknown []string
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string, n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = append(s.counts, n)
	if s.failOn[text] {
		return nil, fmt.Errorf("%w: backend down", model.ErrSummarizationUnavailable)
	}
	if out, ok := s.byText[text]; ok {
		return out, nil
	}
	return s.unknown, nil
}

func TestBuild_FiltersShortBullets(t *testing.T) {
	stub := &stubSummarizer{byText: map[string][]string{
		"coverage text": {"Hospitalization is covered in full.", "See above.", "  Ambulance up to 2,000.  "},
	}}
	b := NewBuilder(stub, model.DigestConfig{}, nil)

	digest, warnings := b.Build(context.Background(), model.Sections{model.SectionCoverage: "coverage text"}, nil)

	assert.Empty(t, warnings)
	assert.Equal(t, []string{"Hospitalization is covered in full.", "Ambulance up to 2,000."}, digest[model.SectionCoverage])
	assert.Equal(t, []int{DefaultSentenceCount}, stub.counts)
}

func TestBuild_KeyPresenceWhenEverythingFiltered(t *testing.T) {
	stub := &stubSummarizer{byText: map[string][]string{
		"premium text": {"Pay yearly.", "On time."},
	}}
	b := NewBuilder(stub, model.DigestConfig{}, nil)

	digest, _ := b.Build(context.Background(), model.Sections{
		model.SectionPremium: "premium text",
		model.SectionTerms:   "   ",
	}, nil)

	require.Contains(t, digest, model.SectionPremium)
	require.Contains(t, digest, model.SectionTerms)
	assert.Empty(t, digest[model.SectionPremium])
	assert.NotNil(t, digest[model.SectionPremium])
	assert.Empty(t, digest[model.SectionTerms])
}

func TestBuild_UnavailableSectionIsNotFatal(t *testing.T) {
	stub := &stubSummarizer{
		byText: map[string][]string{"claims text": {"Claims must be filed within thirty days."}},
		failOn: map[string]bool{"coverage text": true},
	}
	b := NewBuilder(stub, model.DigestConfig{Workers: 2}, nil)

	keys := []model.SectionKey{model.SectionCoverage, model.SectionClaims}
	digest, warnings := b.Build(context.Background(), model.Sections{
		model.SectionCoverage: "coverage text",
		model.SectionClaims:   "claims text",
	}, keys)

	assert.Empty(t, digest[model.SectionCoverage])
	assert.Equal(t, []string{"Claims must be filed within thirty days."}, digest[model.SectionClaims])
	require.Len(t, warnings, 1)
	assert.True(t, strings.HasPrefix(warnings[0], "coverage: "))
	assert.Contains(t, warnings[0], model.ErrSummarizationUnavailable.Error())
}

func TestBuild_OnlyRequestedKeys(t *testing.T) {
	stub := &stubSummarizer{unknown: []string{"A sentence that is long enough."}}
	b := NewBuilder(stub, model.DigestConfig{}, nil)

	digest, _ := b.Build(context.Background(), model.Sections{
		model.SectionCoverage: "a",
		model.SectionClaims:   "b",
	}, []model.SectionKey{model.SectionClaims})

	assert.Len(t, digest, 1)
	assert.Contains(t, digest, model.SectionClaims)
}

func TestBuild_CustomConfig(t *testing.T) {
	stub := &stubSummarizer{unknown: []string{"Twelve chars", "short"}}
	b := NewBuilder(stub, model.DigestConfig{SentenceCount: 3, MinBulletLength: 10}, nil)

	digest, _ := b.Build(context.Background(), model.Sections{model.SectionTerms: "x"}, nil)

	assert.Equal(t, []string{"Twelve chars"}, digest[model.SectionTerms])
	assert.Equal(t, []int{3}, stub.counts)
}

func TestBuild_ExtractiveIsRepeatable(t *testing.T) {
	summarizer, err := llm.NewSummarizer(llm.DefaultConfig())
	require.NoError(t, err)
	b := NewBuilder(summarizer, model.DigestConfig{Workers: 4}, nil)

	sections := model.Sections{
		model.SectionCoverage: "Hospitalization expenses are covered up to the sum insured. " +
			"Day care procedures are covered when performed in a hospital. " +
			"Ambulance charges are covered up to a fixed limit per hospitalization. OK.",
		model.SectionExclusions: "Cosmetic treatment is excluded from all benefits. " +
			"War and nuclear risks are excluded.",
	}

	first, warnings := b.Build(context.Background(), sections, nil)
	require.Empty(t, warnings)
	second, _ := b.Build(context.Background(), sections, nil)

	assert.Equal(t, first, second)
	for key, bullets := range first {
		assert.LessOrEqual(t, len(bullets), DefaultSentenceCount)
		for _, bullet := range bullets {
			assert.Contains(t, sections[key], bullet)
			assert.GreaterOrEqual(t, len(bullet), DefaultMinBulletLength)
		}
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	summarizer, err := llm.NewSummarizer(llm.DefaultConfig())
	require.NoError(t, err)
	b := NewBuilder(summarizer, model.DigestConfig{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	digest, warnings := b.Build(ctx, model.Sections{model.SectionCoverage: "Surgery is covered in full by this plan."}, nil)

	assert.Contains(t, digest, model.SectionCoverage)
	assert.Empty(t, digest[model.SectionCoverage])
	assert.Len(t, warnings, 1)
}

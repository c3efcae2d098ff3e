package llm

import (
	"context"
	"testing"

	"github.com/ppiankov/policylens/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractiveProvider_ImportanceOrder(t *testing.T) {
	p := NewExtractiveProvider()
	text := "Parking is free. Hospital expenses include room rent. Hospital expenses are covered."

	resp, err := p.Summarize(context.Background(), SummarizeRequest{Text: text, SentenceCount: 2})
	require.NoError(t, err)

	// Highest scoring first, which is not document order
	assert.Equal(t, []string{
		"Hospital expenses are covered.",
		"Hospital expenses include room rent.",
	}, resp.Sentences)
}

func TestExtractiveProvider_SubsetAndBound(t *testing.T) {
	p := NewExtractiveProvider()
	text := "The insurer pays claims. Claims are settled in 30 days. Premiums are annual. " +
		"Claims above the sum insured are declined. The policy renews yearly. Premiums may change."
	source := extract.SplitSentences(text)

	for n := 0; n <= len(source)+2; n++ {
		resp, err := p.Summarize(context.Background(), SummarizeRequest{Text: text, SentenceCount: n})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(resp.Sentences), n)
		for _, s := range resp.Sentences {
			assert.Contains(t, source, s)
		}
	}
}

func TestExtractiveProvider_Deterministic(t *testing.T) {
	p := NewExtractiveProvider()
	text := "A claim is paid. A claim is reviewed. A premium is due. A premium is late."

	first, err := p.Summarize(context.Background(), SummarizeRequest{Text: text, SentenceCount: 3})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := p.Summarize(context.Background(), SummarizeRequest{Text: text, SentenceCount: 3})
		require.NoError(t, err)
		assert.Equal(t, first.Sentences, again.Sentences)
	}
}

func TestExtractiveProvider_DuplicateSentencesCollapse(t *testing.T) {
	p := NewExtractiveProvider()

	resp, err := p.Summarize(context.Background(), SummarizeRequest{
		Text:          "Dental is excluded. Dental is excluded. Vision is covered.",
		SentenceCount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dental is excluded.", "Vision is covered."}, resp.Sentences)
}

func TestExtractiveProvider_EmptyInput(t *testing.T) {
	p := NewExtractiveProvider()

	resp, err := p.Summarize(context.Background(), SummarizeRequest{Text: "   ", SentenceCount: 5})
	require.NoError(t, err)
	assert.Empty(t, resp.Sentences)
}

func TestExtractiveProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractiveProvider().Summarize(ctx, SummarizeRequest{Text: "A. B.", SentenceCount: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

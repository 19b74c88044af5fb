package fitting

import (
	"context"
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fittingLetter() *types.CoverLetterDocument {
	return &types.CoverLetterDocument{
		Salutation: "Dear Hiring Manager,",
		Paragraphs: []types.CoverLetterParagraph{
			{
				Text:          "I have shipped Go services at scale.",
				EvidenceSpans: []types.EvidenceSpan{{Source: types.SourceResume, Start: 21, End: 40}},
				MatchedTerms:  []string{"Go"},
			},
		},
		Closing: "Sincerely,\nJane Doe",
	}
}

func TestFitCoverLetter_FitsAtDefaultLayout(t *testing.T) {
	renderer := &fakeRenderer{
		letterPages: func(*types.CoverLetterDocument, types.LayoutOptions) int { return 1 },
	}
	controller := NewController(renderer, fittingCorpus(), nil)

	result, err := controller.FitCoverLetter(context.Background(), fittingLetter())

	require.NoError(t, err)
	assert.True(t, result.DidFit)
	assert.Equal(t, 1, result.RenderCalls)
	assert.Equal(t, types.DefaultLayout(), result.Layout)
}

func TestFitCoverLetter_ShrinksFontUntilFit(t *testing.T) {
	renderer := &fakeRenderer{
		letterPages: func(_ *types.CoverLetterDocument, layout types.LayoutOptions) int {
			if layout.BodyFontSize <= 9 {
				return 1
			}
			return 2
		},
	}
	controller := NewController(renderer, fittingCorpus(), nil)

	result, err := controller.FitCoverLetter(context.Background(), fittingLetter())

	require.NoError(t, err)
	assert.True(t, result.DidFit)
	assert.Equal(t, 9, result.Layout.BodyFontSize)
	// Default, font 10, font 9.
	assert.Equal(t, 3, result.RenderCalls)
}

func TestFitCoverLetter_ExhaustionReturnsBestEffort(t *testing.T) {
	renderer := &fakeRenderer{
		letterPages: func(*types.CoverLetterDocument, types.LayoutOptions) int { return 2 },
	}
	controller := NewController(renderer, fittingCorpus(), nil)
	letter := fittingLetter()

	result, err := controller.FitCoverLetter(context.Background(), letter)

	require.NoError(t, err)
	assert.False(t, result.DidFit)
	assert.Equal(t, types.MinPaddingLayout(), result.Layout)
	// Layout hints only: the text itself is never transformed.
	assert.Equal(t, letter.Paragraphs[0].Text, result.Letter.Paragraphs[0].Text)
	assert.Equal(t, 5, result.RenderCalls)
}

func TestFitCoverLetter_NilLetter(t *testing.T) {
	controller := NewController(&fakeRenderer{}, fittingCorpus(), nil)

	_, err := controller.FitCoverLetter(context.Background(), nil)

	var fitErr *Error
	require.ErrorAs(t, err, &fitErr)
}

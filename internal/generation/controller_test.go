package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
)

// fakeGenerator returns queued documents or errors per call
type fakeGenerator struct {
	resumes []*types.ResumeDocument
	letters []*types.CoverLetterDocument
	errs    []error
	calls   int
	inputs  []types.GenerateResumeInput
}

func (f *fakeGenerator) GenerateTailoredResume(_ context.Context, input types.GenerateResumeInput) (*types.ResumeDocument, error) {
	f.inputs = append(f.inputs, input)
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx < len(f.resumes) {
		return f.resumes[idx], nil
	}
	return f.resumes[len(f.resumes)-1], nil
}

func (f *fakeGenerator) GenerateCoverLetter(_ context.Context, _ types.GenerateCoverLetterInput) (*types.CoverLetterDocument, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	return f.letters[0], nil
}

func corpusWith(resume string) types.SourceCorpus {
	return types.SourceCorpus{
		Resume:         resume,
		JobDescription: "Looking for a Go engineer with Kubernetes experience.",
	}
}

func groundedResume(corpus *types.SourceCorpus) *types.ResumeDocument {
	return &types.ResumeDocument{
		Name: "Jane Doe",
		Sections: []types.ResumeSection{
			{
				Name: "Experience",
				Items: []types.ResumeItem{
					{
						Title: "Engineer",
						Bullets: []types.ResumeBullet{
							{
								Text: "Shipped Go services",
								EvidenceSpans: []types.EvidenceSpan{
									{Source: types.SourceResume, Start: 0, End: 19},
								},
								MatchedTerms: []string{"Go"},
							},
						},
					},
				},
			},
		},
	}
}

func TestGenerateResume_ValidFirstAttempt(t *testing.T) {
	corpus := corpusWith("Shipped Go services at scale for a decade.")
	gen := &fakeGenerator{resumes: []*types.ResumeDocument{groundedResume(&corpus)}}
	ctrl := NewController(gen, nil)

	doc, err := ctrl.GenerateResume(context.Background(), types.GenerateResumeInput{Corpus: corpus})
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, doc.MatchedTermCount)
	assert.Equal(t, "Shipped Go services",
		doc.Sections[0].Items[0].Bullets[0].EvidenceSpans[0].ResolvedText)
}

func TestGenerateResume_RetriesTransportFailure(t *testing.T) {
	corpus := corpusWith("Shipped Go services at scale for a decade.")
	gen := &fakeGenerator{
		errs:    []error{errors.New("timeout")},
		resumes: []*types.ResumeDocument{nil, groundedResume(&corpus)},
	}
	ctrl := NewController(gen, nil)

	doc, err := ctrl.GenerateResume(context.Background(), types.GenerateResumeInput{Corpus: corpus})
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.NotNil(t, doc)
}

func TestGenerateResume_FailsAfterRetriesExhausted(t *testing.T) {
	cause := errors.New("timeout")
	gen := &fakeGenerator{errs: []error{cause, cause}}
	ctrl := NewController(gen, nil)

	corpus := corpusWith("text")
	_, err := ctrl.GenerateResume(context.Background(), types.GenerateResumeInput{Corpus: corpus})
	require.Error(t, err)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 2, gen.calls)
}

func TestGenerateResume_RepairsBrokenSpans(t *testing.T) {
	corpus := corpusWith("Early career. Shipped Go services at scale.")
	doc := groundedResume(&corpus)
	// Offsets run past the source; exact-match repair should relocate them.
	doc.Sections[0].Items[0].Bullets[0].EvidenceSpans[0] = types.EvidenceSpan{
		Source: types.SourceResume, Start: 900, End: 950,
	}
	gen := &fakeGenerator{resumes: []*types.ResumeDocument{doc}}
	ctrl := NewController(gen, nil)

	out, err := ctrl.GenerateResume(context.Background(), types.GenerateResumeInput{Corpus: corpus})
	require.NoError(t, err)

	span := out.Sections[0].Items[0].Bullets[0].EvidenceSpans[0]
	assert.Equal(t, "Shipped Go services", span.ResolvedText)
	assert.Equal(t, 14, span.Start)
}

func TestGenerateResume_SurfacesValidationFailure(t *testing.T) {
	corpus := corpusWith("Shipped Go services at scale.")
	doc := groundedResume(&corpus)
	// Span cites a source that was never supplied; repair cannot save it.
	doc.Sections[0].Items[0].Bullets[0].EvidenceSpans[0].Source = types.SourceExtra
	gen := &fakeGenerator{resumes: []*types.ResumeDocument{doc}}
	ctrl := NewController(gen, nil)

	out, err := ctrl.GenerateResume(context.Background(), types.GenerateResumeInput{Corpus: corpus})
	require.Error(t, err)
	assert.NotNil(t, out, "invalid document is still returned for inspection")

	var resultErr *validation.ResultError
	require.ErrorAs(t, err, &resultErr)
	assert.False(t, resultErr.Result.Valid)
	assert.NotEmpty(t, resultErr.Result.Errors)
}

func TestRegenerateResume_SetsOnePageHint(t *testing.T) {
	corpus := corpusWith("Shipped Go services at scale for a decade.")
	gen := &fakeGenerator{resumes: []*types.ResumeDocument{groundedResume(&corpus)}}
	ctrl := NewController(gen, nil)

	_, err := ctrl.RegenerateResume(context.Background(), types.GenerateResumeInput{Corpus: corpus}, 2)
	require.NoError(t, err)

	require.Len(t, gen.inputs, 1)
	assert.True(t, gen.inputs[0].ForceOnePage)
	assert.Contains(t, gen.inputs[0].Hint, "2 pages")
}

func TestGenerateCoverLetter_Valid(t *testing.T) {
	corpus := corpusWith("Led a platform team of six engineers.")
	letter := &types.CoverLetterDocument{
		Salutation: "Dear Hiring Manager,",
		Closing:    "Sincerely,",
		Paragraphs: []types.CoverLetterParagraph{
			{
				Text: "Led a platform team",
				EvidenceSpans: []types.EvidenceSpan{
					{Source: types.SourceResume, Start: 0, End: 19},
				},
				MatchedTerms: []string{"platform"},
			},
		},
	}
	gen := &fakeGenerator{letters: []*types.CoverLetterDocument{letter}}
	ctrl := NewController(gen, nil)

	out, err := ctrl.GenerateCoverLetter(context.Background(), types.GenerateCoverLetterInput{Corpus: corpus})
	require.NoError(t, err)
	assert.Equal(t, 1, out.MatchedTermCount)
}

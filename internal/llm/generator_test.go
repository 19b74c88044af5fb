package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

// fakeClient records prompts and returns canned responses
type fakeClient struct {
	response string
	err      error
	prompts  []string
	tiers    []ModelTier
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.response, f.err
}

func (f *fakeClient) GetModel(ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error              { return nil }

func testCorpus() types.SourceCorpus {
	return types.SourceCorpus{
		Resume:         "Senior engineer with Go and Kubernetes experience.",
		JobDescription: "We need a Go engineer familiar with Kubernetes.",
	}
}

func TestGenerateTailoredResume_Success(t *testing.T) {
	client := &fakeClient{response: `{
		"name": "Jane Doe",
		"sections": [
			{
				"name": "Experience",
				"items": [
					{
						"title": "Senior Engineer",
						"bullets": [
							{
								"text": "Go and Kubernetes experience",
								"evidence_spans": [{"source": "resume", "start": 21, "end": 49}],
								"matched_terms": ["Go", "Kubernetes"]
							}
						]
					}
				]
			}
		]
	}`}

	gen := NewGenerator(client)
	doc, err := gen.GenerateTailoredResume(context.Background(), types.GenerateResumeInput{
		Corpus: testCorpus(),
		Terms:  []string{"Go", "Kubernetes"},
	})
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "Jane Doe", doc.Name)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Experience", doc.Sections[0].Name)

	require.Len(t, client.tiers, 1)
	assert.Equal(t, TierAdvanced, client.tiers[0])
	assert.Contains(t, client.prompts[0], "Go, Kubernetes")
	assert.Contains(t, client.prompts[0], "We need a Go engineer")
}

func TestGenerateTailoredResume_OnePageAndHint(t *testing.T) {
	client := &fakeClient{response: `{"name": "Jane Doe", "sections": []}`}

	gen := NewGenerator(client)
	_, err := gen.GenerateTailoredResume(context.Background(), types.GenerateResumeInput{
		Corpus:       testCorpus(),
		ForceOnePage: true,
		Hint:         "rendered PDF is 2 pages",
	})
	require.NoError(t, err)

	assert.Contains(t, client.prompts[0], "single printed page")
	assert.Contains(t, client.prompts[0], "rendered PDF is 2 pages")
}

func TestGenerateTailoredResume_OmitsOptionalBlocks(t *testing.T) {
	client := &fakeClient{response: `{"name": "Jane Doe", "sections": []}`}

	gen := NewGenerator(client)
	_, err := gen.GenerateTailoredResume(context.Background(), types.GenerateResumeInput{
		Corpus: testCorpus(),
	})
	require.NoError(t, err)

	assert.NotContains(t, client.prompts[0], "Additional Information")
	assert.NotContains(t, client.prompts[0], "Hint:")
	assert.NotContains(t, client.prompts[0], "single printed page")
}

func TestGenerateTailoredResume_ClientError(t *testing.T) {
	cause := errors.New("quota exceeded")
	client := &fakeClient{err: cause}

	gen := NewGenerator(client)
	_, err := gen.GenerateTailoredResume(context.Background(), types.GenerateResumeInput{Corpus: testCorpus()})
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, cause)
}

func TestGenerateTailoredResume_SchemaFailure(t *testing.T) {
	// Missing required "name"
	client := &fakeClient{response: `{"sections": []}`}

	gen := NewGenerator(client)
	_, err := gen.GenerateTailoredResume(context.Background(), types.GenerateResumeInput{Corpus: testCorpus()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestGenerateCoverLetter_Success(t *testing.T) {
	client := &fakeClient{response: `{
		"date": "2026-09-01",
		"salutation": "Dear Hiring Manager,",
		"closing": "Sincerely,",
		"paragraphs": [
			{
				"text": "I bring Go experience.",
				"evidence_spans": [{"source": "resume", "start": 0, "end": 20}],
				"matched_terms": ["Go"]
			}
		]
	}`}

	gen := NewGenerator(client)
	doc, err := gen.GenerateCoverLetter(context.Background(), types.GenerateCoverLetterInput{
		Corpus: testCorpus(),
		Terms:  []string{"Go"},
	})
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, "Dear Hiring Manager,", doc.Salutation)
	assert.Equal(t, TierAdvanced, client.tiers[0])
}

func TestExtractKeyTerms_Success(t *testing.T) {
	client := &fakeClient{response: `["Go", "Kubernetes", "PostgreSQL"]`}

	gen := NewGenerator(client)
	terms, err := gen.ExtractKeyTerms(context.Background(), "We need a Go engineer.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes", "PostgreSQL"}, terms)

	require.Len(t, client.tiers, 1)
	assert.Equal(t, TierLite, client.tiers[0])
}

func TestExtractKeyTerms_ToleratesSurroundingProse(t *testing.T) {
	client := &fakeClient{response: "Here are the terms:\n[\"Go\", \"gRPC\"]\nDone."}

	gen := NewGenerator(client)
	terms, err := gen.ExtractKeyTerms(context.Background(), "jd")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "gRPC"}, terms)
}

func TestExtractKeyTerms_BadResponse(t *testing.T) {
	client := &fakeClient{response: "no terms here"}

	gen := NewGenerator(client)
	_, err := gen.ExtractKeyTerms(context.Background(), "jd")
	require.Error(t, err)

	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
}

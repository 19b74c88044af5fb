package repair

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() *types.SourceCorpus {
	return &types.SourceCorpus{
		Resume:         "Led a platform team. Shipped Go services at scale.",
		JobDescription: "We need a senior Go engineer with Kubernetes experience.",
	}
}

func resumeWithSpan(text string, span types.EvidenceSpan, terms ...string) *types.ResumeDocument {
	if terms == nil {
		terms = []string{}
	}
	return &types.ResumeDocument{
		Name: "Jane Doe",
		Sections: []types.ResumeSection{
			{
				Name: "Experience",
				Items: []types.ResumeItem{
					{
						Title: "Platform Engineer",
						Bullets: []types.ResumeBullet{
							{Text: text, EvidenceSpans: []types.EvidenceSpan{span}, MatchedTerms: terms},
						},
					},
				},
			},
		},
	}
}

func firstSpan(resume *types.ResumeDocument) *types.EvidenceSpan {
	return &resume.Sections[0].Items[0].Bullets[0].EvidenceSpans[0]
}

func TestRepairResume_ValidSpanUntouched(t *testing.T) {
	resume := resumeWithSpan("Shipped Go services",
		types.EvidenceSpan{Source: types.SourceResume, Start: 21, End: 40})

	changed := RepairResume(resume, testCorpus())

	assert.False(t, changed)
	assert.Equal(t, 21, firstSpan(resume).Start)
	assert.Equal(t, 40, firstSpan(resume).End)
}

func TestRepairResume_ExactMatchRelocation(t *testing.T) {
	resume := resumeWithSpan("Shipped Go services",
		types.EvidenceSpan{Source: types.SourceResume, Start: 900, End: 950})

	changed := RepairResume(resume, testCorpus())

	assert.True(t, changed)
	span := firstSpan(resume)
	assert.Equal(t, 21, span.Start)
	assert.Equal(t, 40, span.End)
	assert.Equal(t, "Shipped Go services", span.ResolvedText)
}

func TestRepairResume_PrefixMatchForReworded(t *testing.T) {
	// Statement shares its opening with the source but diverges after 30
	// characters, so only the prefix search can find it.
	corpus := &types.SourceCorpus{
		Resume: "Shipped Go services at scale for a multi-region payments platform.",
	}
	statement := "Shipped Go services at scale for worldwide customers"
	resume := resumeWithSpan(statement,
		types.EvidenceSpan{Source: types.SourceResume, Start: -5, End: 3})

	changed := RepairResume(resume, corpus)

	assert.True(t, changed)
	span := firstSpan(resume)
	assert.Equal(t, 0, span.Start)
	assert.Equal(t, len(statement), span.End)
	assert.True(t, strings.HasPrefix(span.ResolvedText, "Shipped Go services at scale"))
}

func TestRepairResume_TermAnchoredFallback(t *testing.T) {
	// The statement never appears in the job description, but its matched
	// term does, so the span lands on a window around the term.
	resume := resumeWithSpan("Deep Kubernetes expertise",
		types.EvidenceSpan{Source: types.SourceJobDescription, Start: 500, End: 600},
		"Kubernetes")

	corpus := testCorpus()
	changed := RepairResume(resume, corpus)

	assert.True(t, changed)
	span := firstSpan(resume)
	assert.Contains(t, span.ResolvedText, "Kubernetes")
	assert.GreaterOrEqual(t, span.Start, 0)
	assert.LessOrEqual(t, span.End, len(corpus.JobDescription))
}

func TestRepairResume_ClampFallbackAlwaysLands(t *testing.T) {
	// Nothing matches: not the text, not the prefix, not any term. The
	// clamp fallback still produces an in-bounds span.
	resume := resumeWithSpan("Completely unrelated claim about something else",
		types.EvidenceSpan{Source: types.SourceResume, Start: 900, End: 950},
		"Terraform")

	corpus := testCorpus()
	changed := RepairResume(resume, corpus)

	assert.True(t, changed)
	span := firstSpan(resume)
	assert.GreaterOrEqual(t, span.Start, 0)
	assert.LessOrEqual(t, span.End, len(corpus.Resume))
	assert.Less(t, span.Start, span.End)
}

func TestRepairResume_MissingSourceLeftForValidator(t *testing.T) {
	resume := resumeWithSpan("Shipped Go services",
		types.EvidenceSpan{Source: types.SourceExtra, Start: 0, End: 10})

	changed := RepairResume(resume, testCorpus())

	assert.False(t, changed)
	assert.Equal(t, types.SourceExtra, firstSpan(resume).Source)
}

func TestRepairResume_EmptyBulletTextUsesItemTitle(t *testing.T) {
	corpus := &types.SourceCorpus{Resume: "Worked as a Platform Engineer for five years."}
	resume := resumeWithSpan("   ",
		types.EvidenceSpan{Source: types.SourceResume, Start: 900, End: 950})

	changed := RepairResume(resume, corpus)

	assert.True(t, changed)
	assert.Equal(t, "Platform Engineer", firstSpan(resume).ResolvedText)
}

func TestRepairResume_Idempotent(t *testing.T) {
	resume := resumeWithSpan("Shipped Go services",
		types.EvidenceSpan{Source: types.SourceResume, Start: 900, End: 950})
	corpus := testCorpus()

	require.True(t, RepairResume(resume, corpus))
	first := *firstSpan(resume)

	assert.False(t, RepairResume(resume, corpus))
	assert.Equal(t, first, *firstSpan(resume))
}

func TestRepairResume_RepairedDocumentPassesValidation(t *testing.T) {
	resume := resumeWithSpan("Shipped Go services",
		types.EvidenceSpan{Source: types.SourceResume, Start: -3, End: 0})
	corpus := testCorpus()

	RepairResume(resume, corpus)
	result := validation.ValidateResume(resume, corpus)

	assert.True(t, result.Valid)
}

func TestRepairCoverLetter_ExactMatchRelocation(t *testing.T) {
	letter := &types.CoverLetterDocument{
		Salutation: "Dear Hiring Manager,",
		Paragraphs: []types.CoverLetterParagraph{
			{
				Text: "Shipped Go services",
				EvidenceSpans: []types.EvidenceSpan{
					{Source: types.SourceResume, Start: 100, End: 90},
				},
				MatchedTerms: []string{},
			},
		},
		Closing: "Sincerely,\nJane Doe",
	}

	changed := RepairCoverLetter(letter, testCorpus())

	assert.True(t, changed)
	span := letter.Paragraphs[0].EvidenceSpans[0]
	assert.Equal(t, 21, span.Start)
	assert.Equal(t, 40, span.End)
}

package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/types"
)

func TestPrintKeyTerms(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeyTerms([]string{"Go", "Kubernetes", "PostgreSQL"})
	output := buf.String()

	assert.Contains(t, output, "KEY ATS TERMS")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "Extracted 3 terms")
}

func TestPrintKeyTerms_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeyTerms(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResumeSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resume := &types.ResumeDocument{
		Name:             "Jane Doe",
		MatchedTermCount: 7,
		Sections: []types.ResumeSection{
			{
				Name: "Experience",
				Items: []types.ResumeItem{
					{Bullets: []types.ResumeBullet{{Text: "a"}, {Text: "b"}}},
				},
			},
			{Name: "Education", Items: []types.ResumeItem{{}}},
		},
	}

	p.PrintResumeSummary(resume)
	output := buf.String()

	assert.Contains(t, output, "TAILORED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Experience (1 items, 2 bullets)")
	assert.Contains(t, output, "Matched terms: 7")
}

func TestPrintResumeSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintFitReport_Fitted(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFitReport(&db.FitReport{
		DidFit:      true,
		Layout:      types.DefaultLayout(),
		RenderCalls: 3,
		BulletCount: 12,
		TermCount:   8,
	})
	output := buf.String()

	assert.Contains(t, output, "ONE-PAGE FIT")
	assert.Contains(t, output, "Fits on one page")
	assert.Contains(t, output, "Render calls:  3")
}

func TestPrintFitReport_BestEffort(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFitReport(&db.FitReport{
		DidFit: false,
		Layout: types.MinPaddingLayout(),
	})
	output := buf.String()

	assert.Contains(t, output, "Best effort")
}

func TestPrintValidationResult_Valid(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationResult(&types.ValidationResult{Valid: true})
	output := buf.String()

	assert.Contains(t, output, "ALL EVIDENCE SPANS GROUNDED")
}

func TestPrintValidationResult_Errors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ValidationResult{
		Valid: false,
		Errors: []types.ValidationError{
			{Kind: types.ErrKindSpanOutOfBounds, Message: "span [10, 900) exceeds source length 120"},
			{Kind: types.ErrKindSourceMissing, Message: "span cites missing source \"extra\""},
		},
	}

	p.PrintValidationResult(result)
	output := buf.String()

	assert.Contains(t, output, "EVIDENCE VALIDATION")
	assert.Contains(t, output, "Found 2 validation errors")
	assert.Contains(t, output, "span_out_of_bounds")
	assert.Contains(t, output, "source_missing")
}

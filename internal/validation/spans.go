package validation

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/types"
)

// ValidateSpans checks every span in the slice against the corpus and
// returns all errors found. Valid spans get their ResolvedText cache set
// to the cited substring; that is the only side effect.
func ValidateSpans(spans []types.EvidenceSpan, corpus *types.SourceCorpus) []types.ValidationError {
	var errs []types.ValidationError

	for i := range spans {
		span := &spans[i]
		sourceText, ok := corpus.Text(span.Source)
		if !ok {
			evidence := *span
			errs = append(errs, types.ValidationError{
				Kind:     types.ErrKindSourceMissing,
				Field:    "evidence_span",
				Message:  fmt.Sprintf("source '%s' not provided", span.Source),
				Evidence: &evidence,
			})
			continue
		}

		if span.Start < 0 || span.End > len(sourceText) || span.Start >= span.End {
			evidence := *span
			errs = append(errs, types.ValidationError{
				Kind:  types.ErrKindSpanOutOfBounds,
				Field: "evidence_span",
				Message: fmt.Sprintf("invalid character offsets: %d-%d (source length: %d)",
					span.Start, span.End, len(sourceText)),
				Evidence: &evidence,
			})
			continue
		}

		span.ResolvedText = sourceText[span.Start:span.End]
	}

	return errs
}

// ValidateResume validates every evidence span in a tailored resume against
// the source corpus. It returns the full error list, not just the first,
// so callers can report everything at once.
func ValidateResume(resume *types.ResumeDocument, corpus *types.SourceCorpus) types.ValidationResult {
	var errs []types.ValidationError

	for si := range resume.Sections {
		section := &resume.Sections[si]
		for ii := range section.Items {
			item := &section.Items[ii]
			for bi := range item.Bullets {
				bullet := &item.Bullets[bi]
				errs = append(errs, ValidateSpans(bullet.EvidenceSpans, corpus)...)
				if bullet.MatchedTerms == nil {
					errs = append(errs, types.ValidationError{
						Kind:    types.ErrKindMatchedTerms,
						Field:   "matched_terms",
						Message: "matched_terms must be present on every bullet",
					})
				}
			}
		}
	}

	if err := resume.Validate(); err != nil {
		errs = append(errs, types.ValidationError{
			Kind:    types.ErrKindMatchedTermCount,
			Field:   "matched_term_count",
			Message: "matched_term_count must be a non-negative integer",
		})
	}

	return types.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateCoverLetter validates every evidence span in a cover letter
// against the source corpus.
func ValidateCoverLetter(letter *types.CoverLetterDocument, corpus *types.SourceCorpus) types.ValidationResult {
	var errs []types.ValidationError

	for pi := range letter.Paragraphs {
		paragraph := &letter.Paragraphs[pi]
		errs = append(errs, ValidateSpans(paragraph.EvidenceSpans, corpus)...)
		if paragraph.MatchedTerms == nil {
			errs = append(errs, types.ValidationError{
				Kind:    types.ErrKindMatchedTerms,
				Field:   "matched_terms",
				Message: "matched_terms must be present on every paragraph",
			})
		}
	}

	if err := letter.Validate(); err != nil {
		errs = append(errs, types.ValidationError{
			Kind:    types.ErrKindMatchedTermCount,
			Field:   "matched_term_count",
			Message: "matched_term_count must be a non-negative integer",
		})
	}

	return types.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

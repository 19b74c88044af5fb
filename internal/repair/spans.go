package repair

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// prefixSearchLength is how much of a long statement is used for a prefix search
	prefixSearchLength = 30
	// minStatementLength is the shortest statement worth a prefix search
	minStatementLength = 10
	// termContextRadius is how far a term-anchored span extends around the term
	termContextRadius = 20
	// minSpanLength and maxSpanLength bound the clamp fallback
	minSpanLength = 20
	maxSpanLength = 400
	// defaultSpanLength is assumed when the broken span has non-positive length
	defaultSpanLength = 100
)

// RepairResume attempts to relocate every invalid evidence span in the
// resume onto real source text. Spans the validator would accept are left
// untouched, so running repair on an already-valid document is a no-op.
// Returns whether any span was changed, so callers can re-run validation.
func RepairResume(resume *types.ResumeDocument, corpus *types.SourceCorpus) bool {
	changed := false
	for si := range resume.Sections {
		section := &resume.Sections[si]
		for ii := range section.Items {
			item := &section.Items[ii]
			for bi := range item.Bullets {
				bullet := &item.Bullets[bi]
				// Resume items without bullet text fall back to the item title
				// as the search needle.
				needle := bullet.Text
				if strings.TrimSpace(needle) == "" {
					needle = item.Title
				}
				if repairSpans(bullet.EvidenceSpans, corpus, needle, bullet.MatchedTerms) {
					changed = true
				}
			}
		}
	}
	return changed
}

// RepairCoverLetter attempts to relocate every invalid evidence span in the
// cover letter onto real source text.
func RepairCoverLetter(letter *types.CoverLetterDocument, corpus *types.SourceCorpus) bool {
	changed := false
	for pi := range letter.Paragraphs {
		paragraph := &letter.Paragraphs[pi]
		if repairSpans(paragraph.EvidenceSpans, corpus, paragraph.Text, paragraph.MatchedTerms) {
			changed = true
		}
	}
	return changed
}

// repairSpans fixes the invalid spans in a slice, leaving valid ones alone
func repairSpans(spans []types.EvidenceSpan, corpus *types.SourceCorpus, statementText string, matchedTerms []string) bool {
	changed := false
	for i := range spans {
		span := &spans[i]

		sourceText, ok := corpus.Text(span.Source)
		if !ok {
			// A missing source cannot be repaired; the validator surfaces it.
			continue
		}

		invalid := span.Start < 0 || span.End > len(sourceText) || span.Start >= span.End
		if !invalid {
			continue
		}

		if repairSpan(span, sourceText, statementText, matchedTerms) {
			changed = true
		}
	}
	return changed
}

// repairSpan tries each strategy in strictly decreasing order of confidence,
// stopping at the first success. The clamp fallback always succeeds on a
// non-empty source, so a span citing a supplied source is always repairable.
func repairSpan(span *types.EvidenceSpan, sourceText, statementText string, matchedTerms []string) bool {
	needle := strings.TrimSpace(statementText)

	// 1. Exact match: the statement text still exists verbatim in the source.
	if needle != "" {
		if idx := strings.Index(sourceText, needle); idx >= 0 {
			setSpan(span, sourceText, idx, idx+len(needle))
			return true
		}
	}

	// 2. Prefix match: long statements are located by their opening characters.
	if len(needle) > minStatementLength {
		snippet := needle
		if len(snippet) > prefixSearchLength {
			snippet = snippet[:prefixSearchLength]
		}
		if idx := strings.Index(sourceText, snippet); idx >= 0 {
			length := len(needle)
			if length > maxSpanLength {
				length = maxSpanLength
			}
			end := idx + length
			if end > len(sourceText) {
				end = len(sourceText)
			}
			setSpan(span, sourceText, idx, end)
			return true
		}
	}

	// 3. Term-anchored match: a small context window around the first
	// matched term found in the source.
	for _, term := range matchedTerms {
		if term == "" {
			continue
		}
		idx := strings.Index(sourceText, term)
		if idx < 0 {
			continue
		}
		start := idx - termContextRadius
		if start < 0 {
			start = 0
		}
		end := idx + len(term) + termContextRadius
		if end > len(sourceText) {
			end = len(sourceText)
		}
		setSpan(span, sourceText, start, end)
		return true
	}

	// 4. Clamp fallback: derive a bounded span near the span's previous end,
	// or the source tail. Lowest fidelity, but guarantees the fitting
	// controller is never stalled by an unrepairable span.
	desired := span.End - span.Start
	if desired <= 0 {
		desired = defaultSpanLength
	}
	if desired < minSpanLength {
		desired = minSpanLength
	}
	if desired > maxSpanLength {
		desired = maxSpanLength
	}
	end := len(sourceText)
	if span.End > 0 && span.End < end {
		end = span.End
	}
	start := end - desired
	if start < 0 {
		start = 0
	}
	if start >= end {
		return false
	}
	setSpan(span, sourceText, start, end)
	return true
}

// setSpan updates the span bounds and refreshes the derived ResolvedText
func setSpan(span *types.EvidenceSpan, sourceText string, start, end int) {
	span.Start = start
	span.End = end
	span.ResolvedText = sourceText[start:end]
}

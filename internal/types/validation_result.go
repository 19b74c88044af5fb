package types

// ValidationErrorKind classifies a single validation error
type ValidationErrorKind string

// Validation error kind constants
const (
	// ErrKindSourceMissing means a span cites a source text that was not supplied
	ErrKindSourceMissing ValidationErrorKind = "source_missing"
	// ErrKindSpanOutOfBounds means span indices fall outside [0, len) or have non-positive length
	ErrKindSpanOutOfBounds ValidationErrorKind = "span_out_of_bounds"
	// ErrKindMatchedTerms means a statement's matched-terms list is malformed
	ErrKindMatchedTerms ValidationErrorKind = "matched_terms"
	// ErrKindMatchedTermCount means the document's matched-term count is negative
	ErrKindMatchedTermCount ValidationErrorKind = "matched_term_count"
)

// ValidationError describes a single problem found by the span validator
type ValidationError struct {
	Kind     ValidationErrorKind `json:"kind"`
	Field    string              `json:"field"`
	Message  string              `json:"message"`
	Evidence *EvidenceSpan       `json:"evidence,omitempty"`
}

// ValidationResult aggregates every error found in a document so callers
// can report everything at once rather than failing on the first.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

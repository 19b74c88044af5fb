// Package validation provides evidence-span validation for tailored documents.
package validation

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ResultError is returned when a document fails span validation after repair.
// It carries the full aggregated error list so callers can report everything
// at once rather than failing on the first problem.
type ResultError struct {
	Result types.ValidationResult
}

func (e *ResultError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "document failed validation"
	}
	first := e.Result.Errors[0]
	if len(e.Result.Errors) == 1 {
		return fmt.Sprintf("document failed validation: %s: %s", first.Field, first.Message)
	}
	return fmt.Sprintf("document failed validation: %s: %s (and %d more)",
		first.Field, first.Message, len(e.Result.Errors)-1)
}

package llm

import "fmt"

// GenerationError represents a transport or model failure while generating
// a tailored document. Callers retry a bounded number of times before
// propagating it as a hard failure.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

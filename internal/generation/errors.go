package generation

import "fmt"

// Error represents a generation controller failure after retries are
// exhausted
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

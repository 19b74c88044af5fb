package types

import "github.com/go-playground/validator/v10"

// Validate checks the document's scalar constraints using the validator.
// Span bounds are checked separately by the validation package since they
// depend on source text lengths that struct tags cannot express.
func (d *ResumeDocument) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}

// Validate validates the cover letter's scalar constraints using the validator.
func (d *CoverLetterDocument) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}

package schemas

import (
	_ "embed"
)

// Document schemas are embedded so validation never depends on the working
// directory the binary runs from.
var (
	//go:embed resume.schema.json
	resumeSchema string

	//go:embed cover_letter.schema.json
	coverLetterSchema string
)

// ValidateResumeJSON checks a generator resume response against the resume
// document schema before it is decoded.
func ValidateResumeJSON(jsonContent string) error {
	return ValidateJSONString(resumeSchema, jsonContent)
}

// ValidateCoverLetterJSON checks a generator cover letter response against
// the cover letter document schema.
func ValidateCoverLetterJSON(jsonContent string) error {
	return ValidateJSONString(coverLetterSchema, jsonContent)
}

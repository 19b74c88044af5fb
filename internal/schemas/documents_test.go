package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResumeJSON_Valid(t *testing.T) {
	content := `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"sections": [
			{
				"name": "Experience",
				"items": [
					{
						"title": "Engineer",
						"bullets": [
							{
								"text": "Built distributed pipelines in Go",
								"evidence_spans": [
									{"source": "resume", "start": 0, "end": 34}
								],
								"matched_terms": ["Go"]
							}
						]
					}
				]
			}
		]
	}`

	err := ValidateResumeJSON(content)
	assert.NoError(t, err)
}

func TestValidateResumeJSON_MissingName(t *testing.T) {
	content := `{"sections": []}`

	err := ValidateResumeJSON(content)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateResumeJSON_BadSpanSource(t *testing.T) {
	content := `{
		"name": "Jane Doe",
		"sections": [
			{
				"name": "Experience",
				"items": [
					{
						"bullets": [
							{
								"text": "statement",
								"evidence_spans": [
									{"source": "wiki", "start": 0, "end": 5}
								]
							}
						]
					}
				]
			}
		]
	}`

	err := ValidateResumeJSON(content)
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}

func TestValidateResumeJSON_NegativeStart(t *testing.T) {
	content := `{
		"name": "Jane Doe",
		"sections": [
			{
				"name": "Experience",
				"items": [
					{
						"bullets": [
							{
								"text": "statement",
								"evidence_spans": [
									{"source": "resume", "start": -1, "end": 5}
								]
							}
						]
					}
				]
			}
		]
	}`

	err := ValidateResumeJSON(content)
	require.Error(t, err)
}

func TestValidateCoverLetterJSON_Valid(t *testing.T) {
	content := `{
		"date": "2026-09-01",
		"salutation": "Dear Hiring Manager,",
		"closing": "Sincerely,\nJane Doe",
		"paragraphs": [
			{
				"text": "I have shipped production Go services for five years.",
				"evidence_spans": [
					{"source": "resume", "start": 10, "end": 52}
				],
				"matched_terms": ["Go"]
			}
		]
	}`

	err := ValidateCoverLetterJSON(content)
	assert.NoError(t, err)
}

func TestValidateCoverLetterJSON_EmptyParagraphs(t *testing.T) {
	content := `{
		"salutation": "Dear Hiring Manager,",
		"closing": "Sincerely,",
		"paragraphs": []
	}`

	err := ValidateCoverLetterJSON(content)
	require.Error(t, err)
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": "nonsense"}`, `{}`)
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "error should be SchemaLoadError type")
}

// Package llm - generator.go produces evidence-grounded tailored documents.
package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
)

// promptFile holds the generation prompt templates
const promptFile = "generation.json"

// Generator wraps an LLM client with the tailoring prompts and schema
// checks. The client handle is injected by the caller, which owns its
// lifecycle; the generator holds no global state.
type Generator struct {
	client Client
}

// NewGenerator creates a generator on top of an LLM client
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// GenerateTailoredResume asks the model for a tailored resume grounded in
// the corpus. The raw JSON is schema-validated before unmarshalling so a
// malformed model response surfaces as a GenerationError, not a decode
// panic downstream.
func (g *Generator) GenerateTailoredResume(ctx context.Context, input types.GenerateResumeInput) (*types.ResumeDocument, error) {
	prompt := buildResumePrompt(input)

	raw, err := g.client.GenerateJSON(ctx, prompt, TierAdvanced)
	if err != nil {
		return nil, &GenerationError{Message: "resume generation failed", Cause: err}
	}

	if err := schemas.ValidateResumeJSON(raw); err != nil {
		return nil, &GenerationError{Message: "resume response failed schema validation", Cause: err}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &GenerationError{Message: "failed to decode resume response", Cause: err}
	}
	return &doc, nil
}

// GenerateCoverLetter asks the model for a tailored cover letter grounded
// in the corpus.
func (g *Generator) GenerateCoverLetter(ctx context.Context, input types.GenerateCoverLetterInput) (*types.CoverLetterDocument, error) {
	prompt := buildCoverLetterPrompt(input)

	raw, err := g.client.GenerateJSON(ctx, prompt, TierAdvanced)
	if err != nil {
		return nil, &GenerationError{Message: "cover letter generation failed", Cause: err}
	}

	if err := schemas.ValidateCoverLetterJSON(raw); err != nil {
		return nil, &GenerationError{Message: "cover letter response failed schema validation", Cause: err}
	}

	var doc types.CoverLetterDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &GenerationError{Message: "failed to decode cover letter response", Cause: err}
	}
	return &doc, nil
}

// ExtractKeyTerms pulls 10-15 ATS terms from a job description. Extraction
// is a simple task, so it runs on the lite tier.
func (g *Generator) ExtractKeyTerms(ctx context.Context, jobDescription string) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "extract_terms"), map[string]string{
		"JobDescription": jobDescription,
	})

	raw, err := g.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, &GenerationError{Message: "term extraction failed", Cause: err}
	}

	terms, err := parseTermArray(raw)
	if err != nil {
		return nil, &GenerationError{Message: "failed to decode term array", Cause: err}
	}
	return terms, nil
}

// parseTermArray extracts the JSON string array from a model response,
// tolerating surrounding prose.
func parseTermArray(raw string) ([]string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// buildResumePrompt assembles the resume generation prompt
func buildResumePrompt(input types.GenerateResumeInput) string {
	task := prompts.Format(prompts.MustGet(promptFile, "resume_task"), map[string]string{
		"JobDescription": input.Corpus.JobDescription,
		"Resume":         input.Corpus.Resume,
		"ExtraBlock":     extraBlock(input.Corpus.Extra),
		"Terms":          strings.Join(input.Terms, ", "),
		"OnePageBlock":   onePageBlock(input.ForceOnePage),
		"HintBlock":      hintBlock(input.Hint),
	})
	return prompts.MustGet(promptFile, "system_rules") + "\n\n" + task
}

// buildCoverLetterPrompt assembles the cover letter generation prompt
func buildCoverLetterPrompt(input types.GenerateCoverLetterInput) string {
	task := prompts.Format(prompts.MustGet(promptFile, "cover_letter_task"), map[string]string{
		"JobDescription": input.Corpus.JobDescription,
		"Resume":         input.Corpus.Resume,
		"ExtraBlock":     extraBlock(input.Corpus.Extra),
		"Terms":          strings.Join(input.Terms, ", "),
		"OnePageBlock":   onePageBlock(input.ForceOnePage),
		"HintBlock":      hintBlock(input.Hint),
	})
	return prompts.MustGet(promptFile, "system_rules") + "\n\n" + task
}

func extraBlock(extra string) string {
	if strings.TrimSpace(extra) == "" {
		return ""
	}
	return "**Additional Information:**\n" + extra + "\n\n"
}

func onePageBlock(force bool) string {
	if !force {
		return ""
	}
	return prompts.MustGet(promptFile, "one_page_force")
}

func hintBlock(hint string) string {
	if strings.TrimSpace(hint) == "" {
		return ""
	}
	return "Hint: " + hint + "\n\n"
}

// Package generation drives document generation with bounded retries and
// post-generation grounding checks.
package generation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/repair"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
)

const (
	// maxAttempts bounds transport retries per generation call
	maxAttempts = 2
	// retryDelay is the pause between transport attempts
	retryDelay = time.Second
)

// Generator produces tailored documents from a source corpus
type Generator interface {
	GenerateTailoredResume(ctx context.Context, input types.GenerateResumeInput) (*types.ResumeDocument, error)
	GenerateCoverLetter(ctx context.Context, input types.GenerateCoverLetterInput) (*types.CoverLetterDocument, error)
}

// Controller wraps a Generator with retries, span repair, and validation.
// Every document it returns has been repaired and validated against the
// corpus, so callers can trust its evidence spans.
type Controller struct {
	generator Generator
	logger    *zap.Logger
}

// NewController creates a generation controller. A nil logger disables
// logging.
func NewController(generator Generator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{generator: generator, logger: logger}
}

// GenerateResume produces a validated tailored resume. Transport failures
// are retried with a short delay; a document that still fails validation
// after span repair is returned alongside a *validation.ResultError so the
// caller can inspect what could not be grounded.
func (c *Controller) GenerateResume(ctx context.Context, input types.GenerateResumeInput) (*types.ResumeDocument, error) {
	var doc *types.ResumeDocument
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		doc, err = c.generator.GenerateTailoredResume(ctx, input)
		if err == nil {
			break
		}
		c.logger.Warn("resume generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, &Error{Message: "resume generation canceled", Cause: ctx.Err()}
			case <-time.After(retryDelay):
			}
		}
	}
	if err != nil {
		return nil, &Error{Message: "resume generation failed after retries", Cause: err}
	}

	repaired := repair.RepairResume(doc, &input.Corpus)
	if repaired {
		c.logger.Info("repaired evidence spans in generated resume")
	}

	result := validation.ValidateResume(doc, &input.Corpus)
	if !result.Valid {
		return doc, &validation.ResultError{Result: result}
	}

	doc.MatchedTermCount = validation.RecomputeMatchedTerms(doc)
	return doc, nil
}

// GenerateCoverLetter produces a validated tailored cover letter
func (c *Controller) GenerateCoverLetter(ctx context.Context, input types.GenerateCoverLetterInput) (*types.CoverLetterDocument, error) {
	var doc *types.CoverLetterDocument
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		doc, err = c.generator.GenerateCoverLetter(ctx, input)
		if err == nil {
			break
		}
		c.logger.Warn("cover letter generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, &Error{Message: "cover letter generation canceled", Cause: ctx.Err()}
			case <-time.After(retryDelay):
			}
		}
	}
	if err != nil {
		return nil, &Error{Message: "cover letter generation failed after retries", Cause: err}
	}

	if repair.RepairCoverLetter(doc, &input.Corpus) {
		c.logger.Info("repaired evidence spans in generated cover letter")
	}

	result := validation.ValidateCoverLetter(doc, &input.Corpus)
	if !result.Valid {
		return doc, &validation.ResultError{Result: result}
	}

	doc.MatchedTermCount = validation.RecomputeMatchedTermsForCoverLetter(doc)
	return doc, nil
}

// RegenerateResume asks for a condensed resume after a render showed the
// first one did not fit. The page count feeds the hint so the model knows
// how far off it was.
func (c *Controller) RegenerateResume(ctx context.Context, input types.GenerateResumeInput, pageCount int) (*types.ResumeDocument, error) {
	input.ForceOnePage = true
	input.Hint = regenerationHint(pageCount)
	return c.GenerateResume(ctx, input)
}

func regenerationHint(pageCount int) string {
	if pageCount <= 0 {
		return "the previous version did not fit on one page"
	}
	return fmt.Sprintf("the previous version rendered at %d pages; condense it to one", pageCount)
}

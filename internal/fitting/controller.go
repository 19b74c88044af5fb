package fitting

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/repair"
	"github.com/jonathan/resume-tailor/internal/selection"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
)

// RenderResult is what the external renderer reports for one candidate
type RenderResult struct {
	Output    []byte
	PageCount int
}

// fitOutcome is the result of rendering one candidate. A render failure
// leaves the page count unknown, which is distinct from a confirmed
// overflow: destructive stages only adopt a removal under a known count.
type fitOutcome int

const (
	fitOverflow fitOutcome = iota
	fitConfirmed
	fitUnknown
)

// Renderer is the external pagination oracle. A render failure means the
// page count is unknown; it is never treated as a fit.
type Renderer interface {
	RenderResume(ctx context.Context, resume *types.ResumeDocument, layout types.LayoutOptions) (*RenderResult, error)
	RenderCoverLetter(ctx context.Context, letter *types.CoverLetterDocument, layout types.LayoutOptions) (*RenderResult, error)
}

// Result is the terminal outcome of the fitting ladder. DidFit false is the
// best-effort terminal state: the last validated candidate is returned with
// the flag rather than an error, because the caller must still be able to
// persist something.
type Result struct {
	Document    *types.ResumeDocument
	Layout      types.LayoutOptions
	DidFit      bool
	RenderCalls int
}

// LetterResult is the fitting outcome for a cover letter
type LetterResult struct {
	Letter      *types.CoverLetterDocument
	Layout      types.LayoutOptions
	DidFit      bool
	RenderCalls int
}

// Controller drives candidates through the transform ladder until the
// renderer reports a single page or the ladder is exhausted. It is a
// synchronous, single-owner pipeline: the renderer is never called
// concurrently, and stages execute strictly in ladder order so the lowest
// aggressiveness transform that fits always wins deterministically.
type Controller struct {
	renderer Renderer
	corpus   *types.SourceCorpus
	ladder   []Stage
	logger   *zap.Logger
}

// NewController creates a fitting controller with the default ladder.
// A nil logger is replaced with a no-op logger.
func NewController(renderer Renderer, corpus *types.SourceCorpus, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		renderer: renderer,
		corpus:   corpus,
		ladder:   DefaultLadder(),
		logger:   logger,
	}
}

// Fit runs the resume through the ladder. It always returns a validated
// candidate: Fitted when a one-page render was confirmed, best-effort
// otherwise. The number of render calls is bounded by the ladder length
// times the initial document's bullet and section counts.
func (c *Controller) Fit(ctx context.Context, resume *types.ResumeDocument) (*Result, error) {
	if resume == nil {
		return nil, &Error{Message: "no candidate document to fit"}
	}

	best := resume.Clone()
	layout := types.DefaultLayout()
	renderCalls := 0

	// fits reports whether the renderer confirmed a one-page result.
	// Renderer errors leave the page count unknown: the ladder continues
	// from the next stage rather than aborting, but the destructive
	// stages end without adopting the unconfirmed candidate.
	fits := func(doc *types.ResumeDocument, l types.LayoutOptions) fitOutcome {
		renderCalls++
		res, err := c.renderer.RenderResume(ctx, doc, l)
		if err != nil {
			c.logger.Warn("render failed; page count unknown", zap.Error(err))
			return fitUnknown
		}
		if res.PageCount <= 1 {
			return fitConfirmed
		}
		return fitOverflow
	}

	if fits(best, layout) == fitConfirmed {
		return &Result{Document: best, Layout: layout, DidFit: true, RenderCalls: renderCalls}, nil
	}

	for _, stage := range c.ladder {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Message: "fitting canceled", Cause: err}
		}
		c.logger.Info("advancing fitting ladder", zap.String("stage", string(stage.Kind)))

		switch stage.Kind {
		case StageFontLadder:
			for _, size := range stage.FontSizes {
				candidate := types.DefaultLayout().WithBodyFontSize(size)
				if fits(best, candidate) == fitConfirmed {
					return &Result{Document: best, Layout: candidate, DidFit: true, RenderCalls: renderCalls}, nil
				}
			}

		case StageAggressiveLayout, StageMinPadding:
			if fits(best, stage.Layout) == fitConfirmed {
				return &Result{Document: best, Layout: stage.Layout, DidFit: true, RenderCalls: renderCalls}, nil
			}

		case StagePruneBullets:
			doc, fitted := c.pruneBullets(ctx, best, stage.Layout, fits)
			best = doc
			if fitted {
				return &Result{Document: best, Layout: stage.Layout, DidFit: true, RenderCalls: renderCalls}, nil
			}

		case StageMergeBullets:
			doc, fitted := c.mergeBullets(best, stage.Layout, fits)
			best = doc
			if fitted {
				return &Result{Document: best, Layout: stage.Layout, DidFit: true, RenderCalls: renderCalls}, nil
			}

		case StageRemoveSections:
			doc, fitted := c.removeSections(best, stage.Layout, fits)
			best = doc
			if fitted {
				return &Result{Document: best, Layout: stage.Layout, DidFit: true, RenderCalls: renderCalls}, nil
			}

		case StageTruncationLadder:
			doc, fitted := c.truncate(best, stage, fits)
			best = doc
			if fitted {
				return &Result{Document: best, Layout: stage.Layout, DidFit: true, RenderCalls: renderCalls}, nil
			}

		case StageDistill:
			if candidate, ok := c.acceptCandidate(Distill(best)); ok {
				switch fits(candidate, stage.Layout) {
				case fitConfirmed:
					return &Result{Document: candidate, Layout: stage.Layout, DidFit: true, RenderCalls: renderCalls}, nil
				case fitOverflow:
					best = candidate
				}
			}

		case StageMinimal:
			if candidate, ok := c.acceptCandidate(MinimalDocument(best)); ok {
				switch fits(candidate, stage.Layout) {
				case fitConfirmed:
					return &Result{Document: candidate, Layout: stage.Layout, DidFit: true, RenderCalls: renderCalls}, nil
				case fitOverflow:
					best = candidate
				}
			}
		}
	}

	c.logger.Warn("fitting ladder exhausted; returning best-effort candidate",
		zap.Int("render_calls", renderCalls),
		zap.Int("bullets", best.BulletCount()))
	return &Result{Document: best, Layout: types.AggressiveLayout(), DidFit: false, RenderCalls: renderCalls}, nil
}

// acceptCandidate repairs and validates a transform candidate. A candidate
// that still fails validation after repair is rejected, and the matched
// term count of accepted candidates is recomputed so the document invariant
// holds after every content change.
func (c *Controller) acceptCandidate(candidate *types.ResumeDocument) (*types.ResumeDocument, bool) {
	repair.RepairResume(candidate, c.corpus)
	result := validation.ValidateResume(candidate, c.corpus)
	if !result.Valid {
		c.logger.Warn("transform candidate failed validation; skipping",
			zap.Int("errors", len(result.Errors)))
		return nil, false
	}
	candidate.MatchedTermCount = validation.RecomputeMatchedTerms(candidate)
	return candidate, true
}

// pruneBullets removes the least-relevant bullets one at a time, strictly
// relevance-ascending, re-rendering after each removal. A removal that
// fails validation is skipped in favor of the next-lowest bullet rather
// than aborting the stage. A removal is adopted only once the renderer
// confirmed the document still overflows without it.
func (c *Controller) pruneBullets(ctx context.Context, doc *types.ResumeDocument, layout types.LayoutOptions, fits func(*types.ResumeDocument, types.LayoutOptions) fitOutcome) (*types.ResumeDocument, bool) {
	best := doc
	refs := selection.CollectBullets(best)

	for len(refs) > 0 {
		if ctx.Err() != nil {
			return best, false
		}
		ref := refs[0]
		candidate, ok := c.acceptCandidate(PruneBullet(best, ref))
		if !ok {
			// Skip this bullet, try the next-lowest on the same snapshot.
			refs = refs[1:]
			continue
		}
		switch fits(candidate, layout) {
		case fitConfirmed:
			return candidate, true
		case fitUnknown:
			return best, false
		}
		best = candidate
		// Indices shifted; recollect against the new snapshot.
		refs = selection.CollectBullets(best)
	}
	return best, false
}

// mergeBullets repeatedly merges the two least-relevant bullets of the
// lowest-scoring item while progress is being made. A merge whose result
// fails validation is reverted, not kept, and a merge rendered under an
// unknown page count is likewise reverted.
func (c *Controller) mergeBullets(doc *types.ResumeDocument, layout types.LayoutOptions, fits func(*types.ResumeDocument, types.LayoutOptions) fitOutcome) (*types.ResumeDocument, bool) {
	best := doc
	for {
		merged, ok := MergeLeastRelevantBullets(best)
		if !ok {
			return best, false
		}
		candidate, ok := c.acceptCandidate(merged)
		if !ok {
			// Revert: the pre-merge snapshot stands and the stage ends,
			// since retrying the same lowest-scoring item cannot succeed.
			return best, false
		}
		switch fits(candidate, layout) {
		case fitConfirmed:
			return candidate, true
		case fitUnknown:
			return best, false
		}
		best = candidate
	}
}

// removeSections removes whole sections lowest-score-first, deprioritizing
// Experience and Education, re-rendering after each removal. Like bullet
// pruning, a removal only sticks once the renderer confirmed the page count.
func (c *Controller) removeSections(doc *types.ResumeDocument, layout types.LayoutOptions, fits func(*types.ResumeDocument, types.LayoutOptions) fitOutcome) (*types.ResumeDocument, bool) {
	best := doc
	for len(best.Sections) > 0 {
		scores := selection.RankSectionsForRemoval(best)
		var candidate *types.ResumeDocument
		for _, score := range scores {
			if accepted, ok := c.acceptCandidate(RemoveSection(best, score.Index)); ok {
				candidate = accepted
				break
			}
		}
		if candidate == nil {
			return best, false
		}
		switch fits(candidate, layout) {
		case fitConfirmed:
			return candidate, true
		case fitUnknown:
			return best, false
		}
		best = candidate
	}
	return best, false
}

// truncate tries each truncation profile against the snapshot that entered
// the stage, never stacking profiles. The last candidate rendered under a
// known page count becomes the stage result even when it does not fit, so
// later stages start from the smallest known-good document.
func (c *Controller) truncate(doc *types.ResumeDocument, stage Stage, fits func(*types.ResumeDocument, types.LayoutOptions) fitOutcome) (*types.ResumeDocument, bool) {
	entry := doc
	best := doc
	for _, profile := range stage.Profiles {
		candidate, ok := c.acceptCandidate(profile.Apply(entry))
		if !ok {
			c.logger.Warn("truncation profile rejected", zap.String("profile", profile.Name))
			continue
		}
		switch fits(candidate, stage.Layout) {
		case fitConfirmed:
			return candidate, true
		case fitUnknown:
			return best, false
		}
		best = candidate
	}
	return best, false
}

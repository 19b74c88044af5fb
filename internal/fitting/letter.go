package fitting

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/types"
)

// letterFontSizes is the descending body-font ladder for cover letters.
// Letters have a simpler content shape than resumes, so the font and
// layout hints are the only transform applied; the text itself is never
// pruned or merged.
var letterFontSizes = []int{10, 9, 8}

// FitCoverLetter runs the cover letter through the layout-hint ladder:
// the default layout first, then descending body fonts, then the minimum
// padding profile. Exhaustion returns the unchanged letter as best-effort.
func (c *Controller) FitCoverLetter(ctx context.Context, letter *types.CoverLetterDocument) (*LetterResult, error) {
	if letter == nil {
		return nil, &Error{Message: "no cover letter to fit"}
	}

	candidate := letter.Clone()
	renderCalls := 0

	fits := func(l types.LayoutOptions) bool {
		renderCalls++
		res, err := c.renderer.RenderCoverLetter(ctx, candidate, l)
		if err != nil {
			c.logger.Warn("cover letter render failed; page count unknown", zap.Error(err))
			return false
		}
		return res.PageCount <= 1
	}

	layouts := make([]types.LayoutOptions, 0, len(letterFontSizes)+2)
	layouts = append(layouts, types.DefaultLayout())
	for _, size := range letterFontSizes {
		layouts = append(layouts, types.DefaultLayout().WithBodyFontSize(size))
	}
	layouts = append(layouts, types.MinPaddingLayout())

	for _, layout := range layouts {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Message: "fitting canceled", Cause: err}
		}
		if fits(layout) {
			return &LetterResult{Letter: candidate, Layout: layout, DidFit: true, RenderCalls: renderCalls}, nil
		}
	}

	c.logger.Warn("cover letter layout ladder exhausted; returning best-effort candidate",
		zap.Int("render_calls", renderCalls))
	return &LetterResult{Letter: candidate, Layout: types.MinPaddingLayout(), DidFit: false, RenderCalls: renderCalls}, nil
}

package rendering

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/fitting"
	"github.com/jonathan/resume-tailor/internal/types"
)

// defaultPrintTimeout bounds a single print-to-PDF round trip
const defaultPrintTimeout = 30 * time.Second

// US Letter in inches
const (
	paperWidth  = 8.5
	paperHeight = 11.0
)

// PDFRenderer prints tailored documents to PDF with a headless Chrome
// instance and reports the resulting page count. It is the pagination
// oracle for the fitting ladder. Requires Chrome/Chromium on the system.
type PDFRenderer struct {
	chromePath string
	timeout    time.Duration
	logger     *zap.Logger
}

// PDFRendererOption configures a PDFRenderer
type PDFRendererOption func(*PDFRenderer)

// WithChromePath overrides headless Chrome binary discovery
func WithChromePath(path string) PDFRendererOption {
	return func(r *PDFRenderer) { r.chromePath = path }
}

// WithPrintTimeout overrides the per-render timeout
func WithPrintTimeout(timeout time.Duration) PDFRendererOption {
	return func(r *PDFRenderer) { r.timeout = timeout }
}

// NewPDFRenderer creates a browser-backed PDF renderer. A nil logger
// disables logging.
func NewPDFRenderer(logger *zap.Logger, opts ...PDFRendererOption) *PDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &PDFRenderer{timeout: defaultPrintTimeout, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderResume prints a resume candidate and reports its page count
func (r *PDFRenderer) RenderResume(ctx context.Context, resume *types.ResumeDocument, layout types.LayoutOptions) (*fitting.RenderResult, error) {
	html, err := RenderResumeHTML(resume, layout)
	if err != nil {
		return nil, err
	}
	return r.printHTML(ctx, html)
}

// RenderCoverLetter prints a cover letter candidate and reports its page count
func (r *PDFRenderer) RenderCoverLetter(ctx context.Context, letter *types.CoverLetterDocument, layout types.LayoutOptions) (*fitting.RenderResult, error) {
	html, err := RenderCoverLetterHTML(letter, layout)
	if err != nil {
		return nil, err
	}
	return r.printHTML(ctx, html)
}

// printHTML loads the HTML into a fresh browser tab and prints it
func (r *PDFRenderer) printHTML(ctx context.Context, html string) (*fitting.RenderResult, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPrintBackground(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "browser print failed", Cause: err}
	}

	pages := CountPDFPages(pdf)
	if pages == 0 {
		return nil, &RenderError{Message: "could not determine page count from PDF output"}
	}

	r.logger.Debug("printed candidate",
		zap.Int("pdf_bytes", len(pdf)),
		zap.Int("pages", pages))

	return &fitting.RenderResult{Output: pdf, PageCount: pages}, nil
}

var (
	pageCountRe  = regexp.MustCompile(`/Count\s+(\d+)`)
	pageObjectRe = regexp.MustCompile(`/Type\s*/Page[^s]`)
)

// CountPDFPages reads the page count out of raw PDF bytes. Chrome writes
// an uncompressed page tree, so the /Count entry of the root /Pages node
// is present in clear text; the largest /Count wins because intermediate
// nodes carry partial counts. Falls back to counting page objects, and
// returns 0 when the data holds neither.
func CountPDFPages(data []byte) int {
	max := 0
	for _, m := range pageCountRe.FindAllSubmatch(data, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > max {
			max = n
		}
	}
	if max > 0 {
		return max
	}
	return len(pageObjectRe.FindAll(data, -1))
}

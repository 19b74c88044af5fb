// Package pipeline provides the high-level orchestration for a tailoring
// session: load corpus, extract terms, generate, fit to one page, render,
// and persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/fitting"
	"github.com/jonathan/resume-tailor/internal/generation"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
)

// RunOptions holds configuration for running a tailoring session
type RunOptions struct {
	ResumePath string
	JobPath    string
	JobURL     string
	ExtraPath  string

	Company   string
	RoleTitle string

	APIKey       string
	UseBrowser   bool
	Verbose      bool
	CoverLetter  bool
	ForceOnePage bool

	// MaxRegenerations bounds the one-page hint regenerations tried before
	// the fitting ladder takes over.
	MaxRegenerations int

	DatabaseURL string
	ChromePath  string
	OutDir      string

	Logger *zap.Logger
}

// RunResult is the terminal outcome of a tailoring session
type RunResult struct {
	SessionID uuid.UUID
	Resume    *fitting.Result
	Letter    *fitting.LetterResult
	Terms     []string

	ResumePDFPath string
	LetterPDFPath string
}

// Run orchestrates the full tailoring pipeline
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	printer := observability.NewPrinter(os.Stdout)

	if opts.MaxRegenerations == 0 {
		opts.MaxRegenerations = 1
	}

	// Step 1: Load and normalize the source corpus
	fmt.Printf("Step 1/6: Loading source corpus...\n")
	corpus, err := ingestion.LoadCorpus(ctx, ingestion.CorpusInput{
		ResumePath: opts.ResumePath,
		JobPath:    opts.JobPath,
		JobURL:     opts.JobURL,
		ExtraPath:  opts.ExtraPath,
		UseBrowser: opts.UseBrowser,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("corpus loading failed: %w", err)
	}

	// Optional persistence: a missing database is a warning, not a failure
	var database *db.DB
	var sessionID uuid.UUID
	if opts.DatabaseURL != "" {
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			sessionID, err = database.CreateSession(ctx, opts.Company, opts.RoleTitle)
			if err != nil {
				fmt.Printf("Warning: Failed to create session record: %v\n", err)
				database = nil
			} else {
				_ = database.SaveArtifact(ctx, sessionID, db.StepSourceCorpus, corpus)
			}
		}
	}

	client, err := llm.NewClient(ctx, nil, opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()
	generator := llm.NewGenerator(client)
	controller := generation.NewController(generator, logger)

	// Step 2: Extract ATS terms from the job description
	fmt.Printf("Step 2/6: Extracting key terms...\n")
	terms, err := generator.ExtractKeyTerms(ctx, corpus.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("term extraction failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintKeyTerms(terms)
	}
	if database != nil {
		_ = database.SaveArtifact(ctx, sessionID, db.StepKeyTerms, terms)
	}

	// Step 3: Generate the tailored documents. Resume and cover letter are
	// independent, so they run concurrently.
	fmt.Printf("Step 3/6: Generating tailored documents...\n")
	var resume *types.ResumeDocument
	var letter *types.CoverLetterDocument
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := controller.GenerateResume(gCtx, types.GenerateResumeInput{
			Corpus:       *corpus,
			Terms:        terms,
			ForceOnePage: opts.ForceOnePage,
		})
		if err != nil {
			var resultErr *validation.ResultError
			if errors.As(err, &resultErr) {
				if opts.Verbose {
					printer.PrintValidationResult(&resultErr.Result)
				}
				return fmt.Errorf("generated resume failed evidence validation: %w", err)
			}
			return err
		}
		mu.Lock()
		resume = doc
		mu.Unlock()
		return nil
	})
	if opts.CoverLetter {
		g.Go(func() error {
			doc, err := controller.GenerateCoverLetter(gCtx, types.GenerateCoverLetterInput{
				Corpus:       *corpus,
				Terms:        terms,
				ForceOnePage: opts.ForceOnePage,
			})
			if err != nil {
				return fmt.Errorf("cover letter generation failed: %w", err)
			}
			mu.Lock()
			letter = doc
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		failSession(ctx, database, sessionID)
		return nil, err
	}
	if opts.Verbose {
		printer.PrintResumeSummary(resume)
	}
	if database != nil {
		_ = database.SaveArtifact(ctx, sessionID, db.StepTailoredResume, resume)
	}

	renderer := newRenderer(opts, logger)
	fitter := fitting.NewController(renderer, corpus, logger)

	// Step 4: Bounded regeneration with a page-count hint. Cheaper than the
	// ladder when the model can condense the content itself.
	fmt.Printf("Step 4/6: Checking initial page count...\n")
	resume = regenerateUntilFits(ctx, &opts, controller, renderer, corpus, terms, resume, logger)

	// Step 5: The deterministic fitting ladder
	fmt.Printf("Step 5/6: Fitting to one page...\n")
	fitResult, err := fitter.Fit(ctx, resume)
	if err != nil {
		failSession(ctx, database, sessionID)
		return nil, fmt.Errorf("fitting failed: %w", err)
	}

	result := &RunResult{
		SessionID: sessionID,
		Resume:    fitResult,
		Terms:     terms,
	}

	if letter != nil {
		letterResult, err := fitter.FitCoverLetter(ctx, letter)
		if err != nil {
			failSession(ctx, database, sessionID)
			return nil, fmt.Errorf("cover letter fitting failed: %w", err)
		}
		result.Letter = letterResult
	}

	report := &db.FitReport{
		DidFit:      fitResult.DidFit,
		Layout:      fitResult.Layout,
		RenderCalls: fitResult.RenderCalls,
		BulletCount: fitResult.Document.BulletCount(),
		TermCount:   fitResult.Document.MatchedTermCount,
	}
	if opts.Verbose {
		printer.PrintFitReport(report)
	}

	// Step 6: Render and persist the final artifacts
	fmt.Printf("Step 6/6: Rendering final documents...\n")
	if err := writeArtifacts(ctx, &opts, database, sessionID, renderer, report, result); err != nil {
		failSession(ctx, database, sessionID)
		return nil, err
	}

	if database != nil {
		_ = database.CompleteSession(ctx, sessionID, db.StatusCompleted)
	}

	if result.Resume.DidFit {
		fmt.Printf("✅ Resume fits on one page.\n")
	} else {
		fmt.Printf("⚠ Resume is best-effort: it may still exceed one page.\n")
	}

	return result, nil
}

// newRenderer builds the browser-backed PDF renderer from run options
func newRenderer(opts RunOptions, logger *zap.Logger) *rendering.PDFRenderer {
	var rendererOpts []rendering.PDFRendererOption
	if opts.ChromePath != "" {
		rendererOpts = append(rendererOpts, rendering.WithChromePath(opts.ChromePath))
	}
	return rendering.NewPDFRenderer(logger, rendererOpts...)
}

// regenerateUntilFits renders the fresh resume and, when it overflows,
// asks the model for a condensed version a bounded number of times. The
// last candidate is returned regardless; the fitting ladder handles the
// rest.
func regenerateUntilFits(ctx context.Context, opts *RunOptions, controller *generation.Controller, renderer fitting.Renderer, corpus *types.SourceCorpus, terms []string, resume *types.ResumeDocument, logger *zap.Logger) *types.ResumeDocument {
	if logger == nil {
		logger = zap.NewNop()
	}
	layout := types.DefaultLayout()

	for attempt := 0; attempt < opts.MaxRegenerations; attempt++ {
		rendered, err := renderer.RenderResume(ctx, resume, layout)
		if err != nil {
			// Unknown page count; leave pagination to the ladder
			logger.Warn("initial render failed", zap.Error(err))
			return resume
		}
		if rendered.PageCount <= 1 {
			return resume
		}

		logger.Info("resume overflows, regenerating with hint",
			zap.Int("pages", rendered.PageCount),
			zap.Int("attempt", attempt+1))

		condensed, err := controller.RegenerateResume(ctx, types.GenerateResumeInput{
			Corpus: *corpus,
			Terms:  terms,
		}, rendered.PageCount)
		if err != nil {
			logger.Warn("hint regeneration failed, keeping previous candidate", zap.Error(err))
			return resume
		}
		resume = condensed
	}
	return resume
}

// writeArtifacts renders the final HTML and PDF outputs and stores them
func writeArtifacts(ctx context.Context, opts *RunOptions, database *db.DB, sessionID uuid.UUID, renderer *rendering.PDFRenderer, report *db.FitReport, result *RunResult) error {
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "out"
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resumeHTML, err := rendering.RenderResumeHTML(result.Resume.Document, result.Resume.Layout)
	if err != nil {
		return err
	}
	rendered, err := renderer.RenderResume(ctx, result.Resume.Document, result.Resume.Layout)
	if err != nil {
		return fmt.Errorf("final resume render failed: %w", err)
	}

	result.ResumePDFPath = filepath.Join(outDir, "resume.pdf")
	if err := os.WriteFile(result.ResumePDFPath, rendered.Output, 0644); err != nil {
		return fmt.Errorf("failed to write resume PDF: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "resume.html"), []byte(resumeHTML), 0644); err != nil {
		return fmt.Errorf("failed to write resume HTML: %w", err)
	}

	if database != nil {
		_ = database.SaveArtifact(ctx, sessionID, db.StepFitReport, report)
		_ = database.SaveTextArtifact(ctx, sessionID, db.StepResumeHTML, resumeHTML)
		_ = database.SaveBinaryArtifact(ctx, sessionID, db.StepResumePDF, rendered.Output)
	}

	if result.Letter == nil {
		return nil
	}

	letterHTML, err := rendering.RenderCoverLetterHTML(result.Letter.Letter, result.Letter.Layout)
	if err != nil {
		return err
	}
	renderedLetter, err := renderer.RenderCoverLetter(ctx, result.Letter.Letter, result.Letter.Layout)
	if err != nil {
		return fmt.Errorf("final cover letter render failed: %w", err)
	}

	result.LetterPDFPath = filepath.Join(outDir, "cover_letter.pdf")
	if err := os.WriteFile(result.LetterPDFPath, renderedLetter.Output, 0644); err != nil {
		return fmt.Errorf("failed to write cover letter PDF: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "cover_letter.html"), []byte(letterHTML), 0644); err != nil {
		return fmt.Errorf("failed to write cover letter HTML: %w", err)
	}

	if database != nil {
		_ = database.SaveArtifact(ctx, sessionID, db.StepCoverLetter, result.Letter.Letter)
		_ = database.SaveTextArtifact(ctx, sessionID, db.StepCoverLetterHTML, letterHTML)
		_ = database.SaveBinaryArtifact(ctx, sessionID, db.StepCoverLetterPDF, renderedLetter.Output)
	}

	return nil
}

// failSession marks the session failed when persistence is active
func failSession(ctx context.Context, database *db.DB, sessionID uuid.UUID) {
	if database != nil && sessionID != uuid.Nil {
		_ = database.CompleteSession(ctx, sessionID, db.StatusFailed)
	}
}

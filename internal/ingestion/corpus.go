package ingestion

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/types"
)

// CorpusInput names the texts or files a session starts from. Resume and
// job description are required; JobURL may replace JobPath when the
// posting should be pulled off the web.
type CorpusInput struct {
	ResumePath string
	JobPath    string
	JobURL     string
	ExtraPath  string

	// UseBrowser enables the headless browser fallback for job boards
	// that render postings with JavaScript.
	UseBrowser bool
}

// LoadCorpus reads, cleans, and assembles the immutable source corpus for
// a tailoring session.
func LoadCorpus(ctx context.Context, input CorpusInput, logger *zap.Logger) (*types.SourceCorpus, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	resume, err := loadTextFile(input.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if resume == "" {
		return nil, fmt.Errorf("resume text is empty: %s", input.ResumePath)
	}

	var job string
	switch {
	case input.JobURL != "":
		job, err = FetchJobPosting(ctx, input.JobURL, input.UseBrowser, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job posting: %w", err)
		}
	case input.JobPath != "":
		job, err = loadTextFile(input.JobPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load job description: %w", err)
		}
	default:
		return nil, fmt.Errorf("a job description file or URL is required")
	}
	if job == "" {
		return nil, fmt.Errorf("job description text is empty")
	}

	var extra string
	if input.ExtraPath != "" {
		extra, err = loadTextFile(input.ExtraPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load extra text: %w", err)
		}
	}

	logger.Info("loaded source corpus",
		zap.Int("resume_chars", len(resume)),
		zap.Int("job_chars", len(job)),
		zap.Int("extra_chars", len(extra)))

	return &types.SourceCorpus{
		Resume:         resume,
		JobDescription: job,
		Extra:          extra,
	}, nil
}

// FetchJobPosting pulls a job posting from a URL and reduces it to cleaned
// text. Platform-specific selectors strip job board chrome; JavaScript-only
// boards fall back to a headless browser render when enabled.
func FetchJobPosting(ctx context.Context, urlStr string, useBrowser bool, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("fetching job posting",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", err
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", err
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		logger.Debug("content too short, falling back to browser rendering",
			zap.Int("chars", len(text)))

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr)
		if browserErr != nil {
			// Keep the HTTP content when the browser fails
			logger.Warn("browser rendering failed", zap.Error(browserErr))
		} else if rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil {
			text = rendered
		}
	}

	return CleanText(text), nil
}

// loadTextFile reads a file and returns its cleaned text
func loadTextFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no file path given")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full tailoring pipeline end-to-end",
	Long: `Orchestrates the entire tailoring process: ingestion -> key term extraction -> generation -> span repair -> validation -> rendering -> one-page fitting.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath       string
	runResume           string
	runJob              string
	runJobURL           string
	runExtra            string
	runCompany          string
	runRoleTitle        string
	runCoverLetter      bool
	runForceOnePage     bool
	runMaxRegenerations int
	runAPIKey           string
	runUseBrowser       bool
	runVerbose          bool
	runDatabaseURL      string
	runChromePath       string
	runOutDir           string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to candidate resume text file")
	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	runCommand.Flags().StringVar(&runJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	runCommand.Flags().StringVar(&runExtra, "extra", "", "Path to supplementary notes file (optional)")
	runCommand.Flags().StringVarP(&runCompany, "company", "c", "", "Company name used to label the session")
	runCommand.Flags().StringVar(&runRoleTitle, "role", "", "Role title used to label the session")
	runCommand.Flags().BoolVar(&runCoverLetter, "cover-letter", false, "Also generate a matching cover letter")
	runCommand.Flags().BoolVar(&runForceOnePage, "force-one-page", false, "Ask the model for a one-page draft up front")
	runCommand.Flags().IntVar(&runMaxRegenerations, "max-regenerations", 0, "Hinted regenerations to try before the fitting ladder")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().StringVar(&runChromePath, "chrome-path", "", "Path to the Chrome binary used for PDF rendering")
	runCommand.Flags().StringVarP(&runOutDir, "out", "o", "", "Output directory for rendered artifacts")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = runJobURL
	}
	if cmd.Flags().Changed("extra") {
		cfg.Extra = runExtra
	}
	if cmd.Flags().Changed("company") {
		cfg.Company = runCompany
	}
	if cmd.Flags().Changed("role") {
		cfg.RoleTitle = runRoleTitle
	}
	if cmd.Flags().Changed("cover-letter") {
		cfg.CoverLetter = runCoverLetter
	}
	if cmd.Flags().Changed("force-one-page") {
		cfg.ForceOnePage = runForceOnePage
	}
	if cmd.Flags().Changed("max-regenerations") {
		cfg.MaxRegenerations = runMaxRegenerations
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("chrome-path") {
		cfg.ChromePath = runChromePath
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = runOutDir
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Company:          "Unknown Company",
		RoleTitle:        "Unknown Role",
		OutDir:           "out",
		MaxRegenerations: 1,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Database URL handling (persistence is optional)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	var logger *zap.Logger
	if cfg.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	opts := pipeline.RunOptions{
		ResumePath:       cfg.Resume,
		JobPath:          cfg.Job,
		JobURL:           cfg.JobURL,
		ExtraPath:        cfg.Extra,
		Company:          cfg.Company,
		RoleTitle:        cfg.RoleTitle,
		APIKey:           cfg.APIKey,
		UseBrowser:       cfg.UseBrowser,
		Verbose:          cfg.Verbose,
		CoverLetter:      cfg.CoverLetter,
		ForceOnePage:     cfg.ForceOnePage,
		MaxRegenerations: cfg.MaxRegenerations,
		DatabaseURL:      cfg.DatabaseURL,
		ChromePath:       cfg.ChromePath,
		OutDir:           cfg.OutDir,
		Logger:           logger,
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Resume PDF: %s\n", result.ResumePDFPath)
	if result.LetterPDFPath != "" {
		fmt.Printf("Cover letter PDF: %s\n", result.LetterPDFPath)
	}

	return nil
}

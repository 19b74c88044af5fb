package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate evidence spans in a tailored document",
	Long:  "Checks every evidence span in a tailored resume or cover letter JSON file against the source corpus and reports all grounding violations at once.",
	RunE:  runValidate,
}

var (
	validateDocFile     string
	validateResumeFile  string
	validateJobFile     string
	validateExtraFile   string
	validateCoverLetter bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateDocFile, "doc", "d", "", "Path to tailored document JSON file (required)")
	validateCmd.Flags().StringVarP(&validateResumeFile, "resume", "r", "", "Path to candidate resume text file (required)")
	validateCmd.Flags().StringVarP(&validateJobFile, "job", "j", "", "Path to job posting text file (required)")
	validateCmd.Flags().StringVar(&validateExtraFile, "extra", "", "Path to supplementary notes file (optional)")
	validateCmd.Flags().BoolVar(&validateCoverLetter, "cover-letter", false, "Treat the document as a cover letter")

	_ = validateCmd.MarkFlagRequired("doc")
	_ = validateCmd.MarkFlagRequired("resume")
	_ = validateCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	corpus, err := ingestion.LoadCorpus(ctx, ingestion.CorpusInput{
		ResumePath: validateResumeFile,
		JobPath:    validateJobFile,
		ExtraPath:  validateExtraFile,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to load source corpus: %w", err)
	}

	data, err := os.ReadFile(validateDocFile)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	var result types.ValidationResult
	if validateCoverLetter {
		var letter types.CoverLetterDocument
		if err := json.Unmarshal(data, &letter); err != nil {
			return fmt.Errorf("failed to parse cover letter JSON: %w", err)
		}
		result = validation.ValidateCoverLetter(&letter, corpus)
	} else {
		var resume types.ResumeDocument
		if err := json.Unmarshal(data, &resume); err != nil {
			return fmt.Errorf("failed to parse resume JSON: %w", err)
		}
		result = validation.ValidateResume(&resume, corpus)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintValidationResult(&result)

	if !result.Valid {
		return fmt.Errorf("document has %d grounding violation(s)", len(result.Errors))
	}
	return nil
}

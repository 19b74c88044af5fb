package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/repair"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
	"github.com/spf13/cobra"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair broken evidence spans in a tailored document",
	Long:  "Relocates out-of-bounds evidence spans in a tailored resume or cover letter JSON file by searching the source corpus for the cited text, then re-validates and writes the repaired document.",
	RunE:  runRepairCmd,
}

var (
	repairDocFile     string
	repairResumeFile  string
	repairJobFile     string
	repairExtraFile   string
	repairOutFile     string
	repairCoverLetter bool
)

func init() {
	repairCmd.Flags().StringVarP(&repairDocFile, "doc", "d", "", "Path to tailored document JSON file (required)")
	repairCmd.Flags().StringVarP(&repairResumeFile, "resume", "r", "", "Path to candidate resume text file (required)")
	repairCmd.Flags().StringVarP(&repairJobFile, "job", "j", "", "Path to job posting text file (required)")
	repairCmd.Flags().StringVar(&repairExtraFile, "extra", "", "Path to supplementary notes file (optional)")
	repairCmd.Flags().StringVarP(&repairOutFile, "out", "o", "", "Output path for the repaired document (defaults to overwriting --doc)")
	repairCmd.Flags().BoolVar(&repairCoverLetter, "cover-letter", false, "Treat the document as a cover letter")

	_ = repairCmd.MarkFlagRequired("doc")
	_ = repairCmd.MarkFlagRequired("resume")
	_ = repairCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(repairCmd)
}

func runRepairCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	corpus, err := ingestion.LoadCorpus(ctx, ingestion.CorpusInput{
		ResumePath: repairResumeFile,
		JobPath:    repairJobFile,
		ExtraPath:  repairExtraFile,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to load source corpus: %w", err)
	}

	data, err := os.ReadFile(repairDocFile)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	var doc any
	var changed bool
	var result types.ValidationResult
	if repairCoverLetter {
		var letter types.CoverLetterDocument
		if err := json.Unmarshal(data, &letter); err != nil {
			return fmt.Errorf("failed to parse cover letter JSON: %w", err)
		}
		changed = repair.RepairCoverLetter(&letter, corpus)
		result = validation.ValidateCoverLetter(&letter, corpus)
		doc = &letter
	} else {
		var resume types.ResumeDocument
		if err := json.Unmarshal(data, &resume); err != nil {
			return fmt.Errorf("failed to parse resume JSON: %w", err)
		}
		changed = repair.RepairResume(&resume, corpus)
		result = validation.ValidateResume(&resume, corpus)
		doc = &resume
	}

	if changed {
		fmt.Println("Relocated one or more evidence spans.")
	} else {
		fmt.Println("No spans needed repair.")
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintValidationResult(&result)

	outPath := repairOutFile
	if outPath == "" {
		outPath = repairDocFile
	}

	repaired, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize repaired document: %w", err)
	}
	if err := os.WriteFile(outPath, repaired, 0o644); err != nil {
		return fmt.Errorf("failed to write repaired document: %w", err)
	}
	fmt.Printf("Wrote repaired document to: %s\n", outPath)

	if !result.Valid {
		return fmt.Errorf("document still has %d grounding violation(s) after repair", len(result.Errors))
	}
	return nil
}

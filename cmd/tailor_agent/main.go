// Package main provides the entry point for the Resume Tailor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailor_agent",
	Short: "Resume Tailor CLI",
	Long:  "Resume Tailor generates a one-page tailored resume and matching cover letter from a candidate resume and a job posting, with every claim grounded in evidence spans over the source documents.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

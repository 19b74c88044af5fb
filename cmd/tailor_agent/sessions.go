package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List past tailoring sessions",
	Long:  "Lists tailoring sessions persisted in PostgreSQL, newest first, with optional company and status filters.",
	RunE:  runSessions,
}

var (
	sessionsDatabaseURL string
	sessionsCompany     string
	sessionsStatus      string
	sessionsLimit       int
)

func init() {
	sessionsCmd.Flags().StringVar(&sessionsDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	sessionsCmd.Flags().StringVarP(&sessionsCompany, "company", "c", "", "Filter by company name (substring match)")
	sessionsCmd.Flags().StringVar(&sessionsStatus, "status", "", "Filter by status (running, completed, failed)")
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 0, "Maximum sessions to list (default 50)")

	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	dbURL := sessionsDatabaseURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	sessions, err := database.ListSessions(ctx, db.SessionFilters{
		Company: sessionsCompany,
		Status:  sessionsStatus,
		Limit:   sessionsLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tROLE\tSTATUS\tCREATED")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Company, s.RoleTitle, s.Status, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

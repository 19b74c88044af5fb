package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Session represents one tailoring run: one corpus, one job, one set of
// generated artifacts.
type Session struct {
	ID          uuid.UUID  `json:"id"`
	Company     string     `json:"company"`
	RoleTitle   string     `json:"role_title"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Session status values
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for known artifact types
const (
	StepSourceCorpus    = "source_corpus"
	StepKeyTerms        = "key_terms"
	StepTailoredResume  = "tailored_resume"
	StepFitReport       = "fit_report"
	StepResumeHTML      = "resume_html"
	StepResumePDF       = "resume_pdf"
	StepCoverLetter     = "cover_letter"
	StepCoverLetterHTML = "cover_letter_html"
	StepCoverLetterPDF  = "cover_letter_pdf"
)

// FitReport records how the one-page fitting ladder ended for a session.
// Stored as a JSON artifact so past sessions can be audited.
type FitReport struct {
	DidFit      bool                `json:"did_fit"`
	Layout      types.LayoutOptions `json:"layout"`
	RenderCalls int                 `json:"render_calls"`
	BulletCount int                 `json:"bullet_count"`
	TermCount   int                 `json:"term_count"`
}

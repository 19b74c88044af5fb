// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintKeyTerms outputs the ATS terms extracted from the job description.
func (p *Printer) PrintKeyTerms(terms []string) {
	if len(terms) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d terms:\n\n", len(terms)))

	count := min(len(terms), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", terms[i]))
	}
	if len(terms) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(terms)-count))
	}

	p.printBox("KEY ATS TERMS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeSummary outputs a compact overview of a tailored resume.
func (p *Printer) PrintResumeSummary(resume *types.ResumeDocument) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:          %s\n", resume.Name))
	sb.WriteString(fmt.Sprintf("Sections:      %d\n", len(resume.Sections)))
	sb.WriteString(fmt.Sprintf("Bullets:       %d\n", resume.BulletCount()))
	sb.WriteString(fmt.Sprintf("Matched terms: %d\n", resume.MatchedTermCount))
	sb.WriteString("\n")

	count := min(len(resume.Sections), maxItemsToShow)
	for i := 0; i < count; i++ {
		section := resume.Sections[i]
		bullets := 0
		for _, item := range section.Items {
			bullets += len(item.Bullets)
		}
		sb.WriteString(fmt.Sprintf("  • %s (%d items, %d bullets)\n", section.Name, len(section.Items), bullets))
	}
	if len(resume.Sections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more sections\n", len(resume.Sections)-maxItemsToShow))
	}

	p.printBox("TAILORED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFitReport outputs how the one-page fitting ladder ended.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFitReport(report *db.FitReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if report.DidFit {
		sb.WriteString("✅ Fits on one page\n")
	} else {
		sb.WriteString("⚠ Best effort: still more than one page\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Body font:     %dpt\n", report.Layout.BodyFontSize))
	sb.WriteString(fmt.Sprintf("Padding:       %s\n", report.Layout.PagePadding))
	sb.WriteString(fmt.Sprintf("Line height:   %.2f\n", report.Layout.LineHeight))
	sb.WriteString(fmt.Sprintf("Render calls:  %d\n", report.RenderCalls))
	sb.WriteString(fmt.Sprintf("Bullets kept:  %d\n", report.BulletCount))
	sb.WriteString(fmt.Sprintf("Matched terms: %d", report.TermCount))

	p.printBox("ONE-PAGE FIT", sb.String())
}

// PrintValidationResult outputs evidence validation errors, or a success
// marker when the document is fully grounded.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationResult(result *types.ValidationResult) {
	if result == nil || result.Valid {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL EVIDENCE SPANS GROUNDED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d validation errors:\n\n", len(result.Errors)))

	count := min(len(result.Errors), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := result.Errors[i]
		message := e.Message
		if len(message) > 45 {
			message = message[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", e.Kind))
		sb.WriteString(fmt.Sprintf("  %s\n", message))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(result.Errors) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more errors", len(result.Errors)-maxItemsToShow))
	}

	p.printBox("EVIDENCE VALIDATION", sb.String())
}

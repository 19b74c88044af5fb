// Package ingestion loads and normalizes the source texts a tailoring
// session cites: the candidate's resume, the job description, and any
// additional background. Normalization happens exactly once, here; the
// corpus is immutable afterwards so evidence span offsets stay stable.
package ingestion

import (
	"regexp"
	"strings"
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Split into lines for processing
	lines := strings.Split(content, "\n")

	// 3. Process each line
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	// 4. Join lines
	result := strings.Join(cleanedLines, "\n")

	// 5. Remove excessive blank lines (max 2 consecutive)
	result = removeExcessiveBlankLines(result)

	// 6. Trim leading/trailing whitespace from entire content
	return strings.TrimSpace(result)
}

var multiSpaceRe = regexp.MustCompile(`\s+`)

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	// Trim trailing whitespace
	line = strings.TrimRight(line, " \t")

	// Handle empty lines
	if strings.TrimSpace(line) == "" {
		return ""
	}

	// Preserve headings (Markdown # or ## etc.)
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		// Keep markdown headings as-is, normalize leading spaces to 0
		return trimmed
	}

	// Preserve bullet lists (Markdown - or *)
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		// Preserve indentation before bullet, but normalize
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	// For regular lines, normalize multiple spaces to single space
	// but preserve intentional indentation at start of line
	leadingSpace := len(line) - len(trimmed)
	content := multiSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	if leadingSpace > 0 {
		return strings.Repeat(" ", leadingSpace) + content
	}
	return content
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2
func removeExcessiveBlankLines(content string) string {
	re := regexp.MustCompile(`\n\n\n+`)
	return re.ReplaceAllString(content, "\n\n")
}

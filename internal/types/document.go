// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SourceName identifies one of the immutable source texts a span may cite
type SourceName string

// Source name constants match the wire values the generator emits
const (
	// SourceResume is the candidate's uploaded resume text
	SourceResume SourceName = "resume"
	// SourceJobDescription is the job description text
	SourceJobDescription SourceName = "jd"
	// SourceExtra is optional additional candidate-supplied text
	SourceExtra SourceName = "extra"
)

// SourceCorpus holds the immutable named source texts evidence spans cite.
// Lengths are fixed once supplied; the core never normalizes them further.
type SourceCorpus struct {
	Resume         string
	JobDescription string
	Extra          string
}

// Text returns the text for a named source and whether it was supplied.
// An empty text counts as missing: a span cannot cite a zero-length source.
func (c *SourceCorpus) Text(name SourceName) (string, bool) {
	switch name {
	case SourceResume:
		return c.Resume, c.Resume != ""
	case SourceJobDescription:
		return c.JobDescription, c.JobDescription != ""
	case SourceExtra:
		return c.Extra, c.Extra != ""
	default:
		return "", false
	}
}

// EvidenceSpan asserts that a generated statement is grounded in a literal
// substring of a named source text. ResolvedText is a derived cache of
// sourceText[Start:End], never authoritative.
type EvidenceSpan struct {
	Source       SourceName `json:"source"`
	Start        int        `json:"start"`
	End          int        `json:"end"`
	ResolvedText string     `json:"resolved_text,omitempty"`
}

// ResumeBullet is a single resume statement with its evidence and term matches
type ResumeBullet struct {
	Text          string         `json:"text"`
	EvidenceSpans []EvidenceSpan `json:"evidence_spans"`
	MatchedTerms  []string       `json:"matched_terms"`
}

// ResumeItem is a dated entry within a section (a role, degree, or project)
type ResumeItem struct {
	Title        string         `json:"title,omitempty"`
	Organization string         `json:"organization,omitempty"`
	Location     string         `json:"location,omitempty"`
	DateRange    string         `json:"dateRange,omitempty"`
	Bullets      []ResumeBullet `json:"bullets,omitempty"`
}

// ResumeSection groups items under a free-form label, conventionally one of
// Education, Experience, Projects, Skills, Leadership.
type ResumeSection struct {
	Name  string       `json:"name"`
	Items []ResumeItem `json:"items"`
}

// ResumeDocument is a tailored resume produced by the generator and mutated
// only by fitting transforms, each of which produces a new snapshot.
type ResumeDocument struct {
	Name             string          `json:"name"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Location         string          `json:"location,omitempty"`
	LinkedIn         string          `json:"linkedin,omitempty"`
	GitHub           string          `json:"github,omitempty"`
	Summary          string          `json:"summary,omitempty"`
	Sections         []ResumeSection `json:"sections"`
	MatchedTermCount int             `json:"matched_term_count" validate:"gte=0"`
}

// CoverLetterParagraph is a single cover-letter statement with evidence
type CoverLetterParagraph struct {
	Text          string         `json:"text"`
	EvidenceSpans []EvidenceSpan `json:"evidence_spans"`
	MatchedTerms  []string       `json:"matched_terms"`
}

// CoverLetterDocument is a tailored cover letter
type CoverLetterDocument struct {
	Date             string                 `json:"date"`
	Salutation       string                 `json:"salutation"`
	Paragraphs       []CoverLetterParagraph `json:"paragraphs"`
	Closing          string                 `json:"closing"`
	MatchedTermCount int                    `json:"matched_term_count" validate:"gte=0"`
}

// BulletCount returns the total number of bullets across all sections
func (d *ResumeDocument) BulletCount() int {
	count := 0
	for _, section := range d.Sections {
		for _, item := range section.Items {
			count += len(item.Bullets)
		}
	}
	return count
}

// Clone returns a deep copy of the bullet
func (b ResumeBullet) Clone() ResumeBullet {
	clone := ResumeBullet{Text: b.Text}
	if b.EvidenceSpans != nil {
		clone.EvidenceSpans = make([]EvidenceSpan, len(b.EvidenceSpans))
		copy(clone.EvidenceSpans, b.EvidenceSpans)
	}
	if b.MatchedTerms != nil {
		clone.MatchedTerms = make([]string, len(b.MatchedTerms))
		copy(clone.MatchedTerms, b.MatchedTerms)
	}
	return clone
}

// Clone returns a deep copy of the item
func (it ResumeItem) Clone() ResumeItem {
	clone := ResumeItem{
		Title:        it.Title,
		Organization: it.Organization,
		Location:     it.Location,
		DateRange:    it.DateRange,
	}
	if it.Bullets != nil {
		clone.Bullets = make([]ResumeBullet, len(it.Bullets))
		for i, b := range it.Bullets {
			clone.Bullets[i] = b.Clone()
		}
	}
	return clone
}

// Clone returns a deep copy of the section
func (s ResumeSection) Clone() ResumeSection {
	clone := ResumeSection{Name: s.Name}
	if s.Items != nil {
		clone.Items = make([]ResumeItem, len(s.Items))
		for i, it := range s.Items {
			clone.Items[i] = it.Clone()
		}
	}
	return clone
}

// Clone returns a deep copy of the document. Fitting stages operate on
// clones so that a previous stage's snapshot is never mutated.
func (d *ResumeDocument) Clone() *ResumeDocument {
	clone := *d
	if d.Sections != nil {
		clone.Sections = make([]ResumeSection, len(d.Sections))
		for i, s := range d.Sections {
			clone.Sections[i] = s.Clone()
		}
	}
	return &clone
}

// Clone returns a deep copy of the paragraph
func (p CoverLetterParagraph) Clone() CoverLetterParagraph {
	clone := CoverLetterParagraph{Text: p.Text}
	if p.EvidenceSpans != nil {
		clone.EvidenceSpans = make([]EvidenceSpan, len(p.EvidenceSpans))
		copy(clone.EvidenceSpans, p.EvidenceSpans)
	}
	if p.MatchedTerms != nil {
		clone.MatchedTerms = make([]string, len(p.MatchedTerms))
		copy(clone.MatchedTerms, p.MatchedTerms)
	}
	return clone
}

// Clone returns a deep copy of the letter
func (d *CoverLetterDocument) Clone() *CoverLetterDocument {
	clone := *d
	if d.Paragraphs != nil {
		clone.Paragraphs = make([]CoverLetterParagraph, len(d.Paragraphs))
		for i, p := range d.Paragraphs {
			clone.Paragraphs[i] = p.Clone()
		}
	}
	return &clone
}

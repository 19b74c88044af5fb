package validation

import "github.com/jonathan/resume-tailor/internal/types"

// Matched terms are counted case-sensitively and literally: "Go" and "go"
// are distinct terms. The policy is applied uniformly at every call site.

// RecomputeMatchedTerms returns the size of the union of matched terms over
// all bullets. It is the only authoritative way to keep MatchedTermCount
// consistent after any transform that adds, removes, or merges bullets.
func RecomputeMatchedTerms(resume *types.ResumeDocument) int {
	unique := make(map[string]struct{})
	for _, section := range resume.Sections {
		for _, item := range section.Items {
			for _, bullet := range item.Bullets {
				for _, term := range bullet.MatchedTerms {
					unique[term] = struct{}{}
				}
			}
		}
	}
	return len(unique)
}

// RecomputeMatchedTermsForCoverLetter returns the size of the union of
// matched terms over all paragraphs.
func RecomputeMatchedTermsForCoverLetter(letter *types.CoverLetterDocument) int {
	unique := make(map[string]struct{})
	for _, paragraph := range letter.Paragraphs {
		for _, term := range paragraph.MatchedTerms {
			unique[term] = struct{}{}
		}
	}
	return len(unique)
}

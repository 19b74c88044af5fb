package selection

import (
	"sort"

	"github.com/jonathan/resume-tailor/internal/types"
)

// SectionScore holds a section's removal priority
type SectionScore struct {
	Index int
	Name  string
	Score int
}

// protectedSection reports whether a section is removed only as a last
// resort. Experience and Education carry the facts downstream ATS parsers
// look for, so they outlive lower-value sections regardless of score.
func protectedSection(name string) bool {
	return name == "Experience" || name == "Education"
}

// RankSectionsForRemoval scores each section by total bullet relevance and
// returns them in removal order: lowest score first, with Experience and
// Education deprioritized behind every other section.
func RankSectionsForRemoval(resume *types.ResumeDocument) []SectionScore {
	scores := make([]SectionScore, 0, len(resume.Sections))
	for i, section := range resume.Sections {
		scores = append(scores, SectionScore{
			Index: i,
			Name:  section.Name,
			Score: SectionRelevance(section),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		pi, pj := protectedSection(scores[i].Name), protectedSection(scores[j].Name)
		if pi != pj {
			return !pi
		}
		return scores[i].Score < scores[j].Score
	})
	return scores
}

package fitting

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/selection"
	"github.com/jonathan/resume-tailor/internal/types"
)

// All transforms are pure: the input document is cloned and never mutated,
// so a previous stage's snapshot can be replayed or compared.

const (
	// mergeSeparator joins the texts of two merged bullets
	mergeSeparator = "; "
	// distillBulletCount is how many bullets the distillation stage keeps
	distillBulletCount = 5
	// minimalBulletCount and minimalCharBudget bound the forced minimal document
	minimalBulletCount = 5
	minimalCharBudget  = 100
)

// PruneBullet returns a copy of the document with the referenced bullet
// removed. The ref must come from selection.CollectBullets on this exact
// document snapshot.
func PruneBullet(resume *types.ResumeDocument, ref selection.BulletRef) *types.ResumeDocument {
	clone := resume.Clone()
	item := &clone.Sections[ref.SectionIdx].Items[ref.ItemIdx]
	item.Bullets = append(item.Bullets[:ref.BulletIdx], item.Bullets[ref.BulletIdx+1:]...)
	return clone
}

// MergeLeastRelevantBullets merges the two least-relevant bullets of the
// lowest-scoring item that still has at least two bullets. The merged
// bullet concatenates the texts and unions the evidence spans and matched
// terms. Returns false if no item has two bullets to merge.
func MergeLeastRelevantBullets(resume *types.ResumeDocument) (*types.ResumeDocument, bool) {
	clone := resume.Clone()

	targetSection, targetItem := -1, -1
	lowest := 0
	for si, section := range clone.Sections {
		for ii, item := range section.Items {
			if len(item.Bullets) < 2 {
				continue
			}
			score := selection.ItemRelevance(item)
			if targetSection < 0 || score < lowest {
				targetSection, targetItem = si, ii
				lowest = score
			}
		}
	}
	if targetSection < 0 {
		return nil, false
	}

	item := &clone.Sections[targetSection].Items[targetItem]

	// Find the two least-relevant bullets, keeping document order on ties.
	order := make([]int, len(item.Bullets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return selection.BulletRelevance(item.Bullets[order[a]]) < selection.BulletRelevance(item.Bullets[order[b]])
	})
	first, second := order[0], order[1]
	if first > second {
		first, second = second, first
	}

	merged := mergeBullets(item.Bullets[first], item.Bullets[second])
	item.Bullets = append(item.Bullets[:second], item.Bullets[second+1:]...)
	item.Bullets[first] = merged
	return clone, true
}

// mergeBullets concatenates two bullets into one
func mergeBullets(a, b types.ResumeBullet) types.ResumeBullet {
	text := strings.TrimSpace(strings.TrimSpace(a.Text) + mergeSeparator + strings.TrimSpace(b.Text))

	spans := make([]types.EvidenceSpan, 0, len(a.EvidenceSpans)+len(b.EvidenceSpans))
	spans = append(spans, a.EvidenceSpans...)
	spans = append(spans, b.EvidenceSpans...)

	seen := make(map[string]struct{}, len(a.MatchedTerms)+len(b.MatchedTerms))
	terms := make([]string, 0, len(a.MatchedTerms)+len(b.MatchedTerms))
	for _, term := range append(append([]string{}, a.MatchedTerms...), b.MatchedTerms...) {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	return types.ResumeBullet{Text: text, EvidenceSpans: spans, MatchedTerms: terms}
}

// RemoveSection returns a copy of the document with the section at idx removed
func RemoveSection(resume *types.ResumeDocument, idx int) *types.ResumeDocument {
	clone := resume.Clone()
	clone.Sections = append(clone.Sections[:idx], clone.Sections[idx+1:]...)
	return clone
}

// TruncationProfile is one entry of the deterministic truncation ladder.
// Zero-valued fields are inactive.
type TruncationProfile struct {
	Name string
	// MaxBulletsPerItem caps each item to its N most relevant bullets
	MaxBulletsPerItem int
	// BulletCharBudget hard-truncates bullet text to this many characters
	BulletCharBudget int
	// MergeAllBullets collapses every item's bullets into a single bullet
	MergeAllBullets bool
	// TopSections keeps only the N highest-relevance sections
	TopSections int
}

// Apply rebuilds a candidate from the document according to the profile
func (p TruncationProfile) Apply(resume *types.ResumeDocument) *types.ResumeDocument {
	clone := resume.Clone()

	if p.TopSections > 0 && len(clone.Sections) > p.TopSections {
		scores := make([]selection.SectionScore, 0, len(clone.Sections))
		for i, section := range clone.Sections {
			scores = append(scores, selection.SectionScore{Index: i, Name: section.Name, Score: selection.SectionRelevance(section)})
		}
		sort.SliceStable(scores, func(a, b int) bool { return scores[a].Score > scores[b].Score })
		keep := make(map[int]struct{}, p.TopSections)
		for _, s := range scores[:p.TopSections] {
			keep[s.Index] = struct{}{}
		}
		kept := make([]types.ResumeSection, 0, p.TopSections)
		for i, section := range clone.Sections {
			if _, ok := keep[i]; ok {
				kept = append(kept, section)
			}
		}
		clone.Sections = kept
	}

	for si := range clone.Sections {
		for ii := range clone.Sections[si].Items {
			item := &clone.Sections[si].Items[ii]

			if p.MergeAllBullets && len(item.Bullets) > 1 {
				merged := item.Bullets[0]
				for _, bullet := range item.Bullets[1:] {
					merged = mergeBullets(merged, bullet)
				}
				item.Bullets = []types.ResumeBullet{merged}
			}

			if p.MaxBulletsPerItem > 0 && len(item.Bullets) > p.MaxBulletsPerItem {
				item.Bullets = capBullets(item.Bullets, p.MaxBulletsPerItem)
			}

			if p.BulletCharBudget > 0 {
				for bi := range item.Bullets {
					item.Bullets[bi].Text = truncateText(item.Bullets[bi].Text, p.BulletCharBudget)
				}
			}
		}
	}

	return clone
}

// capBullets keeps the n most relevant bullets, preserving document order
func capBullets(bullets []types.ResumeBullet, n int) []types.ResumeBullet {
	order := make([]int, len(bullets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return selection.BulletRelevance(bullets[order[a]]) > selection.BulletRelevance(bullets[order[b]])
	})
	keep := make(map[int]struct{}, n)
	for _, idx := range order[:n] {
		keep[idx] = struct{}{}
	}
	kept := make([]types.ResumeBullet, 0, n)
	for i, bullet := range bullets {
		if _, ok := keep[i]; ok {
			kept = append(kept, bullet)
		}
	}
	return kept
}

// truncateText hard-truncates text to at most budget characters
func truncateText(text string, budget int) string {
	if len(text) <= budget {
		return text
	}
	return strings.TrimSpace(text[:budget])
}

// Distill keeps only the Experience section (or the first section if none
// is named Experience) reduced to a single synthetic item holding its
// top-5 bullets by relevance.
func Distill(resume *types.ResumeDocument) *types.ResumeDocument {
	clone := resume.Clone()
	if len(clone.Sections) == 0 {
		return clone
	}

	target := 0
	for i, section := range clone.Sections {
		if section.Name == "Experience" {
			target = i
			break
		}
	}
	section := clone.Sections[target]

	sectionDoc := &types.ResumeDocument{Sections: []types.ResumeSection{section}}
	top := selection.TopBullets(sectionDoc, distillBulletCount)

	clone.Sections = []types.ResumeSection{{
		Name:  section.Name,
		Items: []types.ResumeItem{{Title: "Selected Experience", Bullets: top}},
	}}
	return clone
}

// MinimalDocument builds the forced terminal candidate: the candidate's
// name plus up to five highest-relevance bullets, each hard-truncated.
// This always fits under any reasonable renderer, which is what makes the
// ladder's termination guarantee hold.
func MinimalDocument(resume *types.ResumeDocument) *types.ResumeDocument {
	top := selection.TopBullets(resume, minimalBulletCount)
	for i := range top {
		top[i].Text = truncateText(top[i].Text, minimalCharBudget)
	}
	return &types.ResumeDocument{
		Name: resume.Name,
		Sections: []types.ResumeSection{{
			Name:  "Experience",
			Items: []types.ResumeItem{{Bullets: top}},
		}},
	}
}

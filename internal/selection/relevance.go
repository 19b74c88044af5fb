// Package selection provides relevance scoring used to decide which resume
// content is pruned first when the document does not fit one page.
package selection

import (
	"sort"

	"github.com/jonathan/resume-tailor/internal/types"
)

// BulletRef locates a bullet inside a resume document along with its score
type BulletRef struct {
	SectionIdx int
	ItemIdx    int
	BulletIdx  int
	Relevance  int
}

// BulletRelevance is the count of distinct matched terms attributed to a
// bullet. Higher means more job-relevant; lower scores are pruned first.
func BulletRelevance(bullet types.ResumeBullet) int {
	unique := make(map[string]struct{}, len(bullet.MatchedTerms))
	for _, term := range bullet.MatchedTerms {
		unique[term] = struct{}{}
	}
	return len(unique)
}

// ItemRelevance is the sum of bullet relevance over an item
func ItemRelevance(item types.ResumeItem) int {
	total := 0
	for _, bullet := range item.Bullets {
		total += BulletRelevance(bullet)
	}
	return total
}

// SectionRelevance is the sum of bullet relevance over a section
func SectionRelevance(section types.ResumeSection) int {
	total := 0
	for _, item := range section.Items {
		total += ItemRelevance(item)
	}
	return total
}

// CollectBullets returns references to every bullet in the document,
// sorted ascending by relevance (drop candidates first). Ties keep
// document order, so pruning is deterministic.
func CollectBullets(resume *types.ResumeDocument) []BulletRef {
	var refs []BulletRef
	for si, section := range resume.Sections {
		for ii, item := range section.Items {
			for bi, bullet := range item.Bullets {
				refs = append(refs, BulletRef{
					SectionIdx: si,
					ItemIdx:    ii,
					BulletIdx:  bi,
					Relevance:  BulletRelevance(bullet),
				})
			}
		}
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Relevance < refs[j].Relevance
	})
	return refs
}

// TopBullets returns up to n bullets from the document in descending
// relevance order. Used by the distillation stages, which rebuild a
// minimal document from the highest-value content.
func TopBullets(resume *types.ResumeDocument, n int) []types.ResumeBullet {
	type scored struct {
		bullet    types.ResumeBullet
		relevance int
		order     int
	}
	var all []scored
	order := 0
	for _, section := range resume.Sections {
		for _, item := range section.Items {
			for _, bullet := range item.Bullets {
				all = append(all, scored{bullet: bullet.Clone(), relevance: BulletRelevance(bullet), order: order})
				order++
			}
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].relevance != all[j].relevance {
			return all[i].relevance > all[j].relevance
		}
		return all[i].order < all[j].order
	})
	if n > len(all) {
		n = len(all)
	}
	top := make([]types.ResumeBullet, 0, n)
	for _, s := range all[:n] {
		top = append(top, s.bullet)
	}
	return top
}

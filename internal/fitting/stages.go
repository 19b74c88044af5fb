// Package fitting provides the bounded ladder of progressively more
// aggressive document transforms that forces a tailored resume onto a
// single rendered page.
package fitting

import "github.com/jonathan/resume-tailor/internal/types"

// StageKind identifies one rung of the fitting ladder
type StageKind string

// Stage kinds, in ladder order. Content-preserving stages (font ladder,
// aggressive layout, min padding) come before content-destructive ones;
// destructive stages remove the least job-relevant material first.
const (
	StageFontLadder       StageKind = "font_ladder"
	StagePruneBullets     StageKind = "prune_bullets"
	StageAggressiveLayout StageKind = "aggressive_layout"
	StageMergeBullets     StageKind = "merge_bullets"
	StageRemoveSections   StageKind = "remove_sections"
	StageMinPadding       StageKind = "min_padding"
	StageTruncationLadder StageKind = "truncation_ladder"
	StageDistill          StageKind = "distill"
	StageMinimal          StageKind = "minimal"
)

// Stage is one tagged rung of the ladder with its stage-specific
// parameters. The closed set of kinds is executed by a single generic
// driver loop in the controller, which keeps the ladder testable
// independent of any one transform's internals.
type Stage struct {
	Kind StageKind

	// FontSizes is the descending body-font list for StageFontLadder
	FontSizes []int

	// Layout is the hint bundle for layout-only stages and the render
	// layout used while destructive stages probe for a fit
	Layout types.LayoutOptions

	// Profiles is the ordered sequence for StageTruncationLadder
	Profiles []TruncationProfile
}

// DefaultLadder returns the fixed stage order. Stage order and the
// relevance-ascending pruning inside each stage are the ordering
// guarantees the rest of the system depends on.
func DefaultLadder() []Stage {
	return []Stage{
		{Kind: StageFontLadder, FontSizes: []int{9, 8}},
		{Kind: StagePruneBullets, Layout: types.DefaultLayout().WithBodyFontSize(8)},
		{Kind: StageAggressiveLayout, Layout: types.AggressiveLayout()},
		{Kind: StageMergeBullets, Layout: types.AggressiveLayout()},
		{Kind: StageRemoveSections, Layout: types.DefaultLayout().WithBodyFontSize(8)},
		{Kind: StageMinPadding, Layout: types.MinPaddingLayout()},
		{Kind: StageTruncationLadder, Layout: types.AggressiveLayout(), Profiles: DefaultTruncationProfiles()},
		{Kind: StageDistill, Layout: types.AggressiveLayout()},
		{Kind: StageMinimal, Layout: types.AggressiveLayout()},
	}
}

// DefaultTruncationProfiles returns the fixed, increasingly destructive
// truncation sequence. Each profile is applied to the best-known document
// as it entered the stage, never stacked on a previous profile.
func DefaultTruncationProfiles() []TruncationProfile {
	return []TruncationProfile{
		{Name: "cap_bullets_3", MaxBulletsPerItem: 3},
		{Name: "cap_bullets_2", MaxBulletsPerItem: 2},
		{Name: "char_budget_220", MaxBulletsPerItem: 2, BulletCharBudget: 220},
		{Name: "char_budget_140", MaxBulletsPerItem: 2, BulletCharBudget: 140},
		{Name: "merge_all_bullets", MergeAllBullets: true},
		{Name: "top_two_sections", TopSections: 2, MaxBulletsPerItem: 2, BulletCharBudget: 140},
	}
}

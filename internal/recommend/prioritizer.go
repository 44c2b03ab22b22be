package recommend

import (
	"sort"

	"github.com/jonesrussell/pagepulse/internal/pagespeed"
)

// Savings thresholds deciding the impact bucket of a recommendation.
const (
	// HighImpactSavingsMs is the minimum estimated savings rated high impact.
	HighImpactSavingsMs = 1000.0
	// MediumImpactSavingsMs is the minimum estimated savings rated medium impact.
	MediumImpactSavingsMs = 250.0
)

// impactTieBreak nudges equal impact/difficulty ratios in favor of the
// higher raw impact.
const impactTieBreak = 0.01

// perfectScore is the audit score that needs no recommendation.
const perfectScore = 1.0

// impactWeights orders impact buckets for the priority formula.
var impactWeights = map[Impact]float64{
	ImpactHigh:   3,
	ImpactMedium: 2,
	ImpactLow:    1,
}

// difficultyWeights orders difficulty buckets for the priority formula.
var difficultyWeights = map[Difficulty]float64{
	DifficultyEasy:   1,
	DifficultyMedium: 2,
	DifficultyHard:   3,
}

// timeUnits are the numeric audit units measured in milliseconds.
var timeUnits = map[string]bool{
	"millisecond":  true,
	"milliseconds": true,
	"ms":           true,
}

// Prioritize turns raw audit entries into ranked, grouped
// recommendations. A malformed entry is skipped, never fatal to the
// batch. Calling it twice on the same input yields identical output.
func Prioritize(audits []pagespeed.Audit) *Prioritized {
	recs := make([]Recommendation, 0, len(audits))

	for i := range audits {
		rec, ok := buildRecommendation(&audits[i])
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}

	// Stable keeps audit iteration order for equal priorities.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})

	return &Prioritized{
		Groups:  groupByCategory(recs),
		Summary: summarize(recs),
	}
}

// buildRecommendation derives a single recommendation from one audit.
// It reports false for entries the prioritizer discards: missing title,
// perfect score, or a display mode outside the actionable set.
func buildRecommendation(audit *pagespeed.Audit) (Recommendation, bool) {
	if audit.Title == "" {
		return Recommendation{}, false
	}
	if audit.Score != nil && *audit.Score == perfectScore {
		return Recommendation{}, false
	}
	if !actionableDisplayMode(audit.ScoreDisplayMode) {
		return Recommendation{}, false
	}

	savings := savingsMs(audit)
	impact := rateImpact(savings)
	traits := lookupTraits(audit.ID)

	return Recommendation{
		ID:          audit.ID,
		Title:       audit.Title,
		Description: audit.Description,
		Impact:      impact,
		Difficulty:  traits.Difficulty,
		Category:    traits.Category,
		SavingsMs:   savings,
		Priority:    priorityScore(impact, traits.Difficulty),
	}, true
}

// actionableDisplayMode reports whether the display mode carries an
// actionable finding.
func actionableDisplayMode(mode string) bool {
	switch mode {
	case pagespeed.DisplayModeOpportunity,
		pagespeed.DisplayModeNumeric,
		pagespeed.DisplayModeBinary:
		return true
	default:
		return false
	}
}

// savingsMs determines the potential savings of an audit. Opportunity
// entries declare an aggregate savings field; numeric entries count only
// when their unit is time-based.
func savingsMs(audit *pagespeed.Audit) float64 {
	if audit.ScoreDisplayMode == pagespeed.DisplayModeOpportunity ||
		(audit.Details != nil && audit.Details.Type == pagespeed.DisplayModeOpportunity) {
		if audit.Details != nil && audit.Details.OverallSavingsMs > 0 {
			return audit.Details.OverallSavingsMs
		}
		return 0
	}

	if audit.ScoreDisplayMode == pagespeed.DisplayModeNumeric && timeUnits[audit.NumericUnit] {
		return audit.NumericValue
	}

	return 0
}

// rateImpact buckets estimated savings into an impact level.
func rateImpact(savings float64) Impact {
	switch {
	case savings >= HighImpactSavingsMs:
		return ImpactHigh
	case savings >= MediumImpactSavingsMs:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// priorityScore computes the composite ranking score. High-impact easy
// items outrank high-impact hard items, which outrank medium-impact
// easy items; the tie-break term favors higher raw impact between
// equal ratios.
func priorityScore(impact Impact, difficulty Difficulty) float64 {
	iw := impactWeights[impact]
	dw := difficultyWeights[difficulty]
	return iw/dw + iw*impactTieBreak
}

// groupByCategory splits sorted recommendations into category groups,
// in fixed enumeration order, keeping the global sort inside each group.
func groupByCategory(recs []Recommendation) []CategoryGroup {
	byCategory := make(map[Category][]Recommendation, len(categoryOrder))
	for _, rec := range recs {
		byCategory[rec.Category] = append(byCategory[rec.Category], rec)
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, cat := range categoryOrder {
		if len(byCategory[cat]) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{
			Category:        cat,
			Label:           cat.Label(),
			Recommendations: byCategory[cat],
		})
	}

	return groups
}

// summarize counts recommendations by impact and difficulty.
func summarize(recs []Recommendation) Summary {
	summary := Summary{
		Total:        len(recs),
		ByImpact:     make(map[Impact]int),
		ByDifficulty: make(map[Difficulty]int),
	}

	for _, rec := range recs {
		summary.ByImpact[rec.Impact]++
		summary.ByDifficulty[rec.Difficulty]++
	}

	return summary
}

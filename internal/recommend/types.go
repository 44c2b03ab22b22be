// Package recommend classifies and ranks Lighthouse optimization hints
// by estimated impact and implementation difficulty.
package recommend

// Impact is the coarse bucket estimating load-time savings.
type Impact string

const (
	// ImpactHigh marks savings of at least HighImpactSavingsMs.
	ImpactHigh Impact = "high"
	// ImpactMedium marks savings of at least MediumImpactSavingsMs.
	ImpactMedium Impact = "medium"
	// ImpactLow marks everything below MediumImpactSavingsMs.
	ImpactLow Impact = "low"
)

// Difficulty is the coarse bucket estimating implementation effort.
type Difficulty string

const (
	// DifficultyEasy marks changes that are usually config or markup tweaks.
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium marks changes that need some build or asset work.
	DifficultyMedium Difficulty = "medium"
	// DifficultyHard marks changes that touch application architecture.
	DifficultyHard Difficulty = "hard"
)

// Category groups recommendations by the area of the page they touch.
type Category string

const (
	CategoryImages      Category = "images"
	CategoryJavaScript  Category = "javascript"
	CategoryCSS         Category = "css"
	CategoryServer      Category = "server"
	CategoryFonts       Category = "fonts"
	CategoryPerformance Category = "performance"
	CategoryOther       Category = "other"
)

// categoryOrder fixes the order groups appear in reports.
var categoryOrder = []Category{
	CategoryImages,
	CategoryJavaScript,
	CategoryCSS,
	CategoryServer,
	CategoryFonts,
	CategoryPerformance,
	CategoryOther,
}

// categoryLabels maps categories to their user-facing Ukrainian names.
var categoryLabels = map[Category]string{
	CategoryImages:      "Зображення",
	CategoryJavaScript:  "JavaScript",
	CategoryCSS:         "CSS",
	CategoryServer:      "Сервер",
	CategoryFonts:       "Шрифти",
	CategoryPerformance: "Продуктивність",
	CategoryOther:       "Інше",
}

// Label returns the display name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// Recommendation is one ranked optimization hint derived from an audit.
type Recommendation struct {
	// ID is the originating audit identifier.
	ID string
	// Title is the human-readable audit title.
	Title string
	// Description is the audit's explanatory text.
	Description string
	// Impact is the estimated savings bucket.
	Impact Impact
	// Difficulty is the estimated implementation effort.
	Difficulty Difficulty
	// Category is the page area the hint belongs to.
	Category Category
	// SavingsMs is the estimated load-time savings in milliseconds,
	// zero when the audit declares none.
	SavingsMs float64
	// Priority is the composite ranking score; higher ranks first.
	Priority float64
}

// CategoryGroup is one category's recommendations in overall priority order.
type CategoryGroup struct {
	Category Category
	// Label is the category display name.
	Label string
	// Recommendations retain the global sort order within the group.
	Recommendations []Recommendation
}

// Summary holds counts across all surviving recommendations.
type Summary struct {
	Total        int
	ByImpact     map[Impact]int
	ByDifficulty map[Difficulty]int
}

// Prioritized is the grouped, ranked output of Prioritize.
type Prioritized struct {
	// Groups lists non-empty categories in fixed enumeration order.
	Groups []CategoryGroup
	// Summary counts recommendations by impact and difficulty.
	Summary Summary
}

// Empty reports whether no recommendations survived filtering.
func (p *Prioritized) Empty() bool {
	return p == nil || p.Summary.Total == 0
}

package recommend

// auditTraits is the static difficulty and category assignment of one
// known audit identifier.
type auditTraits struct {
	Difficulty Difficulty
	Category   Category
}

// defaultTraits is the fallback for audit identifiers missing from the
// table.
var defaultTraits = auditTraits{Difficulty: DifficultyMedium, Category: CategoryOther}

// auditTraitsTable is a closed enumeration keyed by Lighthouse audit
// identifier. Unknown identifiers fall back to defaultTraits.
var auditTraitsTable = map[string]auditTraits{
	// Images
	"modern-image-formats":       {DifficultyEasy, CategoryImages},
	"uses-optimized-images":      {DifficultyEasy, CategoryImages},
	"uses-responsive-images":     {DifficultyMedium, CategoryImages},
	"offscreen-images":           {DifficultyMedium, CategoryImages},
	"efficient-animated-content": {DifficultyMedium, CategoryImages},
	"preload-lcp-image":          {DifficultyMedium, CategoryImages},
	"unsized-images":             {DifficultyEasy, CategoryImages},

	// JavaScript
	"unminified-javascript":     {DifficultyEasy, CategoryJavaScript},
	"unused-javascript":         {DifficultyMedium, CategoryJavaScript},
	"duplicated-javascript":     {DifficultyMedium, CategoryJavaScript},
	"legacy-javascript":         {DifficultyMedium, CategoryJavaScript},
	"bootup-time":               {DifficultyHard, CategoryJavaScript},
	"mainthread-work-breakdown": {DifficultyHard, CategoryJavaScript},
	"third-party-summary":       {DifficultyMedium, CategoryJavaScript},
	"long-tasks":                {DifficultyHard, CategoryJavaScript},

	// CSS
	"unminified-css":            {DifficultyEasy, CategoryCSS},
	"unused-css-rules":          {DifficultyMedium, CategoryCSS},
	"non-composited-animations": {DifficultyMedium, CategoryCSS},

	// Server
	"server-response-time":  {DifficultyHard, CategoryServer},
	"redirects":             {DifficultyMedium, CategoryServer},
	"uses-rel-preconnect":   {DifficultyEasy, CategoryServer},
	"uses-text-compression": {DifficultyEasy, CategoryServer},
	"uses-long-cache-ttl":   {DifficultyEasy, CategoryServer},

	// Fonts
	"font-display": {DifficultyEasy, CategoryFonts},

	// Performance
	"render-blocking-resources":        {DifficultyHard, CategoryPerformance},
	"uses-rel-preload":                 {DifficultyMedium, CategoryPerformance},
	"total-byte-weight":                {DifficultyMedium, CategoryPerformance},
	"dom-size":                         {DifficultyHard, CategoryPerformance},
	"largest-contentful-paint-element": {DifficultyHard, CategoryPerformance},
	"layout-shift-elements":            {DifficultyMedium, CategoryPerformance},
	"viewport":                         {DifficultyEasy, CategoryPerformance},
}

// lookupTraits resolves the traits of an audit identifier.
func lookupTraits(auditID string) auditTraits {
	if traits, ok := auditTraitsTable[auditID]; ok {
		return traits
	}
	return defaultTraits
}

package analysis

import "github.com/jonesrussell/pagepulse/internal/recommend"

// Metric is one named, human-labeled measurement from a run.
type Metric struct {
	// ID is the Lighthouse audit identifier.
	ID string
	// Name is the display label shown to users.
	Name string
	// Value is the formatted display value, e.g. "4,2 с".
	Value string
	// Rating is the three-level qualitative label.
	Rating Rating
	// Score is the underlying normalized score, nil when absent.
	Score *float64
}

// Result is the outcome of one (url, strategy) analysis run. It is
// created fresh per request and never mutated after creation.
type Result struct {
	// URL is the analyzed page.
	URL string
	// Strategy is the device profile, "mobile" or "desktop".
	Strategy string
	// Score is the overall performance score on the 0-100 scale.
	Score int
	// Metrics lists the key measurements in declaration order.
	Metrics []Metric
	// Recommendations is the prioritized optimization output.
	Recommendations *recommend.Prioritized
}

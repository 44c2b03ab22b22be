// Package pagespeed provides a client for the Google PageSpeed Insights v5 API.
package pagespeed

import "encoding/json"

// Strategy selects the device profile used by the Insights API.
type Strategy string

const (
	// StrategyMobile analyzes the page as a mobile device.
	StrategyMobile Strategy = "mobile"
	// StrategyDesktop analyzes the page as a desktop browser.
	StrategyDesktop Strategy = "desktop"
)

// Valid reports whether the strategy is one the API accepts.
func (s Strategy) Valid() bool {
	return s == StrategyMobile || s == StrategyDesktop
}

// Display modes reported in an audit's scoreDisplayMode field.
const (
	DisplayModeOpportunity = "opportunity"
	DisplayModeNumeric     = "numeric"
	DisplayModeBinary      = "binary"
)

// Audit is one raw diagnostic item from the Lighthouse result.
// Immutable once decoded from the API response.
type Audit struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Score            *float64      `json:"score"`
	ScoreDisplayMode string        `json:"scoreDisplayMode"`
	DisplayValue     string        `json:"displayValue"`
	NumericValue     float64       `json:"numericValue"`
	NumericUnit      string        `json:"numericUnit"`
	Details          *AuditDetails `json:"details"`
}

// AuditDetails carries the structured detail payload of an audit.
// Items are kept raw; the pipeline only needs the type and savings fields.
type AuditDetails struct {
	Type             string          `json:"type"`
	OverallSavingsMs float64         `json:"overallSavingsMs"`
	Items            json.RawMessage `json:"items"`
}

// Result is the decoded subset of a runPagespeed response.
type Result struct {
	LighthouseResult *LighthouseResult `json:"lighthouseResult"`
}

// LighthouseResult holds the Lighthouse categories and audits.
type LighthouseResult struct {
	Categories Categories       `json:"categories"`
	Audits     map[string]Audit `json:"audits"`
}

// Categories holds the scored Lighthouse categories.
type Categories struct {
	Performance *CategoryScore `json:"performance"`
}

// CategoryScore is the normalized score of one Lighthouse category.
type CategoryScore struct {
	Score float64 `json:"score"`
}

// Package analyzer orchestrates the analysis sub-checks and merges
// their results into report-ready structures.
package analyzer

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/inspect"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/recommend"
)

// scoreScale converts the normalized Lighthouse score to 0-100.
const scoreScale = 100

// SpeedClient fetches the Lighthouse result for a (url, strategy) pair.
type SpeedClient interface {
	Run(ctx context.Context, pageURL string, strategy pagespeed.Strategy) (*pagespeed.Result, error)
}

// PageFetcher retrieves the raw target page for inspection.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*inspect.Page, error)
}

// Logger provides structured logging for the aggregator.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// FullResult aggregates the five independent sub-checks. A sub-check
// that failed is nil, never present with partial data.
type FullResult struct {
	URL           string
	Mobile        *analysis.Result
	Desktop       *analysis.Result
	SEO           *inspect.SEOResult
	Accessibility *inspect.AccessibilityResult
	Security      *inspect.SecurityResult
}

// Analyzer runs analyses against a target URL. It holds no state
// across calls.
type Analyzer struct {
	speed SpeedClient
	pages PageFetcher
	log   Logger
}

// New creates an Analyzer.
func New(speed SpeedClient, pages PageFetcher, log Logger) *Analyzer {
	return &Analyzer{
		speed: speed,
		pages: pages,
		log:   log,
	}
}

// Analyze runs the speed sub-check for one (url, strategy) pair. Any
// upstream failure or malformed payload is an explicit error.
func (a *Analyzer) Analyze(
	ctx context.Context,
	pageURL string,
	strategy pagespeed.Strategy,
) (*analysis.Result, error) {
	raw, err := a.speed.Run(ctx, pageURL, strategy)
	if err != nil {
		return nil, fmt.Errorf("analyze %s %s: %w", pageURL, strategy, err)
	}

	return buildResult(pageURL, strategy, raw), nil
}

// AnalyzeFull runs all five sub-checks independently and merges the
// results. Sub-checks run concurrently as a fan-out/fan-in; each branch
// writes only its own slot, and a failing branch leaves its slot nil
// rather than failing the aggregate.
func (a *Analyzer) AnalyzeFull(ctx context.Context, pageURL string) *FullResult {
	result := &FullResult{URL: pageURL}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		mobile, err := a.Analyze(ctx, pageURL, pagespeed.StrategyMobile)
		if err != nil {
			a.log.Warn("Mobile speed sub-check failed", "url", pageURL, "error", err)
			return
		}
		result.Mobile = mobile
	}()

	go func() {
		defer wg.Done()
		desktop, err := a.Analyze(ctx, pageURL, pagespeed.StrategyDesktop)
		if err != nil {
			a.log.Warn("Desktop speed sub-check failed", "url", pageURL, "error", err)
			return
		}
		result.Desktop = desktop
	}()

	go func() {
		defer wg.Done()
		a.inspectPage(ctx, pageURL, result)
	}()

	wg.Wait()

	return result
}

// inspectPage fetches the target page once and runs the SEO,
// accessibility, and security inspections over it. A fetch failure
// omits all three; a single failed inspection omits only itself.
func (a *Analyzer) inspectPage(ctx context.Context, pageURL string, result *FullResult) {
	page, err := a.pages.Fetch(ctx, pageURL)
	if err != nil {
		a.log.Warn("Page fetch for inspections failed", "url", pageURL, "error", err)
		return
	}

	seo, err := inspect.CheckSEO(page)
	if err != nil {
		a.log.Warn("SEO sub-check failed", "url", pageURL, "error", err)
	} else {
		result.SEO = seo
	}

	accessibility, err := inspect.CheckAccessibility(page)
	if err != nil {
		a.log.Warn("Accessibility sub-check failed", "url", pageURL, "error", err)
	} else {
		result.Accessibility = accessibility
	}

	result.Security = inspect.CheckSecurity(page)
}

// buildResult shapes one Lighthouse payload into an analysis result.
func buildResult(pageURL string, strategy pagespeed.Strategy, raw *pagespeed.Result) *analysis.Result {
	lighthouse := raw.LighthouseResult

	result := &analysis.Result{
		URL:      pageURL,
		Strategy: string(strategy),
		Score:    int(math.Round(lighthouse.Categories.Performance.Score * scoreScale)),
	}

	for _, key := range analysis.KeyMetrics {
		audit, ok := lighthouse.Audits[key.ID]
		if !ok {
			continue
		}

		rating := analysis.Rate(audit.Score)
		if rating == analysis.RatingNotAvailable && audit.ScoreDisplayMode != "" {
			// Substitute the display mode when no score is present.
			rating = analysis.Rating(audit.ScoreDisplayMode)
		}

		result.Metrics = append(result.Metrics, analysis.Metric{
			ID:     key.ID,
			Name:   key.Label,
			Value:  audit.DisplayValue,
			Rating: rating,
			Score:  audit.Score,
		})
	}

	result.Recommendations = recommend.Prioritize(sortedAudits(lighthouse.Audits))

	return result
}

// sortedAudits flattens the audit map into a deterministic order so
// prioritization output is identical across calls.
func sortedAudits(audits map[string]pagespeed.Audit) []pagespeed.Audit {
	ids := make([]string, 0, len(audits))
	for id := range audits {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ordered := make([]pagespeed.Audit, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, audits[id])
	}
	return ordered
}

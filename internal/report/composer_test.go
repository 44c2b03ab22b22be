package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/logger"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/recommend"
	"github.com/jonesrussell/pagepulse/internal/report"
)

func floatPtr(v float64) *float64 {
	return &v
}

func deviceResult(strategy string, score int) *analysis.Result {
	result := &analysis.Result{
		URL:      "https://example.com",
		Strategy: strategy,
		Score:    score,
		Metrics: []analysis.Metric{
			{
				ID:     "first-contentful-paint",
				Name:   "Перший вміст",
				Value:  "1,2 с",
				Rating: analysis.RatingGood,
				Score:  floatPtr(0.95),
			},
			{
				ID:     "speed-index",
				Name:   "Індекс швидкості",
				Value:  "3,4 с",
				Rating: analysis.RatingAverage,
				Score:  floatPtr(0.6),
			},
		},
	}

	result.Recommendations = recommend.Prioritize([]pagespeed.Audit{
		{
			ID:               "unused-css-rules",
			Title:            "Remove unused CSS",
			Description:      "Reduce unused rules from stylesheets.",
			Score:            floatPtr(0.4),
			ScoreDisplayMode: pagespeed.DisplayModeOpportunity,
			Details: &pagespeed.AuditDetails{
				Type:             pagespeed.DisplayModeOpportunity,
				OverallSavingsMs: 1400,
			},
		},
	})

	return result
}

// Build with no font path falls back to the built-in font and still
// produces a complete document.
func TestComposer_Build(t *testing.T) {
	t.Parallel()

	composer := report.NewComposer("", logger.NewNoOp())

	pdf, err := composer.Build("https://example.com", deviceResult("mobile", 45), deviceResult("desktop", 92))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(string(pdf[:5]), "%PDF-"))
	require.Greater(t, len(pdf), 1000)
}

func TestComposer_BuildSingleDevice(t *testing.T) {
	t.Parallel()

	composer := report.NewComposer("", logger.NewNoOp())

	pdf, err := composer.Build("https://example.com", nil, deviceResult("desktop", 92))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdf[:5]), "%PDF-"))
}

func TestComposer_BuildNoRecommendations(t *testing.T) {
	t.Parallel()

	mobile := deviceResult("mobile", 95)
	mobile.Recommendations = nil

	composer := report.NewComposer("", logger.NewNoOp())

	pdf, err := composer.Build("https://example.com", mobile, nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdf[:5]), "%PDF-"))
}

func TestComposer_MissingFontFallsBack(t *testing.T) {
	t.Parallel()

	composer := report.NewComposer("/nonexistent/font.ttf", logger.NewNoOp())

	pdf, err := composer.Build("https://example.com", deviceResult("mobile", 45), nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdf[:5]), "%PDF-"))
}

func TestImpactAndDifficultyLabels(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Високий", report.ImpactLabel(recommend.ImpactHigh))
	require.Equal(t, "Складно", report.DifficultyLabel(recommend.DifficultyHard))
	require.Equal(t, "custom", report.ImpactLabel(recommend.Impact("custom")))
}

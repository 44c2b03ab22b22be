package report

import (
	"time"

	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/recommend"
)

// scoreRow is one device row of the overall score table.
type scoreRow struct {
	Device string
	Score  int
	Status string
}

// metricRow is one row of a per-device metrics table.
type metricRow struct {
	Name   string
	Value  string
	Rating analysis.Rating
}

// metricsTable is one per-device metrics section.
type metricsTable struct {
	Title string
	Rows  []metricRow
}

// scoreBar is one bar of the score comparison chart.
type scoreBar struct {
	Label string
	Score int
}

// model is the deterministic section structure of one report. Empty
// slices and nil fields mark sections to omit.
type model struct {
	URL       string
	Generated time.Time
	Scores    []scoreRow
	Metrics   []metricsTable
	Bars      []scoreBar
	// Recommendations merges both devices, nil when none survived.
	Recommendations *recommend.Prioritized
}

// buildModel shapes the analysis results into the section structure.
// Device order is fixed: mobile first, then desktop. A nil device
// result contributes nothing.
func buildModel(url string, mobile, desktop *analysis.Result, now time.Time) *model {
	m := &model{
		URL:       url,
		Generated: now,
	}

	type device struct {
		label        string
		metricsTitle string
		result       *analysis.Result
	}

	devices := []device{
		{DeviceMobile, headingMobileMetrics, mobile},
		{DeviceDesktop, headingDesktopMetrics, desktop},
	}

	for _, dev := range devices {
		if dev.result == nil {
			continue
		}

		m.Scores = append(m.Scores, scoreRow{
			Device: dev.label,
			Score:  dev.result.Score,
			Status: analysis.ScoreStatus(dev.result.Score),
		})

		m.Bars = append(m.Bars, scoreBar{Label: dev.label, Score: dev.result.Score})

		if len(dev.result.Metrics) > 0 {
			table := metricsTable{Title: dev.metricsTitle}
			for _, metric := range dev.result.Metrics {
				table.Rows = append(table.Rows, metricRow{
					Name:   metric.Name,
					Value:  metric.Value,
					Rating: metric.Rating,
				})
			}
			m.Metrics = append(m.Metrics, table)
		}
	}

	var mobileRecs, desktopRecs *recommend.Prioritized
	if mobile != nil {
		mobileRecs = mobile.Recommendations
	}
	if desktop != nil {
		desktopRecs = desktop.Recommendations
	}

	if merged := recommend.Merge(mobileRecs, desktopRecs); !merged.Empty() {
		m.Recommendations = merged
	}

	return m
}

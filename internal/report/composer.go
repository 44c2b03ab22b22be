package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/logger"
	"github.com/jonesrussell/pagepulse/internal/recommend"
)

// Layout constants, in millimeters on an A4 portrait page.
const (
	pageMargin      = 20.0
	titleFontSize   = 18.0
	headingFontSize = 14.0
	bodyFontSize    = 10.0
	headerRowHeight = 8.0
	rowHeight       = 7.0
	lineHeight      = 5.0
	sectionGap      = 8.0
	barHeight       = 7.0
	barLabelWidth   = 35.0
	barValueWidth   = 18.0
)

// reportFontFamily is the registered name of the configured TTF font.
const reportFontFamily = "PagePulse"

// fallbackFontFamily is the core font used when no usable TTF font is
// configured. Core fonts cannot encode Cyrillic; the report is still
// produced, with a logged warning.
const fallbackFontFamily = "Helvetica"

// Composer renders analysis results into PDF bytes. It fetches no data
// itself and writes nothing to the filesystem.
type Composer struct {
	fontPath string
	log      logger.Interface
}

// NewComposer creates a Composer. fontPath may be empty, in which case
// a core font is used.
func NewComposer(fontPath string, log logger.Interface) *Composer {
	return &Composer{
		fontPath: fontPath,
		log:      log,
	}
}

// Build composes the report document for one URL from the two device
// results. Sections without data are omitted, never rendered empty.
func (c *Composer) Build(url string, mobile, desktop *analysis.Result) ([]byte, error) {
	return c.build(buildModel(url, mobile, desktop, time.Now()))
}

// build renders a section model to PDF bytes.
func (c *Composer) build(m *model) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle(DocTitle, true)
	pdf.SetAuthor(DocAuthor, true)
	pdf.SetSubject(DocSubject, true)

	font := c.registerFont(pdf)
	pdf.AddPage()

	c.renderHeader(pdf, font, m)

	if len(m.Scores) > 0 {
		c.renderScoreTable(pdf, font, m.Scores)
	}

	for _, table := range m.Metrics {
		c.renderMetricsTable(pdf, font, table)
	}

	if len(m.Bars) > 0 {
		c.renderBarChart(pdf, font, m.Bars)
	}

	if m.Recommendations != nil {
		c.renderRecommendations(pdf, font, m.Recommendations)
		c.renderSummary(pdf, font, m.Recommendations.Summary)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// registerFont registers the configured UTF-8 font and returns the
// family to use, falling back to a core font when registration fails.
func (c *Composer) registerFont(pdf *fpdf.Fpdf) string {
	if c.fontPath == "" {
		c.log.Warn("No report font configured, using core font")
		return fallbackFontFamily
	}

	if _, err := os.Stat(c.fontPath); err != nil {
		c.log.Error("Report font not readable, using core font",
			"path", c.fontPath,
			"error", err)
		return fallbackFontFamily
	}

	pdf.AddUTF8Font(reportFontFamily, "", c.fontPath)
	pdf.AddUTF8Font(reportFontFamily, "B", c.fontPath)
	if pdf.Err() {
		c.log.Error("Report font registration failed, using core font",
			"path", c.fontPath,
			"error", pdf.Error())
		pdf.ClearError()
		return fallbackFontFamily
	}

	c.log.Debug("Report font registered", "path", c.fontPath)
	return reportFontFamily
}

// renderHeader draws the document title, URL, and generation timestamp.
func (c *Composer) renderHeader(pdf *fpdf.Fpdf, font string, m *model) {
	pdf.SetFont(font, "B", titleFontSize)
	pdf.CellFormat(0, 10, DocTitle, "", 1, "C", false, 0, "")
	pdf.Ln(lineHeight)

	pdf.SetFont(font, "", bodyFontSize)
	pdf.CellFormat(0, lineHeight, "URL: "+m.URL, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight,
		"Дата аналізу: "+m.Generated.Format("02.01.2006 15:04"),
		"", 1, "L", false, 0, "")
	pdf.Ln(sectionGap)
}

// renderScoreTable draws the mobile vs desktop overall score table.
func (c *Composer) renderScoreTable(pdf *fpdf.Fpdf, font string, rows []scoreRow) {
	c.sectionHeading(pdf, font, headingScores)

	colWidth := c.contentWidth(pdf) / float64(len(scoreTableHeader))
	c.tableHeader(pdf, font, scoreTableHeader, colWidth)

	pdf.SetFont(font, "", bodyFontSize)
	for _, row := range rows {
		pdf.CellFormat(colWidth, rowHeight, row.Device, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidth, rowHeight, fmt.Sprintf("%d/100", row.Score), "1", 0, "C", false, 0, "")

		c.setScoreColor(pdf, row.Score)
		pdf.CellFormat(colWidth, rowHeight, row.Status, "1", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(sectionGap)
}

// renderMetricsTable draws one per-device metrics table.
func (c *Composer) renderMetricsTable(pdf *fpdf.Fpdf, font string, table metricsTable) {
	c.sectionHeading(pdf, font, table.Title)

	colWidth := c.contentWidth(pdf) / float64(len(metricsTableHeader))
	c.tableHeader(pdf, font, metricsTableHeader, colWidth)

	pdf.SetFont(font, "", bodyFontSize)
	for _, row := range table.Rows {
		pdf.CellFormat(colWidth, rowHeight, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidth, rowHeight, row.Value, "1", 0, "L", false, 0, "")

		c.setRatingColor(pdf, row.Rating)
		pdf.CellFormat(colWidth, rowHeight, string(row.Rating), "1", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(sectionGap)
}

// renderBarChart draws a proportional horizontal bar per device score.
func (c *Composer) renderBarChart(pdf *fpdf.Fpdf, font string, bars []scoreBar) {
	c.sectionHeading(pdf, font, headingScoreComparison)

	maxBarWidth := c.contentWidth(pdf) - barLabelWidth - barValueWidth
	pdf.SetFont(font, "", bodyFontSize)

	for _, bar := range bars {
		x := pdf.GetX()
		y := pdf.GetY()

		pdf.CellFormat(barLabelWidth, barHeight, bar.Label, "", 0, "L", false, 0, "")

		width := maxBarWidth * float64(bar.Score) / 100.0
		c.setScoreFill(pdf, bar.Score)
		pdf.Rect(x+barLabelWidth, y+1, width, barHeight-2, "F")

		pdf.SetXY(x+barLabelWidth+maxBarWidth, y)
		pdf.CellFormat(barValueWidth, barHeight, fmt.Sprintf("%d", bar.Score), "", 1, "R", false, 0, "")
	}

	pdf.Ln(sectionGap)
}

// renderRecommendations draws one table per category group.
func (c *Composer) renderRecommendations(pdf *fpdf.Fpdf, font string, recs *recommend.Prioritized) {
	c.sectionHeading(pdf, font, headingRecommendations)

	contentWidth := c.contentWidth(pdf)
	titleWidth := contentWidth * 0.46
	impactWidth := contentWidth * 0.17
	difficultyWidth := contentWidth * 0.17
	savingsWidth := contentWidth - titleWidth - impactWidth - difficultyWidth
	widths := []float64{titleWidth, impactWidth, difficultyWidth, savingsWidth}

	for _, group := range recs.Groups {
		pdf.SetFont(font, "B", bodyFontSize+1)
		pdf.CellFormat(0, rowHeight, group.Label, "", 1, "L", false, 0, "")

		c.tableHeaderWidths(pdf, font, recommendationTableHeader, widths)

		pdf.SetFont(font, "", bodyFontSize)
		for _, rec := range group.Recommendations {
			c.renderRecommendationRow(pdf, rec, widths)
		}

		pdf.Ln(lineHeight)
	}

	pdf.Ln(lineHeight)
}

// renderRecommendationRow draws one recommendation with a wrapping
// title column and fixed-height attribute columns.
func (c *Composer) renderRecommendationRow(pdf *fpdf.Fpdf, rec recommend.Recommendation, widths []float64) {
	x := pdf.GetX()
	y := pdf.GetY()

	pdf.MultiCell(widths[0], lineHeight, rec.Title, "1", "L", false)
	rowBottom := pdf.GetY()
	height := rowBottom - y

	savings := "—"
	if rec.SavingsMs > 0 {
		savings = fmt.Sprintf("%.0f мс", rec.SavingsMs)
	}

	pdf.SetXY(x+widths[0], y)
	pdf.CellFormat(widths[1], height, ImpactLabel(rec.Impact), "1", 0, "C", false, 0, "")
	pdf.CellFormat(widths[2], height, DifficultyLabel(rec.Difficulty), "1", 0, "C", false, 0, "")
	pdf.CellFormat(widths[3], height, savings, "1", 0, "C", false, 0, "")
	pdf.SetXY(x, rowBottom)
}

// renderSummary draws the impact/difficulty count table.
func (c *Composer) renderSummary(pdf *fpdf.Fpdf, font string, summary recommend.Summary) {
	c.sectionHeading(pdf, font, headingSummary)

	colWidth := c.contentWidth(pdf) / float64(len(summaryTableHeader))
	c.tableHeader(pdf, font, summaryTableHeader, colWidth)

	pdf.SetFont(font, "", bodyFontSize)

	writeRow := func(label string, count int) {
		pdf.CellFormat(colWidth, rowHeight, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidth, rowHeight, fmt.Sprintf("%d", count), "1", 1, "C", false, 0, "")
	}

	writeRow("Усього рекомендацій", summary.Total)
	for _, impact := range impactOrder {
		writeRow("Вплив: "+ImpactLabel(impact), summary.ByImpact[impact])
	}
	for _, difficulty := range difficultyOrder {
		writeRow("Складність: "+DifficultyLabel(difficulty), summary.ByDifficulty[difficulty])
	}
}

// sectionHeading draws a section title.
func (c *Composer) sectionHeading(pdf *fpdf.Fpdf, font, title string) {
	pdf.SetFont(font, "B", headingFontSize)
	pdf.CellFormat(0, headerRowHeight, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

// tableHeader draws a header row of equal-width columns.
func (c *Composer) tableHeader(pdf *fpdf.Fpdf, font string, columns []string, colWidth float64) {
	widths := make([]float64, len(columns))
	for i := range widths {
		widths[i] = colWidth
	}
	c.tableHeaderWidths(pdf, font, columns, widths)
}

// tableHeaderWidths draws a filled header row with per-column widths.
func (c *Composer) tableHeaderWidths(pdf *fpdf.Fpdf, font string, columns []string, widths []float64) {
	pdf.SetFont(font, "B", bodyFontSize)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)

	for i, col := range columns {
		last := 0
		if i == len(columns)-1 {
			last = 1
		}
		pdf.CellFormat(widths[i], headerRowHeight, col, "1", last, "C", true, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
}

// contentWidth is the printable width between the page margins.
func (c *Composer) contentWidth(pdf *fpdf.Fpdf) float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return pageWidth - left - right
}

// setScoreColor sets the text color for an overall score band.
func (c *Composer) setScoreColor(pdf *fpdf.Fpdf, score int) {
	switch {
	case score >= analysis.GoodScoreMin:
		pdf.SetTextColor(46, 125, 50)
	case score >= analysis.AverageScoreMin:
		pdf.SetTextColor(230, 145, 20)
	default:
		pdf.SetTextColor(198, 40, 40)
	}
}

// setScoreFill sets the fill color for an overall score band.
func (c *Composer) setScoreFill(pdf *fpdf.Fpdf, score int) {
	switch {
	case score >= analysis.GoodScoreMin:
		pdf.SetFillColor(46, 125, 50)
	case score >= analysis.AverageScoreMin:
		pdf.SetFillColor(230, 145, 20)
	default:
		pdf.SetFillColor(198, 40, 40)
	}
}

// setRatingColor sets the text color for a metric rating.
func (c *Composer) setRatingColor(pdf *fpdf.Fpdf, rating analysis.Rating) {
	switch rating {
	case analysis.RatingGood:
		pdf.SetTextColor(46, 125, 50)
	case analysis.RatingAverage:
		pdf.SetTextColor(230, 145, 20)
	case analysis.RatingPoor:
		pdf.SetTextColor(198, 40, 40)
	default:
		pdf.SetTextColor(100, 100, 100)
	}
}

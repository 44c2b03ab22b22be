// Package analyze implements the command-line interface for one-shot
// page analysis. Results are displayed in formatted tables with key
// metrics, ratings, and prioritized recommendations.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/pagepulse/cmd/common"
	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/analyzer"
	"github.com/jonesrussell/pagepulse/internal/logger"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/recommend"
	"github.com/jonesrussell/pagepulse/internal/report"
	"github.com/jonesrussell/pagepulse/internal/urlutil"
)

// errInvalidURL is returned when the positional argument is not an
// absolute http or https URL.
var errInvalidURL = errors.New("url must start with http:// or https:// and include a host")

// TableRenderer handles the display of analysis results in a table format
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{
		logger: log,
	}
}

// newWriter initializes a table writer with stdout as output and the
// plain tab-padded style used across commands.
func (r *TableRenderer) newWriter() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	noBorderStyle := table.Style{
		Box: table.BoxStyle{
			PaddingLeft:  "\t",
			PaddingRight: "\t",
		},
		Options: table.Options{
			DrawBorder:      false,
			SeparateColumns: false,
			SeparateHeader:  false,
			SeparateRows:    false,
		},
	}
	t.SetStyle(noBorderStyle)
	return t
}

// RenderResult formats and displays one analysis run: the overall
// score line followed by the key metrics table.
func (r *TableRenderer) RenderResult(result *analysis.Result) {
	fmt.Printf("\n%s %s %d/100 (%s)\n\n",
		analysis.ScoreEmoji(result.Score),
		result.Strategy,
		result.Score,
		analysis.ScoreStatus(result.Score),
	)

	if len(result.Metrics) == 0 {
		r.logger.Info("No key metrics in response", "url", result.URL)
		return
	}

	t := r.newWriter()
	t.AppendHeader(table.Row{"Metric", "Value", "Rating"})
	for _, metric := range result.Metrics {
		t.AppendRow(table.Row{
			metric.Name,
			metric.Value,
			fmt.Sprintf("%s %s", analysis.RatingEmoji(metric.Rating), metric.Rating),
		})
	}
	t.Render()
}

// RenderRecommendations formats and displays the prioritized
// recommendation groups with their impact and difficulty labels.
func (r *TableRenderer) RenderRecommendations(recs *recommend.Prioritized) {
	if recs.Empty() {
		fmt.Println("\nNo optimization recommendations.")
		return
	}

	for _, group := range recs.Groups {
		fmt.Printf("\n%s\n", group.Label)

		t := r.newWriter()
		t.AppendHeader(table.Row{"Recommendation", "Impact", "Difficulty", "Savings"})
		for _, rec := range group.Recommendations {
			savings := "-"
			if rec.SavingsMs > 0 {
				savings = strconv.FormatFloat(rec.SavingsMs, 'f', 0, 64) + " ms"
			}
			t.AppendRow(table.Row{
				rec.Title,
				report.ImpactLabel(rec.Impact),
				report.DifficultyLabel(rec.Difficulty),
				savings,
			})
		}
		t.Render()
	}

	fmt.Printf("\nTotal: %d recommendations\n", recs.Summary.Total)
}

// RenderFull formats and displays the combined SEO, accessibility, and
// security findings alongside both device runs.
func (r *TableRenderer) RenderFull(full *analyzer.FullResult) {
	if full.Mobile != nil {
		r.RenderResult(full.Mobile)
	}
	if full.Desktop != nil {
		r.RenderResult(full.Desktop)
	}

	if full.SEO != nil {
		fmt.Println("\nSEO")
		t := r.newWriter()
		t.AppendRow(table.Row{"Title length", full.SEO.TitleLength})
		t.AppendRow(table.Row{"Description length", full.SEO.MetaDescriptionLength})
		t.AppendRow(table.Row{"H1 headings", full.SEO.Headings["h1"]})
		t.AppendRow(table.Row{"Images with alt", fmt.Sprintf("%d/%d", full.SEO.ImagesWithAlt, full.SEO.ImageCount)})
		t.AppendRow(table.Row{"Word count", full.SEO.WordCount})
		t.Render()
		renderFindings(full.SEO.Recommendations)
	}

	if full.Accessibility != nil {
		fmt.Println("\nAccessibility")
		t := r.newWriter()
		t.AppendRow(table.Row{"ARIA elements", full.Accessibility.AriaElements})
		t.AppendRow(table.Row{"Images with alt", fmt.Sprintf("%d/%d", full.Accessibility.ImagesWithAlt, full.Accessibility.ImageCount)})
		t.AppendRow(table.Row{"Contrast issues", full.Accessibility.ContrastIssues})
		t.AppendRow(table.Row{"Form inputs/labels", fmt.Sprintf("%d/%d", full.Accessibility.FormInputs, full.Accessibility.FormLabels)})
		t.Render()
		renderFindings(full.Accessibility.Recommendations)
	}

	if full.Security != nil {
		fmt.Println("\nSecurity")
		t := r.newWriter()
		t.AppendRow(table.Row{"HTTPS", boolMark(full.Security.UsesHTTPS)})
		t.AppendRow(table.Row{"Missing headers", len(full.Security.MissingHeaders)})
		t.AppendRow(table.Row{"Cookies", full.Security.CookieCount})
		t.AppendRow(table.Row{"Cookie findings", len(full.Security.CookieFindings)})
		t.Render()
		renderFindings(full.Security.Recommendations)
	}
}

// renderFindings prints natural-language findings as a bullet list.
func renderFindings(findings []string) {
	for _, finding := range findings {
		fmt.Printf("  - %s\n", finding)
	}
}

func boolMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// Command returns the analyze command for one-shot page analysis.
func Command() *cobra.Command {
	var (
		strategy string
		full     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Analyze a web page",
		Long: `This command runs a PageSpeed Insights analysis for the given URL
and prints the overall score, key metrics, and prioritized optimization
recommendations.

The --full flag additionally runs both device profiles plus SEO,
accessibility, and security inspections.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], strategy, full)
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "mobile", "Device profile: mobile or desktop")
	cmd.Flags().BoolVarP(&full, "full", "f", false, "Run both devices plus SEO, accessibility, and security checks")

	return cmd
}

// runAnalyze executes the analyze command with the provided parameters.
func runAnalyze(ctx context.Context, pageURL, strategy string, full bool) error {
	if !urlutil.Validate(pageURL) {
		return errInvalidURL
	}

	// Get dependencies
	deps, err := cmdcommon.NewDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	an, err := deps.NewAnalyzer()
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	renderer := NewTableRenderer(deps.Logger)

	if full {
		result := an.AnalyzeFull(ctx, pageURL)
		renderer.RenderFull(result)
		return nil
	}

	result, err := an.Analyze(ctx, pageURL, pagespeed.Strategy(strategy))
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", pageURL, err)
	}

	renderer.RenderResult(result)
	renderer.RenderRecommendations(result.Recommendations)
	return nil
}

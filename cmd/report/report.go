// Package report implements the command-line interface for generating
// PDF analysis reports.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/pagepulse/cmd/common"
	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/urlutil"
)

// reportFileMode is the permission set for written report files.
const reportFileMode = 0o644

// errInvalidURL is returned when the positional argument is not an
// absolute http or https URL.
var errInvalidURL = errors.New("url must start with http:// or https:// and include a host")

// Command returns the report command for generating PDF reports.
func Command() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report [url]",
		Short: "Generate a PDF analysis report",
		Long: `This command analyzes the given URL for both mobile and desktop
profiles and writes a PDF report with scores, key metrics, a score
chart, and prioritized recommendations.

Without --output the report is written to the current directory under
a name derived from the page domain and the current time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path for the PDF report")

	return cmd
}

// runReport executes the report command with the provided parameters.
func runReport(ctx context.Context, pageURL, output string) error {
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

	// Both device profiles feed the report. A single failed run still
	// produces a report for the device that succeeded.
	var mobile, desktop *analysis.Result

	mobile, err = an.Analyze(ctx, pageURL, pagespeed.StrategyMobile)
	if err != nil {
		deps.Logger.Warn("Mobile analysis failed, report will omit it", "url", pageURL, "error", err)
	}

	desktop, err = an.Analyze(ctx, pageURL, pagespeed.StrategyDesktop)
	if err != nil {
		deps.Logger.Warn("Desktop analysis failed, report will omit it", "url", pageURL, "error", err)
	}

	if mobile == nil && desktop == nil {
		return fmt.Errorf("failed to analyze %s for either device profile", pageURL)
	}

	composer := deps.NewComposer()
	pdfBytes, err := composer.Build(pageURL, mobile, desktop)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if output == "" {
		output = urlutil.ReportFilename(pageURL, time.Now())
	}

	if writeErr := os.WriteFile(output, pdfBytes, reportFileMode); writeErr != nil {
		return fmt.Errorf("failed to write report to %s: %w", output, writeErr)
	}

	deps.Logger.Info("Report written", "path", output, "size_bytes", len(pdfBytes))
	fmt.Printf("Report written to %s\n", output)
	return nil
}

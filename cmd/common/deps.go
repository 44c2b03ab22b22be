// Package common provides shared dependency construction for the CLI
// commands.
package common

import (
	"fmt"
	"net/http"

	"github.com/jonesrussell/pagepulse/internal/analyzer"
	"github.com/jonesrussell/pagepulse/internal/config"
	"github.com/jonesrussell/pagepulse/internal/inspect"
	"github.com/jonesrussell/pagepulse/internal/logger"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/report"
)

// Deps holds the dependencies shared by commands.
type Deps struct {
	Config *config.Config
	Logger logger.Interface
}

// NewDeps loads configuration and builds the logger.
func NewDeps() (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logging.Level),
		Encoding:    cfg.Logging.Encoding,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &Deps{Config: cfg, Logger: log}, nil
}

// NewAnalyzer builds the aggregator over the PageSpeed client and page
// fetcher. It validates the PageSpeed section of the config.
func (d *Deps) NewAnalyzer() (*analyzer.Analyzer, error) {
	psCfg := d.Config.PageSpeed
	if err := psCfg.Validate(); err != nil {
		return nil, fmt.Errorf("pagespeed config: %w", err)
	}

	client := pagespeed.NewClient(
		psCfg.APIKey,
		d.Logger.WithComponent("pagespeed"),
		pagespeed.WithEndpoint(psCfg.Endpoint),
		pagespeed.WithLocale(psCfg.Locale),
		pagespeed.WithRetry(psCfg.MaxAttempts, psCfg.RetryBaseDelay),
		pagespeed.WithHTTPClient(&http.Client{Timeout: psCfg.Timeout}),
	)

	fetcher := inspect.NewFetcher(nil, d.Logger.WithComponent("inspect"))

	return analyzer.New(client, fetcher, d.Logger.WithComponent("analyzer")), nil
}

// NewComposer builds the PDF report composer.
func (d *Deps) NewComposer() *report.Composer {
	return report.NewComposer(d.Config.Report.FontPath, d.Logger.WithComponent("report"))
}

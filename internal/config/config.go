// Package config loads and validates the application configuration
// from Viper-backed sources: config file, environment, and defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/pagepulse/internal/config/app"
	"github.com/jonesrussell/pagepulse/internal/config/logging"
	"github.com/jonesrussell/pagepulse/internal/config/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/config/report"
	"github.com/jonesrussell/pagepulse/internal/config/server"
	"github.com/jonesrussell/pagepulse/internal/config/telegram"
)

// Config aggregates the per-concern configuration sections.
type Config struct {
	App       *app.Config
	Logging   *logging.Config
	PageSpeed *pagespeed.Config
	Telegram  *telegram.Config
	Report    *report.Config
	Server    *server.Config
}

// Load reads the aggregated configuration from Viper. Sections always
// validated here are App and Logging; service-specific sections are
// validated by the commands that use them, so the CLI analyze path
// does not demand a Telegram token.
func Load() (*Config, error) {
	cfg := &Config{
		App:       loadApp(),
		Logging:   loadLogging(),
		PageSpeed: loadPageSpeed(),
		Telegram:  loadTelegram(),
		Report:    loadReport(),
		Server:    loadServer(),
	}

	if err := cfg.App.Validate(); err != nil {
		return nil, fmt.Errorf("app config: %w", err)
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("logging config: %w", err)
	}

	return cfg, nil
}

func loadApp() *app.Config {
	cfg := app.New()
	if v := viper.GetString("app.name"); v != "" {
		cfg.Name = v
	}
	if v := viper.GetString("app.version"); v != "" {
		cfg.Version = v
	}
	if v := viper.GetString("app.environment"); v != "" {
		cfg.Environment = v
	}
	cfg.Debug = viper.GetBool("app.debug")
	return cfg
}

func loadLogging() *logging.Config {
	cfg := logging.New()
	if v := viper.GetString("logger.level"); v != "" {
		cfg.Level = v
	}
	if v := viper.GetString("logger.encoding"); v != "" {
		cfg.Encoding = v
	}
	cfg.Development = viper.GetBool("logger.development")
	return cfg
}

func loadPageSpeed() *pagespeed.Config {
	cfg := pagespeed.New()
	cfg.APIKey = viper.GetString("pagespeed.api_key")
	if v := viper.GetString("pagespeed.endpoint"); v != "" {
		cfg.Endpoint = v
	}
	if v := viper.GetString("pagespeed.locale"); v != "" {
		cfg.Locale = v
	}
	if v := viper.GetDuration("pagespeed.timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v := viper.GetInt("pagespeed.max_attempts"); v > 0 {
		cfg.MaxAttempts = v
	}
	if v := viper.GetDuration("pagespeed.retry_base_delay"); v > 0 {
		cfg.RetryBaseDelay = v
	}
	return cfg
}

func loadTelegram() *telegram.Config {
	cfg := telegram.New()
	cfg.Token = viper.GetString("telegram.token")
	if v := viper.GetInt("telegram.poll_timeout"); v > 0 {
		cfg.PollTimeout = v
	}
	cfg.Debug = viper.GetBool("telegram.debug")
	return cfg
}

func loadReport() *report.Config {
	cfg := report.New()
	cfg.FontPath = viper.GetString("report.font_path")
	return cfg
}

func loadServer() *server.Config {
	cfg := server.New()
	if v := viper.GetString("server.address"); v != "" {
		cfg.Address = v
	}
	if v := viper.GetDuration("server.read_timeout"); v > 0 {
		cfg.ReadTimeout = v
	}
	if v := viper.GetDuration("server.write_timeout"); v > 0 {
		cfg.WriteTimeout = v
	}
	if v := viper.GetDuration("server.idle_timeout"); v > 0 {
		cfg.IdleTimeout = v
	}
	cfg.SecurityEnabled = viper.GetBool("server.security_enabled")
	return cfg
}

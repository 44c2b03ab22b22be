// Package pagespeed provides PageSpeed Insights API configuration.
package pagespeed

import (
	"errors"
	"fmt"
	"time"
)

// Default client settings.
const (
	// DefaultEndpoint is the Insights v5 endpoint.
	DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"
	// DefaultLocale localizes audit titles, Ukrainian when available.
	DefaultLocale = "uk"
	// DefaultTimeout bounds one API round-trip.
	DefaultTimeout = 60 * time.Second
	// DefaultMaxAttempts is the attempt count per API call.
	DefaultMaxAttempts = 3
	// DefaultRetryBaseDelay is the backoff before the first retry.
	DefaultRetryBaseDelay = 2 * time.Second
)

// Config represents PageSpeed Insights API client settings.
type Config struct {
	// APIKey authenticates calls against the Insights API
	APIKey string `yaml:"api_key"`
	// Endpoint is the API endpoint URL
	Endpoint string `yaml:"endpoint"`
	// Locale is the locale parameter sent to the API
	Locale string `yaml:"locale"`
	// Timeout bounds one API round-trip
	Timeout time.Duration `yaml:"timeout"`
	// MaxAttempts is the attempt count per API call, including the first
	MaxAttempts int `yaml:"max_attempts"`
	// RetryBaseDelay is the backoff delay before the first retry
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("pagespeed API key must be specified")
	}
	if c.Endpoint == "" {
		return errors.New("pagespeed endpoint must be specified")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid pagespeed timeout: %s", c.Timeout)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("invalid pagespeed max attempts: %d", c.MaxAttempts)
	}
	return nil
}

// New creates a PageSpeed configuration with defaults; the API key must
// come from configuration or the environment.
func New() *Config {
	return &Config{
		Endpoint:       DefaultEndpoint,
		Locale:         DefaultLocale,
		Timeout:        DefaultTimeout,
		MaxAttempts:    DefaultMaxAttempts,
		RetryBaseDelay: DefaultRetryBaseDelay,
	}
}

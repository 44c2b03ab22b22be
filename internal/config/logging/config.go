// Package logging provides logging configuration.
package logging

import (
	"errors"
	"fmt"
)

// validLevels enumerates the accepted log levels.
var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Config represents logging configuration settings.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal)
	Level string `yaml:"level"`
	// Encoding is the log output format (console or json)
	Encoding string `yaml:"encoding"`
	// Development enables development-friendly console output
	Development bool `yaml:"development"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Level == "" {
		return errors.New("log level must be specified")
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid log level: %s", c.Level)
	}

	switch c.Encoding {
	case "console", "json":
		// Valid encoding
	default:
		return fmt.Errorf("invalid log encoding: %s", c.Encoding)
	}

	return nil
}

// New creates a logging configuration with production-safe defaults.
func New() *Config {
	return &Config{
		Level:       "info",
		Encoding:    "json",
		Development: false,
	}
}

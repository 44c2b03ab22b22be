// Package telegram provides Telegram bot configuration.
package telegram

import (
	"errors"
	"fmt"
)

// DefaultPollTimeout is the long-poll timeout in seconds.
const DefaultPollTimeout = 60

// Config represents Telegram bot settings.
type Config struct {
	// Token is the Bot API token
	Token string `yaml:"token"`
	// PollTimeout is the long-poll timeout in seconds
	PollTimeout int `yaml:"poll_timeout"`
	// Debug enables Bot API request logging
	Debug bool `yaml:"debug"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("telegram bot token must be specified")
	}
	if c.PollTimeout < 1 {
		return fmt.Errorf("invalid telegram poll timeout: %d", c.PollTimeout)
	}
	return nil
}

// New creates a Telegram configuration with defaults; the token must
// come from configuration or the environment.
func New() *Config {
	return &Config{
		PollTimeout: DefaultPollTimeout,
	}
}

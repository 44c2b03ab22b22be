// Package server provides HTTP server configuration.
package server

import (
	"errors"
	"fmt"
	"time"
)

// Default server settings.
const (
	// DefaultAddress is the listen address.
	DefaultAddress = ":8080"
	// DefaultReadTimeout bounds reading one request.
	DefaultReadTimeout = 15 * time.Second
	// DefaultWriteTimeout bounds writing one response. Report
	// generation waits on two Insights calls, so this is generous.
	DefaultWriteTimeout = 5 * time.Minute
	// DefaultIdleTimeout bounds idle keep-alive connections.
	DefaultIdleTimeout = 60 * time.Second
)

// Config represents HTTP server settings.
type Config struct {
	// Address is the listen address
	Address string `yaml:"address"`
	// ReadTimeout bounds reading one request
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// WriteTimeout bounds writing one response
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// IdleTimeout bounds idle keep-alive connections
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	// SecurityEnabled toggles the security-headers middleware
	SecurityEnabled bool `yaml:"security_enabled"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("server address must be specified")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %s", c.ReadTimeout)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %s", c.WriteTimeout)
	}
	return nil
}

// New creates a server configuration with production-safe defaults.
func New() *Config {
	return &Config{
		Address:         DefaultAddress,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		SecurityEnabled: true,
	}
}

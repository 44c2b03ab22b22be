// Package report provides report rendering configuration.
package report

// Config represents report rendering settings.
type Config struct {
	// FontPath points to a UTF-8 TTF font used for Cyrillic text in
	// PDF reports. Empty falls back to a core font.
	FontPath string `yaml:"font_path"`
}

// Validate checks if the configuration is valid. The font path is
// optional; a missing file is handled at render time.
func (c *Config) Validate() error {
	return nil
}

// New creates a report configuration.
func New() *Config {
	return &Config{}
}

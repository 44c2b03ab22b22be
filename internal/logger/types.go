// Package logger provides logging functionality for the application.
package logger

// Level represents the logging level.
type Level string

const (
	// DebugLevel logs debug messages.
	DebugLevel Level = "debug"
	// InfoLevel logs info messages.
	InfoLevel Level = "info"
	// WarnLevel logs warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel logs error messages.
	ErrorLevel Level = "error"
	// FatalLevel logs fatal messages and exits.
	FatalLevel Level = "fatal"
)

// Config holds the logger configuration.
type Config struct {
	// Level is the minimum logging level.
	Level Level
	// Development enables development-friendly console output.
	Development bool
	// Encoding is the log encoding format ("console" or "json").
	Encoding string
	// OutputPaths is the list of paths to write log output to.
	OutputPaths []string
}

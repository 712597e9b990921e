// Package logging provides structured logging using zerolog.
//
// There is no package-level logger: New builds a Handle at process start and
// the caller passes its Logger to the components that log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log levels.
type Level = zerolog.Level

// Log levels exposed for convenience.
const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level
	// Output is where logs are written. Defaults to os.Stderr.
	// Never point this at stdout when serving MCP over stdio.
	Output io.Writer
	// Pretty enables human-readable console output.
	Pretty bool
	// TimeFormat is the timestamp layout for pretty output. Defaults to RFC3339.
	TimeFormat string
	// LogToFile additionally writes JSON logs to a file in LogDir.
	LogToFile bool
	// LogDir is the directory for log files.
	LogDir string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		Pretty:     false,
		TimeFormat: time.RFC3339,
		LogToFile:  false,
		LogDir:     os.TempDir(),
	}
}

// Handle owns the process logger and the log file behind it, if any.
type Handle struct {
	zerolog.Logger
	file *os.File
}

// New builds a logger from cfg.
func New(cfg Config) (*Handle, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: cfg.TimeFormat,
		}
	}

	h := &Handle{}
	if cfg.LogToFile {
		dir := cfg.LogDir
		if dir == "" {
			dir = os.TempDir()
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		path := filepath.Join(dir, FileName(time.Now()))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		h.file = f
		output = zerolog.MultiLevelWriter(output, f)
	}

	h.Logger = zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return h, nil
}

// FileName returns the log file name used for the given day.
func FileName(t time.Time) string {
	return "west-mcp-" + t.Format("20060102") + ".log"
}

// Path returns the log file path, or "" when not logging to a file.
func (h *Handle) Path() string {
	if h.file == nil {
		return ""
	}
	return h.file.Name()
}

// Close flushes and closes the log file, if any.
func (h *Handle) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel parses a log level string (case-insensitive).
// Supported values: DEBUG, INFO, WARN, ERROR, FATAL.
// Returns InfoLevel if the string is not recognized.
func ParseLevel(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}

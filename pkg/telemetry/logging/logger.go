package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogFormat represents the output format for logs.
type LogFormat string

const (
	// FormatConsole outputs tagged, human-readable lines.
	FormatConsole LogFormat = "console"
	// FormatText outputs logs in slog's key=value text format.
	FormatText LogFormat = "text"
	// FormatJSON outputs logs in JSON format.
	FormatJSON LogFormat = "json"
)

// DefaultTag prefixes console lines when no tag is configured.
const DefaultTag = "[SafeTube Cleanup]"

// Config contains configuration for the logger.
type Config struct {
	// Level is the minimum log level ("debug", "info", "warn", "error")
	Level string

	// Format is the output format ("console", "text", "json")
	Format string

	// Tag prefixes every console line
	Tag string

	// AddSource includes file and line number in text and json output
	AddSource bool

	// Writer is the output writer (defaults to os.Stdout)
	Writer io.Writer
}

// New creates a logger for cfg.
func New(cfg Config) (*slog.Logger, error) {
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

// Install creates a logger for cfg and makes it the slog default, so
// components using slog.Default() write through it.
func Install(cfg Config) (*slog.Logger, error) {
	logger, err := New(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// NewHandler creates the slog handler for cfg.
func NewHandler(cfg Config) (slog.Handler, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(writer, opts), nil
	case FormatText:
		return slog.NewTextHandler(writer, opts), nil
	default:
		tag := cfg.Tag
		if tag == "" {
			tag = DefaultTag
		}
		return NewConsoleHandler(writer, tag, level), nil
	}
}

// parseLevel parses a log level string into slog.Level.
func parseLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

// parseFormat parses a log format string into LogFormat.
func parseFormat(formatStr string) (LogFormat, error) {
	switch strings.ToLower(formatStr) {
	case "console", "":
		return FormatConsole, nil
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatConsole, fmt.Errorf("unknown log format: %s", formatStr)
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "database.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateDatabase(&cfg.Database)...)
	errs = append(errs, validateMedia(&cfg.Media)...)
	errs = append(errs, validateRetention(&cfg.Retention)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateDatabase validates the catalog database configuration.
func validateDatabase(cfg *DatabaseConfig) []FieldError {
	var errs []FieldError

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "database.path",
			Message: "database path is required",
		})
	}

	validDrivers := map[string]bool{"sqlite": true, "sqlite3": true}
	if !validDrivers[cfg.Driver] {
		errs = append(errs, FieldError{
			Field:   "database.driver",
			Message: fmt.Sprintf("invalid driver %q: must be 'sqlite' or 'sqlite3'", cfg.Driver),
		})
	}

	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "database.busy_timeout",
			Message: "busy timeout must not be negative",
		})
	}

	return errs
}

// validateMedia validates the media directory configuration.
func validateMedia(cfg *MediaConfig) []FieldError {
	var errs []FieldError

	if cfg.Root == "" {
		errs = append(errs, FieldError{
			Field:   "media.root",
			Message: "media root is required",
		})
	}

	return errs
}

// validateRetention validates the retention configuration.
func validateRetention(cfg *RetentionConfig) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(cfg.SettingKey) == "" {
		errs = append(errs, FieldError{
			Field:   "retention.setting_key",
			Message: "setting key is required",
		})
	}

	if cfg.DefaultDays != nil && *cfg.DefaultDays < 0 {
		errs = append(errs, FieldError{
			Field:   "retention.default_days",
			Message: fmt.Sprintf("default retention must not be negative, got %d", *cfg.DefaultDays),
		})
	}

	validModes := map[string]bool{"batch": true, "per_record": true}
	if !validModes[cfg.CommitMode] {
		errs = append(errs, FieldError{
			Field:   "retention.commit_mode",
			Message: fmt.Sprintf("invalid commit mode %q: must be 'batch' or 'per_record'", cfg.CommitMode),
		})
	}

	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "retention.schedule",
				Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.Schedule, err),
			})
		}
	}

	return errs
}

// validateTelemetry validates logging and metrics configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"console": true, "json": true, "text": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'console', 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.TextfilePath == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.textfile_path",
			Message: "textfile path is required when metrics are enabled",
		})
	}

	return errs
}

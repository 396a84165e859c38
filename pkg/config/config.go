package config

import "time"

// Config is the root configuration structure for the SafeTube cleanup job.
// It contains the catalog database location, the media directory, retention
// behavior and telemetry settings.
type Config struct {
	// Database contains the location and connection settings of the SafeTube
	// catalog database.
	Database DatabaseConfig `yaml:"database"`

	// Media contains the location of downloaded media files.
	Media MediaConfig `yaml:"media"`

	// Retention controls which videos are expired and how they are removed.
	Retention RetentionConfig `yaml:"retention"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatabaseConfig contains configuration for the SQLite catalog.
type DatabaseConfig struct {
	// Path is the SQLite database file. The file must already exist.
	// Default: "/app/data/safetube.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// WALMode enables write-ahead logging, matching the web application.
	// Default: true
	WALMode *bool `yaml:"wal_mode"`
}

// WALEnabled reports whether WAL mode is enabled, treating unset as true.
func (c DatabaseConfig) WALEnabled() bool {
	if c.WALMode == nil {
		return DefaultDatabaseWALMode
	}
	return *c.WALMode
}

// MediaConfig contains configuration for the media directory.
type MediaConfig struct {
	// Root is the directory that local_path, thumbnail_path and subtitle_path
	// are relative to.
	// Default: "/app/media"
	Root string `yaml:"root"`
}

// RetentionConfig contains configuration for video expiry.
type RetentionConfig struct {
	// SettingKey is the settings table key holding the retention period in days.
	// Default: "retention_days"
	SettingKey string `yaml:"setting_key"`

	// DefaultDays is used when the setting is missing or not a non-negative
	// integer. Zero is a valid value.
	// Default: 7
	DefaultDays *int `yaml:"default_days"`

	// CommitMode controls when row deletions are committed.
	// Options: "batch", "per_record"
	// Default: "batch"
	CommitMode string `yaml:"commit_mode"`

	// IncludeSubtitles also deletes the file in subtitle_path.
	// Default: false
	IncludeSubtitles bool `yaml:"include_subtitles"`

	// Schedule is a standard 5-field cron expression used by the schedule
	// command. Ignored by single runs.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// DefaultRetention returns DefaultDays, treating unset as DefaultRetentionDays.
func (c RetentionConfig) DefaultRetention() int {
	if c.DefaultDays == nil {
		return DefaultRetentionDays
	}
	return *c.DefaultDays
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "console", "text", "json"
	// Default: "console"
	Format string `yaml:"format"`

	// Tag prefixes every line in console format.
	// Default: "[SafeTube Cleanup]"
	Tag string `yaml:"tag"`
}

// MetricsConfig contains metrics configuration. Metrics are written to a
// node-exporter textfile after each pass; there is no HTTP endpoint.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// TextfilePath is where metrics are written after each pass.
	// Required when Enabled is true.
	TextfilePath string `yaml:"textfile_path"`

	// Namespace is the metric name prefix.
	// Default: "safetube"
	Namespace string `yaml:"namespace"`
}

package config

import "time"

// Default values for configuration fields.
const (
	// Database defaults
	DefaultDatabasePath        = "/app/data/safetube.db"
	DefaultDatabaseDriver      = "sqlite"
	DefaultDatabaseBusyTimeout = 5 * time.Second
	DefaultDatabaseWALMode     = true

	// Media defaults
	DefaultMediaRoot = "/app/media"

	// Retention defaults
	DefaultRetentionSettingKey = "retention_days"
	DefaultRetentionDays       = 7
	DefaultRetentionCommitMode = "batch"
	DefaultRetentionSchedule   = "0 3 * * *"

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	DefaultLogTag           = "[SafeTube Cleanup]"
	DefaultMetricsNamespace = "safetube"
)

// ApplyDefaults fills every unset field of cfg with its default value.
// Fields that were explicitly set are not modified.
func ApplyDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DefaultDatabaseDriver
	}
	if cfg.Database.BusyTimeout == 0 {
		cfg.Database.BusyTimeout = DefaultDatabaseBusyTimeout
	}
	if cfg.Database.WALMode == nil {
		wal := DefaultDatabaseWALMode
		cfg.Database.WALMode = &wal
	}

	// Media defaults
	if cfg.Media.Root == "" {
		cfg.Media.Root = DefaultMediaRoot
	}

	// Retention defaults
	if cfg.Retention.SettingKey == "" {
		cfg.Retention.SettingKey = DefaultRetentionSettingKey
	}
	if cfg.Retention.DefaultDays == nil {
		days := DefaultRetentionDays
		cfg.Retention.DefaultDays = &days
	}
	if cfg.Retention.CommitMode == "" {
		cfg.Retention.CommitMode = DefaultRetentionCommitMode
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = DefaultRetentionSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Logging.Tag == "" {
		cfg.Telemetry.Logging.Tag = DefaultLogTag
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// NewDefaultConfig returns a configuration with every field set to its default.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// An empty path yields the default configuration.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SAFETUBE_SECTION_FIELD (e.g., SAFETUBE_DATABASE_PATH).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file (skipped for an empty path)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Database overrides
	if val := os.Getenv("SAFETUBE_DATABASE_PATH"); val != "" {
		cfg.Database.Path = val
	}
	if val := os.Getenv("SAFETUBE_DATABASE_DRIVER"); val != "" {
		cfg.Database.Driver = val
	}
	if val := os.Getenv("SAFETUBE_DATABASE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Database.BusyTimeout = d
		}
	}
	if val := os.Getenv("SAFETUBE_DATABASE_WAL_MODE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Database.WALMode = &b
		}
	}

	// Media overrides
	if val := os.Getenv("SAFETUBE_MEDIA_ROOT"); val != "" {
		cfg.Media.Root = val
	}

	// Retention overrides
	if val := os.Getenv("SAFETUBE_RETENTION_SETTING_KEY"); val != "" {
		cfg.Retention.SettingKey = val
	}
	if val := os.Getenv("SAFETUBE_RETENTION_DEFAULT_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.DefaultDays = &i
		}
	}
	if val := os.Getenv("SAFETUBE_RETENTION_COMMIT_MODE"); val != "" {
		cfg.Retention.CommitMode = val
	}
	if val := os.Getenv("SAFETUBE_RETENTION_INCLUDE_SUBTITLES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Retention.IncludeSubtitles = b
		}
	}
	if val := os.Getenv("SAFETUBE_RETENTION_SCHEDULE"); val != "" {
		cfg.Retention.Schedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("SAFETUBE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SAFETUBE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SAFETUBE_TELEMETRY_LOGGING_TAG"); val != "" {
		cfg.Telemetry.Logging.Tag = val
	}
	if val := os.Getenv("SAFETUBE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("SAFETUBE_TELEMETRY_METRICS_TEXTFILE_PATH"); val != "" {
		cfg.Telemetry.Metrics.TextfilePath = val
	}
	if val := os.Getenv("SAFETUBE_TELEMETRY_METRICS_NAMESPACE"); val != "" {
		cfg.Telemetry.Metrics.Namespace = val
	}
}

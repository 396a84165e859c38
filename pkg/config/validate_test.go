package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Config)
		wantFields []string
	}{
		{
			name:   "defaults are valid",
			modify: func(cfg *Config) {},
		},
		{
			name:       "empty database path",
			modify:     func(cfg *Config) { cfg.Database.Path = "" },
			wantFields: []string{"database.path"},
		},
		{
			name:       "unknown driver",
			modify:     func(cfg *Config) { cfg.Database.Driver = "mysql" },
			wantFields: []string{"database.driver"},
		},
		{
			name:       "negative busy timeout",
			modify:     func(cfg *Config) { cfg.Database.BusyTimeout = -time.Second },
			wantFields: []string{"database.busy_timeout"},
		},
		{
			name:       "empty media root",
			modify:     func(cfg *Config) { cfg.Media.Root = "" },
			wantFields: []string{"media.root"},
		},
		{
			name:       "blank setting key",
			modify:     func(cfg *Config) { cfg.Retention.SettingKey = "  " },
			wantFields: []string{"retention.setting_key"},
		},
		{
			name:       "negative default days",
			modify:     func(cfg *Config) { cfg.Retention.DefaultDays = intPtr(-1) },
			wantFields: []string{"retention.default_days"},
		},
		{
			name:       "unknown commit mode",
			modify:     func(cfg *Config) { cfg.Retention.CommitMode = "never" },
			wantFields: []string{"retention.commit_mode"},
		},
		{
			name:       "invalid schedule",
			modify:     func(cfg *Config) { cfg.Retention.Schedule = "nightly" },
			wantFields: []string{"retention.schedule"},
		},
		{
			name:   "descriptor schedule",
			modify: func(cfg *Config) { cfg.Retention.Schedule = "@daily" },
		},
		{
			name:       "unknown log level",
			modify:     func(cfg *Config) { cfg.Telemetry.Logging.Level = "trace" },
			wantFields: []string{"telemetry.logging.level"},
		},
		{
			name:       "unknown log format",
			modify:     func(cfg *Config) { cfg.Telemetry.Logging.Format = "xml" },
			wantFields: []string{"telemetry.logging.format"},
		},
		{
			name:       "metrics without textfile",
			modify:     func(cfg *Config) { cfg.Telemetry.Metrics.Enabled = true },
			wantFields: []string{"telemetry.metrics.textfile_path"},
		},
		{
			name: "multiple errors",
			modify: func(cfg *Config) {
				cfg.Database.Path = ""
				cfg.Media.Root = ""
			},
			wantFields: []string{"database.path", "media.root"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(validationErr.Errors) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %v", len(tt.wantFields), validationErr.Errors)
			}
			for i, field := range tt.wantFields {
				if validationErr.Errors[i].Field != field {
					t.Errorf("error %d: expected field %q, got %q", i, field, validationErr.Errors[i].Field)
				}
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "media.root", Message: "media root is required"}}}
	if got := single.Error(); got != "configuration validation failed: media.root: media root is required" {
		t.Errorf("unexpected message: %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "database.path", Message: "database path is required"},
		{Field: "media.root", Message: "media root is required"},
	}}
	got := multi.Error()
	if !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - media.root") {
		t.Errorf("unexpected message: %q", got)
	}
}

func intPtr(i int) *int {
	return &i
}

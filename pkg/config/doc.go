// Package config provides configuration management for the SafeTube cleanup job.
//
// Configuration is read from a YAML file, completed with defaults, overridden
// from the environment and validated before use.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("/app/config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("/app/config.yaml")
//
// An empty path skips the file and starts from the defaults, which match the
// container layout of the SafeTube application (/app/data/safetube.db and
// /app/media).
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SAFETUBE_SECTION_FIELD:
//
//   - SAFETUBE_DATABASE_PATH overrides database.path
//   - SAFETUBE_MEDIA_ROOT overrides media.root
//   - SAFETUBE_RETENTION_COMMIT_MODE overrides retention.commit_mode
//   - SAFETUBE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton and Reload
//
//	cfg, err := config.Install(path, func(c *config.Config) {
//	    c.Telemetry.Logging.Level = "debug"
//	})
//	if err != nil {
//	    return err
//	}
//
// Install remembers the path and the adjust function. Reload reads the file
// again and replaces the process configuration only when the new file is
// valid. The Watcher triggers it when the file changes so long-running
// schedules pick up new values before their next pass.
//
// # Example Configuration
//
//	database:
//	  path: "/app/data/safetube.db"
//	  driver: "sqlite"
//	  busy_timeout: 5s
//
//	media:
//	  root: "/app/media"
//
//	retention:
//	  default_days: 7
//	  commit_mode: "batch"
//	  schedule: "0 3 * * *"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "console"
//	  metrics:
//	    enabled: true
//	    textfile_path: "/var/lib/node_exporter/safetube_cleanup.prom"
package config

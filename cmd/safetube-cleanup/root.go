package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"safetube/cleanup/pkg/catalog/storage"
	"safetube/cleanup/pkg/cleanup"
	"safetube/cleanup/pkg/cli"
	"safetube/cleanup/pkg/config"
	"safetube/cleanup/pkg/telemetry/logging"
)

// defaultConfigPath is read when --config is not given. A missing file there
// means defaults and environment only.
const defaultConfigPath = "/app/config.yaml"

var (
	// Global flags
	cfgFile         string
	verbose         bool
	exitZeroOnError bool
)

var rootCmd = &cobra.Command{
	Use:   "safetube-cleanup",
	Short: "Remove expired SafeTube videos and their media files",
	Long: `safetube-cleanup deletes videos older than the configured retention period.

The retention period is read from the retention_days setting in the SafeTube
database (default 7 days). For every video created before the cutoff the
video file and thumbnail are deleted from the media directory, then the video
record is removed. Missing files are skipped.

Without a subcommand exactly one pass is performed.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runOnce,
}

// Execute runs the root command and exits with its status.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&exitZeroOnError, "exit-zero-on-error", false, "log a failed pass but exit with status 0")
}

// runOnce performs a single cleanup pass.
func runOnce(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, cmd.OutOrStdout()); err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	job := newJob(cfg, newMetrics(cfg))
	if _, err := job.Run(ctx); err != nil {
		if exitZeroOnError {
			return nil
		}
		return cli.NewCommandError("cleanup", err)
	}

	return nil
}

// loadConfig loads the configuration named by --config and installs it as the
// process configuration. It returns the path that was read, empty when only
// defaults and environment were used.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path := cfgFile

	if flag := cmd.Flag("config"); flag == nil || !flag.Changed {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.Install(path, applyFlags)
	if err != nil {
		return nil, "", cli.NewConfigError("--config", "failed to load configuration", err)
	}

	return cfg, path, nil
}

// applyFlags applies command-line overrides to a loaded configuration.
func applyFlags(cfg *config.Config) {
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
}

// setupLogging installs the configured logger as the slog default.
func setupLogging(cfg *config.Config, w io.Writer) error {
	_, err := logging.Install(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
		Tag:    cfg.Telemetry.Logging.Tag,
		Writer: w,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", "invalid logging configuration", err)
	}
	return nil
}

// newOpener creates the catalog opener for cfg.
func newOpener(cfg *config.Config) *storage.SQLiteOpener {
	return storage.NewSQLiteOpener(&storage.SQLiteConfig{
		Path:        cfg.Database.Path,
		Driver:      cfg.Database.Driver,
		WALMode:     cfg.Database.WALEnabled(),
		BusyTimeout: cfg.Database.BusyTimeout,
	})
}

// newJob creates a cleanup job for cfg. metrics may be nil.
func newJob(cfg *config.Config, metrics *cleanup.Metrics) *cleanup.Job {
	return cleanup.NewJob(newOpener(cfg), &cleanup.Config{
		MediaRoot:            cfg.Media.Root,
		SettingKey:           cfg.Retention.SettingKey,
		DefaultRetentionDays: cfg.Retention.DefaultRetention(),
		CommitMode:           cleanup.CommitMode(cfg.Retention.CommitMode),
		IncludeSubtitles:     cfg.Retention.IncludeSubtitles,
	}, metrics)
}

// newMetrics creates textfile metrics when enabled in cfg.
func newMetrics(cfg *config.Config) *cleanup.Metrics {
	if !cfg.Telemetry.Metrics.Enabled {
		return nil
	}

	slog.Debug("metrics enabled", "textfile", cfg.Telemetry.Metrics.TextfilePath)
	return cleanup.NewMetrics(cleanup.MetricsConfig{
		Namespace:    cfg.Telemetry.Metrics.Namespace,
		TextfilePath: cfg.Telemetry.Metrics.TextfilePath,
	}, nil)
}

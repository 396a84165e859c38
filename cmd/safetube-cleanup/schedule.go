package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"safetube/cleanup/pkg/cleanup"
	"safetube/cleanup/pkg/cli"
	"safetube/cleanup/pkg/config"
)

var scheduleFlags struct {
	schedule string
	runNow   bool
	watch    bool
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run cleanup passes on a cron schedule",
	Long: `Run cleanup passes on a cron schedule until interrupted.

The schedule is a standard 5-field cron expression taken from
retention.schedule (default "0 3 * * *"). A pass is skipped while the
previous one is still running.

When a configuration file is in use it is watched for changes; new values
apply from the next pass. Changing the schedule itself requires a restart.

Examples:
  # Daily at 3 AM
  safetube-cleanup schedule

  # Every 6 hours, with a pass right away
  safetube-cleanup schedule --schedule "0 */6 * * *" --run-now`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleFlags.schedule, "schedule", "", "override cron schedule")
	scheduleCmd.Flags().BoolVar(&scheduleFlags.runNow, "run-now", false, "run one pass immediately")
	scheduleCmd.Flags().BoolVar(&scheduleFlags.watch, "watch", true, "reload the config file when it changes")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, cmd.OutOrStdout()); err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	schedule := cfg.Retention.Schedule
	if scheduleFlags.schedule != "" {
		schedule = scheduleFlags.schedule
	}

	// Metrics accumulate across passes; the job is rebuilt from the current
	// configuration each time.
	metrics := newMetrics(cfg)
	runner := cleanup.RunnerFunc(func(ctx context.Context) (*cleanup.Report, error) {
		return newJob(config.MustGetConfig(), metrics).Run(ctx)
	})

	scheduler := cleanup.NewScheduler(runner, schedule)
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewConfigError("retention.schedule", "cannot start scheduler", err)
	}
	defer scheduler.Stop()

	if path != "" && scheduleFlags.watch {
		watcher, err := config.NewWatcher(path, 0)
		if err != nil {
			return cli.NewCommandError("schedule", err)
		}
		defer watcher.Stop()

		out := cmd.OutOrStdout()
		go func() {
			err := watcher.Watch(ctx, func(string) error {
				current, err := config.Reload()
				if err != nil {
					return err
				}
				return setupLogging(current, out)
			})
			if err != nil {
				slog.Error("config watcher failed", "error", err)
			}
		}()
	}

	if scheduleFlags.runNow {
		// Failures are logged by the job; the schedule keeps going.
		scheduler.RunNow(ctx)
	}

	if next := scheduler.NextRun(); next != nil {
		slog.Info("next cleanup scheduled", "schedule", schedule, "at", next.Format("2006-01-02 15:04:05 MST"))
	}

	<-ctx.Done()
	slog.Info("shutting down")

	return nil
}

package main

import (
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"safetube/cleanup/pkg/catalog"
	"safetube/cleanup/pkg/cleanup"
	"safetube/cleanup/pkg/cli"
)

var checkFlags struct {
	list bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show what the next cleanup pass would remove",
	Long: `Validate the configuration, open the catalog and report the effective
retention period and the videos that are currently expired. Nothing is deleted.

Examples:
  # Summary only
  safetube-cleanup check

  # List every expired video
  safetube-cleanup check --list`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFlags.list, "list", false, "list expired videos")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	opener := newOpener(cfg)

	if path == "" {
		path = "(defaults)"
	}
	fmt.Fprintf(out, "Configuration: %s\n", path)
	fmt.Fprintf(out, "Database:      %s (%s)\n", cfg.Database.Path, cfg.Database.Driver)
	fmt.Fprintf(out, "Media root:    %s\n", cfg.Media.Root)

	retention := cleanup.ReadRetention(ctx, opener, cfg.Retention.SettingKey, cfg.Retention.DefaultRetention())
	fmt.Fprintf(out, "Retention:     %d days (%s)\n", retention.Days, retention.Source)
	if retention.Err != nil {
		fmt.Fprintf(out, "  warning: %v\n", retention.Err)
	}

	now := time.Now()
	cutoff := cleanup.Cutoff(now, retention.Days)

	store, err := opener.Open(ctx)
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	defer store.Close()

	expired, err := store.ExpiredVideos(ctx, catalog.ExpiredQuery{
		Cutoff:           cutoff,
		IncludeSubtitles: cfg.Retention.IncludeSubtitles,
	})
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	if cutoff == math.MinInt64 {
		fmt.Fprintln(out, "Cutoff:        none")
	} else {
		fmt.Fprintf(out, "Cutoff:        %s\n", time.Unix(cutoff, 0).Format(time.RFC3339))
	}
	fmt.Fprintf(out, "Expired:       %d video(s)\n", len(expired))

	if checkFlags.list && len(expired) > 0 {
		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tAGE\tFILES")
		for _, video := range expired {
			age := now.Sub(video.CreatedTime()).Truncate(time.Hour)
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n",
				video.ID,
				video.CreatedTime().Format(time.RFC3339),
				age,
				len(video.MediaPaths()),
			)
		}
		w.Flush()
	}

	return nil
}

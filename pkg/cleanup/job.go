package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"safetube/cleanup/pkg/catalog"
	"safetube/cleanup/pkg/telemetry/logging"
)

const secondsPerDay = 86400

// CommitMode controls when row deletions are committed.
type CommitMode string

const (
	// CommitBatch commits all row deletions of a pass in one transaction.
	// An interrupted pass leaves no rows deleted, but files already removed
	// stay removed.
	CommitBatch CommitMode = "batch"

	// CommitPerRecord commits each row deletion right after its files are
	// removed, so rows and files agree for every processed record.
	CommitPerRecord CommitMode = "per_record"
)

// Config contains configuration for the cleanup job.
type Config struct {
	// MediaRoot is the directory local_path and thumbnail_path are relative to.
	MediaRoot string

	// SettingKey is the settings key holding the retention period.
	// Default: "retention_days"
	SettingKey string

	// DefaultRetentionDays is used when the setting is missing or unusable.
	// Default: 7
	DefaultRetentionDays int

	// CommitMode is "batch" or "per_record".
	// Default: "batch"
	CommitMode CommitMode

	// IncludeSubtitles also deletes the file in subtitle_path.
	IncludeSubtitles bool
}

// DefaultConfig returns the default cleanup configuration.
func DefaultConfig() *Config {
	return &Config{
		MediaRoot:            "/app/media",
		SettingKey:           catalog.RetentionDaysKey,
		DefaultRetentionDays: DefaultRetentionDays,
		CommitMode:           CommitBatch,
		IncludeSubtitles:     false,
	}
}

// Report summarizes one cleanup pass.
type Report struct {
	RunID           string
	StartedAt       time.Time
	RetentionDays   int
	RetentionSource RetentionSource
	Cutoff          int64 // Unix seconds
	Expired         int   // Expired videos found
	RecordsRemoved  int   // Row deletions committed
	FilesDeleted    int
	FilesMissing    int
	FilesRefused    int
	Committed       bool
	Duration        time.Duration
}

// Job deletes expired videos and their media files.
type Job struct {
	opener  catalog.Opener
	config  *Config
	media   *MediaRoot
	metrics *Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewJob creates a cleanup job. metrics may be nil.
func NewJob(opener catalog.Opener, config *Config, metrics *Metrics) *Job {
	if config == nil {
		config = DefaultConfig()
	}
	if config.SettingKey == "" {
		config.SettingKey = catalog.RetentionDaysKey
	}
	if config.CommitMode == "" {
		config.CommitMode = CommitBatch
	}
	if config.DefaultRetentionDays < 0 {
		config.DefaultRetentionDays = DefaultRetentionDays
	}

	return &Job{
		opener:  opener,
		config:  config,
		media:   NewMediaRoot(config.MediaRoot),
		metrics: metrics,
		logger:  slog.Default(),
		now:     time.Now,
	}
}

// Run performs one cleanup pass:
//
//  1. Read the retention period (falls back to the default, never fails)
//  2. Compute cutoff = now - days*86400
//  3. Select videos created before the cutoff
//  4. Delete each video's files, then its row
//  5. Commit and log a summary
//
// The returned report is never nil. A non-nil error means the pass was aborted
// and, in batch mode, no row deletions were committed.
func (j *Job) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: j.now(),
	}
	ctx = logging.WithComponent(logging.WithRunID(ctx, report.RunID), "cleanup")
	logger := logging.WithContext(ctx, j.logger)

	retention := ReadRetention(ctx, j.opener, j.config.SettingKey, j.config.DefaultRetentionDays)
	switch {
	case retention.Err != nil && retention.Source == SourceDefaultUnavailable:
		logger.Warn(fmt.Sprintf("Error reading settings: %v", retention.Err),
			"source", retention.Source,
			"default_days", retention.Days,
		)
	case retention.Err != nil:
		logger.Warn(fmt.Sprintf("Ignoring %s setting: %v", j.config.SettingKey, retention.Err),
			"source", retention.Source,
			"default_days", retention.Days,
		)
	case retention.UsedDefault():
		logger.Debug("retention setting not found, using default",
			"key", j.config.SettingKey,
			"default_days", retention.Days,
		)
	}

	report.RetentionDays = retention.Days
	report.RetentionSource = retention.Source
	report.Cutoff = Cutoff(report.StartedAt, retention.Days)

	logger.Info(fmt.Sprintf("Removing videos older than %d days", retention.Days),
		"cutoff", report.Cutoff,
		"commit_mode", j.config.CommitMode,
	)

	err := j.prune(ctx, logger, report)
	report.Duration = j.now().Sub(report.StartedAt)

	j.metrics.Observe(report, err)
	j.metrics.Flush()

	if err != nil {
		logger.Error(fmt.Sprintf("Error: %v", err),
			"records_removed", report.RecordsRemoved,
			"files_deleted", report.FilesDeleted,
		)
		return report, err
	}

	return report, nil
}

// prune runs steps 3-5 against a freshly opened store.
func (j *Job) prune(ctx context.Context, logger *slog.Logger, report *Report) error {
	store, err := j.opener.Open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	expired, err := store.ExpiredVideos(ctx, catalog.ExpiredQuery{
		Cutoff:           report.Cutoff,
		IncludeSubtitles: j.config.IncludeSubtitles,
	})
	if err != nil {
		return err
	}
	report.Expired = len(expired)

	if len(expired) == 0 {
		logger.Info("No expired videos found.")
		return nil
	}

	switch j.config.CommitMode {
	case CommitPerRecord:
		err = j.removePerRecord(ctx, logger, store, expired, report)
	default:
		err = j.removeBatch(ctx, logger, store, expired, report)
	}
	if err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("Cleaned up %d video(s).", len(expired)),
		"files_deleted", report.FilesDeleted,
		"files_missing", report.FilesMissing,
		"files_refused", report.FilesRefused,
	)

	return nil
}

// removeBatch deletes every expired video inside one transaction.
func (j *Job) removeBatch(ctx context.Context, logger *slog.Logger, store catalog.Store, expired []*catalog.Video, report *Report) (err error) {
	tx, err := store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	for _, video := range expired {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.removeVideo(ctx, logger, tx, video, report); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	report.RecordsRemoved = len(expired)
	report.Committed = true

	return nil
}

// removePerRecord deletes each expired video in its own transaction.
func (j *Job) removePerRecord(ctx context.Context, logger *slog.Logger, store catalog.Store, expired []*catalog.Video, report *Report) error {
	for _, video := range expired {
		if err := ctx.Err(); err != nil {
			return err
		}

		tx, err := store.Begin(ctx)
		if err != nil {
			return err
		}
		if err := j.removeVideo(ctx, logger, tx, video, report); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return errors.Join(err, rbErr)
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		report.RecordsRemoved++
		report.Committed = true
	}

	return nil
}

// removeVideo deletes the video's files and then its row. The row is deleted
// whether or not any file was present.
func (j *Job) removeVideo(ctx context.Context, logger *slog.Logger, tx catalog.Tx, video *catalog.Video, report *Report) error {
	paths := []string{video.LocalPath, video.ThumbnailPath}
	if j.config.IncludeSubtitles {
		paths = append(paths, video.SubtitlePath)
	}

	for _, rel := range paths {
		if rel == "" {
			continue
		}

		path, outcome, err := j.media.Remove(rel)
		switch outcome {
		case Removed:
			report.FilesDeleted++
			logger.Info(fmt.Sprintf("Deleted: %s", path), "video_id", video.ID)
		case Missing:
			report.FilesMissing++
			logger.Debug("media file not present", "video_id", video.ID, "path", path)
		case Refused:
			report.FilesRefused++
			logger.Warn(fmt.Sprintf("Skipped: %s", path), "video_id", video.ID, "reason", err)
		case Failed:
			return catalog.NewCleanupError(video.ID, path, err)
		}
	}

	if _, err := tx.DeleteVideo(ctx, video.ID); err != nil {
		return catalog.NewCleanupError(video.ID, "", err)
	}
	logger.Info(fmt.Sprintf("Removed DB record: id=%d", video.ID), "video_id", video.ID)

	return nil
}

// Package cleanup removes expired SafeTube videos and their media files.
//
// # Cleanup Pass
//
// A pass reads the retention period from the catalog settings (retention_days,
// default 7 days), selects every video created before now - days*86400, deletes
// the video's files under the media root, deletes the row, and commits:
//
//	job := cleanup.NewJob(opener, &cleanup.Config{
//	    MediaRoot:            "/app/media",
//	    DefaultRetentionDays: 7,
//	    CommitMode:           cleanup.CommitBatch,
//	}, nil)
//
//	report, err := job.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Printf("removed %d videos", report.RecordsRemoved)
//
// # Retention Setting
//
// Reading the setting never fails a pass. ReadRetention returns a
// RetentionSetting whose Source says whether the stored value or the default
// was used, and Err says why the default was substituted.
//
// # Files
//
// Missing files are skipped silently. Paths that climb out of the media root or
// name a directory are skipped with a warning. Any other file error aborts the
// pass. The row is deleted even when none of its files existed.
//
// # Commit Modes
//
//   - batch: one transaction per pass (default). An aborted pass commits no row
//     deletions, though files removed before the failure stay removed.
//   - per_record: one transaction per video, committed right after its files are
//     removed.
//
// # Scheduling
//
// The job is normally started by an external cron. Scheduler runs it in-process
// on a cron expression instead, skipping a tick while a pass is still running.
//
// # Metrics
//
// Metrics records pass outcomes on a Prometheus registry and, when configured,
// writes the registry to a node-exporter textfile after every pass.
package cleanup

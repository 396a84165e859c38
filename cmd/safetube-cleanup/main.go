// safetube-cleanup removes expired videos from a SafeTube installation.
//
// Each pass reads the retention period from the catalog's settings table
// (retention_days, default 7), deletes the media files of every video created
// before the cutoff and then deletes the video rows.
//
// Usage:
//
//	# Run one pass and exit (cron, systemd timer, Kubernetes CronJob)
//	safetube-cleanup
//
//	# Use a configuration file
//	safetube-cleanup --config /etc/safetube/cleanup.yaml
//
//	# Run passes on the configured cron schedule
//	safetube-cleanup schedule
//
//	# Show what the next pass would remove
//	safetube-cleanup check
package main

func main() {
	Execute()
}

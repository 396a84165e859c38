package catalog

import (
	"context"
	"time"
)

// RetentionDaysKey is the settings key holding the retention period in days.
const RetentionDaysKey = "retention_days"

// Video is a row of the videos table, reduced to the columns cleanup needs.
type Video struct {
	ID            int64  `db:"id"`
	LocalPath     string `db:"local_path"`     // Relative to the media root, may be empty
	ThumbnailPath string `db:"thumbnail_path"` // Relative to the media root, may be empty
	SubtitlePath  string `db:"subtitle_path"`  // Only loaded when subtitles are included
	CreatedAt     int64  `db:"created_at"`     // Unix seconds
}

// CreatedTime returns CreatedAt as a time.Time.
func (v *Video) CreatedTime() time.Time {
	return time.Unix(v.CreatedAt, 0)
}

// MediaPaths returns the non-empty relative paths referenced by the video,
// in the order local file, thumbnail, subtitle.
func (v *Video) MediaPaths() []string {
	paths := make([]string, 0, 3)
	for _, p := range []string{v.LocalPath, v.ThumbnailPath, v.SubtitlePath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Setting is a row of the settings table.
type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// ExpiredQuery selects videos for cleanup.
type ExpiredQuery struct {
	// Cutoff is the boundary in unix seconds; rows with created_at < Cutoff match.
	Cutoff int64

	// IncludeSubtitles also loads subtitle_path.
	IncludeSubtitles bool
}

// Store is a connection to the catalog for one phase of a job.
type Store interface {
	// Setting returns the value stored under key. found is false when the key
	// does not exist.
	Setting(ctx context.Context, key string) (value string, found bool, err error)

	// ExpiredVideos returns the videos created before the cutoff, ordered by id.
	// Returns an empty slice if nothing is expired.
	ExpiredVideos(ctx context.Context, query ExpiredQuery) ([]*Video, error)

	// Begin starts a write transaction.
	Begin(ctx context.Context) (Tx, error)

	// Close releases the connection.
	Close() error
}

// Tx is a write transaction on the catalog.
type Tx interface {
	// DeleteVideo removes the video row. Deleting a row that no longer exists
	// is not an error; the returned bool reports whether a row was removed.
	DeleteVideo(ctx context.Context, id int64) (bool, error)

	Commit() error
	Rollback() error
}

// Opener opens catalog stores.
type Opener interface {
	Open(ctx context.Context) (Store, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context) (Store, error)

// Open calls f(ctx).
func (f OpenerFunc) Open(ctx context.Context) (Store, error) {
	return f(ctx)
}

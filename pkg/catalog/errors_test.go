package catalog

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewStorageError("sqlite", "delete", cause)

	if !errors.Is(err, cause) {
		t.Error("StorageError should unwrap to its cause")
	}

	want := "storage error [backend=sqlite, operation=delete]: database is locked"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCleanupError(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		contains string
	}{
		{name: "with path", path: "/app/media/v1.mp4", contains: "path=/app/media/v1.mp4"},
		{name: "row failure", path: "", contains: "[video_id=42]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCleanupError(42, tt.path, fs.ErrPermission)

			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.contains)
			}
			if !errors.Is(err, fs.ErrPermission) {
				t.Error("CleanupError should unwrap to its cause")
			}

			var cleanupErr *CleanupError
			if !errors.As(err, &cleanupErr) || cleanupErr.VideoID != 42 {
				t.Error("errors.As should recover the CleanupError")
			}
		})
	}
}

func TestVideo_MediaPaths(t *testing.T) {
	v := &Video{ID: 1, LocalPath: "v1.mp4", ThumbnailPath: "", SubtitlePath: "subtitles/v1.vtt"}

	got := v.MediaPaths()
	if len(got) != 2 || got[0] != "v1.mp4" || got[1] != "subtitles/v1.vtt" {
		t.Errorf("MediaPaths() = %v, want [v1.mp4 subtitles/v1.vtt]", got)
	}

	empty := &Video{ID: 2}
	if len(empty.MediaPaths()) != 0 {
		t.Errorf("MediaPaths() on video without files = %v, want empty", empty.MediaPaths())
	}
}

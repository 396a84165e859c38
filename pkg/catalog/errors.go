package catalog

import (
	"errors"
	"fmt"
)

// ErrOutsideMediaRoot is returned when a stored path resolves outside the media root.
var ErrOutsideMediaRoot = errors.New("path escapes media root")

// StorageError represents an error from the storage backend.
type StorageError struct {
	Backend   string // Storage backend type ("sqlite3", "sqlite")
	Operation string // Operation that failed ("open", "setting", "expired", "delete", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// CleanupError represents a failure while removing a single video.
type CleanupError struct {
	VideoID int64  // Video being removed
	Path    string // File path involved, empty for row deletion failures
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *CleanupError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cleanup error [video_id=%d, path=%s]: %v", e.VideoID, e.Path, e.Cause)
	}
	return fmt.Sprintf("cleanup error [video_id=%d]: %v", e.VideoID, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *CleanupError) Unwrap() error {
	return e.Cause
}

// NewCleanupError creates a new CleanupError.
func NewCleanupError(videoID int64, path string, cause error) *CleanupError {
	return &CleanupError{
		VideoID: videoID,
		Path:    path,
		Cause:   cause,
	}
}

package atomic

import (
	"errors"
	"fmt"
)

var (
	// ErrTemporaryFileError indicates an error with temporary file operations
	ErrTemporaryFileError = errors.New("temporary file operation failed")

	// ErrWriterFinished indicates use of a SafeWriter after Commit or Cleanup
	ErrWriterFinished = errors.New("writer already finished")
)

// CleanupError represents an error that occurred during cleanup
type CleanupError struct {
	Path string // Path being cleaned up
	Err  error  // Underlying error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup failed for %q: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// NewCleanupError creates a new CleanupError
func NewCleanupError(path string, err error) error {
	return &CleanupError{
		Path: path,
		Err:  err,
	}
}

package fs

import (
	"fmt"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// MoveFile moves a file from src to dst.
// If rename(2) fails (typically across devices) and fallbackCopy is true,
// it falls back to copy and delete.
func MoveFile(src, dst string, fallbackCopy bool) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := os.Rename(src, dst); err != nil {
		if !fallbackCopy {
			return fmt.Errorf("failed to move file: %w", err)
		}

		if err := cp.Copy(src, dst, cp.Options{Sync: true}); err != nil {
			return fmt.Errorf("failed to copy file: %w", err)
		}

		if err := os.RemoveAll(src); err != nil {
			_ = os.RemoveAll(dst)
			return fmt.Errorf("failed to remove source after copy: %w", err)
		}
	}

	return nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	name := temp.Name()
	defer os.Remove(name)

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := temp.Chmod(perm); err != nil {
		temp.Close()
		return fmt.Errorf("failed to chmod temporary file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("failed to move temporary file: %w", err)
	}
	return nil
}

package controller

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/babarot/rtrash/internal/core/atomic"
	"github.com/babarot/rtrash/internal/fs"
)

const (
	tempPrefix   = ".rtrash"
	staleTempAge = 24 * time.Hour
)

// DiskSaver writes downloads into a directory. Content goes to a temporary
// file first and only appears under its final name once complete.
type DiskSaver struct {
	Dir  string
	temp *atomic.TempManager
}

// NewDiskSaver saves into dir, or the working directory if dir is empty.
func NewDiskSaver(dir, tempDir string) (*DiskSaver, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	if tempDir == "" {
		tempDir = dir
	}
	tm, err := atomic.NewTempManager(tempDir)
	if err != nil {
		return nil, err
	}
	if err := tm.CleanupAll(tempPrefix, staleTempAge); err != nil {
		slog.Warn("failed to remove stale partial downloads", "error", err)
	}
	return &DiskSaver{Dir: dir, temp: tm}, nil
}

func (s *DiskSaver) Save(name string, r io.Reader, size int64) (string, error) {
	name, err := fs.SafeName(name)
	if err != nil {
		return "", err
	}

	w, err := s.temp.NewSafeWriter(tempPrefix)
	if err != nil {
		return "", err
	}
	defer w.Cleanup()

	if _, err := io.Copy(w, r); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if size >= 0 && w.Written() != size {
		return "", fmt.Errorf("short download: got %d of %d bytes", w.Written(), size)
	}

	dst := fs.UniquePath(s.Dir, name)
	if err := w.Commit(dst); err != nil {
		return "", err
	}
	return dst, nil
}

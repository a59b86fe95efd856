package atomic

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSafeWriterCommit(t *testing.T) {
	m, err := NewTempManager(filepath.Join(t.TempDir(), "tmp"))
	if err != nil {
		t.Fatal(err)
	}

	w, err := m.NewSafeWriter("download")
	if err != nil {
		t.Fatalf("NewSafeWriter() error = %v", err)
	}
	defer w.Cleanup()

	if _, err := w.Write([]byte("payload")); err != nil {
		t.Fatal(err)
	}
	if w.Written() != 7 {
		t.Errorf("Written() = %d, want 7", w.Written())
	}

	dst := filepath.Join(t.TempDir(), "out", "file.bin")
	if err := w.Commit(dst); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q", data)
	}

	if _, err := w.Write([]byte("more")); !errors.Is(err, ErrWriterFinished) {
		t.Errorf("Write after Commit error = %v, want ErrWriterFinished", err)
	}
	if err := w.Commit(dst); !errors.Is(err, ErrWriterFinished) {
		t.Errorf("second Commit error = %v, want ErrWriterFinished", err)
	}
}

func TestSafeWriterCleanupRemovesTemp(t *testing.T) {
	base := filepath.Join(t.TempDir(), "tmp")
	m, err := NewTempManager(base)
	if err != nil {
		t.Fatal(err)
	}

	w, err := m.NewSafeWriter("download")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("partial")); err != nil {
		t.Fatal(err)
	}
	w.Cleanup()

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir has %d entries after Cleanup, want 0", len(entries))
	}
}

func TestCleanupAll(t *testing.T) {
	base := filepath.Join(t.TempDir(), "tmp")
	m, err := NewTempManager(base)
	if err != nil {
		t.Fatal(err)
	}
	old, err := m.CreateTemp("old")
	if err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(old.Path, past, past); err != nil {
		t.Fatal(err)
	}
	fresh, err := m.CreateTemp("fresh")
	if err != nil {
		t.Fatal(err)
	}

	other := filepath.Join(base, "report.pdf")
	if err := os.WriteFile(other, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(other, past, past); err != nil {
		t.Fatal(err)
	}

	if err := m.CleanupAll("old", time.Hour); err != nil {
		t.Fatalf("CleanupAll() error = %v", err)
	}
	if _, err := os.Stat(old.Path); !os.IsNotExist(err) {
		t.Error("old temp file should be removed")
	}
	if _, err := os.Stat(fresh.Path); err != nil {
		t.Error("fresh temp file should be kept")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("unrelated file should be kept")
	}
}

package state

import (
	"sync"
	"testing"

	"github.com/babarot/rtrash/internal/controller"
	"github.com/babarot/rtrash/internal/listing"
)

func TestBindings(t *testing.T) {
	app := New()
	var changes int
	app.OnChange(func() { changes++ })

	b := app.Bindings(nil, nil, nil)
	b.FileList.Render(listing.Parse("=== Files ===\na.txt\n"))
	b.TrashList.ShowError("Error loading trash: HTTP 500: boom")
	b.ActionFilename.SetValue("a.txt")
	b.TrashStatus.Set("✅ Restored: a.txt", false)

	s := app.Snapshot()
	if len(s.Files.Entries) != 1 || s.Files.Entries[0].Name != "a.txt" {
		t.Errorf("files = %v", s.Files.Entries)
	}
	if s.Trash.Err == "" || len(s.Trash.Entries) != 0 {
		t.Errorf("trash = %+v", s.Trash)
	}
	if s.ActionFilename != "a.txt" || s.TrashFilename != "" {
		t.Errorf("fields = %q, %q", s.ActionFilename, s.TrashFilename)
	}
	if s.Statuses[TrashStatus].Msg != "✅ Restored: a.txt" {
		t.Errorf("status = %+v", s.Statuses[TrashStatus])
	}
	if changes != 4 {
		t.Errorf("changes = %d, want 4", changes)
	}
}

func TestRenderReplaces(t *testing.T) {
	app := New()
	v := app.ListView(FilesPane)
	v.ShowError("Error loading files: offline")
	v.Render(listing.Parse("b.txt"))
	v.Render(listing.Parse(""))

	s := app.Snapshot()
	if s.Files.Err != "" {
		t.Errorf("stale error %q", s.Files.Err)
	}
	if len(s.Files.Entries) != 1 || !s.Files.Entries[0].Placeholder {
		t.Errorf("entries = %v", s.Files.Entries)
	}
}

func TestPicker(t *testing.T) {
	app := New()
	b := app.Bindings(nil, nil, nil)
	if _, ok := b.UploadFile.Selected(); ok {
		t.Fatal("nothing selected yet")
	}
	app.SelectUpload(controller.LocalFile{Name: "a.txt", Size: 1})
	f, ok := b.UploadFile.Selected()
	if !ok || f.Name != "a.txt" {
		t.Fatalf("Selected() = %v, %v", f, ok)
	}
	b.UploadFile.Clear()
	if _, ok := b.UploadFile.Selected(); ok {
		t.Error("Clear() kept the file")
	}
}

func TestNavigatorOnce(t *testing.T) {
	var calls int
	nav := NewNavigator(func() { calls++ })

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nav.ToLogin()
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !nav.Requested() {
		t.Error("Requested() = false")
	}
}

func TestSelectionFillsBothFields(t *testing.T) {
	app := New()
	ctrl := controller.New(nil, nil, app.Bindings(nil, nil, nil))

	for _, e := range listing.Parse("=== Trash ===\n old.log \n") {
		ctrl.Select(e)
	}
	s := app.Snapshot()
	if s.ActionFilename != "old.log" || s.TrashFilename != "old.log" {
		t.Errorf("fields = %q, %q", s.ActionFilename, s.TrashFilename)
	}
}

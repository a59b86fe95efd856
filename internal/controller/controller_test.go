package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/babarot/rtrash/internal/listing"
	"github.com/babarot/rtrash/internal/session"
	"github.com/babarot/rtrash/internal/transport"
)

type fakeList struct {
	entries []listing.Entry
	errMsg  string
	renders int
}

func (l *fakeList) Render(e []listing.Entry) { l.entries = e; l.errMsg = ""; l.renders++ }
func (l *fakeList) ShowError(msg string)     { l.errMsg = msg }

type fakeField struct{ v string }

func (f *fakeField) Value() string     { return f.v }
func (f *fakeField) SetValue(v string) { f.v = v }

type fakePicker struct {
	file    *LocalFile
	cleared bool
}

func (p *fakePicker) Selected() (LocalFile, bool) {
	if p.file == nil {
		return LocalFile{}, false
	}
	return *p.file, true
}
func (p *fakePicker) Clear() { p.file = nil; p.cleared = true }

type fakeStatus struct {
	msg     string
	isError bool
	sets    int
}

func (s *fakeStatus) Set(msg string, isError bool) { s.msg = msg; s.isError = isError; s.sets++ }

type fakeSaver struct {
	name string
	data []byte
}

func (s *fakeSaver) Save(name string, r io.Reader, _ int64) (string, error) {
	b, err := io.ReadAll(r)
	s.name, s.data = name, b
	return "/tmp/" + name, err
}

type fakeNav struct{ n int }

func (n *fakeNav) ToLogin() { n.n++ }

type fakeLogout struct {
	err   error
	calls int
}

func (l *fakeLogout) Logout(context.Context) error { l.calls++; return l.err }

// fakeServer records every request and answers from handlers keyed by path
type fakeServer struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	framing  map[string]string
	status   map[string]int
	reply    map[string]string
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
	if s.bodies == nil {
		s.bodies = map[string]string{}
	}
	s.bodies[r.URL.Path] = string(body)
	if s.framing == nil {
		s.framing = map[string]string{}
	}
	s.framing[r.URL.Path] = fmt.Sprintf("length=%d encoding=%v", r.ContentLength, r.TransferEncoding)
	if code, ok := s.status[r.URL.Path]; ok {
		w.WriteHeader(code)
	}
	io.WriteString(w, s.reply[r.URL.Path])
}

func (s *fakeServer) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

type fixture struct {
	ctrl   *Controller
	srv    *fakeServer
	nav    *fakeNav
	logout *fakeLogout

	files, trash           *fakeList
	action, trashName      *fakeField
	picker                 *fakePicker
	upload, actSt, trashSt *fakeStatus
	saver                  *fakeSaver
	confirms               []string
	answer                 bool
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		srv: &fakeServer{
			status: map[string]int{},
			reply: map[string]string{
				pathList:      "=== Server Files ===\na.txt\nb.txt\n",
				pathListTrash: "=== Trash ===\nold.log\n",
			},
		},
		nav:       &fakeNav{},
		logout:    &fakeLogout{},
		files:     &fakeList{},
		trash:     &fakeList{},
		action:    &fakeField{},
		trashName: &fakeField{},
		picker:    &fakePicker{},
		upload:    &fakeStatus{},
		actSt:     &fakeStatus{},
		trashSt:   &fakeStatus{},
		saver:     &fakeSaver{},
		answer:    true,
	}
	ts := httptest.NewServer(f.srv)
	t.Cleanup(ts.Close)

	client, err := transport.New(transport.Config{BaseURL: ts.URL, Navigator: f.nav})
	if err != nil {
		t.Fatal(err)
	}
	f.ctrl = New(client, f.logout, Bindings{
		FileList:       f.files,
		TrashList:      f.trash,
		ActionFilename: f.action,
		TrashFilename:  f.trashName,
		UploadFile:     f.picker,
		UploadStatus:   f.upload,
		ActionStatus:   f.actSt,
		TrashStatus:    f.trashSt,
		Confirm: ConfirmFunc(func(p string) bool {
			f.confirms = append(f.confirms, p)
			return f.answer
		}),
		Save:      f.saver,
		Navigator: f.nav,
	}, opts...)
	return f
}

func (f *fixture) statusSets() int {
	return f.upload.sets + f.actSt.sets + f.trashSt.sets
}

func TestStart(t *testing.T) {
	f := newFixture(t)
	if err := f.ctrl.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	want := []listing.Entry{{Name: "a.txt"}, {Name: "b.txt"}}
	if len(f.files.entries) != 2 || f.files.entries[0] != want[0] || f.files.entries[1] != want[1] {
		t.Errorf("files = %v", f.files.entries)
	}
	if len(f.trash.entries) != 1 || f.trash.entries[0].Name != "old.log" {
		t.Errorf("trash = %v", f.trash.entries)
	}
	// probe + both listings
	if got := len(f.srv.calls()); got != 3 {
		t.Errorf("requests = %v", f.srv.calls())
	}
}

func TestStartUnauthorized(t *testing.T) {
	f := newFixture(t)
	f.srv.status[pathList] = http.StatusUnauthorized

	err := f.ctrl.Start(context.Background())
	if !errors.Is(err, session.ErrNotAuthenticated) {
		t.Fatalf("Start() error = %v", err)
	}
	if f.nav.n == 0 {
		t.Error("expected navigation to login")
	}
	if got := f.srv.calls(); len(got) != 1 {
		t.Errorf("requests after closed gate = %v", got)
	}
	if f.files.renders != 0 || f.trash.renders != 0 {
		t.Error("panes rendered after closed gate")
	}
}

func TestSelect(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Select(listing.Entry{Name: "  report.pdf "})
	if f.action.v != "report.pdf" || f.trashName.v != "report.pdf" {
		t.Errorf("fields = %q, %q", f.action.v, f.trashName.v)
	}

	f.ctrl.Select(listing.Placeholder())
	if f.action.v != "report.pdf" {
		t.Error("placeholder selection changed the fields")
	}
}

func TestRefreshError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantMsg string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantMsg: "Error loading trash: HTTP 500: boom"},
		{name: "unauthorized", status: http.StatusUnauthorized, wantMsg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.srv.status[pathListTrash] = tt.status
			f.srv.reply[pathListTrash] = "boom"

			f.ctrl.RefreshTrash(context.Background())
			if f.trash.errMsg != tt.wantMsg {
				t.Errorf("error = %q, want %q", f.trash.errMsg, tt.wantMsg)
			}
		})
	}
}

func TestEmptyFilenameIsValidation(t *testing.T) {
	workflows := map[string]func(*Controller, context.Context) error{
		"download":  (*Controller).Download,
		"softdel":   (*Controller).SoftDelete,
		"restore":   (*Controller).Restore,
		"permanent": (*Controller).DeletePermanent,
	}

	for name, run := range workflows {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.action.v = "   "
			f.trashName.v = "\t"

			err := run(f.ctrl, context.Background())
			if !IsValidation(err) {
				t.Fatalf("error = %v, want validation", err)
			}
			if len(f.srv.calls()) != 0 {
				t.Errorf("requests = %v", f.srv.calls())
			}
			if len(f.confirms) != 0 {
				t.Error("asked for confirmation before validation")
			}
			st := f.actSt
			if name == "permanent" {
				st = f.trashSt
			}
			if st.msg != "Please enter a filename." || !st.isError {
				t.Errorf("status = %q (error %v)", st.msg, st.isError)
			}
		})
	}
}

func TestUploadWithoutFile(t *testing.T) {
	f := newFixture(t)
	err := f.ctrl.Upload(context.Background())
	if !IsValidation(err) {
		t.Fatalf("Upload() error = %v", err)
	}
	if f.upload.msg != "Please select a file first." {
		t.Errorf("status = %q", f.upload.msg)
	}
	if len(f.srv.calls()) != 0 {
		t.Errorf("requests = %v", f.srv.calls())
	}
}

func TestUpload(t *testing.T) {
	f := newFixture(t)
	f.picker.file = &LocalFile{
		Name: "my notes.txt",
		Size: 5,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("hello")), nil },
	}

	if err := f.ctrl.Upload(context.Background()); err != nil {
		t.Fatal(err)
	}
	calls := f.srv.calls()
	want := []string{"POST /upload?filename=my%20notes.txt", "GET /list"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("requests = %v, want %v", calls, want)
	}
	if f.srv.bodies[pathUpload] != "hello" {
		t.Errorf("body = %q", f.srv.bodies[pathUpload])
	}
	if f.upload.msg != "✅ Successfully uploaded: my notes.txt" || f.upload.isError {
		t.Errorf("status = %q", f.upload.msg)
	}
	if !f.picker.cleared {
		t.Error("file input not cleared")
	}
}

func TestUploadSendsContentLength(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "file", content: "hello"},
		{name: "empty file", content: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "a.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			file, err := OpenLocalFile(path)
			if err != nil {
				t.Fatal(err)
			}

			f := newFixture(t)
			f.picker.file = &file
			if err := f.ctrl.Upload(context.Background()); err != nil {
				t.Fatal(err)
			}

			want := fmt.Sprintf("length=%d encoding=[]", len(tt.content))
			if got := f.srv.framing[pathUpload]; got != want {
				t.Errorf("framing = %q, want %q", got, want)
			}
			if f.srv.bodies[pathUpload] != tt.content {
				t.Errorf("body = %q, want %q", f.srv.bodies[pathUpload], tt.content)
			}
		})
	}
}

func TestOpenLocalFile(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("plain words\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	file, err := OpenLocalFile(text)
	if err != nil {
		t.Fatalf("OpenLocalFile() error = %v", err)
	}
	if file.Name != "notes.txt" || file.Size != 12 {
		t.Errorf("file = %+v", file)
	}
	if !strings.HasPrefix(file.MIME, "text/plain") {
		t.Errorf("MIME = %q, want text/plain", file.MIME)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "missing", path: filepath.Join(dir, "nope.txt"), want: "No such file: "},
		{name: "directory", path: dir, want: "is not a regular file."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenLocalFile(tt.path)
			if !IsValidation(err) {
				t.Fatalf("OpenLocalFile() error = %v, want a validation error", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	f := newFixture(t, WithMaxUploadSize(10))
	f.picker.file = &LocalFile{Name: "big.bin", Size: 11}

	if err := f.ctrl.Upload(context.Background()); !IsValidation(err) {
		t.Fatalf("Upload() error = %v", err)
	}
	if len(f.srv.calls()) != 0 {
		t.Errorf("requests = %v", f.srv.calls())
	}
	if !f.upload.isError {
		t.Error("expected error status")
	}
}

func TestDownloadTrims(t *testing.T) {
	f := newFixture(t)
	f.action.v = "  report.pdf  "
	f.srv.reply[pathDownload] = "%PDF"

	if err := f.ctrl.Download(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.srv.calls(); len(got) != 1 || got[0] != "GET /download?file=report.pdf" {
		t.Errorf("requests = %v", got)
	}
	if f.saver.name != "report.pdf" || !bytes.Equal(f.saver.data, []byte("%PDF")) {
		t.Errorf("saved %q = %q", f.saver.name, f.saver.data)
	}
	if f.actSt.msg != "✅ Downloaded: report.pdf" {
		t.Errorf("status = %q", f.actSt.msg)
	}
}

func TestSubmitShortcuts(t *testing.T) {
	f := newFixture(t)
	f.action.v = "a.txt"
	f.trashName.v = "old.log"

	f.ctrl.SubmitAction(context.Background())
	f.ctrl.SubmitTrash(context.Background())

	got := f.srv.calls()
	want := []string{
		"GET /download?file=a.txt",
		"POST /delete_permanent?filename=old.log",
		"GET /list_trash",
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("requests = %v, want %v", got, want)
	}
}

func TestSoftDeleteRefreshesBoth(t *testing.T) {
	f := newFixture(t)
	f.action.v = "x.txt"

	if err := f.ctrl.SoftDelete(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := f.srv.calls()
	want := []string{"POST /delete?filename=x.txt", "GET /list", "GET /list_trash"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("requests = %v, want %v", got, want)
	}
	if f.files.renders != 1 || f.trash.renders != 1 {
		t.Errorf("renders = %d, %d", f.files.renders, f.trash.renders)
	}
	if f.actSt.msg != "✅ Moved to trash: x.txt" || f.actSt.isError {
		t.Errorf("status = %q", f.actSt.msg)
	}
	if len(f.confirms) != 1 || f.confirms[0] != `Are you sure you want to move "x.txt" to trash?` {
		t.Errorf("confirms = %q", f.confirms)
	}
}

func TestRestore(t *testing.T) {
	f := newFixture(t)
	f.action.v = "old.log"
	if err := f.ctrl.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []string{"POST /restore?filename=old.log", "GET /list", "GET /list_trash"}
	if got := f.srv.calls(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("requests = %v", got)
	}
	if len(f.confirms) != 0 {
		t.Error("restore must not confirm")
	}
}

func TestDeclinedConfirmation(t *testing.T) {
	workflows := map[string]func(*Controller, context.Context) error{
		"softdel":   (*Controller).SoftDelete,
		"permanent": (*Controller).DeletePermanent,
		"empty":     (*Controller).EmptyTrash,
	}

	for name, run := range workflows {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.answer = false
			f.action.v = "a.txt"
			f.trashName.v = "a.txt"

			if err := run(f.ctrl, context.Background()); err != nil {
				t.Fatalf("error = %v", err)
			}
			if len(f.confirms) != 1 {
				t.Errorf("confirms = %d", len(f.confirms))
			}
			if len(f.srv.calls()) != 0 {
				t.Errorf("requests = %v", f.srv.calls())
			}
			if f.statusSets() != 0 {
				t.Error("status changed after declined confirmation")
			}
		})
	}
}

func TestEmptyTrash(t *testing.T) {
	f := newFixture(t)
	if err := f.ctrl.EmptyTrash(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []string{"POST /empty_trash", "GET /list_trash"}
	if got := f.srv.calls(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("requests = %v", got)
	}
	if f.srv.bodies[pathEmptyTrash] != "" {
		t.Errorf("body = %q", f.srv.bodies[pathEmptyTrash])
	}
	if f.trashSt.msg != "✅ Trash emptied successfully" {
		t.Errorf("status = %q", f.trashSt.msg)
	}
}

func TestFailureReporting(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantMsg   string
		wantError bool
		wantNav   int
	}{
		{
			name:      "request failed",
			status:    http.StatusNotFound,
			body:      "File not found",
			wantMsg:   "❌ Delete failed: HTTP 404: File not found",
			wantError: true,
		},
		{
			name:      "unauthorized leaves no error text",
			status:    http.StatusUnauthorized,
			body:      "Unauthorized",
			wantMsg:   "Moving x.txt to trash...",
			wantError: false,
			wantNav:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.action.v = "x.txt"
			f.srv.status[pathDelete] = tt.status
			f.srv.reply[pathDelete] = tt.body

			if err := f.ctrl.SoftDelete(context.Background()); err == nil {
				t.Fatal("expected error")
			}
			if f.actSt.msg != tt.wantMsg || f.actSt.isError != tt.wantError {
				t.Errorf("status = %q (error %v)", f.actSt.msg, f.actSt.isError)
			}
			if f.nav.n != tt.wantNav {
				t.Errorf("navigations = %d", f.nav.n)
			}
			if got := f.srv.calls(); len(got) != 1 {
				t.Errorf("refreshed after failure: %v", got)
			}
		})
	}
}

func TestLogoutAlwaysNavigates(t *testing.T) {
	for _, logoutErr := range []error{nil, errors.New("offline")} {
		f := newFixture(t)
		f.logout.err = logoutErr

		err := f.ctrl.Logout(context.Background())
		if !errors.Is(err, logoutErr) {
			t.Errorf("Logout() error = %v", err)
		}
		if f.nav.n != 1 || f.logout.calls != 1 {
			t.Errorf("nav = %d, logout calls = %d", f.nav.n, f.logout.calls)
		}
	}
}

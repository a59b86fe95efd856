// Package state holds what the user sees: both listings, the filename
// inputs, the file chosen for upload and the pane statuses. Handles returned
// from App satisfy the controller's view bindings.
package state

import (
	"sync"

	"github.com/babarot/rtrash/internal/controller"
	"github.com/babarot/rtrash/internal/listing"
)

type Pane int

const (
	FilesPane Pane = iota
	TrashPane
)

func (p Pane) String() string {
	switch p {
	case FilesPane:
		return "files"
	case TrashPane:
		return "trash"
	default:
		return "unknown"
	}
}

// StatusArea identifies one of the status lines
type StatusArea int

const (
	UploadStatus StatusArea = iota
	ActionStatus
	TrashStatus
)

type Status struct {
	Msg     string
	IsError bool
}

type List struct {
	Entries []listing.Entry
	Err     string
	Loaded  bool
}

// Snapshot is a consistent copy of the state for rendering
type Snapshot struct {
	Files, Trash   List
	ActionFilename string
	TrashFilename  string
	Upload         *controller.LocalFile
	Statuses       [3]Status
}

type App struct {
	mu sync.RWMutex

	lists    [2]List
	action   string
	trash    string
	upload   *controller.LocalFile
	statuses [3]Status

	onChange func()
}

func New() *App {
	return &App{}
}

// OnChange registers a hook called after every mutation, outside the lock.
func (a *App) OnChange(fn func()) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

func (a *App) update(fn func()) {
	a.mu.Lock()
	fn()
	hook := a.onChange
	a.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s := Snapshot{
		Files:          copyList(a.lists[FilesPane]),
		Trash:          copyList(a.lists[TrashPane]),
		ActionFilename: a.action,
		TrashFilename:  a.trash,
		Statuses:       a.statuses,
	}
	if a.upload != nil {
		f := *a.upload
		s.Upload = &f
	}
	return s
}

func copyList(l List) List {
	l.Entries = append([]listing.Entry(nil), l.Entries...)
	return l
}

// SelectUpload sets the file to send with the next upload
func (a *App) SelectUpload(f controller.LocalFile) {
	a.update(func() { a.upload = &f })
}

// ClearUpload forgets the file chosen for upload
func (a *App) ClearUpload() {
	a.update(func() { a.upload = nil })
}

// Status returns the handle for one status line
func (a *App) Status(id StatusArea) controller.StatusArea { return statusArea{a, id} }

// Bindings wires the state handles together with the interactive parts
// supplied by the front end.
func (a *App) Bindings(confirm controller.Confirmer, saver controller.Saver, nav controller.Navigator) controller.Bindings {
	return controller.Bindings{
		FileList:       listView{a, FilesPane},
		TrashList:      listView{a, TrashPane},
		ActionFilename: field{a, &a.action},
		TrashFilename:  field{a, &a.trash},
		UploadFile:     picker{a},
		UploadStatus:   statusArea{a, UploadStatus},
		ActionStatus:   statusArea{a, ActionStatus},
		TrashStatus:    statusArea{a, TrashStatus},
		Confirm:        confirm,
		Save:           saver,
		Navigator:      nav,
	}
}

// ListView returns the handle for a pane's list
func (a *App) ListView(p Pane) controller.ListView { return listView{a, p} }

func (a *App) ActionField() controller.Field { return field{a, &a.action} }

func (a *App) TrashField() controller.Field { return field{a, &a.trash} }

type listView struct {
	a    *App
	pane Pane
}

func (v listView) Render(entries []listing.Entry) {
	v.a.update(func() {
		v.a.lists[v.pane] = List{
			Entries: append([]listing.Entry(nil), entries...),
			Loaded:  true,
		}
	})
}

// ShowError replaces the list contents with the message
func (v listView) ShowError(msg string) {
	v.a.update(func() {
		v.a.lists[v.pane] = List{Err: msg, Loaded: true}
	})
}

type field struct {
	a *App
	v *string
}

func (f field) Value() string {
	f.a.mu.RLock()
	defer f.a.mu.RUnlock()
	return *f.v
}

func (f field) SetValue(v string) {
	f.a.update(func() { *f.v = v })
}

type picker struct{ a *App }

func (p picker) Selected() (controller.LocalFile, bool) {
	p.a.mu.RLock()
	defer p.a.mu.RUnlock()
	if p.a.upload == nil {
		return controller.LocalFile{}, false
	}
	return *p.a.upload, true
}

func (p picker) Clear() {
	p.a.update(func() { p.a.upload = nil })
}

type statusArea struct {
	a  *App
	id StatusArea
}

func (s statusArea) Set(msg string, isError bool) {
	s.a.update(func() { s.a.statuses[s.id] = Status{Msg: msg, IsError: isError} })
}

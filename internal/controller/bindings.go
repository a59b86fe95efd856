package controller

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/babarot/rtrash/internal/listing"
	"github.com/gabriel-vasile/mimetype"
)

// ListView shows one pane's entries
type ListView interface {
	Render(entries []listing.Entry)
	ShowError(msg string)
}

// Field is a free-text filename input
type Field interface {
	Value() string
	SetValue(v string)
}

// LocalFile is a file chosen for upload
type LocalFile struct {
	Name string
	Path string
	Size int64
	// MIME is the detected content type, empty when unknown
	MIME string

	// Open returns the content to send. Front ends may wrap it, e.g. to
	// draw progress.
	Open func() (io.ReadCloser, error)
}

// OpenLocalFile describes a readable regular file on disk for upload. A
// missing, unreadable or special file is a *ValidationError.
func OpenLocalFile(path string) (LocalFile, error) {
	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return LocalFile{}, &ValidationError{Msg: fmt.Sprintf("No such file: %s", path), Err: err}
	case err != nil:
		return LocalFile{}, &ValidationError{Msg: fmt.Sprintf("Cannot read %s.", path), Err: err}
	}
	info, err := f.Stat()
	f.Close()
	if err != nil {
		return LocalFile{}, &ValidationError{Msg: fmt.Sprintf("Cannot read %s.", path), Err: err}
	}
	if !info.Mode().IsRegular() {
		return LocalFile{}, &ValidationError{Msg: fmt.Sprintf("%s is not a regular file.", path)}
	}

	file := LocalFile{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
	if mt, err := mimetype.DetectFile(path); err == nil {
		file.MIME = mt.String()
	}
	return file, nil
}

// FilePicker holds the file selected for upload
type FilePicker interface {
	Selected() (LocalFile, bool)
	Clear()
}

type StatusArea interface {
	Set(msg string, isError bool)
}

// Confirmer asks the user a yes/no question and blocks for the answer
type Confirmer interface {
	Confirm(prompt string) bool
}

// Saver stores downloaded content under name and returns where it went
type Saver interface {
	Save(name string, r io.Reader, size int64) (string, error)
}

type Navigator interface {
	ToLogin()
}

// Bindings are the named view handles a Controller works against
type Bindings struct {
	FileList  ListView
	TrashList ListView

	ActionFilename Field
	TrashFilename  Field
	UploadFile     FilePicker

	UploadStatus StatusArea
	ActionStatus StatusArea
	TrashStatus  StatusArea

	Confirm   Confirmer
	Save      Saver
	Navigator Navigator
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

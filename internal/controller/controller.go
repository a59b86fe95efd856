// Package controller runs the user workflows against the storage service and
// reports their outcome through injected view bindings.
package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/babarot/rtrash/internal/listing"
	"github.com/babarot/rtrash/internal/session"
	"github.com/babarot/rtrash/internal/transport"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

const (
	pathList            = "/list"
	pathListTrash       = "/list_trash"
	pathUpload          = "/upload"
	pathDownload        = "/download"
	pathDelete          = "/delete"
	pathRestore         = "/restore"
	pathDeletePermanent = "/delete_permanent"
	pathEmptyTrash      = "/empty_trash"
)

// Transport is the request surface workflows need
type Transport interface {
	Get(ctx context.Context, path string) (*http.Response, error)
	Post(ctx context.Context, path string, body io.Reader, contentType string) (*http.Response, error)
	PostSized(ctx context.Context, path string, body io.Reader, size int64, contentType string) (*http.Response, error)
}

// Logouter ends the session
type Logouter interface {
	Logout(ctx context.Context) error
}

type Controller struct {
	client  Transport
	session Logouter
	views   Bindings

	maxUploadSize int64
}

type Option func(*Controller)

// WithMaxUploadSize rejects larger uploads before sending them. Zero disables the check.
func WithMaxUploadSize(n int64) Option {
	return func(c *Controller) {
		c.maxUploadSize = n
	}
}

func New(client Transport, sess Logouter, views Bindings, opts ...Option) *Controller {
	c := &Controller{
		client:  client,
		session: sess,
		views:   views,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start runs the session gate and, if the session is usable, loads both panes.
// It returns session.ErrNotAuthenticated after sending the user to login.
func (c *Controller) Start(ctx context.Context) error {
	if err := session.Gate(ctx, c.client, c.views.Navigator); err != nil {
		return err
	}
	var eg errgroup.Group
	eg.Go(func() error { c.RefreshFiles(ctx); return nil })
	eg.Go(func() error { c.RefreshTrash(ctx); return nil })
	return eg.Wait()
}

// Select copies the entry's name into both filename fields.
func (c *Controller) Select(e listing.Entry) {
	if e.Placeholder {
		return
	}
	name := strings.TrimSpace(e.Name)
	c.views.ActionFilename.SetValue(name)
	c.views.TrashFilename.SetValue(name)
}

// RefreshFiles reloads the active pane.
func (c *Controller) RefreshFiles(ctx context.Context) error {
	return c.refresh(ctx, pathList, c.views.FileList, "Error loading files: ")
}

// RefreshTrash reloads the trash pane.
func (c *Controller) RefreshTrash(ctx context.Context) error {
	return c.refresh(ctx, pathListTrash, c.views.TrashList, "Error loading trash: ")
}

func (c *Controller) refresh(ctx context.Context, path string, view ListView, prefix string) error {
	text, err := c.fetchText(ctx, path)
	if err != nil {
		if !transport.IsUnauthorized(err) {
			view.ShowError(prefix + err.Error())
		}
		return err
	}
	view.Render(listing.Parse(text))
	return nil
}

// Files returns the active listing names without touching any view.
func (c *Controller) Files(ctx context.Context) ([]string, error) {
	text, err := c.fetchText(ctx, pathList)
	if err != nil {
		return nil, err
	}
	return listing.Names(text), nil
}

// Trash returns the trash listing names without touching any view.
func (c *Controller) Trash(ctx context.Context) ([]string, error) {
	text, err := c.fetchText(ctx, pathListTrash)
	if err != nil {
		return nil, err
	}
	return listing.Names(text), nil
}

func (c *Controller) fetchText(ctx context.Context, path string) (string, error) {
	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return transport.ReadText(resp)
}

// The workflows below report their outcome on a status area before
// returning. The returned error is informational (exit status for one-shot
// commands); it is never meant to be reported again.

// Upload sends the selected local file.
func (c *Controller) Upload(ctx context.Context) error {
	status := c.views.UploadStatus
	file, ok := c.views.UploadFile.Selected()
	if !ok {
		return c.invalid(status, msgSelectFile)
	}
	if c.maxUploadSize > 0 && file.Size > c.maxUploadSize {
		return c.invalid(status, fmt.Sprintf("%s is %s, larger than the %s limit.",
			file.Name, humanize.Bytes(uint64(file.Size)), humanize.Bytes(uint64(c.maxUploadSize))))
	}

	status.Set(fmt.Sprintf("Uploading %s...", file.Name), false)

	slog.Debug("uploading", "name", file.Name, "mime", file.MIME, "size", humanize.Bytes(uint64(file.Size)))

	r, err := file.Open()
	if err != nil {
		return c.fail(status, "Upload", err)
	}
	defer r.Close()

	resp, err := c.client.PostSized(ctx, transport.Query(pathUpload, "filename", file.Name), r, file.Size, "")
	if err != nil {
		return c.fail(status, "Upload", err)
	}
	drain(resp)

	status.Set(fmt.Sprintf("✅ Successfully uploaded: %s", file.Name), false)
	c.views.UploadFile.Clear()
	c.RefreshFiles(ctx)
	return nil
}

// Download fetches the file named in the action field and saves it locally.
func (c *Controller) Download(ctx context.Context) error {
	status := c.views.ActionStatus
	name := strings.TrimSpace(c.views.ActionFilename.Value())
	if name == "" {
		return c.invalid(status, msgEnterFilename)
	}

	status.Set(fmt.Sprintf("Downloading %s...", name), false)

	resp, err := c.client.Get(ctx, transport.Query(pathDownload, "file", name))
	if err != nil {
		return c.fail(status, "Download", err)
	}
	defer resp.Body.Close()

	dst, err := c.views.Save.Save(name, resp.Body, resp.ContentLength)
	if err != nil {
		return c.fail(status, "Download", err)
	}
	slog.Info("downloaded", "name", name, "path", dst)

	status.Set(fmt.Sprintf("✅ Downloaded: %s", name), false)
	return nil
}

// SoftDelete moves the file named in the action field to the trash.
func (c *Controller) SoftDelete(ctx context.Context) error {
	status := c.views.ActionStatus
	name := strings.TrimSpace(c.views.ActionFilename.Value())
	if name == "" {
		return c.invalid(status, msgEnterFilename)
	}
	if !c.views.Confirm.Confirm(fmt.Sprintf("Are you sure you want to move \"%s\" to trash?", name)) {
		return nil
	}

	status.Set(fmt.Sprintf("Moving %s to trash...", name), false)
	if err := c.post(ctx, transport.Query(pathDelete, "filename", name)); err != nil {
		return c.fail(status, "Delete", err)
	}
	status.Set(fmt.Sprintf("✅ Moved to trash: %s", name), false)
	c.RefreshFiles(ctx)
	c.RefreshTrash(ctx)
	return nil
}

// Restore brings the file named in the action field back from the trash.
func (c *Controller) Restore(ctx context.Context) error {
	status := c.views.ActionStatus
	name := strings.TrimSpace(c.views.ActionFilename.Value())
	if name == "" {
		return c.invalid(status, msgEnterFilename)
	}

	status.Set(fmt.Sprintf("Restoring %s...", name), false)
	if err := c.post(ctx, transport.Query(pathRestore, "filename", name)); err != nil {
		return c.fail(status, "Restore", err)
	}
	status.Set(fmt.Sprintf("✅ Restored: %s", name), false)
	c.RefreshFiles(ctx)
	c.RefreshTrash(ctx)
	return nil
}

// DeletePermanent removes the file named in the trash field for good.
func (c *Controller) DeletePermanent(ctx context.Context) error {
	status := c.views.TrashStatus
	name := strings.TrimSpace(c.views.TrashFilename.Value())
	if name == "" {
		return c.invalid(status, msgEnterFilename)
	}
	if !c.views.Confirm.Confirm(fmt.Sprintf("Permanently delete \"%s\"? This action cannot be undone!", name)) {
		return nil
	}

	status.Set(fmt.Sprintf("Permanently deleting %s...", name), false)
	if err := c.post(ctx, transport.Query(pathDeletePermanent, "filename", name)); err != nil {
		return c.fail(status, "Permanent delete", err)
	}
	status.Set(fmt.Sprintf("✅ Permanently deleted: %s", name), false)
	c.RefreshTrash(ctx)
	return nil
}

// EmptyTrash permanently deletes everything in the trash.
func (c *Controller) EmptyTrash(ctx context.Context) error {
	status := c.views.TrashStatus
	if !c.views.Confirm.Confirm("Empty entire trash? This will permanently delete ALL files in trash!") {
		return nil
	}

	status.Set("Emptying trash...", false)
	if err := c.post(ctx, pathEmptyTrash); err != nil {
		return c.fail(status, "Empty trash", err)
	}
	status.Set("✅ Trash emptied successfully", false)
	c.RefreshTrash(ctx)
	return nil
}

// Logout ends the session and always navigates to login.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.session.Logout(ctx)
	if err != nil {
		slog.Error("logout failed", "error", err)
	}
	c.views.Navigator.ToLogin()
	return err
}

// SubmitAction is the commit key in the action field.
func (c *Controller) SubmitAction(ctx context.Context) error {
	return c.Download(ctx)
}

// SubmitTrash is the commit key in the trash field.
func (c *Controller) SubmitTrash(ctx context.Context) error {
	return c.DeletePermanent(ctx)
}

func (c *Controller) post(ctx context.Context, path string) error {
	resp, err := c.client.Post(ctx, path, nil, "")
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (c *Controller) invalid(status StatusArea, msg string) error {
	status.Set(msg, true)
	return &ValidationError{Msg: msg}
}

// fail reports err on status. Authentication failures are left to the
// navigation that already happened.
func (c *Controller) fail(status StatusArea, op string, err error) error {
	if transport.IsUnauthorized(err) {
		return err
	}
	status.Set(fmt.Sprintf("❌ %s failed: %v", op, err), true)
	return err
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

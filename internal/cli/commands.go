package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"al.essio.dev/pkg/shellescape"
	"github.com/babarot/rtrash/internal/controller"
	"github.com/babarot/rtrash/internal/listing"
	"github.com/babarot/rtrash/internal/state"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

func (c CLI) List(ctx context.Context, opt ListCommand) error {
	k, err := c.newConsole(consoleOption{})
	if err != nil {
		return err
	}

	if opt.All {
		var files, trash []string
		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() (err error) {
			files, err = c.filtered(k.ctrl.Files(ctx))
			return err
		})
		eg.Go(func() (err error) {
			trash, err = c.filtered(k.ctrl.Trash(ctx))
			return err
		})
		if err := eg.Wait(); err != nil {
			return c.listFailed(k, err)
		}
		c.printTable(files, trash)
		return nil
	}

	fetch := k.ctrl.Files
	if opt.Trash {
		fetch = k.ctrl.Trash
	}
	names, err := c.filtered(fetch(ctx))
	if err != nil {
		return c.listFailed(k, err)
	}
	if len(names) == 0 {
		fmt.Fprintln(c.stderr, color.New(color.Faint).Sprint(listing.EmptyText))
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(c.stdout, name)
	}
	return nil
}

func (c CLI) filtered(names []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return listing.Filter(names, c.option.List.Args.Patterns...)
}

func (c CLI) listFailed(k *console, err error) error {
	if serr := k.checkSession(); serr != nil {
		return serr
	}
	fmt.Fprintln(c.stderr, color.RedString("Error loading list: %v", err))
	return errFailed
}

func (c CLI) printTable(files, trash []string) {
	table := tablewriter.NewWriter(c.stdout)
	table.SetHeader([]string{"Files", "Trash"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(true)
	table.SetColumnSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	rows := max(len(files), len(trash))
	if rows == 0 {
		table.Append([]string{listing.EmptyText, listing.EmptyText})
	}
	for i := range rows {
		f, _ := lo.Nth(files, i)
		t, _ := lo.Nth(trash, i)
		table.Append([]string{f, t})
	}
	table.Render()
}

func (c CLI) Upload(ctx context.Context, paths []string) error {
	k, err := c.newConsole(consoleOption{})
	if err != nil {
		return err
	}
	var errs []error
	for _, path := range paths {
		file, err := c.localFile(path)
		if err != nil {
			k.app.Status(state.UploadStatus).Set(err.Error(), true)
			k.report(state.UploadStatus)
			errs = append(errs, err)
			continue
		}
		if c.config.Core.Verbose && file.MIME != "" {
			fmt.Fprintf(c.stderr, "%s: %s, %s\n", file.Name, file.MIME, humanize.Bytes(uint64(file.Size)))
		}
		k.app.SelectUpload(file)
		if err := k.ctrl.Upload(ctx); err != nil {
			errs = append(errs, err)
		}
		if err := k.checkSession(); err != nil {
			return err
		}
		k.report(state.UploadStatus)
	}
	return failed(errs)
}

func (c CLI) Download(ctx context.Context, opt DownloadCommand) error {
	k, err := c.newConsole(consoleOption{downloadDir: opt.Output})
	if err != nil {
		return err
	}
	_, err = k.each(ctx, opt.Args.Names, k.app.ActionField(), state.ActionStatus, k.ctrl.Download)
	return err
}

func (c CLI) SoftDelete(ctx context.Context, names []string) error {
	k, err := c.newConsole(consoleOption{})
	if err != nil {
		return err
	}
	moved, err := k.each(ctx, names, k.app.ActionField(), state.ActionStatus, k.ctrl.SoftDelete)
	if len(moved) > 0 && c.config.Core.Verbose {
		fmt.Fprintf(c.stderr, "Undo with: %s\n",
			shellescape.QuoteCommand(append([]string{c.version.AppName, "restore"}, moved...)))
	}
	return err
}

func (c CLI) RestoreFiles(ctx context.Context, names []string) error {
	k, err := c.newConsole(consoleOption{})
	if err != nil {
		return err
	}
	_, err = k.each(ctx, names, k.app.ActionField(), state.ActionStatus, k.ctrl.Restore)
	return err
}

func (c CLI) Purge(ctx context.Context, names []string) error {
	k, err := c.newConsole(consoleOption{})
	if err != nil {
		return err
	}
	_, err = k.each(ctx, names, k.app.TrashField(), state.TrashStatus, k.ctrl.DeletePermanent)
	return err
}

func (c CLI) EmptyTrash(ctx context.Context) error {
	k, err := c.newConsole(consoleOption{strictConfirm: c.config.Core.StrictEmpty})
	if err != nil {
		return err
	}
	err = k.ctrl.EmptyTrash(ctx)
	if err := k.checkSession(); err != nil {
		return err
	}
	k.report(state.TrashStatus)
	if err != nil {
		return errFailed
	}
	return nil
}

func (c CLI) Logout(ctx context.Context) error {
	k, err := c.newConsole(consoleOption{})
	if err != nil {
		return err
	}
	if err := k.ctrl.Logout(ctx); err != nil {
		slog.Warn("server logout failed, local session cleared", "error", err)
	}
	fmt.Fprintf(c.stderr, "Signed out of %s\n", c.config.Server.URL)
	return nil
}

// each runs a filename workflow once per name through the given field and
// returns the names it succeeded for. Declined confirmations are not failures.
func (k *console) each(ctx context.Context, names []string, field controller.Field, area state.StatusArea, run func(context.Context) error) ([]string, error) {
	var (
		done []string
		errs []error
	)
	status := k.app.Status(area)
	for _, name := range names {
		status.Set("", false)
		field.SetValue(name)
		err := run(ctx)
		if serr := k.checkSession(); serr != nil {
			return done, serr
		}
		k.report(area)
		switch {
		case err != nil:
			errs = append(errs, err)
		case k.app.Snapshot().Statuses[area].Msg != "":
			done = append(done, name)
		}
	}
	return done, failed(errs)
}

func failed(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	slog.Debug("command finished with errors", "error", errors.Join(errs...))
	return errFailed
}

// loginCommand is the command line that signs in to the current server
func (c CLI) loginCommand() string {
	args := []string{c.version.AppName}
	if c.option.Server != "" {
		args = append(args, "--server", c.option.Server)
	}
	if c.option.Config != "" {
		args = append(args, "--config", c.option.Config)
	}
	return shellescape.QuoteCommand(append(args, "login"))
}

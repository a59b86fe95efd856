package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/babarot/rtrash/internal/controller"
	"github.com/babarot/rtrash/internal/state"
	"github.com/babarot/rtrash/internal/ui/prompt"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// console drives the controller for one-shot commands. Statuses land in the
// state and are printed once a workflow returns.
type console struct {
	cli  CLI
	app  *state.App
	nav  *state.Navigator
	conn *connection
	ctrl *controller.Controller
}

type consoleOption struct {
	strictConfirm bool
	downloadDir   string
}

func (c CLI) newConsole(opt consoleOption) (*console, error) {
	app := state.New()
	nav := state.NewNavigator(func() {})
	conn, err := c.connect(nav)
	if err != nil {
		return nil, err
	}

	dir := opt.downloadDir
	if dir == "" {
		dir = c.config.Transfer.DownloadDir
	}
	saver, err := controller.NewDiskSaver(dir, "")
	if err != nil {
		return nil, err
	}

	ctrl := controller.New(conn.client, conn.session,
		app.Bindings(c.confirmer(opt.strictConfirm), progressSaver{inner: saver, cli: c}, nav),
		controller.WithMaxUploadSize(c.config.Transfer.MaxUploadBytes()),
	)
	return &console{cli: c, app: app, nav: nav, conn: conn, ctrl: ctrl}, nil
}

// report prints the latest message of a status area
func (k *console) report(area state.StatusArea) {
	s := k.app.Snapshot().Statuses[area]
	if s.Msg == "" {
		return
	}
	if s.IsError {
		fmt.Fprintln(k.cli.stderr, color.New(color.FgRed).Sprint(s.Msg))
		return
	}
	if k.cli.config.Core.Verbose {
		fmt.Fprintln(k.cli.stdout, color.New(color.FgHiGreen).Sprint(s.Msg))
	}
}

// checkSession turns a navigation request into ErrLoginRequired
func (k *console) checkSession() error {
	if !k.nav.Requested() {
		return nil
	}
	fmt.Fprintf(k.cli.stderr, "Not signed in to %s. Run %s to sign in.\n",
		k.cli.config.Server.URL, color.New(color.Bold).Sprint(k.cli.loginCommand()))
	return ErrLoginRequired
}

func (c CLI) confirmer(strict bool) controller.Confirmer {
	return controller.ConfirmFunc(func(question string) bool {
		if c.option.Force {
			return true
		}
		if !c.interactive {
			fmt.Fprintln(c.stderr, color.YellowString("%s\nNot a terminal, skipped (use --force).", question))
			return false
		}
		if strict {
			return prompt.ConfirmYes(question)
		}
		return prompt.Confirm(question)
	})
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c CLI) newProgressBar(total int64, description string) *progressbar.ProgressBar {
	w := c.stderr
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// progressSaver draws a progress bar while a download is written
type progressSaver struct {
	inner controller.Saver
	cli   CLI
}

func (s progressSaver) Save(name string, r io.Reader, size int64) (string, error) {
	if s.cli.interactive {
		bar := s.cli.newProgressBar(size, "Downloading "+name)
		defer bar.Finish()
		r = io.TeeReader(r, bar)
	}
	return s.inner.Save(name, r, size)
}

// localFile describes path for upload, drawing progress while it is read
func (c CLI) localFile(path string) (controller.LocalFile, error) {
	f, err := controller.OpenLocalFile(path)
	if err != nil {
		return f, err
	}
	if !c.interactive {
		return f, nil
	}
	open := f.Open
	f.Open = func() (io.ReadCloser, error) {
		rc, err := open()
		if err != nil {
			return nil, err
		}
		bar := c.newProgressBar(f.Size, "Uploading "+f.Name)
		return progressReader{Reader: io.TeeReader(rc, bar), closer: rc, bar: bar}, nil
	}
	return f, nil
}

type progressReader struct {
	io.Reader
	closer io.Closer
	bar    *progressbar.ProgressBar
}

func (r progressReader) Close() error {
	_ = r.bar.Finish()
	return r.closer.Close()
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/babarot/rtrash/internal/controller"
	"github.com/babarot/rtrash/internal/session"
	"github.com/babarot/rtrash/internal/state"
	"github.com/babarot/rtrash/internal/transport"
	"github.com/babarot/rtrash/internal/ui"
	"github.com/babarot/rtrash/internal/ui/prompt"
	"github.com/fatih/color"
)

const maxLoginAttempts = 3

var errNoTerminal = errors.New("not a terminal")

// Browse runs the interactive browser. Whenever the session is lost the
// browser closes, the user signs in again and a fresh browser starts.
func (c CLI) Browse(ctx context.Context) error {
	if !c.interactive {
		return fmt.Errorf("browse: %w (try %q)", errNoTerminal, c.version.AppName+" ls")
	}

	for {
		app := state.New()
		tui := ui.New(c.config.UI, app, c.config.Server.URL)
		nav := state.NewNavigator(tui.Quit)

		conn, err := c.connect(nav)
		if err != nil {
			return err
		}
		saver, err := controller.NewDiskSaver(c.config.Transfer.DownloadDir, "")
		if err != nil {
			return err
		}
		ctrl := controller.New(conn.client, conn.session,
			app.Bindings(tui.Confirmer(), saver, nav),
			controller.WithMaxUploadSize(c.config.Transfer.MaxUploadBytes()),
		)

		if err := tui.Run(ctrl); err != nil {
			return err
		}
		if !nav.Requested() {
			return nil
		}

		slog.Info("session required, asking for credentials")
		if err := c.signIn(ctx, conn, ""); err != nil {
			if errors.Is(err, prompt.ErrInputCanceled) {
				return nil
			}
			return err
		}
	}
}

func (c CLI) Login(ctx context.Context, user string) error {
	conn, err := c.connect(transport.NavigatorFunc(func() {}))
	if err != nil {
		return err
	}
	err = c.signIn(ctx, conn, user)
	if errors.Is(err, prompt.ErrInputCanceled) {
		return nil
	}
	return err
}

// signIn asks for credentials until the service accepts them or the
// attempts run out.
func (c CLI) signIn(ctx context.Context, conn *connection, user string) error {
	if !c.interactive {
		return fmt.Errorf("login: %w", errNoTerminal)
	}
	fmt.Fprintf(c.stderr, "Sign in to %s\n", color.New(color.Bold).Sprint(c.config.Server.URL))

	for attempt := 1; ; attempt++ {
		name := user
		if name == "" {
			var err error
			name, err = prompt.Username(os.Getenv("USER"))
			if err != nil {
				return err
			}
		}
		pass, err := prompt.Password()
		if err != nil {
			return err
		}

		err = conn.session.Login(ctx, name, pass)
		switch {
		case err == nil:
			fmt.Fprintln(c.stderr, color.GreenString("✅ Signed in as %s", name))
			return nil
		case errors.Is(err, session.ErrInvalidCredentials) && attempt < maxLoginAttempts:
			fmt.Fprintln(c.stderr, color.RedString("Invalid username or password, try again."))
		default:
			return err
		}
	}
}

// Package ui is the interactive terminal front end.
package ui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/babarot/rtrash/internal/config"
	"github.com/babarot/rtrash/internal/controller"
	"github.com/babarot/rtrash/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

// UI runs the browser and serves the questions workflows ask while it runs.
type UI struct {
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}

	config config.UI
	app    *state.App
	server string
}

func New(cfg config.UI, app *state.App, server string) *UI {
	return &UI{
		config: cfg,
		app:    app,
		server: server,
		done:   make(chan struct{}),
	}
}

// Confirmer asks in a dialog and blocks the calling workflow until answered.
// Questions asked after the program ended are declined.
func (u *UI) Confirmer() controller.Confirmer {
	return controller.ConfirmFunc(func(prompt string) bool {
		p := u.current()
		if p == nil {
			return false
		}
		reply := make(chan bool, 1)
		go p.Send(confirmRequestMsg{prompt: prompt, reply: reply})
		select {
		case ok := <-reply:
			return ok
		case <-u.done:
			return false
		}
	})
}

// Quit stops the browser. Safe to call from any goroutine.
func (u *UI) Quit() {
	if p := u.current(); p != nil {
		p.Quit()
	}
}

func (u *UI) current() *tea.Program {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.program
}

// Run shows the browser until the user quits or Quit is called.
func (u *UI) Run(ctrl *controller.Controller) error {
	m := NewModel(u.config, u.app, ctrl, u.server)
	p := tea.NewProgram(m, tea.WithAltScreen())

	u.mu.Lock()
	u.program = p
	u.mu.Unlock()

	// Send blocks until the event loop reads it, and state changes can come
	// from inside Update
	u.app.OnChange(func() { go p.Send(stateChangedMsg{}) })
	defer func() {
		u.app.OnChange(nil)
		close(u.done)
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}

	if fm, ok := final.(*Model); ok && fm.state.current == QUITTING {
		slog.Debug("browser closed by user")
		if msg := u.config.ExitMessage; msg != "" {
			fmt.Println(msg)
		}
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

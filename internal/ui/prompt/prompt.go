// Package prompt holds the small line-mode questions asked outside the
// browser: confirmations and login credentials.
package prompt

import (
	"errors"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jimschubert/answer/validate"
)

var ErrInputCanceled = errors.New("input is canceled")

// Confirm asks a y/N question; any failure counts as no.
func Confirm(prompt string) bool {
	m := NewConfirm(prompt)
	if _, err := tea.NewProgram(&m, tea.WithOutput(os.Stderr)).Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false
	}
	return m.Selected().IsAccepted()
}

// ConfirmYes requires the user to type YES.
func ConfirmYes(prompt string) bool {
	m := NewConfirm(prompt)
	m.Strict = true
	if _, err := tea.NewProgram(&m, tea.WithOutput(os.Stderr)).Run(); err != nil {
		slog.Error("confirmYes failed", "error", err)
		return false
	}
	return m.Selected().IsAccepted()
}

func Username(placeholder string) (string, error) {
	m := NewInput("Username:")
	m.Placeholder = placeholder
	m.Validate = validate.NewValidation().
		MinLength(1, "min: 1 characters").
		Build()
	return run(&m)
}

func Password() (string, error) {
	m := NewInput("Password:")
	m.EchoMode = textinput.EchoPassword
	return run(&m)
}

func run(m *InputModel) (string, error) {
	if _, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run(); err != nil {
		return "", err
	}
	if m.Canceled() {
		return "", ErrInputCanceled
	}
	return m.Value(), nil
}

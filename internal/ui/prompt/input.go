package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// InputModel reads one line of text
type InputModel struct {
	PromptPrefix string
	Prompt       string
	Placeholder  string
	EchoMode     textinput.EchoMode
	Validate     func(string) error

	prefixStyle lipgloss.Style
	errStyle    lipgloss.Style
	hintStyle   lipgloss.Style

	input     textinput.Model
	err       error
	canceled  bool
	submitted bool

	enter key.Binding
	quit  key.Binding
}

func NewInput(prompt string) InputModel {
	return InputModel{
		PromptPrefix: "? ",
		Prompt:       prompt,
		prefixStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
		errStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.ErrorPrefix)),
		hintStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		enter:        key.NewBinding(key.WithKeys(tea.KeyEnter.String())),
		quit:         key.NewBinding(key.WithKeys(tea.KeyEsc.String(), tea.KeyCtrlC.String())),
	}
}

func (m *InputModel) Init() tea.Cmd {
	in := textinput.New()
	in.Prompt = strings.TrimSuffix(m.Prompt, " ") + " "
	in.Placeholder = m.Placeholder
	in.PlaceholderStyle = m.hintStyle
	in.EchoMode = m.EchoMode
	in.EchoCharacter = '•'
	in.Focus()
	m.input = in
	if m.Validate == nil {
		m.Validate = func(string) error { return nil }
	}
	return textinput.Blink
}

func (m *InputModel) Value() string { return m.input.Value() }

func (m *InputModel) Canceled() bool { return m.canceled }

func (m *InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.quit):
			m.canceled = true
			return m, tea.Quit
		case key.Matches(k, m.enter):
			m.err = m.Validate(m.input.Value())
			if m.err == nil {
				m.submitted = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.err = m.Validate(m.input.Value())
	}
	return m, cmd
}

func (m *InputModel) View() string {
	if m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.prefixStyle.Render(m.PromptPrefix))
	if m.submitted {
		b.WriteString(m.input.Prompt)
		if m.EchoMode == textinput.EchoNormal {
			b.WriteString(m.input.Value())
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.input.View())
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.errStyle.Render("✘ "))
		b.WriteString(m.hintStyle.Render(m.err.Error()))
	}
	return b.String()
}

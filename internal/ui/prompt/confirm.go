package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is the outcome of a confirmation
type Decision int

const (
	Undecided Decision = iota
	Accepted
	Denied
)

func (d Decision) String() string {
	return [...]string{"undecided", "accepted", "denied"}[d]
}

func (d Decision) IsAccepted() bool { return d == Accepted }

// ConfirmModel asks a yes/no question. In strict mode only the exact word
// YES followed by enter accepts; anything else denies.
type ConfirmModel struct {
	PromptPrefix string
	Prompt       string
	Strict       bool

	prefixStyle lipgloss.Style
	hintStyle   lipgloss.Style
	okStyle     lipgloss.Style
	ngStyle     lipgloss.Style

	typed    string
	selected Decision
	done     bool
}

func NewConfirm(prompt string) ConfirmModel {
	return ConfirmModel{
		PromptPrefix: "? ",
		Prompt:       prompt,
		prefixStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
		hintStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		okStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		ngStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
	}
}

func (m *ConfirmModel) Selected() Decision { return m.selected }

func (m *ConfirmModel) Init() tea.Cmd { return nil }

func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.finish(Denied)
	}

	if !m.Strict {
		switch strings.ToLower(k.String()) {
		case "y":
			return m.finish(Accepted)
		case "n", "enter":
			return m.finish(Denied)
		}
		return m, nil
	}

	switch k.Type {
	case tea.KeyEnter:
		if m.typed == "YES" {
			return m.finish(Accepted)
		}
		return m.finish(Denied)
	case tea.KeyBackspace:
		if m.typed != "" {
			m.typed = m.typed[:len(m.typed)-1]
		}
	case tea.KeyRunes:
		// only the next letter of YES is accepted
		if n := len(m.typed); n < 3 && string(k.Runes) == "YES"[n:n+1] {
			m.typed += string(k.Runes)
		}
	}
	return m, nil
}

func (m *ConfirmModel) finish(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

func (m *ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(m.prefixStyle.Render(m.PromptPrefix))
	b.WriteString(m.Prompt)
	b.WriteString(" ")

	if m.done {
		if m.selected.IsAccepted() {
			b.WriteString(m.okStyle.Render("yes"))
		} else {
			b.WriteString(m.ngStyle.Render("no"))
		}
		b.WriteString("\n")
		return b.String()
	}

	if !m.Strict {
		b.WriteString(m.hintStyle.Render("(y/N)"))
		return b.String()
	}

	b.WriteString(m.hintStyle.Render("(type YES) "))
	b.WriteString(m.typed)
	switch {
	case m.typed == "YES":
		b.WriteString(" " + m.okStyle.Render("✔"))
	case m.typed != "":
		b.WriteString(" " + m.ngStyle.Render("✘"))
	}
	return b.String()
}

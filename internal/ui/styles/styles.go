package styles

import (
	"github.com/babarot/rtrash/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// Color chart: https://github.com/muesli/termenv

type Styles struct {
	Title        lipgloss.Style
	Pane         lipgloss.Style
	FocusedPane  lipgloss.Style
	PaneTitle    lipgloss.Style
	Cursor       lipgloss.Style
	Item         lipgloss.Style
	Placeholder  lipgloss.Style
	Label        lipgloss.Style
	StatusNormal lipgloss.Style
	StatusError  lipgloss.Style
	Dialog       lipgloss.Style
}

func New(cfg config.UI) *Styles {
	s := cfg.Style
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.PaneBorder)).
		Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(s.Cursor)).
			Padding(0, 1),
		Pane:        pane,
		FocusedPane: pane.BorderForeground(lipgloss.Color(s.FocusedBorder)),
		PaneTitle: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),
		Cursor: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(s.Cursor)).
			Foreground(lipgloss.Color(s.Cursor)).
			Padding(0, 0, 0, 1),
		Item: lipgloss.NewStyle().
			Padding(0, 0, 0, 2),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.Placeholder)).
			Italic(true).
			Padding(0, 0, 0, 2),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}),
		StatusNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.Status.Normal)),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(s.Status.Error)),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(s.DeletionDialog)).
			Foreground(lipgloss.Color(s.DeletionDialog)).
			Bold(true).
			Padding(1, 1).
			Align(lipgloss.Center),
	}
}

// Status picks the style for a status line
func (s *Styles) Status(isError bool) lipgloss.Style {
	if isError {
		return s.StatusError
	}
	return s.StatusNormal
}

// RenderDialog renders content in a dialog box of the given width
func (s *Styles) RenderDialog(content string, width int) string {
	return s.Dialog.Width(width).Render(content)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/babarot/rtrash/internal/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func (m *Model) View() string {
	switch m.state.current {
	case CONFIRM_VIEW:
		return m.confirmView()
	case QUITTING:
		return ""
	default:
		return m.mainView()
	}
}

func (m *Model) mainView() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Title.Render("rtrash"),
		m.styles.Label.Render(m.server),
	)

	files := m.paneView(focusFiles, "Files", m.files.View(), m.snap.Files,
		m.fieldView("Upload", m.upload.View()),
		m.statusView(m.snap.Statuses[state.UploadStatus]),
		m.fieldView("Name", m.action.View()),
		m.statusView(m.snap.Statuses[state.ActionStatus]),
	)
	trash := m.paneView(focusTrash, "Trash", m.trash.View(), m.snap.Trash,
		m.fieldView("Name", m.trashName.View()),
		m.statusView(m.snap.Statuses[state.TrashStatus]),
	)

	helpView := m.help.View(m.keyMapForFocus())
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, files, trash),
		lipgloss.NewStyle().Margin(0, 1).Render(helpView),
	)
}

func (m *Model) keyMapForFocus() help.KeyMap {
	if m.state.focus.isList() {
		return *m.keys
	}
	return m.keys.AsInputKeyMap()
}

// paneView draws one pane; a list that failed to load shows its error instead
func (m *Model) paneView(f focus, title, listView string, l state.List, footer ...string) string {
	style := m.styles.Pane
	if m.state.focus == f || (f == focusFiles && (m.state.focus == focusUpload || m.state.focus == focusAction)) ||
		(f == focusTrash && m.state.focus == focusTrashName) {
		style = m.styles.FocusedPane
	}

	body := listView
	switch {
	case l.Err != "":
		body = m.styles.StatusError.Render(wordwrap.String(l.Err, m.paneWidth()))
	case !l.Loaded:
		body = m.styles.Placeholder.Render("Loading...")
	}
	body = lipgloss.NewStyle().Height(m.files.Height()).Render(body)

	rows := append([]string{m.styles.PaneTitle.Render(title), body, ""}, footer...)
	return style.Width(m.paneWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) fieldView(label, input string) string {
	return m.styles.Label.Render(fmt.Sprintf("%-7s", label+":")) + " " + input
}

func (m *Model) statusView(s state.Status) string {
	if s.Msg == "" {
		return " "
	}
	return m.styles.Status(s.IsError).Render(wordwrap.String(s.Msg, m.paneWidth()))
}

// confirmView renders the pending question over the main view
func (m *Model) confirmView() string {
	base := m.mainView()
	if len(m.confirms) == 0 {
		return base
	}
	width := min(60, m.width-4)
	content := lipgloss.JoinVertical(lipgloss.Center,
		wordwrap.String(m.confirms[0].prompt, width-4),
		"",
		"(y/n)",
	)
	return m.renderDialogOverBase(base, m.styles.RenderDialog(content, width))
}

// renderDialogOverBase renders dialog box centered over base view
func (m *Model) renderDialogOverBase(baseView, dialogContent string) string {
	baseLines := strings.Split(baseView, "\n")
	dialogLines := strings.Split(dialogContent, "\n")

	start := max((len(baseLines)-len(dialogLines))/2, 0)
	for i, line := range dialogLines {
		centered := lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render(line)
		if start+i < len(baseLines) {
			baseLines[start+i] = centered
		} else {
			baseLines = append(baseLines, centered)
		}
	}

	return strings.Join(baseLines, "\n")
}

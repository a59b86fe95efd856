package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/babarot/rtrash/internal/controller"
	"github.com/babarot/rtrash/internal/state"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.run("start", m.ctrl.Start),
	)
}

// run executes a workflow off the event loop. Workflows report through
// the state, so nothing comes back as a message.
func (m *Model) run(name string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			slog.Debug("workflow finished with error", "workflow", name, "error", err)
		}
		return nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case stateChangedMsg:
		m.sync()
		return m, nil

	case confirmRequestMsg:
		m.confirms = append(m.confirms, msg)
		if m.state.current != CONFIRM_VIEW {
			m.state.SetView(CONFIRM_VIEW)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state.current {
		case CONFIRM_VIEW:
			return m.handleConfirmViewKeyPress(msg)
		default:
			return m.handleMainViewKeyPress(msg)
		}
	}

	return m, m.updateFocused(msg)
}

// answer replies to the oldest pending question
func (m *Model) answer(ok bool) {
	if len(m.confirms) == 0 {
		return
	}
	req := m.confirms[0]
	m.confirms = m.confirms[1:]
	req.reply <- ok
	if len(m.confirms) == 0 {
		m.state.SetView(MAIN_VIEW)
	}
}

func (m *Model) handleConfirmViewKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm.Yes):
		m.answer(true)
	case key.Matches(msg, m.keys.Confirm.No):
		m.answer(false)
	case msg.String() == "ctrl+c":
		for len(m.confirms) > 0 {
			m.answer(false)
		}
		m.state.SetView(QUITTING)
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleMainViewKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slog.Debug("key pressed", "key", msg.String(), "focus", m.state.focus)

	switch {
	case msg.String() == "ctrl+c",
		m.state.focus.isList() && key.Matches(msg, m.keys.Common.Quit):
		m.state.SetView(QUITTING)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Common.NextFocus):
		m.setFocus(m.state.focus.next())
		return m, nil

	case key.Matches(msg, m.keys.Common.PrevFocus):
		m.setFocus(m.state.focus.prev())
		return m, nil
	}

	if m.state.focus.isList() {
		return m.handlePaneKeyPress(msg)
	}
	return m.handleInputKeyPress(msg)
}

func (m *Model) focusedList() *list.Model {
	if m.state.focus == focusTrash {
		return &m.trash
	}
	return &m.files
}

func (m *Model) handlePaneKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys.Pane
	switch {
	case key.Matches(msg, k.Select):
		if item, ok := m.focusedList().SelectedItem().(entryItem); ok {
			m.ctrl.Select(item.Entry)
			m.sync()
		}
		return m, nil

	case key.Matches(msg, k.Upload):
		m.setFocus(focusUpload)
		return m, nil

	case key.Matches(msg, k.EditFilename):
		if m.state.focus == focusTrash {
			m.setFocus(focusTrashName)
		} else {
			m.setFocus(focusAction)
		}
		return m, nil

	case key.Matches(msg, k.Download):
		return m, m.run("download", m.ctrl.Download)

	case key.Matches(msg, k.SoftDelete):
		return m, m.run("soft-delete", m.ctrl.SoftDelete)

	case key.Matches(msg, k.Restore):
		return m, m.run("restore", m.ctrl.Restore)

	case key.Matches(msg, k.DeletePermanent):
		return m, m.run("delete-permanent", m.ctrl.DeletePermanent)

	case key.Matches(msg, k.EmptyTrash):
		return m, m.run("empty-trash", m.ctrl.EmptyTrash)

	case key.Matches(msg, k.Refresh):
		if m.state.focus == focusTrash {
			return m, m.run("refresh-trash", m.ctrl.RefreshTrash)
		}
		return m, m.run("refresh-files", m.ctrl.RefreshFiles)

	case key.Matches(msg, k.Logout):
		return m, m.run("logout", m.ctrl.Logout)

	case key.Matches(msg, m.keys.Common.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	l := m.focusedList()
	*l, cmd = l.Update(msg)
	return m, cmd
}

func (m *Model) handleInputKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Input.Leave):
		if m.state.focus == focusTrashName {
			m.setFocus(focusTrash)
		} else {
			m.setFocus(focusFiles)
		}
		return m, nil

	case key.Matches(msg, m.keys.Input.Submit):
		switch m.state.focus {
		case focusUpload:
			return m, m.submitUpload()
		case focusAction:
			return m, m.run("download", m.ctrl.SubmitAction)
		case focusTrashName:
			return m, m.run("delete-permanent", m.ctrl.SubmitTrash)
		}
	}
	return m, m.updateFocused(msg)
}

// submitUpload picks the typed path as the upload file and sends it
func (m *Model) submitUpload() tea.Cmd {
	path := strings.TrimSpace(m.upload.Value())
	if path == "" {
		m.app.ClearUpload()
		return m.run("upload", m.ctrl.Upload)
	}
	file, err := controller.OpenLocalFile(expandHome(path))
	if err != nil {
		m.app.Status(state.UploadStatus).Set(err.Error(), true)
		return nil
	}
	m.app.SelectUpload(file)
	return m.run("upload", m.ctrl.Upload)
}

// updateFocused forwards msg to the focused text field and writes its value
// back into the state
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.state.focus {
	case focusUpload:
		m.upload, cmd = m.upload.Update(msg)
	case focusAction:
		m.action, cmd = m.action.Update(msg)
		if v := m.action.Value(); v != m.snap.ActionFilename {
			m.snap.ActionFilename = v
			m.app.ActionField().SetValue(v)
		}
	case focusTrashName:
		m.trashName, cmd = m.trashName.Update(msg)
		if v := m.trashName.Value(); v != m.snap.TrashFilename {
			m.snap.TrashFilename = v
			m.app.TrashField().SetValue(v)
		}
	}
	return cmd
}

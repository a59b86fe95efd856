package ui

import (
	"github.com/babarot/rtrash/internal/config"
	"github.com/babarot/rtrash/internal/controller"
	"github.com/babarot/rtrash/internal/state"
	"github.com/babarot/rtrash/internal/ui/keys"
	"github.com/babarot/rtrash/internal/ui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	// rows taken by everything but the lists
	chromeHeight = 14
)

// Model is the dual-pane browser
type Model struct {
	ctrl   *controller.Controller
	app    *state.App
	snap   state.Snapshot
	server string

	state *ViewState
	keys  *keys.KeyMap

	files     list.Model
	trash     list.Model
	upload    textinput.Model
	action    textinput.Model
	trashName textinput.Model

	// questions from workflows, oldest first
	confirms []confirmRequestMsg

	config config.UI
	styles *styles.Styles
	help   help.Model

	width, height int
}

func newList(cfg config.UI, s *styles.Styles, focused bool) list.Model {
	l := list.New(nil, entryDelegate{styles: s, focused: focused}, defaultWidth/2, defaultHeight-chromeHeight)
	switch cfg.Paginator {
	case "arabic":
		l.Paginator.Type = paginator.Arabic
	default:
		l.Paginator.Type = paginator.Dots
	}
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return l
}

func newInput(placeholder string, s *styles.Styles) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.PlaceholderStyle = s.Placeholder.UnsetPadding().UnsetItalic()
	return in
}

// NewModel creates the browser model bound to app and driven by ctrl
func NewModel(cfg config.UI, app *state.App, ctrl *controller.Controller, server string) *Model {
	s := styles.New(cfg)
	m := &Model{
		ctrl:      ctrl,
		app:       app,
		server:    server,
		state:     NewViewState(),
		keys:      keys.NewKeyMap(),
		files:     newList(cfg, s, true),
		trash:     newList(cfg, s, false),
		upload:    newInput("path/to/local/file", s),
		action:    newInput("file name", s),
		trashName: newInput("file name", s),
		config:    cfg,
		styles:    s,
		help:      help.New(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	paneWidth := m.paneWidth()
	listHeight := max(height-chromeHeight, 3)
	m.files.SetSize(paneWidth, listHeight)
	m.trash.SetSize(paneWidth, listHeight)

	inputWidth := max(paneWidth-10, 10)
	m.upload.Width = inputWidth
	m.action.Width = inputWidth
	m.trashName.Width = inputWidth
	m.help.Width = width
}

// paneWidth is the inner width of one pane
func (m *Model) paneWidth() int {
	return max(m.width/2-4, 20)
}

// setFocus moves key input to f and updates cursors
func (m *Model) setFocus(f focus) {
	m.state.focus = f
	m.files.SetDelegate(entryDelegate{styles: m.styles, focused: f == focusFiles})
	m.trash.SetDelegate(entryDelegate{styles: m.styles, focused: f == focusTrash})

	m.upload.Blur()
	m.action.Blur()
	m.trashName.Blur()
	switch f {
	case focusUpload:
		m.upload.Focus()
	case focusAction:
		m.action.Focus()
	case focusTrashName:
		m.trashName.Focus()
	}
}

// sync copies the application state into the widgets
func (m *Model) sync() {
	snap := m.app.Snapshot()

	m.files.SetItems(toItems(snap.Files.Entries))
	m.trash.SetItems(toItems(snap.Trash.Entries))

	if m.action.Value() != snap.ActionFilename {
		m.action.SetValue(snap.ActionFilename)
	}
	if m.trashName.Value() != snap.TrashFilename {
		m.trashName.SetValue(snap.TrashFilename)
	}
	if m.snap.Upload != nil && snap.Upload == nil {
		m.upload.SetValue("")
	}
	m.snap = snap
}

package keys

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// Common keys shared across views
type Common struct {
	Quit      key.Binding
	Help      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
}

// Pane keys apply while a list has focus
type Pane struct {
	Select          key.Binding
	Upload          key.Binding
	EditFilename    key.Binding
	Download        key.Binding
	SoftDelete      key.Binding
	Restore         key.Binding
	DeletePermanent key.Binding
	EmptyTrash      key.Binding
	Refresh         key.Binding
	Logout          key.Binding
}

// Input keys apply while a text field has focus
type Input struct {
	Submit key.Binding
	Leave  key.Binding
}

// Confirm view specific keys
type Confirm struct {
	Yes key.Binding
	No  key.Binding
}

// KeyMap holds all key bindings and help functions
type KeyMap struct {
	Common  Common
	Pane    Pane
	Input   Input
	Confirm Confirm

	shortHelp func() []key.Binding
	fullHelp  func() [][]key.Binding
}

var (
	DefaultKeyMapListCursorUp   = list.DefaultKeyMap().CursorUp
	DefaultKeyMapListCursorDown = list.DefaultKeyMap().CursorDown
	DefaultKeyMapListNextPage   = list.DefaultKeyMap().NextPage
	DefaultKeyMapListPrevPage   = list.DefaultKeyMap().PrevPage
)

func NewKeyMap() *KeyMap {
	km := &KeyMap{}

	km.Common = Common{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("s+tab", "prev"),
		),
	}

	km.Pane = Pane{
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "pick name"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		EditFilename: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "type name"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		SoftDelete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "trash"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		DeletePermanent: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete forever"),
		),
		EmptyTrash: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "empty trash"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "R"),
			key.WithHelp("R", "refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
	}

	km.Input = Input{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}

	km.Confirm = Confirm{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}

	km.shortHelp = km.defaultShortHelp
	km.fullHelp = km.defaultFullHelp
	return km
}

// ShortHelp returns condensed help view
func (k KeyMap) ShortHelp() []key.Binding {
	return k.shortHelp()
}

// FullHelp returns complete help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return k.fullHelp()
}

func (k KeyMap) defaultShortHelp() []key.Binding {
	return []key.Binding{
		k.Pane.Download, k.Pane.SoftDelete, k.Pane.Restore, k.Pane.DeletePermanent,
		k.Common.NextFocus, k.Common.Quit, k.Common.Help,
	}
}

func (k KeyMap) defaultFullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			DefaultKeyMapListCursorUp,
			DefaultKeyMapListCursorDown,
			DefaultKeyMapListNextPage,
			DefaultKeyMapListPrevPage,
			k.Pane.Select,
		},
		{k.Pane.Upload, k.Pane.Download, k.Pane.SoftDelete, k.Pane.Restore, k.Pane.EditFilename},
		{k.Pane.DeletePermanent, k.Pane.EmptyTrash, k.Pane.Refresh, k.Pane.Logout},
		{k.Common.NextFocus, k.Common.PrevFocus, k.Common.Help, k.Common.Quit},
	}
}

// AsInputKeyMap returns a KeyMap that only shows text field help
func (k KeyMap) AsInputKeyMap() KeyMap {
	newMap := k
	newMap.shortHelp = func() []key.Binding {
		return []key.Binding{k.Input.Submit, k.Input.Leave, k.Common.NextFocus}
	}
	newMap.fullHelp = func() [][]key.Binding {
		return [][]key.Binding{{k.Input.Submit, k.Input.Leave, k.Common.NextFocus, k.Common.PrevFocus}}
	}
	return newMap
}

// AsConfirmKeyMap returns a KeyMap for the confirmation dialog
func (k KeyMap) AsConfirmKeyMap() KeyMap {
	newMap := k
	newMap.shortHelp = func() []key.Binding {
		return []key.Binding{k.Confirm.Yes, k.Confirm.No}
	}
	newMap.fullHelp = func() [][]key.Binding {
		return [][]key.Binding{{k.Confirm.Yes, k.Confirm.No}}
	}
	return newMap
}

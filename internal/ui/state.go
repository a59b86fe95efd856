package ui

// ViewType represents the current view state
type ViewType uint8

const (
	MAIN_VIEW ViewType = iota
	CONFIRM_VIEW
	QUITTING
)

func (v ViewType) String() string {
	switch v {
	case MAIN_VIEW:
		return "main view"
	case CONFIRM_VIEW:
		return "confirm view"
	case QUITTING:
		return "quit"
	}
	return "unknown"
}

// focus is the element receiving keys in the main view
type focus uint8

const (
	focusFiles focus = iota
	focusTrash
	focusUpload
	focusAction
	focusTrashName

	focusCount
)

func (f focus) next() focus { return (f + 1) % focusCount }

func (f focus) prev() focus { return (f + focusCount - 1) % focusCount }

func (f focus) isList() bool { return f == focusFiles || f == focusTrash }

type ViewState struct {
	current  ViewType
	previous ViewType
	focus    focus
}

func NewViewState() *ViewState {
	return &ViewState{
		current:  MAIN_VIEW,
		previous: MAIN_VIEW,
		focus:    focusFiles,
	}
}

// SetView changes the current view and updates the previous view
func (v *ViewState) SetView(newView ViewType) {
	v.previous = v.current
	v.current = newView
}

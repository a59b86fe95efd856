package ui

import (
	"fmt"
	"io"

	"github.com/babarot/rtrash/internal/listing"
	"github.com/babarot/rtrash/internal/ui/styles"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// entryItem adapts a listing entry to the bubbles list
type entryItem struct {
	listing.Entry
}

func (i entryItem) FilterValue() string { return i.Name }

func toItems(entries []listing.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{e}
	}
	return items
}

// entryDelegate renders one name per line
type entryDelegate struct {
	styles  *styles.Styles
	focused bool
}

func (d entryDelegate) Height() int                             { return 1 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(entryItem)
	if !ok || m.Width() <= 0 {
		return
	}

	textWidth := m.Width() - d.styles.Item.GetPaddingLeft()
	name := ansi.Truncate(item.Name, textWidth, ellipsis)

	switch {
	case item.Placeholder:
		name = d.styles.Placeholder.Render(name)
	case index == m.Index() && d.focused:
		name = d.styles.Cursor.Render(name)
	default:
		name = d.styles.Item.Render(name)
	}
	fmt.Fprint(w, name)
}

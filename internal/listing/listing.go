// Package listing turns the service's plain-text listings into entries.
package listing

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

const (
	// HeaderMarker starts decoration lines the service prepends to listings
	HeaderMarker = "==="

	// EmptyText is shown in place of an empty listing
	EmptyText = "No files found"
)

// Entry is one rendered row of a pane
type Entry struct {
	Name string

	// Placeholder rows are not selectable
	Placeholder bool
}

func (e Entry) String() string {
	return e.Name
}

// Names splits a listing into trimmed file names in server order, dropping
// blank lines and header lines.
func Names(text string) []string {
	lines := strings.Split(text, "\n")
	lines = lo.Filter(lines, func(line string, _ int) bool {
		return strings.TrimSpace(line) != "" && !strings.HasPrefix(line, HeaderMarker)
	})
	return lo.Map(lines, func(line string, _ int) string {
		return strings.TrimSpace(line)
	})
}

// Parse returns the entries to render for a listing. An empty listing
// yields exactly one placeholder entry.
func Parse(text string) []Entry {
	return FromNames(Names(text))
}

// FromNames wraps names into selectable entries, or the placeholder if none.
func FromNames(names []string) []Entry {
	if len(names) == 0 {
		return []Entry{Placeholder()}
	}
	return lo.Map(names, func(name string, _ int) Entry {
		return Entry{Name: name}
	})
}

func Placeholder() Entry {
	return Entry{Name: EmptyText, Placeholder: true}
}

// Selectable drops placeholder entries
func Selectable(entries []Entry) []Entry {
	return lo.Reject(entries, func(e Entry, _ int) bool { return e.Placeholder })
}

// Filter keeps names matching any of the glob patterns. No patterns keeps all.
func Filter(names []string, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		return names, nil
	}
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return lo.Filter(names, func(name string, _ int) bool {
		return lo.SomeBy(globs, func(g glob.Glob) bool { return g.Match(name) })
	}), nil
}

// Package log builds the slog logger: a charmbracelet/log handler with
// fixed-width colored levels.
package log

import (
	"log/slog"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var defaultStyles = sync.OnceValue(func() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		styles.Levels[ls.level] = ls.style.SetString(padLevel(ls.level.String()))
	}
	return styles
})

func padLevel(s string) string {
	s = strings.ToUpper(s)
	if len(s) < 5 {
		s += strings.Repeat(" ", 5-len(s))
	}
	return s
}

// New creates a logger with the given options
func New(opts ...Option) *slog.Logger {
	o := DefaultOptions()
	o.Apply(opts...)

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles)

	logger := slog.New(handler)
	for _, attr := range o.Attrs {
		logger = logger.With(attr)
	}

	if o.Default {
		charmlog.SetDefault(handler)
		slog.SetDefault(logger)
	}
	return logger
}

// ParseLevel maps a config level name to a Level, falling back to info.
func ParseLevel(s string) Level {
	l, err := charmlog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return InfoLevel
	}
	return l
}

// ParseFormatter maps a config format name to a Formatter, falling back to text.
func ParseFormatter(s string) Formatter {
	switch strings.ToLower(s) {
	case "json":
		return JSONFormatter
	case "logfmt":
		return LogfmtFormatter
	default:
		return TextFormatter
	}
}

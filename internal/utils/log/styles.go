package log

import "github.com/charmbracelet/lipgloss"

var levelStyles = []struct {
	level Level
	style lipgloss.Style
}{
	{DebugLevel, lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))},
	{InfoLevel, lipgloss.NewStyle().Foreground(lipgloss.Color("#27AE60"))},
	{WarnLevel, lipgloss.NewStyle().Foreground(lipgloss.Color("#F1C40F"))},
	{ErrorLevel, lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))},
	{FatalLevel, lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E74C3C")).
		Background(lipgloss.Color("#000000")).
		Bold(true)},
}

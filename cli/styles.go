package cli

import "github.com/charmbracelet/lipgloss"

// Colors follow the GNOME palette.
var (
	colorAccent  = lipgloss.Color("#3584e4")
	colorSuccess = lipgloss.Color("#2ec27e")
	colorWarning = lipgloss.Color("#e5a50a")
	colorError   = lipgloss.Color("#e01b24")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

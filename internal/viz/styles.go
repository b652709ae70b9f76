package viz

import "github.com/charmbracelet/lipgloss"

var (
	Cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	White   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	Dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	Dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	Magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

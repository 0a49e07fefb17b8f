package tui

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles of the page chrome. Document data itself stays
// unstyled so it reads the same in every terminal theme.
var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

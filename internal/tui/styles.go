package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	sidebarWidth  = 32
	previewLimit  = 40
	chromeHeight  = 7 // header + input + hint rows
	minBodyHeight = 5
)

var (
	colorAccent = lipgloss.Color("205")
	colorMuted  = lipgloss.Color("243")
	colorError  = lipgloss.Color("196")
	colorUser   = lipgloss.Color("75")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorMuted)

	convoTitleStyle  = lipgloss.NewStyle().Bold(true)
	convoActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	convoMetaStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorUser)
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	errorTextStyle      = lipgloss.NewStyle().Foreground(colorError)
	timestampStyle      = lipgloss.NewStyle().Foreground(colorMuted)

	// Markdown block styles
	heading1Style = lipgloss.NewStyle().Bold(true).Underline(true)
	heading2Style = lipgloss.NewStyle().Bold(true)
	heading3Style = lipgloss.NewStyle().Bold(true).Foreground(colorMuted)
	boldStyle     = lipgloss.NewStyle().Bold(true)

	hintStyle    = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	welcomeStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(1, 2)
	chipStyle    = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)
)

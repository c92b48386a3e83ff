package tui

import "charm.land/lipgloss/v2"

// Palette.
var (
	colorPrimary   = lipgloss.Color("#6366F1") // Indigo
	colorSecondary = lipgloss.Color("#14B8A6") // Teal
	colorSuccess   = lipgloss.Color("#22C55E")
	colorError     = lipgloss.Color("#F43F5E")
	colorText      = lipgloss.Color("#F8FAFC")
	colorTextDim   = lipgloss.Color("#94A3B8")
	colorBorder    = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	questionStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	selectedStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	unselectedStyle = lipgloss.NewStyle().Foreground(colorText)
	answeredStyle   = lipgloss.NewStyle().Foreground(colorSecondary)

	correctStyle   = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	incorrectStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	hintStyle = lipgloss.NewStyle().Foreground(colorTextDim).Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)

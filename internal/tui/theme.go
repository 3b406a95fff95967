package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the editor.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Category     lipgloss.Style
	Cursor       lipgloss.Style
	Selected     lipgloss.Style
	Muted        lipgloss.Style
	StatusInfo   lipgloss.Style
	StatusError  lipgloss.Style
	PromptBox    lipgloss.Style
	HelpBox      lipgloss.Style
	Primary      lipgloss.Color
	Border       lipgloss.Color
	MutedColor   lipgloss.Color
	SuccessColor lipgloss.Color
	ErrorColor   lipgloss.Color
}

// DefaultTheme is the default editor theme.
var DefaultTheme = Theme{
	Primary:      lipgloss.Color("#d946ef"),
	Border:       lipgloss.Color("#404040"),
	MutedColor:   lipgloss.Color("#737373"),
	SuccessColor: lipgloss.Color("#10b981"),
	ErrorColor:   lipgloss.Color("#ef4444"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Category: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#d946ef")),
	Cursor: lipgloss.NewStyle().
		Background(lipgloss.Color("#d946ef")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	PromptBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#d946ef")).
		Padding(0, 1),
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}

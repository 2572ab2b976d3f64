package ui

import "github.com/charmbracelet/lipgloss"

// Theme is the UI palette. It is chosen from configuration at startup and
// never mutated afterwards; the session core knows nothing about it.
type Theme struct {
	Title     lipgloss.Style
	Status    lipgloss.Style
	UserText  lipgloss.Style
	UserLabel lipgloss.Style
	Point     lipgloss.Style
	Caption   lipgloss.Style
	Pending   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Prompt    lipgloss.Style
}

// NewTheme returns the palette for the given name. Anything other than
// "light" selects the dark palette.
func NewTheme(name string) *Theme {
	accent := lipgloss.Color("220") // amber, both palettes
	var fg, muted, user lipgloss.Color
	if name == "light" {
		fg, muted, user = lipgloss.Color("235"), lipgloss.Color("243"), lipgloss.Color("25")
	} else {
		fg, muted, user = lipgloss.Color("252"), lipgloss.Color("245"), lipgloss.Color("39")
	}

	return &Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Status:    lipgloss.NewStyle().Foreground(muted),
		UserText:  lipgloss.NewStyle().Foreground(fg),
		UserLabel: lipgloss.NewStyle().Bold(true).Foreground(user),
		Point:     lipgloss.NewStyle().Foreground(fg),
		Caption:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		Pending:   lipgloss.NewStyle().Foreground(accent),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:      lipgloss.NewStyle().Foreground(muted),
		Prompt:    lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}

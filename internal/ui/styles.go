package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the search modal
type Styles struct {
	Title       lipgloss.Style
	Modal       lipgloss.Style
	Prompt      lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Notice      lipgloss.Style
	Result      lipgloss.Style
	Selected    lipgloss.Style
	Score       lipgloss.Style
	Snippet     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Result:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true),
		Score:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Snippet: lipgloss.NewStyle().Faint(true),
	}
}

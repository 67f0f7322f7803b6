package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Selected  lipgloss.Style
	Active    lipgloss.Style
	Pane      lipgloss.Style
	FocusPane lipgloss.Style
	Error     lipgloss.Style
	Price     lipgloss.Style
	Sale      lipgloss.Style
}

func defaultStyles() styles {
	border := lipgloss.RoundedBorder()
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Active:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		Pane:      lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		FocusPane: lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Price:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Sale:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Strikethrough(true),
	}
}

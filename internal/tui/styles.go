package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).Underline(true)
	tabStyle       = lipgloss.NewStyle().Faint(true)
	likedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
)

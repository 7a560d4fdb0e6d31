package ui

import "github.com/charmbracelet/lipgloss"

// The accent tracks the idle-wave teal so the chrome matches the bars.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#2F7585", Dark: "#409CB0"})

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#ECF2F8"})

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5C6470", Dark: "#9BA8B5"})

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#7A828C", Dark: "#76828E"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#44505C", Dark: "#B8C4CF"})
)

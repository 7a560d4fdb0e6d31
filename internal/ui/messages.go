package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time
type playbackEndedMsg struct{}

// tickCmd drives the render loop. The pipeline is designed around a 16 ms
// cadence, so the terminal animates at roughly 60 fps.
func tickCmd() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

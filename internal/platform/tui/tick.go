// Package tui runs the games and the clap meter in the terminal with
// Bubble Tea. Each frame tick drives both the game and the detector.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickInterval is one frame at fps, 60 when fps is not positive.
func tickInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// tickCmd schedules the next frame.
func tickCmd(fps int) tea.Cmd {
	return tea.Tick(tickInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

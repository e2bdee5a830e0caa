// Package tui provides the Bubble Tea front end for the snake game.
// It handles the terminal UI loop, input mapping, and score submission.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after
// the given interval. The interval is re-read from the game each tick,
// so slow food takes effect on the very next frame.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pythonix/internal/client"
	"pythonix/internal/engine"
)

const submitTimeout = 5 * time.Second

// submitResultMsg reports the outcome of a score post to the service.
type submitResultMsg struct {
	err error
}

// Model is the Bubble Tea model for a snake session. The game itself is
// a pointer, so the value-receiver Update methods share one state machine.
type Model struct {
	game   *engine.Game
	remote *client.Client // nil when playing offline
	mode   string

	keys KeyMap
	help help.Model

	width, height  int
	quitting       bool
	scoreSubmitted bool
	submitStatus   string
}

// NewModel creates a model around an existing game. The remote client is
// optional; without it scores stay local to the session.
func NewModel(game *engine.Game, remote *client.Client, mode string) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		game:   game,
		remote: remote,
		mode:   mode,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Start()
	return tickCmd(m.game.Interval())
}

// Update handles messages and advances the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case submitResultMsg:
		if msg.err != nil {
			m.submitStatus = "Score upload failed: " + msg.err.Error()
		} else {
			m.submitStatus = "Score uploaded"
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.game.QueueTurn(engine.DirUp)
	case key.Matches(msg, m.keys.Down):
		m.game.QueueTurn(engine.DirDown)
	case key.Matches(msg, m.keys.Left):
		m.game.QueueTurn(engine.DirLeft)
	case key.Matches(msg, m.keys.Right):
		m.game.QueueTurn(engine.DirRight)

	case key.Matches(msg, m.keys.Restart):
		if m.game.Phase() == engine.PhaseGameOver {
			m.game.Start()
			m.scoreSubmitted = false
			m.submitStatus = ""
			return m, tickCmd(m.game.Interval())
		}
	}

	return m, nil
}

// handleTick runs one simulation step and re-arms the timer at the
// game's current interval.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	res := m.game.Tick()

	if res.GameOver {
		if !m.scoreSubmitted {
			m.scoreSubmitted = true
			if cmd := m.submitCmd(); cmd != nil {
				return m, cmd
			}
		}
		// Stop ticking; restart re-arms the loop.
		return m, nil
	}

	return m, tickCmd(m.game.Interval())
}

// submitCmd posts the final score to the leaderboard service, if one is
// configured and there is anything to report.
func (m Model) submitCmd() tea.Cmd {
	snap := m.game.Snapshot()
	if m.remote == nil || snap.Score == 0 {
		return nil
	}

	remote := m.remote
	sub := client.ScoreSubmission{
		Score:        snap.Score,
		GameMode:     m.mode,
		GameDuration: snap.ElapsedSecs,
		FoodsEaten:   snap.FoodsEaten,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		_, err := remote.SubmitScore(ctx, sub)
		return submitResultMsg{err: err}
	}
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()

	view := renderHUD(snap) + "\n" + renderBoard(snap)
	view += "\n" + helpStyle.Render(m.help.View(m.keys))

	if snap.Phase == engine.PhaseGameOver {
		overlay := renderGameOver(snap, m.submitStatus)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
		}
		return overlay
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// Run starts the Bubble Tea program for one game session.
func Run(game *engine.Game, remote *client.Client, mode string) error {
	model := NewModel(game, remote, mode)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

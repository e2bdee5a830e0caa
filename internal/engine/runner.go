package engine

import (
	"context"
	"time"
)

// Events receives side-effect signals from the runner. Implementations
// render, play sounds or post scores; the engine itself stays pure.
type Events interface {
	Redraw(Snapshot)
	FoodEaten(kind FoodKind, score int)
	PowerWindow(active bool)
	GameOver(Snapshot)
}

// NopEvents discards all signals.
type NopEvents struct{}

func (NopEvents) Redraw(Snapshot)         {}
func (NopEvents) FoodEaten(FoodKind, int) {}
func (NopEvents) PowerWindow(bool)        {}
func (NopEvents) GameOver(Snapshot)       {}

// Runner drives a Game on a wall-clock timer. Each tick runs to
// completion before the next is armed, and the timer is re-armed at the
// game's current interval so the slow effect takes hold immediately.
type Runner struct {
	game   *Game
	events Events
}

// NewRunner creates a runner for the given game. A nil events sink is
// replaced with NopEvents.
func NewRunner(g *Game, ev Events) *Runner {
	if ev == nil {
		ev = NopEvents{}
	}
	return &Runner{game: g, events: ev}
}

// Game returns the underlying game, for input delivery via QueueTurn.
func (r *Runner) Game() *Game {
	return r.game
}

// Run starts the game if it is not already running and ticks it until
// GameOver or context cancellation. Returns nil on GameOver.
func (r *Runner) Run(ctx context.Context) error {
	if r.game.Phase() != PhaseRunning {
		r.game.Start()
	}
	r.events.Redraw(r.game.Snapshot())

	timer := time.NewTimer(r.game.Interval())
	defer timer.Stop()

	powerActive := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			res := r.game.Tick()
			if res.Ate {
				r.events.FoodEaten(res.AteKind, r.game.Score())
			}
			if res.PowerActive != powerActive {
				powerActive = res.PowerActive
				r.events.PowerWindow(powerActive)
			}
			if res.GameOver {
				r.events.GameOver(r.game.Snapshot())
				return nil
			}
			r.events.Redraw(r.game.Snapshot())
			timer.Reset(r.game.Interval())
		}
	}
}

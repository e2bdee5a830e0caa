package engine

// Snapshot captures the complete observable game state for rendering,
// determinism tests and score submission.
type Snapshot struct {
	Phase       Phase
	Width       int
	Height      int
	Score       int
	FoodsEaten  int
	Snake       []Cell // Head at the last element
	Dir         Direction
	Food        Food
	IntervalMS  int
	PowerActive bool
	ElapsedSecs int
}

// Head returns the snake's head cell, or the zero cell before Start.
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[len(s.Snake)-1]
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snake := make([]Cell, len(g.snake))
	copy(snake, g.snake)

	elapsed := 0
	if !g.startedAt.IsZero() {
		elapsed = int(g.now().Sub(g.startedAt).Seconds())
	}

	return Snapshot{
		Phase:       g.phase,
		Width:       g.cfg.Width,
		Height:      g.cfg.Height,
		Score:       g.score,
		FoodsEaten:  g.foodsEaten,
		Snake:       snake,
		Dir:         g.dir,
		Food:        g.food,
		IntervalMS:  int(g.interval.Milliseconds()),
		PowerActive: !g.powerUntil.IsZero(),
		ElapsedSecs: elapsed,
	}
}

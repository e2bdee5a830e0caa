// Package engine implements the Pythonix snake game as a pure, deterministic
// state machine. It contains no rendering or transport dependencies; the
// platform layer drives ticks and consumes snapshots.
package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the reverse of a direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirRight:
		return DirLeft
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	default:
		return DirUp
	}
}

// Delta returns the per-tick cell offset for a direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, -1
	default:
		return 0, 1
	}
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Phase represents the game lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config holds the tunable parameters of a game.
type Config struct {
	Width         int
	Height        int
	BaseInterval  time.Duration // Tick interval at normal speed
	PowerDuration time.Duration // Multiplier window after power food
	FoodWeights   FoodWeights
	Seed          int64 // 0 means seed from current time
}

// DefaultConfig returns the standard Pythonix parameters.
func DefaultConfig() Config {
	return Config{
		Width:         32,
		Height:        24,
		BaseInterval:  150 * time.Millisecond,
		PowerDuration: 10 * time.Second,
		FoodWeights:   DefaultFoodWeights(),
	}
}

// TickResult reports what happened during one tick so the driver can
// signal side effects (sounds, score posts, redraws) to collaborators.
type TickResult struct {
	Phase       Phase
	Ate         bool
	AteKind     FoodKind
	PowerActive bool
	GameOver    bool
}

// Game owns all mutable game state. All state transitions go through
// Start, QueueTurn and Tick; there is no shared module-level state.
// The mutex makes QueueTurn safe to call from an input goroutine while
// a runner drives Tick.
type Game struct {
	mu  sync.Mutex
	cfg Config
	rng *rand.Rand
	now func() time.Time

	phase      Phase
	snake      []Cell // Head at the last element
	dir        Direction
	pending    Direction
	hasPending bool
	food       Food
	score      int
	foodsEaten int
	interval   time.Duration
	powerUntil time.Time
	startedAt  time.Time
}

// New creates a game in the Idle phase.
func New(cfg Config) *Game {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.BaseInterval <= 0 {
		cfg.BaseInterval = DefaultConfig().BaseInterval
	}
	if cfg.PowerDuration <= 0 {
		cfg.PowerDuration = DefaultConfig().PowerDuration
	}
	if cfg.FoodWeights.total() <= 0 {
		cfg.FoodWeights = DefaultFoodWeights()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Start initializes or restarts the game: single-cell snake centered on
// the grid, counters reset, fresh food, base speed.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.snake = []Cell{{X: g.cfg.Width / 2, Y: g.cfg.Height / 2}}
	g.dir = DirRight
	g.pending = DirRight
	g.hasPending = false
	g.score = 0
	g.foodsEaten = 0
	g.interval = g.cfg.BaseInterval
	g.powerUntil = time.Time{}
	g.startedAt = g.now()
	g.phase = PhaseRunning
	g.placeFood()
}

// QueueTurn buffers a direction change to be applied at the start of the
// next tick. At most one buffered turn is held; later input overwrites
// earlier input within the same tick. Reversals are ignored so the snake
// cannot fold back into itself between two moves.
func (g *Game) QueueTurn(d Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseRunning {
		return
	}
	if d == g.dir.Opposite() {
		return
	}
	g.pending = d
	g.hasPending = true
}

// Tick executes one game-loop transition. All failure conditions collapse
// to the GameOver phase; there is no error return.
func (g *Game) Tick() TickResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseRunning {
		return TickResult{Phase: g.phase, GameOver: g.phase == PhaseGameOver}
	}

	// Consume the buffered turn exactly once.
	if g.hasPending {
		g.dir = g.pending
		g.hasPending = false
	}

	// The power window is a deadline, not a detached timer; it expires at
	// tick boundaries.
	if !g.powerUntil.IsZero() && !g.now().Before(g.powerUntil) {
		g.powerUntil = time.Time{}
	}

	head := g.snake[len(g.snake)-1]
	dx, dy := g.dir.Delta()
	newHead := g.wrap(Cell{X: head.X + dx, Y: head.Y + dy})

	// Self collision is terminal. The tail cell counts: it has not moved
	// yet when the new head position is checked.
	if g.occupied(newHead) {
		g.phase = PhaseGameOver
		return TickResult{Phase: g.phase, GameOver: true}
	}

	g.snake = append(g.snake, newHead)

	res := TickResult{Phase: PhaseRunning}
	if newHead == g.food.Cell {
		switch g.food.Kind {
		case FoodHazard:
			// Hazard ends the game outright: no score, no retract.
			g.phase = PhaseGameOver
			res.Phase = g.phase
			res.GameOver = true
			return res
		case FoodSlow:
			// Persists until the next Start; slow does not stack.
			g.interval = g.cfg.BaseInterval * 2
		case FoodPower:
			g.powerUntil = g.now().Add(g.cfg.PowerDuration)
		}
		g.score++
		g.foodsEaten++
		res.Ate = true
		res.AteKind = g.food.Kind
		if !g.placeFood() {
			// Board full: nowhere left to place food.
			g.phase = PhaseGameOver
			res.Phase = g.phase
			res.GameOver = true
			return res
		}
	} else {
		g.snake = g.snake[1:]
	}

	res.PowerActive = !g.powerUntil.IsZero()
	return res
}

// wrap applies toroidal wraparound: leaving one edge enters the opposite.
func (g *Game) wrap(c Cell) Cell {
	if c.X < 0 {
		c.X = g.cfg.Width - 1
	}
	if c.X >= g.cfg.Width {
		c.X = 0
	}
	if c.Y < 0 {
		c.Y = g.cfg.Height - 1
	}
	if c.Y >= g.cfg.Height {
		c.Y = 0
	}
	return c
}

func (g *Game) occupied(c Cell) bool {
	for _, seg := range g.snake {
		if seg == c {
			return true
		}
	}
	return false
}

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Score returns the current score.
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// Interval returns the current tick interval. Doubled from base speed
// while the slow effect is in force.
func (g *Game) Interval() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.interval
}

// Elapsed returns wall-clock time since the last Start.
func (g *Game) Elapsed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.startedAt.IsZero() {
		return 0
	}
	return g.now().Sub(g.startedAt)
}

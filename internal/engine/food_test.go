package engine

import (
	"testing"
	"time"
)

func TestRollKindDistribution(t *testing.T) {
	g := New(testConfig())

	counts := map[FoodKind]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		counts[g.rollKind()]++
	}

	// Weighted 0.7/0.1/0.1/0.1; allow generous slack around expectation.
	if counts[FoodNormal] < draws*6/10 || counts[FoodNormal] > draws*8/10 {
		t.Errorf("Normal food drawn %d times out of %d, expected ~70%%", counts[FoodNormal], draws)
	}
	for _, kind := range []FoodKind{FoodPower, FoodSlow, FoodHazard} {
		if counts[kind] < draws/20 || counts[kind] > draws*3/20 {
			t.Errorf("%s food drawn %d times out of %d, expected ~10%%", kind, counts[kind], draws)
		}
	}
}

func TestPlaceFoodNeverOnSnake(t *testing.T) {
	g := New(testConfig())
	g.Start()

	// Occupy most of a row to stress the re-roll loop.
	g.mu.Lock()
	g.snake = g.snake[:0]
	for x := 0; x < g.cfg.Width; x++ {
		for y := 0; y < g.cfg.Height-1; y++ {
			g.snake = append(g.snake, Cell{X: x, Y: y})
		}
	}
	g.mu.Unlock()

	for i := 0; i < 50; i++ {
		g.mu.Lock()
		ok := g.placeFood()
		food := g.food
		g.mu.Unlock()
		if !ok {
			t.Fatal("placeFood reported full board with a free row remaining")
		}
		if food.Cell.Y != g.cfg.Height-1 {
			t.Fatalf("Food placed on occupied cell (%d,%d)", food.Cell.X, food.Cell.Y)
		}
	}
}

func TestPlaceFoodFullBoard(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 3, 3
	g := New(cfg)
	g.Start()

	g.mu.Lock()
	g.snake = g.snake[:0]
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			g.snake = append(g.snake, Cell{X: x, Y: y})
		}
	}
	ok := g.placeFood()
	g.mu.Unlock()

	if ok {
		t.Error("placeFood succeeded on a full board")
	}
}

func TestFullBoardEndsGameOnConsumption(t *testing.T) {
	// 1x3 board: snake of two cells eats the last free cell's food and
	// there is nowhere left to respawn.
	cfg := testConfig()
	cfg.Width, cfg.Height = 3, 1
	cfg.BaseInterval = time.Millisecond
	g := New(cfg)
	g.Start()

	g.mu.Lock()
	g.snake = []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	g.dir = DirRight
	g.pending = DirRight
	g.hasPending = false
	g.food = Food{Cell: Cell{X: 2, Y: 0}, Kind: FoodNormal}
	g.mu.Unlock()

	res := g.Tick()
	if !res.GameOver {
		t.Error("Expected GameOver when no free cell remains for food")
	}
	if !res.Ate || g.Score() != 1 {
		t.Error("Final food should still score before the board fills")
	}
}

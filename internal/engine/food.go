package engine

// FoodKind tags a food cell with its gameplay effect.
type FoodKind int

const (
	FoodNormal FoodKind = iota
	FoodPower           // Activates the score multiplier window
	FoodSlow            // Doubles the tick interval until restart
	FoodHazard          // Ends the game without scoring
)

func (k FoodKind) String() string {
	switch k {
	case FoodNormal:
		return "normal"
	case FoodPower:
		return "power"
	case FoodSlow:
		return "slow"
	case FoodHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Food is a grid cell plus its kind.
type Food struct {
	Cell Cell
	Kind FoodKind
}

// FoodWeights holds the relative draw weights for each food kind.
type FoodWeights struct {
	Normal float64
	Power  float64
	Slow   float64
	Hazard float64
}

// DefaultFoodWeights returns the standard 0.7/0.1/0.1/0.1 distribution.
func DefaultFoodWeights() FoodWeights {
	return FoodWeights{Normal: 0.7, Power: 0.1, Slow: 0.1, Hazard: 0.1}
}

func (w FoodWeights) total() float64 {
	return w.Normal + w.Power + w.Slow + w.Hazard
}

// rollKind draws a food kind by weighted random selection.
func (g *Game) rollKind() FoodKind {
	w := g.cfg.FoodWeights
	r := g.rng.Float64() * w.total()
	for _, entry := range []struct {
		kind   FoodKind
		weight float64
	}{
		{FoodNormal, w.Normal},
		{FoodPower, w.Power},
		{FoodSlow, w.Slow},
		{FoodHazard, w.Hazard},
	} {
		if r < entry.weight {
			return entry.kind
		}
		r -= entry.weight
	}
	return FoodNormal
}

// placeFood draws a kind once, then re-rolls the position until it lands
// on a cell the snake does not occupy. Returns false when the board is
// full, in which case no food can be placed and the game must end.
// Caller holds g.mu.
func (g *Game) placeFood() bool {
	if len(g.snake) >= g.cfg.Width*g.cfg.Height {
		return false
	}
	kind := g.rollKind()
	for {
		c := Cell{X: g.rng.Intn(g.cfg.Width), Y: g.rng.Intn(g.cfg.Height)}
		if !g.occupied(c) {
			g.food = Food{Cell: c, Kind: kind}
			return true
		}
	}
}

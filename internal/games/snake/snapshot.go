package snake

import (
	"time"

	"github.com/vovakirdan/termfolio/internal/core"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Score    int
	Snake    []core.Point // Head first
	Dir      core.Direction
	Food     core.Point
	Interval time.Duration
	Status   core.Status
	Won      bool
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Snake:    append([]core.Point(nil), g.snake...),
		Dir:      g.dir,
		Food:     g.food,
		Interval: g.interval,
		Status:   g.status,
		Won:      g.won,
	}
}

package tetris

import "github.com/vovakirdan/termfolio/internal/core"

// Snapshot captures the game state for tests and replays.
type Snapshot struct {
	Tick    uint64
	Score   int
	Lines   int
	Level   int
	Current Kind
	X, Y    int
	Next    Kind
	Filled  int // number of occupied board cells
	Status  core.Status
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	filled := 0
	for _, row := range g.board {
		for _, c := range row {
			if c != core.ColorDefault {
				filled++
			}
		}
	}
	return Snapshot{
		Tick:    g.tick,
		Score:   g.score,
		Lines:   g.lines,
		Level:   g.level,
		Current: g.current.Kind,
		X:       g.current.X,
		Y:       g.current.Y,
		Next:    g.next,
		Filled:  filled,
		Status:  g.status,
	}
}

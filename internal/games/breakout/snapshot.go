package breakout

import "github.com/vovakirdan/termfolio/internal/core"

// Snapshot contains the state of a Breakout game for determinism checks.
type Snapshot struct {
	Tick           uint64
	PaddleX        float64
	BallX, BallY   float64
	BallVX, BallVY float64
	Score          int
	Lives          int
	Alive          int
	Status         core.Status
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		PaddleX: g.paddleX,
		BallX:   g.ballX,
		BallY:   g.ballY,
		BallVX:  g.ballVX,
		BallVY:  g.ballVY,
		Score:   g.score,
		Lives:   g.lives,
		Alive:   g.wall.alive,
		Status:  g.status,
	}
}

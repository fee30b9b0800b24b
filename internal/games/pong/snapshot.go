package pong

import "github.com/vovakirdan/termfolio/internal/core"

// Snapshot contains the complete state of a Pong game for determinism checks.
type Snapshot struct {
	Tick        uint64
	BallX       float64
	BallY       float64
	BallVX      float64
	BallVY      float64
	Speed       float64
	PlayerY     float64
	AIY         float64
	PlayerScore int
	AIScore     int
	Serving     bool
	Status      core.Status
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:        g.tick,
		BallX:       g.ballX,
		BallY:       g.ballY,
		BallVX:      g.ballVX,
		BallVY:      g.ballVY,
		Speed:       g.speed,
		PlayerY:     g.playerY,
		AIY:         g.aiY,
		PlayerScore: g.playerScore,
		AIScore:     g.aiScore,
		Serving:     g.serveDelay > 0,
		Status:      g.status,
	}
}

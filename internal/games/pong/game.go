// Package pong implements Pong against a computer opponent.
// The player controls the left paddle, the AI the right one.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/render"
)

// ID is the registry identifier.
const ID = "pong"

// ServeDelayTicks is how long the ball rests at the center before a serve.
const ServeDelayTicks = 30

// Side identifies a paddle.
type Side int

const (
	SidePlayer Side = iota
	SideAI
)

// Game implements the Pong game logic.
type Game struct {
	cfg config.PongConfig
	rng *rand.Rand

	// Paddles (top edge)
	playerY float64
	aiY     float64

	// Ball (center) and its speed magnitude
	ballX, ballY   float64
	ballVX, ballVY float64
	speed          float64

	playerScore int
	aiScore     int

	status     core.Status
	serveDelay int
	tick       uint64
}

// New creates a Pong game with the given configuration.
func New(cfg config.PongConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(ID, "Pong", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadPong(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.ApplyPongPreset(&cfg, opts.Preset)
		return New(cfg), nil
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Pong" }

// Reset initializes the game in the Ready state.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.restart()
}

func (g *Game) restart() {
	mid := (g.cfg.Canvas.Height - g.cfg.Paddle.Height) / 2
	g.playerY, g.aiY = mid, mid
	g.playerScore, g.aiScore = 0, 0
	g.tick = 0
	g.status = core.StatusReady
	g.serve(SidePlayer)
}

// serve centers the ball and aims it at the given side.
func (g *Game) serve(toward Side) {
	g.ballX = g.cfg.Canvas.Width / 2
	g.ballY = g.cfg.Canvas.Height / 2
	g.speed = g.cfg.Ball.StartSpeed
	g.serveDelay = ServeDelayTicks

	// Shallow random angle, at most half the maximum bounce angle.
	maxAngle := g.cfg.Ball.MaxBounceAngle * math.Pi / 180
	angle := (g.rng.Float64() - 0.5) * maxAngle
	dir := 1.0
	if toward == SidePlayer {
		dir = -1
	}
	g.ballVX = dir * g.speed * math.Cos(angle)
	g.ballVY = g.speed * math.Sin(angle)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events core.Events

	if in.JustPressed(core.ActionToggle) {
		if g.status == core.StatusGameOver {
			g.restart()
		}
		g.status = core.ApplyToggle(g.status, &events)
		return core.StepResult{State: g.State(), Events: events}
	}
	if g.status != core.StatusPlaying {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.movePlayer(in)
	g.moveAI()

	if g.serveDelay > 0 {
		g.serveDelay--
	} else {
		g.moveBall(&events)
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) maxPaddleY() float64 {
	return g.cfg.Canvas.Height - g.cfg.Paddle.Height
}

func (g *Game) movePlayer(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.playerY -= g.cfg.Paddle.Speed
	case in.Has(core.ActionDown):
		g.playerY += g.cfg.Paddle.Speed
	case in.HasPointer:
		g.playerY = in.Pointer.Y*g.cfg.Canvas.Height - g.cfg.Paddle.Height/2
	}
	g.playerY = core.ClampF(g.playerY, 0, g.maxPaddleY())
}

// moveAI tracks the ball center at a fraction of the paddle speed.
func (g *Game) moveAI() {
	speed := g.cfg.Paddle.Speed * g.cfg.AI.SpeedFactor
	diff := g.ballY - (g.aiY + g.cfg.Paddle.Height/2)
	g.aiY += core.ClampF(diff, -speed, speed)
	g.aiY = core.ClampF(g.aiY, 0, g.maxPaddleY())
}

func (g *Game) moveBall(events *core.Events) {
	r := g.cfg.Ball.Size / 2
	prevX := g.ballX
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	// Top and bottom walls
	if g.ballY-r <= 0 {
		g.ballY = r
		g.ballVY = math.Abs(g.ballVY)
		events.Emit(core.EventBounce)
	} else if g.ballY+r >= g.cfg.Canvas.Height {
		g.ballY = g.cfg.Canvas.Height - r
		g.ballVY = -math.Abs(g.ballVY)
		events.Emit(core.EventBounce)
	}

	playerX := g.cfg.Paddle.Inset
	aiX := g.cfg.Canvas.Width - g.cfg.Paddle.Inset - g.cfg.Paddle.Width

	// Only a ball that started the tick in front of a paddle face can bounce
	// off it; one already behind the face is lost.
	if g.ballVX < 0 && prevX-r >= playerX+g.cfg.Paddle.Width && g.hitsPaddle(playerX, g.playerY) {
		g.ballX = playerX + g.cfg.Paddle.Width + r
		g.deflect(g.playerY, 1)
		events.Emit(core.EventBounce)
	} else if g.ballVX > 0 && prevX+r <= aiX && g.hitsPaddle(aiX, g.aiY) {
		g.ballX = aiX - r
		g.deflect(g.aiY, -1)
		events.Emit(core.EventBounce)
	}

	switch {
	case g.ballX+r < 0:
		g.aiScore++
		g.scored(SidePlayer, events)
	case g.ballX-r > g.cfg.Canvas.Width:
		g.playerScore++
		g.scored(SideAI, events)
	}
}

func (g *Game) hitsPaddle(px, py float64) bool {
	r := g.cfg.Ball.Size / 2
	return g.ballX+r >= px && g.ballX-r <= px+g.cfg.Paddle.Width &&
		g.ballY+r >= py && g.ballY-r <= py+g.cfg.Paddle.Height
}

// deflect sends the ball back with an angle proportional to how far from the
// paddle center it hit, and speeds it up.
func (g *Game) deflect(paddleY, dir float64) {
	half := g.cfg.Paddle.Height / 2
	offset := core.ClampF((g.ballY-(paddleY+half))/half, -1, 1)
	angle := offset * g.cfg.Ball.MaxBounceAngle * math.Pi / 180

	g.speed = math.Min(g.speed+g.cfg.Ball.SpeedStep, g.cfg.Ball.MaxSpeed)
	g.ballVX = dir * g.speed * math.Cos(angle)
	g.ballVY = g.speed * math.Sin(angle)
}

// scored handles a miss by the loser side.
func (g *Game) scored(loser Side, events *core.Events) {
	events.Emit(core.EventScore)

	win := g.cfg.Match.WinScore
	if g.playerScore >= win || g.aiScore >= win {
		g.status = core.StatusGameOver
		if g.playerScore >= win {
			events.Emit(core.EventWin)
		} else {
			events.Emit(core.EventGameOver)
		}
		return
	}
	g.serve(loser)
}

// Scores returns the player and AI scores.
func (g *Game) Scores() (player, ai int) {
	return g.playerScore, g.aiScore
}

// State returns the current game state. Score is the player's.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.playerScore,
		Status: g.status,
		Won:    g.status == core.StatusGameOver && g.playerScore >= g.cfg.Match.WinScore,
	}
}

// Draw appends the court, paddles, ball and score.
func (g *Game) Draw(f *render.Frame) {
	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height
	f.Reset(w, h)
	f.Rect(0, 0, w, h, core.ColorBackground)

	// Dashed net
	for y := 0.0; y < h; y += 40 {
		f.Rect(w/2-1, y+10, 2, 20, core.ColorMuted)
	}

	f.Rect(g.cfg.Paddle.Inset, g.playerY, g.cfg.Paddle.Width, g.cfg.Paddle.Height, core.ColorAccent)
	f.Rect(w-g.cfg.Paddle.Inset-g.cfg.Paddle.Width, g.aiY, g.cfg.Paddle.Width, g.cfg.Paddle.Height, core.ColorAccentAlt)

	// Blink while waiting to serve.
	if g.serveDelay == 0 || (g.serveDelay/5)%2 == 0 {
		f.Circle(g.ballX, g.ballY, g.cfg.Ball.Size/2, core.ColorText)
	}

	player, ai := g.Scores()
	f.Text(w/2-60, 8, fmt.Sprintf("%d", player), core.ColorAccent)
	f.Text(w/2+50, 8, fmt.Sprintf("%d", ai), core.ColorAccentAlt)
	f.HUD = fmt.Sprintf("You %d - %d CPU  First to %d", player, ai, g.cfg.Match.WinScore)

	render.StatusOverlay(f, g.State())
}

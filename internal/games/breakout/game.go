// Package breakout implements a single-wall brick breaker.
package breakout

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/render"
)

// ID is the registry identifier.
const ID = "breakout"

// Game implements the Breakout game logic.
type Game struct {
	cfg config.BreakoutConfig
	rng *rand.Rand

	wall   *wall
	paddle *resolv.Object
	body   *resolv.Object // ball hitbox

	paddleX        float64 // left edge
	ballX, ballY   float64 // center
	ballVX, ballVY float64

	score  int
	lives  int
	status core.Status
	tick   uint64
}

// New creates a Breakout game with the given configuration.
func New(cfg config.BreakoutConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(ID, "Breakout", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadBreakout(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.ApplyBreakoutPreset(&cfg, opts.Preset)
		return New(cfg), nil
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Breakout" }

// Reset initializes the game in the Ready state.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.restart()
}

func (g *Game) restart() {
	g.wall = newWall(g.cfg)

	r := g.cfg.Ball.Radius
	g.paddle = resolv.NewObject(0, g.paddleY(), g.cfg.Paddle.Width, g.cfg.Paddle.Height, tagPaddle)
	g.body = resolv.NewObject(0, 0, 2*r, 2*r, tagBall)
	g.wall.space.Add(g.paddle, g.body)

	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.tick = 0
	g.status = core.StatusReady
	g.respawn()
}

func (g *Game) paddleY() float64 {
	return g.cfg.Canvas.Height - g.cfg.Paddle.BottomOffset - g.cfg.Paddle.Height
}

// respawn centers the paddle and launches a new ball from just above it.
func (g *Game) respawn() {
	g.paddleX = (g.cfg.Canvas.Width - g.cfg.Paddle.Width) / 2
	g.ballX = g.cfg.Canvas.Width / 2
	g.ballY = g.paddleY() - g.cfg.Ball.Radius - 1

	// Mostly upward, within a quarter of the bounce cone either side.
	maxAngle := g.cfg.Ball.MaxBounceAngle * math.Pi / 180
	g.launch((g.rng.Float64() - 0.5) * maxAngle / 2)
	g.sync()
}

// launch sets an upward velocity at angle radians from vertical.
func (g *Game) launch(angle float64) {
	g.ballVX = g.cfg.Ball.Speed * math.Sin(angle)
	g.ballVY = -g.cfg.Ball.Speed * math.Cos(angle)
}

// sync moves the collision bodies to the simulated positions.
func (g *Game) sync() {
	r := g.cfg.Ball.Radius
	g.paddle.X = g.paddleX
	g.paddle.Update()
	g.body.X, g.body.Y = g.ballX-r, g.ballY-r
	g.body.Update()
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
	g.movePaddle(in)
	g.moveBall(&events)

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) movePaddle(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.paddleX -= g.cfg.Paddle.Speed
	case in.Has(core.ActionRight):
		g.paddleX += g.cfg.Paddle.Speed
	case in.HasPointer:
		g.paddleX = in.Pointer.X*g.cfg.Canvas.Width - g.cfg.Paddle.Width/2
	}
	g.paddleX = core.ClampF(g.paddleX, 0, g.cfg.Canvas.Width-g.cfg.Paddle.Width)
}

func (g *Game) moveBall(events *core.Events) {
	r := g.cfg.Ball.Radius
	w := g.cfg.Canvas.Width
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	// Side and top walls
	if g.ballX-r <= 0 {
		g.ballX = r
		g.ballVX = math.Abs(g.ballVX)
		events.Emit(core.EventBounce)
	} else if g.ballX+r >= w {
		g.ballX = w - r
		g.ballVX = -math.Abs(g.ballVX)
		events.Emit(core.EventBounce)
	}
	if g.ballY-r <= 0 {
		g.ballY = r
		g.ballVY = math.Abs(g.ballVY)
		events.Emit(core.EventBounce)
	}

	if g.ballY-r > g.cfg.Canvas.Height {
		g.loseLife(events)
		return
	}

	g.sync()
	check := g.body.Check(0, 0, tagPaddle, tagBrick)
	if check == nil {
		return
	}

	if g.ballVY > 0 {
		for _, p := range check.ObjectsByTags(tagPaddle) {
			if overlaps(g.body, p) {
				g.ballY = g.paddleY() - r
				g.deflect()
				g.sync()
				events.Emit(core.EventBounce)
				return
			}
		}
	}

	// At most one brick per tick.
	for _, o := range check.ObjectsByTags(tagBrick) {
		brick, ok := o.Data.(*Brick)
		if !ok || !brick.Alive || !overlaps(g.body, o) {
			continue
		}
		g.wall.kill(brick)
		g.ballVY = -g.ballVY
		g.score += g.cfg.Gameplay.BrickPoints
		events.Emit(core.EventScore)

		if g.wall.alive == 0 {
			g.status = core.StatusGameOver
			events.Emit(core.EventWin)
		}
		return
	}
}

// deflect sends the ball up at an angle proportional to the hit offset from
// the paddle center, keeping the ball speed constant.
func (g *Game) deflect() {
	half := g.cfg.Paddle.Width / 2
	offset := core.ClampF((g.ballX-(g.paddleX+half))/half, -1, 1)
	g.launch(offset * g.cfg.Ball.MaxBounceAngle * math.Pi / 180)
}

func (g *Game) loseLife(events *core.Events) {
	g.lives--
	events.Emit(core.EventLifeLost)
	if g.lives <= 0 {
		g.lives = 0
		g.status = core.StatusGameOver
		events.Emit(core.EventGameOver)
		return
	}
	g.respawn()
}

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// BricksLeft returns the number of live bricks.
func (g *Game) BricksLeft() int { return g.wall.alive }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.score,
		Status: g.status,
		Won:    g.status == core.StatusGameOver && g.wall.alive == 0,
	}
}

// Draw appends the wall, paddle and ball.
func (g *Game) Draw(f *render.Frame) {
	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height
	f.Reset(w, h)
	f.Rect(0, 0, w, h, core.ColorBackground)

	for _, b := range g.wall.bricks {
		if b.Alive {
			f.Rect(b.X, b.Y, b.W, b.H, b.Color)
		}
	}
	f.Rect(g.paddleX, g.paddleY(), g.cfg.Paddle.Width, g.cfg.Paddle.Height, core.ColorAccent)
	if g.status != core.StatusGameOver {
		f.Circle(g.ballX, g.ballY, g.cfg.Ball.Radius, core.ColorText)
	}

	f.HUD = fmt.Sprintf("Score: %d  Lives: %d  Bricks: %d", g.score, g.Lives(), g.BricksLeft())
	render.StatusOverlay(f, g.State())
}

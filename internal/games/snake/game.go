// Package snake implements the classic grid Snake.
//
// Each Step moves the snake exactly one cell; the scheduler calls Step every
// Interval(), which shrinks as the snake eats.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/render"
)

// ID is the registry identifier.
const ID = "snake"

// Game implements the Snake game.
type Game struct {
	cfg  config.SnakeConfig
	rng  *rand.Rand
	seed int64
	tick uint64

	// Snake state
	snake   []core.Point // Head at index 0
	dir     core.Direction
	nextDir core.Direction // Applied on the next move
	food    core.Point

	score    int
	interval time.Duration
	status   core.Status
	won      bool
}

// New creates a Snake game with the given configuration.
// Call Reset before stepping it.
func New(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(ID, "Snake", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadSnake(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.ApplySnakePreset(&cfg, opts.Preset)
		return New(cfg), nil
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Reset places a three-segment snake in the middle of the grid heading right.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.seed = rc.Seed
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.restart()
}

func (g *Game) restart() {
	cx, cy := g.cfg.Grid.Width/2, g.cfg.Grid.Height/2
	g.snake = []core.Point{{X: cx, Y: cy}, {X: cx - 1, Y: cy}, {X: cx - 2, Y: cy}}
	g.dir = core.DirRight
	g.nextDir = core.DirRight
	g.tick = 0
	g.score = 0
	g.interval = g.cfg.Timing.StartInterval.Duration()
	g.status = core.StatusReady
	g.won = false
	g.placeFood()
}

// Interval returns the current time between moves.
func (g *Game) Interval() time.Duration { return g.interval }

// Heading returns the direction of the last move.
func (g *Game) Heading() core.Direction { return g.dir }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, Status: g.status, Won: g.won}
}

// Step applies input and, while playing, moves the snake one cell.
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

	g.turn(in.Dir)
	g.move(&events)
	g.tick++

	return core.StepResult{State: g.State(), Events: events}
}

// turn queues a new heading. Reversing onto the neck is ignored.
func (g *Game) turn(d core.Direction) {
	if d == core.DirNone || d == g.dir.Opposite() {
		return
	}
	g.nextDir = d
}

func (g *Game) move(events *core.Events) {
	g.dir = g.nextDir
	dx, dy := g.dir.Delta()
	head := g.snake[0].Add(dx, dy)

	if !g.inBounds(head) {
		g.end(events)
		return
	}

	eating := head == g.food

	// The tail vacates its cell this move unless the snake grows.
	body := g.snake
	if !eating {
		body = body[:len(body)-1]
	}
	for _, p := range body {
		if p == head {
			g.end(events)
			return
		}
	}

	g.snake = append([]core.Point{head}, body...)

	if !eating {
		return
	}
	g.score += g.cfg.Food.Points
	g.interval = max(g.interval-g.cfg.Timing.Step.Duration(), g.cfg.Timing.MinInterval.Duration())
	events.Emit(core.EventEat)

	if !g.placeFood() {
		// Board full: nothing left to eat.
		g.status = core.StatusGameOver
		g.won = true
		events.Emit(core.EventWin)
	}
}

func (g *Game) end(events *core.Events) {
	g.status = core.StatusGameOver
	events.Emit(core.EventGameOver)
}

func (g *Game) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.cfg.Grid.Width && p.Y >= 0 && p.Y < g.cfg.Grid.Height
}

// placeFood puts food on a uniformly random free cell.
// Returns false when the snake covers the whole grid.
func (g *Game) placeFood() bool {
	occupied := make(map[core.Point]bool, len(g.snake))
	for _, p := range g.snake {
		occupied[p] = true
	}

	free := make([]core.Point, 0, g.cfg.Grid.Width*g.cfg.Grid.Height-len(g.snake))
	for y := 0; y < g.cfg.Grid.Height; y++ {
		for x := 0; x < g.cfg.Grid.Width; x++ {
			if p := (core.Point{X: x, Y: y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return false
	}
	g.food = free[g.rng.Intn(len(free))]
	return true
}

// Draw appends the board, snake and food.
func (g *Game) Draw(f *render.Frame) {
	w, h := float64(g.cfg.Grid.Width), float64(g.cfg.Grid.Height)
	f.Reset(w, h)
	f.Rect(0, 0, w, h, core.ColorSurface)

	if g.status != core.StatusGameOver || !g.won {
		f.Circle(float64(g.food.X)+0.5, float64(g.food.Y)+0.5, 0.4, core.ColorDanger)
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		c := core.ColorSuccess
		if i == 0 {
			c = core.ColorAccent
		}
		p := g.snake[i]
		f.Rect(float64(p.X), float64(p.Y), 1, 1, c)
	}

	f.HUD = fmt.Sprintf("Score: %d  Length: %d  Speed: %dms", g.score, len(g.snake), g.interval.Milliseconds())
	render.StatusOverlay(f, g.State())
}

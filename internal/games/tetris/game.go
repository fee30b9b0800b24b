// Package tetris implements single-player Tetris with a next-piece preview.
package tetris

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
const ID = "tetris"

// previewWidth is the side panel next to the well, in cells.
const previewWidth = 6

// Game implements the Tetris game logic.
type Game struct {
	cfg config.TetrisConfig
	rng *rand.Rand

	// Board cells, row 0 at the top; ColorDefault is empty.
	board   [][]core.Color
	current Piece
	next    Kind
	bag     []Kind

	score int
	lines int
	level int

	frame     time.Duration // simulated time per Step
	dropTimer time.Duration
	status    core.Status
	tick      uint64
}

// New creates a Tetris game with the given configuration.
func New(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(ID, "Tetris", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadTetris(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.ApplyTetrisPreset(&cfg, opts.Preset)
		return New(cfg), nil
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// Reset clears the board and deals the first two pieces.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.frame = rc.FrameDuration()
	g.restart()
}

func (g *Game) restart() {
	g.board = make([][]core.Color, g.cfg.Board.Height)
	for y := range g.board {
		g.board[y] = make([]core.Color, g.cfg.Board.Width)
	}
	g.bag = nil
	g.score, g.lines, g.level = 0, 0, 1
	g.dropTimer = 0
	g.tick = 0
	g.status = core.StatusReady

	g.next = g.deal()
	g.spawn()
}

// deal takes the next kind from a shuffled bag of all seven.
func (g *Game) deal() Kind {
	if len(g.bag) == 0 {
		g.bag = []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
		g.rng.Shuffle(len(g.bag), func(i, j int) {
			g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
		})
	}
	k := g.bag[0]
	g.bag = g.bag[1:]
	return k
}

// spawn brings the preview piece into play. Returns false if it does not fit.
func (g *Game) spawn() bool {
	p := newPiece(g.next)
	p.X = (g.cfg.Board.Width - len(p.Shape)) / 2
	p.Y = 0
	g.current = p
	g.next = g.deal()
	return !g.collides(p)
}

// DropInterval is the gravity period for the current level.
func (g *Game) DropInterval() time.Duration {
	d := g.cfg.Timing.BaseDrop.Duration() - time.Duration(g.level-1)*g.cfg.Timing.Step.Duration()
	return max(d, g.cfg.Timing.MinDrop.Duration())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, Status: g.status}
}

// Step applies input and gravity for one frame.
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

	switch {
	case in.JustPressed(core.ActionLeft):
		g.shift(-1)
	case in.JustPressed(core.ActionRight):
		g.shift(1)
	}
	if in.JustPressed(core.ActionUp) {
		g.rotate()
	}
	if in.JustPressed(core.ActionDown) {
		g.drop(&events)
		g.dropTimer = 0
	}

	if g.status == core.StatusPlaying {
		g.dropTimer += g.frame
		if g.dropTimer >= g.DropInterval() {
			g.dropTimer = 0
			g.drop(&events)
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) collides(p Piece) bool {
	hit := false
	p.Cells(func(x, y int) {
		if x < 0 || x >= g.cfg.Board.Width || y < 0 || y >= g.cfg.Board.Height {
			hit = true
			return
		}
		if g.board[y][x] != core.ColorDefault {
			hit = true
		}
	})
	return hit
}

func (g *Game) shift(dx int) {
	moved := g.current
	moved.X += dx
	if !g.collides(moved) {
		g.current = moved
	}
}

// rotate turns the piece clockwise; blocked rotations are rejected.
func (g *Game) rotate() {
	turned := g.current
	turned.Shape = rotate(g.current.Shape)
	if !g.collides(turned) {
		g.current = turned
	}
}

// drop moves the piece down one row, locking it when blocked.
func (g *Game) drop(events *core.Events) {
	moved := g.current
	moved.Y++
	if !g.collides(moved) {
		g.current = moved
		return
	}
	g.lock(events)
}

func (g *Game) lock(events *core.Events) {
	g.current.Cells(func(x, y int) {
		g.board[y][x] = g.current.Color
	})

	if cleared := g.clearLines(); cleared > 0 {
		g.score += cleared * g.cfg.Scoring.LinePoints * g.level
		g.lines += cleared
		g.level = g.lines/g.cfg.Scoring.LinesPerLevel + 1
		events.Emit(core.EventLineClear)
	}

	if !g.spawn() {
		g.status = core.StatusGameOver
		events.Emit(core.EventGameOver)
	}
}

// clearLines removes full rows, compacting the rest downward and adding
// empty rows on top. Returns the number of rows removed.
func (g *Game) clearLines() int {
	kept := make([][]core.Color, 0, len(g.board))
	for _, row := range g.board {
		if !full(row) {
			kept = append(kept, row)
		}
	}
	cleared := len(g.board) - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]core.Color, cleared, len(g.board))
	for i := range fresh {
		fresh[i] = make([]core.Color, g.cfg.Board.Width)
	}
	g.board = append(fresh, kept...)
	return cleared
}

func full(row []core.Color) bool {
	for _, c := range row {
		if c == core.ColorDefault {
			return false
		}
	}
	return true
}

// Draw appends the well, the falling piece and the preview panel.
func (g *Game) Draw(f *render.Frame) {
	w, h := float64(g.cfg.Board.Width), float64(g.cfg.Board.Height)
	f.Reset(w+previewWidth, h)
	f.Rect(0, 0, w, h, core.ColorSurface)

	for y, row := range g.board {
		for x, c := range row {
			if c != core.ColorDefault {
				f.Rect(float64(x), float64(y), 1, 1, c)
			}
		}
	}
	if g.status != core.StatusGameOver {
		g.current.Cells(func(x, y int) {
			f.Rect(float64(x), float64(y), 1, 1, g.current.Color)
		})
	}

	f.Text(w+1, 0, "Next", core.ColorMuted)
	preview := newPiece(g.next)
	preview.X, preview.Y = int(w)+1, 2
	preview.Cells(func(x, y int) {
		f.Rect(float64(x), float64(y), 1, 1, preview.Color)
	})

	f.HUD = fmt.Sprintf("Score: %d  Lines: %d  Level: %d", g.score, g.lines, g.level)
	render.StatusOverlay(f, g.State())
}

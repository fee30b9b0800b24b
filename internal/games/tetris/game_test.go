package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/render"
)

func newPlaying(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: seed, TickRate: 60})

	in := core.NewInputFrame()
	in.Set(core.ActionToggle)
	if res := g.Step(in); res.State.Status != core.StatusPlaying {
		t.Fatalf("status after toggle = %v", res.State.Status)
	}
	return g
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	if a != core.ActionNone {
		in.Set(a)
	}
	return in
}

// fillRow fills row y except the listed columns.
func fillRow(g *Game, y int, gaps ...int) {
	for x := range g.board[y] {
		g.board[y][x] = core.ColorMuted
	}
	for _, x := range gaps {
		g.board[y][x] = core.ColorDefault
	}
}

// hardDrop soft-drops until the current piece locks.
func hardDrop(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	for i := 0; i < 2*g.cfg.Board.Height; i++ {
		before := g.current
		res := g.Step(press(core.ActionDown))
		if g.current.Kind != before.Kind || g.current.Y < before.Y || res.State.GameOver() {
			return res
		}
		if res.Events.Has(core.EventLineClear) {
			return res
		}
	}
	t.Fatal("piece never locked")
	return core.StepResult{}
}

func TestLineClearScenario(t *testing.T) {
	g := newPlaying(t, 1)

	bottom := g.cfg.Board.Height - 1
	fillRow(g, bottom, 4, 5)
	g.board[bottom-1][0] = core.ColorPieceRed // marker one row above
	g.current = newPiece(KindO)
	g.current.X, g.current.Y = 4, 0

	var res core.StepResult
	for i := 0; i < g.cfg.Board.Height; i++ {
		res = g.Step(press(core.ActionDown))
		if res.Events.Has(core.EventLineClear) {
			break
		}
	}
	if !res.Events.Has(core.EventLineClear) {
		t.Fatal("dropping the O piece into the gap should clear a line")
	}

	if g.score != 100 {
		t.Errorf("score = %d, expected 1 x 100 x level 1", g.score)
	}
	if g.lines != 1 {
		t.Errorf("lines = %d, expected 1", g.lines)
	}
	// The row above shifted down: marker plus the O's upper half.
	if g.board[bottom][0] != core.ColorPieceRed {
		t.Errorf("marker not shifted down: bottom row = %v", g.board[bottom])
	}
	if g.board[bottom][4] != core.ColorPieceYellow || g.board[bottom][5] != core.ColorPieceYellow {
		t.Errorf("upper half of O not shifted down: bottom row = %v", g.board[bottom])
	}
	for x, c := range g.board[0] {
		if c != core.ColorDefault {
			t.Errorf("top row should be empty after a clear, cell %d = %q", x, c)
		}
	}
	if got := g.Snapshot().Filled; got != 3 {
		t.Errorf("filled cells = %d, expected 3", got)
	}
}

func TestScoreLaw(t *testing.T) {
	tests := []struct {
		name      string
		lines     int // lines before the clear
		cleared   int
		wantScore int
		wantLevel int
	}{
		{"single at level 1", 0, 1, 100, 1},
		{"double crossing into level 2", 9, 2, 200, 2},
		{"tetris at level 2", 10, 4, 800, 2},
		{"triple at level 3", 25, 3, 900, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newPlaying(t, 2)
			g.lines = tt.lines
			g.level = tt.lines/10 + 1

			bottom := g.cfg.Board.Height - 1
			for i := 0; i < tt.cleared; i++ {
				fillRow(g, bottom-i, 0)
			}
			// Vertical I piece dropped into column 0.
			g.current = newPiece(KindI)
			g.current.Shape = rotate(g.current.Shape)
			g.current.X, g.current.Y = -2, 0

			hardDrop(t, g)

			if g.score != tt.wantScore {
				t.Errorf("score = %d, expected %d", g.score, tt.wantScore)
			}
			if g.lines != tt.lines+tt.cleared {
				t.Errorf("lines = %d, expected %d", g.lines, tt.lines+tt.cleared)
			}
			if g.level != tt.wantLevel {
				t.Errorf("level = %d, expected %d", g.level, tt.wantLevel)
			}
		})
	}
}

func TestRotationAgainstWallIsRejected(t *testing.T) {
	g := newPlaying(t, 3)

	// Vertical I hugging the left wall cannot turn horizontal.
	g.current = newPiece(KindI)
	g.current.Shape = rotate(g.current.Shape)
	g.current.X, g.current.Y = -2, 5
	before := g.current

	g.Step(press(core.ActionUp))
	if g.collides(g.current) {
		t.Fatal("rotation left the piece in an illegal position")
	}
	if g.current.X != before.X || !sameShape(g.current.Shape, before.Shape) {
		t.Error("blocked rotation should leave the piece unchanged")
	}
}

func TestRotationBlockedByStack(t *testing.T) {
	g := newPlaying(t, 4)

	g.current = newPiece(KindT)
	g.current.X, g.current.Y = 3, 10
	// Fill the cell the rotated T needs: clockwise T puts a cell at (4, 12).
	g.board[12][4] = core.ColorMuted
	before := g.current

	g.rotate()
	if !sameShape(g.current.Shape, before.Shape) {
		t.Error("rotation into a filled cell should be rejected")
	}
}

func TestRotationIsClockwise(t *testing.T) {
	got := rotate(shapes[KindJ])
	want := [][]bool{
		{false, true, true},
		{false, true, false},
		{false, true, false},
	}
	if !sameShape(got, want) {
		t.Errorf("rotate(J) = %v, expected %v", got, want)
	}
	// Four turns come back to the start.
	s := shapes[KindL]
	for i := 0; i < 4; i++ {
		s = rotate(s)
	}
	if !sameShape(s, shapes[KindL]) {
		t.Error("four rotations should be the identity")
	}
}

func TestPieceNeverLeavesGrid(t *testing.T) {
	actions := []core.Action{core.ActionNone, core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown}
	for seed := int64(1); seed <= 10; seed++ {
		g := newPlaying(t, seed)
		rng := rand.New(rand.NewSource(seed))

		for i := 0; i < 3000 && g.status == core.StatusPlaying; i++ {
			g.Step(press(actions[rng.Intn(len(actions))]))
			if g.status == core.StatusPlaying && g.collides(g.current) {
				t.Fatalf("seed %d tick %d: piece %v at (%d,%d) overlaps or leaves the grid",
					seed, i, g.current.Kind, g.current.X, g.current.Y)
			}
		}
	}
}

func TestGravity(t *testing.T) {
	g := newPlaying(t, 5)
	startY := g.current.Y

	// 60 Hz frames are 16.666666ms; 1s of gravity needs 61 of them.
	for i := 0; i < 60; i++ {
		g.Step(press(core.ActionNone))
	}
	if g.current.Y != startY {
		t.Fatalf("piece fell early: y = %d", g.current.Y)
	}
	g.Step(press(core.ActionNone))
	if g.current.Y != startY+1 {
		t.Errorf("piece y = %d, expected %d after one drop interval", g.current.Y, startY+1)
	}
}

func TestDropInterval(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, time.Second},
		{2, 900 * time.Millisecond},
		{5, 600 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{15, 100 * time.Millisecond},
	}
	g := newPlaying(t, 6)
	for _, tt := range tests {
		g.level = tt.level
		if got := g.DropInterval(); got != tt.want {
			t.Errorf("level %d: DropInterval() = %v, expected %v", tt.level, got, tt.want)
		}
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	g := newPlaying(t, 7)

	// Stack reaching row 1, no row complete.
	for y := 2; y < g.cfg.Board.Height; y++ {
		fillRow(g, y, 9)
	}
	for x := 2; x < 9; x++ {
		g.board[1][x] = core.ColorMuted
	}
	g.current = newPiece(KindO)
	g.current.X, g.current.Y = 0, 0

	res := g.Step(press(core.ActionDown))
	if !res.State.GameOver() {
		t.Fatalf("state = %+v, expected game over", res.State)
	}
	if !res.Events.Has(core.EventGameOver) {
		t.Errorf("events = %v, expected game over", res.Events)
	}

	// Space restarts with a clean board.
	res = g.Step(press(core.ActionToggle))
	if res.State.Status != core.StatusPlaying || g.Snapshot().Filled != 0 {
		t.Errorf("restart: status %v, filled %d", res.State.Status, g.Snapshot().Filled)
	}
}

func TestBagDealsAllSeven(t *testing.T) {
	g := New(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: 8})

	seen := map[Kind]bool{g.current.Kind: true, g.next: true}
	for len(g.bag) > 0 {
		seen[g.deal()] = true
	}
	if len(seen) != int(kindCount) {
		t.Errorf("first bag dealt %d kinds, expected 7", len(seen))
	}
}

func TestDraw(t *testing.T) {
	g := newPlaying(t, 9)
	f := render.NewFrame(0, 0)
	g.Draw(f)

	if f.W != 16 || f.H != 20 {
		t.Errorf("frame = %vx%v, expected 16x20", f.W, f.H)
	}
	pieceCells := 0
	for _, c := range f.Cmds {
		if c.Kind == render.KindRect && c.Color == g.current.Color && c.X < 10 {
			pieceCells++
		}
	}
	if pieceCells != 4 {
		t.Errorf("falling piece drew %d cells, expected 4", pieceCells)
	}
}

func sameShape(a, b [][]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

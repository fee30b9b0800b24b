package snake

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/render"
)

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{Seed: seed})
	return g
}

// start toggles the game from Ready to Playing.
func start(t *testing.T, g *Game) {
	t.Helper()
	in := core.NewInputFrame()
	in.Set(core.ActionToggle)
	res := g.Step(in)
	if res.State.Status != core.StatusPlaying {
		t.Fatalf("status after toggle = %v, expected playing", res.State.Status)
	}
	if !res.Events.Has(core.EventStart) {
		t.Errorf("toggle from ready should emit start, got %v", res.Events)
	}
}

func step(g *Game, a core.Action) core.StepResult {
	in := core.NewInputFrame()
	if a != core.ActionNone {
		in.Set(a)
	}
	return g.Step(in)
}

func TestInitialState(t *testing.T) {
	g := newGame(t, 1)
	snap := g.Snapshot()

	want := []core.Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
	for i, p := range want {
		if snap.Snake[i] != p {
			t.Errorf("segment %d = %v, expected %v", i, snap.Snake[i], p)
		}
	}
	if snap.Dir != core.DirRight {
		t.Errorf("Dir = %v, expected right", snap.Dir)
	}
	if snap.Status != core.StatusReady {
		t.Errorf("Status = %v, expected ready", snap.Status)
	}
	if snap.Interval != 150*time.Millisecond {
		t.Errorf("Interval = %v, expected 150ms", snap.Interval)
	}
}

func TestReadyDoesNotMove(t *testing.T) {
	g := newGame(t, 1)
	step(g, core.ActionNone)
	step(g, core.ActionUp)

	if head := g.Snapshot().Snake[0]; head != (core.Point{X: 10, Y: 10}) {
		t.Errorf("head moved to %v before the game started", head)
	}
}

func TestEatScenario(t *testing.T) {
	g := newGame(t, 7)
	start(t, g)
	g.food = core.Point{X: 15, Y: 10}

	var last core.StepResult
	for i := 0; i < 5; i++ {
		last = step(g, core.ActionNone)
	}

	snap := g.Snapshot()
	if snap.Snake[0] != (core.Point{X: 15, Y: 10}) {
		t.Errorf("head = %v, expected (15,10)", snap.Snake[0])
	}
	if len(snap.Snake) != 4 {
		t.Errorf("length = %d, expected 4", len(snap.Snake))
	}
	if snap.Score != 10 {
		t.Errorf("score = %d, expected 10", snap.Score)
	}
	if !last.Events.Has(core.EventEat) {
		t.Errorf("final step events = %v, expected eat", last.Events)
	}
	for _, p := range snap.Snake {
		if p == snap.Food {
			t.Errorf("food relocated onto the snake at %v", p)
		}
	}
	if snap.Interval != 145*time.Millisecond {
		t.Errorf("interval = %v, expected 145ms", snap.Interval)
	}
}

func TestDirectionLock(t *testing.T) {
	g := newGame(t, 42)
	start(t, g)

	// Heading right: left is a reversal and must be ignored.
	step(g, core.ActionLeft)
	snap := g.Snapshot()
	if snap.Dir != core.DirRight {
		t.Errorf("Dir = %v, expected right after reversal attempt", snap.Dir)
	}
	if snap.Snake[0] != (core.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, expected (11,10)", snap.Snake[0])
	}

	step(g, core.ActionUp)
	step(g, core.ActionDown) // reversal of up
	snap = g.Snapshot()
	if snap.Dir != core.DirUp {
		t.Errorf("Dir = %v, expected up", snap.Dir)
	}
	if snap.Snake[0] != (core.Point{X: 11, Y: 8}) {
		t.Errorf("head = %v, expected (11,8)", snap.Snake[0])
	}
}

func TestSelfContainment(t *testing.T) {
	// Drive a long pseudo-random game and check the invariants after every move.
	dirs := []core.Action{core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft}
	for seed := int64(1); seed <= 20; seed++ {
		g := newGame(t, seed)
		start(t, g)

		for i := 0; i < 400 && g.State().Playing(); i++ {
			a := core.ActionNone
			if i%3 == 0 {
				a = dirs[(i/3+int(seed))%len(dirs)]
			}
			step(g, a)

			snap := g.Snapshot()
			seen := make(map[core.Point]bool)
			for _, p := range snap.Snake {
				if seen[p] {
					t.Fatalf("seed %d tick %d: duplicate segment %v", seed, i, p)
				}
				seen[p] = true
				if !g.inBounds(p) {
					t.Fatalf("seed %d tick %d: segment %v out of bounds", seed, i, p)
				}
			}
			if snap.Status == core.StatusPlaying && seen[snap.Food] {
				t.Fatalf("seed %d tick %d: food %v on the snake", seed, i, snap.Food)
			}
		}
	}
}

func TestWallCollision(t *testing.T) {
	g := newGame(t, 3)
	start(t, g)
	g.food = core.Point{X: 0, Y: 0}

	var res core.StepResult
	for i := 0; i < 20 && g.State().Playing(); i++ {
		res = step(g, core.ActionNone)
	}

	if !res.State.GameOver() {
		t.Fatal("running into the right wall should end the game")
	}
	if !res.Events.Has(core.EventGameOver) {
		t.Errorf("events = %v, expected game over", res.Events)
	}
	if head := g.Snapshot().Snake[0]; head.X != 19 {
		t.Errorf("head = %v, expected to stop at the last column", head)
	}
}

func TestSelfCollision(t *testing.T) {
	g := newGame(t, 5)
	start(t, g)

	// A hook shape: moving down bites the body.
	g.snake = []core.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}}
	g.dir, g.nextDir = core.DirLeft, core.DirLeft
	g.food = core.Point{X: 0, Y: 0}

	res := step(g, core.ActionDown)
	if !res.State.GameOver() {
		t.Error("moving into the body should end the game")
	}
}

func TestTailCellIsFree(t *testing.T) {
	g := New(config.SnakeConfig{
		Grid:   config.SnakeGrid{Width: 4, Height: 4},
		Timing: config.SnakeTiming{StartInterval: 150, Step: 5, MinInterval: 50},
		Food:   config.SnakeFood{Points: 10},
	})
	g.Reset(core.RuntimeConfig{Seed: 1})
	start(t, g)

	// Square loop: the head follows the tail into the cell it vacates.
	g.snake = []core.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}}
	g.dir, g.nextDir = core.DirUp, core.DirUp
	g.food = core.Point{X: 3, Y: 3}

	res := step(g, core.ActionRight)
	if res.State.GameOver() {
		t.Fatal("moving into the vacating tail cell should be legal")
	}
	if head := g.Snapshot().Snake[0]; head != (core.Point{X: 2, Y: 1}) {
		t.Errorf("head = %v, expected (2,1)", head)
	}
}

func TestFillingTheBoardWins(t *testing.T) {
	g := New(config.SnakeConfig{
		Grid:   config.SnakeGrid{Width: 4, Height: 1},
		Timing: config.SnakeTiming{StartInterval: 150, Step: 5, MinInterval: 50},
		Food:   config.SnakeFood{Points: 10},
	})
	g.Reset(core.RuntimeConfig{Seed: 1})

	if g.food != (core.Point{X: 3, Y: 0}) {
		t.Fatalf("food = %v, expected the only free cell (3,0)", g.food)
	}
	start(t, g)

	res := step(g, core.ActionNone)
	if !res.State.GameOver() || !res.State.Won {
		t.Errorf("state = %+v, expected a win", res.State)
	}
	if !res.Events.Has(core.EventWin) {
		t.Errorf("events = %v, expected win", res.Events)
	}
}

func TestIntervalFloor(t *testing.T) {
	g := newGame(t, 9)
	start(t, g)

	for i := 0; i < 30; i++ {
		// Same short snake every time with food right in front of it.
		g.snake = []core.Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
		g.dir, g.nextDir = core.DirRight, core.DirRight
		g.food = core.Point{X: 11, Y: 10}
		step(g, core.ActionNone)
	}

	if g.Interval() != 50*time.Millisecond {
		t.Errorf("Interval() = %v, expected floor of 50ms", g.Interval())
	}
	if g.State().Score != 300 {
		t.Errorf("score = %d, expected 300", g.State().Score)
	}
}

func TestPauseAndRestart(t *testing.T) {
	g := newGame(t, 11)
	start(t, g)

	res := step(g, core.ActionToggle)
	if res.State.Status != core.StatusPaused || !res.Events.Has(core.EventPause) {
		t.Fatalf("expected paused with pause event, got %+v %v", res.State, res.Events)
	}
	before := g.Snapshot().Snake[0]
	step(g, core.ActionNone)
	if g.Snapshot().Snake[0] != before {
		t.Error("paused snake must not move")
	}

	res = step(g, core.ActionToggle)
	if !res.Events.Has(core.EventResume) {
		t.Errorf("events = %v, expected resume", res.Events)
	}

	g.status = core.StatusGameOver
	g.score = 50
	res = step(g, core.ActionToggle)
	if res.State.Status != core.StatusPlaying || res.State.Score != 0 {
		t.Errorf("restart state = %+v, expected fresh playing game", res.State)
	}
	if len(g.snake) != 3 {
		t.Errorf("restart length = %d, expected 3", len(g.snake))
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(t, 12345)
	g2 := newGame(t, 12345)
	start(t, g1)
	start(t, g2)

	for i := 0; i < 100; i++ {
		a := core.ActionNone
		switch i {
		case 3:
			a = core.ActionDown
		case 8:
			a = core.ActionLeft
		case 15:
			a = core.ActionUp
		}
		step(g1, a)
		step(g2, a)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.Food != s2.Food || s1.Status != s2.Status {
		t.Errorf("snapshots diverged: %+v vs %+v", s1, s2)
	}
}

func TestDraw(t *testing.T) {
	g := newGame(t, 1)
	f := render.NewFrame(0, 0)
	g.Draw(f)

	if f.W != 20 || f.H != 20 {
		t.Errorf("frame size = %vx%v, expected 20x20", f.W, f.H)
	}
	if ov := f.Overlays(); len(ov) != 1 || ov[0].Hint != "Press Space to start" {
		t.Errorf("overlays = %+v, expected the ready overlay", ov)
	}
	if !strings.Contains(f.HUD, "Score: 0") {
		t.Errorf("HUD = %q", f.HUD)
	}

	heads := 0
	for _, c := range f.Cmds {
		if c.Kind == render.KindRect && c.Color == core.ColorAccent {
			heads++
		}
	}
	if heads != 1 {
		t.Errorf("expected exactly one head rect, got %d", heads)
	}
}

package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/games/pong"
	"github.com/vovakirdan/termfolio/internal/games/snake"
	"github.com/vovakirdan/termfolio/internal/render"
)

// counter is a minimal game that records its inputs.
type counter struct {
	steps    int
	inputs   []core.InputFrame
	status   core.Status
	interval time.Duration
	events   core.Events
}

func (c *counter) ID() string               { return "counter" }
func (c *counter) Title() string            { return "Counter" }
func (c *counter) Reset(core.RuntimeConfig) { c.steps, c.status = 0, core.StatusPlaying }
func (c *counter) Draw(f *render.Frame)     { f.Reset(10, 10) }
func (c *counter) State() core.GameState    { return core.GameState{Score: c.steps, Status: c.status} }
func (c *counter) Step(in core.InputFrame) core.StepResult {
	c.steps++
	c.inputs = append(c.inputs, in)
	return core.StepResult{State: c.State(), Events: c.events}
}

// paced is a counter with its own interval.
type paced struct{ counter }

func (p *paced) Interval() time.Duration { return p.interval }

type recorder struct {
	events   core.Events
	statuses []core.Status
}

func (r *recorder) Handle(es core.Events) { r.events = append(r.events, es...) }
func (r *recorder) Sync(s core.Status)    { r.statuses = append(r.statuses, s) }

func rc() core.RuntimeConfig {
	return core.RuntimeConfig{TickRate: 60, Seed: 1}
}

func TestTickPipeline(t *testing.T) {
	g := &counter{events: core.Events{core.EventBounce}}
	rec := &recorder{}
	d := NewDriver(g, nil, rc(), WithListener(rec))

	d.Latch().Tap(core.ActionToggle)
	res := d.Tick()

	require.Len(t, g.inputs, 1)
	assert.True(t, g.inputs[0].JustPressed(core.ActionToggle), "latched tap reaches the step")
	assert.Equal(t, 1, res.State.Score)
	assert.Equal(t, core.Events{core.EventBounce}, rec.events)
	assert.Equal(t, []core.Status{core.StatusPlaying, core.StatusPlaying}, rec.statuses, "reset and tick both sync")

	d.Tick()
	assert.False(t, g.inputs[1].JustPressed(core.ActionToggle), "edges clear after one snapshot")
	assert.Equal(t, uint64(2), d.Ticks())
}

func TestAdvanceUsesFrameInterval(t *testing.T) {
	g := &counter{}
	d := NewDriver(g, nil, rc())
	frame := time.Second / 60

	_, n := d.Advance(frame / 2)
	assert.Zero(t, n)
	_, n = d.Advance(frame / 2)
	assert.Equal(t, 1, n)

	_, n = d.Advance(3 * frame)
	assert.Equal(t, 3, n)
	assert.Equal(t, 4, g.steps)
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	g := &counter{}
	d := NewDriver(g, nil, rc(), WithMaxCatchUp(3))

	_, n := d.Advance(time.Second)
	assert.Equal(t, 3, n)

	// The backlog was dropped, so a short dt runs nothing.
	_, n = d.Advance(time.Millisecond)
	assert.Zero(t, n)
}

func TestAdvanceHonorsPacedGames(t *testing.T) {
	g := &paced{counter{interval: 100 * time.Millisecond}}
	d := NewDriver(g, nil, rc())

	assert.Equal(t, 100*time.Millisecond, d.Interval())
	_, n := d.Advance(250 * time.Millisecond)
	assert.Equal(t, 2, n)
}

func TestAdvanceCollectsEvents(t *testing.T) {
	g := &counter{events: core.Events{core.EventScore}}
	d := NewDriver(g, nil, rc())

	res, n := d.Advance(2 * time.Second / 60)
	require.Equal(t, 2, n)
	assert.Equal(t, core.Events{core.EventScore, core.EventScore}, res.Events)
	assert.Equal(t, 2, res.State.Score)
}

func TestDriverKeepsSnakeFromReversing(t *testing.T) {
	g := snake.New(config.DefaultSnakeConfig())
	d := NewDriver(g, nil, rc())

	d.Latch().Tap(core.ActionToggle)
	d.Tick()
	require.Equal(t, core.StatusPlaying, d.State().Status)

	// Heading right: left is a reversal and never queues.
	assert.False(t, d.Latch().QueueDirection(core.DirLeft))
	assert.True(t, d.Latch().QueueDirection(core.DirUp))
	d.Tick()
	assert.Equal(t, core.DirUp, g.Heading())

	// Now heading up: down is the reversal.
	assert.False(t, d.Latch().QueueDirection(core.DirDown))
}

func TestDriverStepsSnakeOnItsInterval(t *testing.T) {
	g := snake.New(config.DefaultSnakeConfig())
	d := NewDriver(g, nil, rc())
	d.Latch().Tap(core.ActionToggle)
	d.Tick()

	assert.Equal(t, 150*time.Millisecond, d.Interval())
	_, n := d.Advance(time.Second / 60)
	assert.Zero(t, n, "a frame is shorter than a snake move")
	_, n = d.Advance(150 * time.Millisecond)
	assert.Equal(t, 1, n)
}

func TestResetClearsLatch(t *testing.T) {
	g := &counter{}
	d := NewDriver(g, nil, rc())
	d.Latch().Press(core.ActionLeft)
	d.Advance(time.Second / 120)

	d.Reset(rc())
	d.Tick()
	assert.False(t, g.inputs[len(g.inputs)-1].Has(core.ActionLeft))
	assert.Equal(t, uint64(1), d.Ticks())
}

func TestRunnerStartStop(t *testing.T) {
	g := &counter{}
	d := NewDriver(g, nil, rc())
	r := NewRunner(d, time.Millisecond)

	stepped := make(chan struct{}, 1)
	r.OnStep = func(core.StepResult, int) {
		select {
		case stepped <- struct{}{}:
		default:
		}
	}

	require.NoError(t, r.Start(context.Background()))
	assert.ErrorIs(t, r.Start(context.Background()), ErrRunning)

	select {
	case <-stepped:
	case <-time.After(2 * time.Second):
		t.Fatal("runner never ticked")
	}

	r.Stop()
	r.Stop()
	select {
	case <-r.Done():
	default:
		t.Fatal("done should be closed after Stop")
	}

	steps := g.steps
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, steps, g.steps, "no ticks after Stop")
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	d := NewDriver(&counter{}, nil, rc())
	r := NewRunner(d, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, r.Start(ctx))
	cancel()

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner ignored context cancel")
	}
	r.Stop()
}

func TestStopBeforeStart(t *testing.T) {
	r := NewRunner(NewDriver(&counter{}, nil, rc()), 0)
	assert.NotPanics(t, r.Stop)
	assert.Nil(t, r.Done())
}

// playerPaddleY reads the player paddle from the drawn frame.
func playerPaddleY(t *testing.T, d *Driver) float64 {
	t.Helper()
	f := render.NewFrame(0, 0)
	d.Draw(f)
	for _, c := range f.Cmds {
		if c.Kind == render.KindRect && c.Color == core.ColorAccent {
			return c.Y
		}
	}
	t.Fatal("player paddle not drawn")
	return 0
}

func TestKeyboardTakesOverFromPointer(t *testing.T) {
	d := NewDriver(pong.New(config.DefaultPongConfig()), nil, rc())
	d.Latch().Tap(core.ActionToggle)
	require.True(t, d.Tick().State.Playing())

	d.Latch().Point(0.5, 0.5)
	d.Tick()
	before := playerPaddleY(t, d)

	d.Latch().Press(core.ActionUp)
	for range 60 {
		d.Tick()
	}
	moved := playerPaddleY(t, d)
	assert.Less(t, moved, before, "held Up should move the paddle after a pointer sample")

	d.Latch().Release(core.ActionUp)
	d.Tick()
	assert.Equal(t, moved, playerPaddleY(t, d), "released keys must not snap back to the old pointer")
}

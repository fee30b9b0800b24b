// Package loop schedules game steps: the Driver is the pure per-frame
// pipeline, the Runner drives it from a real timer.
package loop

import (
	"time"

	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/registry"
	"github.com/vovakirdan/termfolio/internal/render"
)

// DefaultMaxCatchUp bounds the ticks run by one Advance call.
const DefaultMaxCatchUp = 5

// Listener observes step results. The sound reactor is one.
type Listener interface {
	Handle(events core.Events)
	Sync(status core.Status)
}

// Driver owns one game and its input latch.
type Driver struct {
	game     registry.Game
	latch    *core.Latch
	listener Listener

	frame    time.Duration
	acc      time.Duration
	maxSteps int

	last  core.StepResult
	ticks uint64
}

// Option configures a Driver.
type Option func(*Driver)

// WithListener attaches a listener notified after every tick.
func WithListener(l Listener) Option {
	return func(d *Driver) { d.listener = l }
}

// WithMaxCatchUp sets how many ticks one Advance may run after a stall.
func WithMaxCatchUp(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxSteps = n
		}
	}
}

// NewDriver resets the game with rc and returns a driver for it.
func NewDriver(game registry.Game, latch *core.Latch, rc core.RuntimeConfig, opts ...Option) *Driver {
	if latch == nil {
		latch = core.NewLatch()
	}
	d := &Driver{game: game, latch: latch, maxSteps: DefaultMaxCatchUp}
	for _, opt := range opts {
		opt(d)
	}
	d.Reset(rc)
	return d
}

// Reset restarts the game and clears pending input and time.
func (d *Driver) Reset(rc core.RuntimeConfig) {
	d.frame = rc.FrameDuration()
	d.game.Reset(rc)
	d.latch.Reset()
	d.syncHeading()
	d.acc = 0
	d.ticks = 0
	d.last = core.StepResult{State: d.game.State()}
	if d.listener != nil {
		d.listener.Sync(d.last.State.Status)
	}
}

// Game returns the driven game.
func (d *Driver) Game() registry.Game { return d.game }

// Latch returns the input latch backends write to.
func (d *Driver) Latch() *core.Latch { return d.latch }

// State returns the state after the last tick.
func (d *Driver) State() core.GameState { return d.last.State }

// Ticks returns the number of ticks since the last reset.
func (d *Driver) Ticks() uint64 { return d.ticks }

// Interval is the time between ticks: the game's own pace if it has one,
// one frame otherwise.
func (d *Driver) Interval() time.Duration {
	if p, ok := d.game.(registry.Paced); ok {
		if iv := p.Interval(); iv > 0 {
			return iv
		}
	}
	return d.frame
}

// Tick runs one Snapshot -> Step -> notify cycle.
func (d *Driver) Tick() core.StepResult {
	in := d.latch.Snapshot()
	res := d.game.Step(in)
	d.syncHeading()
	d.ticks++
	d.last = res

	if d.listener != nil {
		d.listener.Handle(res.Events)
		d.listener.Sync(res.State.Status)
	}
	return res
}

// Advance accumulates dt and ticks once per interval. It returns the events of
// every tick run, the resulting state and the tick count. When more than the
// catch-up limit is owed, the backlog is dropped.
func (d *Driver) Advance(dt time.Duration) (core.StepResult, int) {
	d.acc += dt
	out := core.StepResult{State: d.last.State}
	n := 0
	for d.acc >= d.Interval() {
		if n == d.maxSteps {
			d.acc = 0
			break
		}
		d.acc -= d.Interval()
		res := d.Tick()
		out.State = res.State
		out.Events = append(out.Events, res.Events...)
		n++
	}
	return out, n
}

// Draw renders the game into f.
func (d *Driver) Draw(f *render.Frame) {
	d.game.Draw(f)
}

func (d *Driver) syncHeading() {
	if h, ok := d.game.(registry.Headed); ok {
		d.latch.SetHeading(h.Heading())
	}
}

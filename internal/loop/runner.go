package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/termfolio/internal/core"
)

// ErrRunning is returned by Start on a runner that is already running.
var ErrRunning = errors.New("loop: runner already started")

// Runner advances a Driver from a ticker until stopped. It is the only
// goroutine touching the driver while it runs.
type Runner struct {
	driver *Driver
	period time.Duration

	// OnStep, if set, is called from the loop goroutine after every Advance
	// that ran at least one tick.
	OnStep func(res core.StepResult, ticks int)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a runner polling every period (one frame when zero).
func NewRunner(d *Driver, period time.Duration) *Runner {
	if period <= 0 {
		period = d.frame
	}
	return &Runner{driver: d, period: period}
}

// Start launches the loop. It stops when ctx is done or Stop is called.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.run(ctx, r.done)
	return nil
}

func (r *Runner) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			res, n := r.driver.Advance(now.Sub(last))
			last = now
			if n > 0 && r.OnStep != nil {
				r.OnStep(res, n)
			}
		}
	}
}

// Stop cancels the loop and waits for it to exit. Safe to call repeatedly
// and before Start.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the loop exits. Nil before Start.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Package sound turns game events into short synthesized tones and an
// optional background melody. Sound is decorative: every failure degrades to
// silence and never reaches the game.
package sound

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
)

// Output is where the reactor sends audio. The speaker implementation lives
// in the device subpackage.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	// Locked runs fn while the output is not pulling samples.
	Locked(fn func())
}

// Options are the user-facing sound preferences.
type Options struct {
	Enabled       bool
	ReducedMotion bool
	Music         bool
	Volume        float64 // beep volume, base 2; 0 leaves the signal unchanged
}

// OptionsFrom converts the site sound config.
func OptionsFrom(c config.SoundConfig) Options {
	return Options{
		Enabled:       c.Enabled,
		ReducedMotion: c.ReducedMotion,
		Music:         c.Music,
		Volume:        c.Volume,
	}
}

// Reactor plays tones for step events.
type Reactor struct {
	mu     sync.Mutex
	out    Output
	opts   Options
	logger *log.Logger
	music  *beep.Ctrl
}

// NewReactor creates a reactor. A nil output yields a silent reactor.
func NewReactor(out Output, opts Options, logger *log.Logger) *Reactor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reactor{out: out, opts: opts, logger: logger}
}

func (r *Reactor) allowedLocked() bool {
	return r.out != nil && r.opts.Enabled && !r.opts.ReducedMotion
}

// Options returns the current preferences.
func (r *Reactor) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// SetOptions replaces the preferences, silencing the melody if sound is no
// longer allowed.
func (r *Reactor) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
	if !r.allowedLocked() || !opts.Music {
		r.stopLocked()
	}
}

// Handle plays one tone per audible event.
func (r *Reactor) Handle(events core.Events) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.allowedLocked() {
		return
	}
	for _, ev := range events {
		t, ok := tones[ev]
		if !ok {
			continue
		}
		s, err := t.streamer(r.out.SampleRate())
		if err != nil {
			r.logger.Debug("tone skipped", "event", ev, "err", err)
			continue
		}
		r.out.Play(r.volume(s))
	}
}

// Sync starts the melody while the game is playing and stops it otherwise.
func (r *Reactor) Sync(status core.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := r.allowedLocked() && r.opts.Music && status == core.StatusPlaying
	switch {
	case want && r.music == nil:
		r.startLocked()
	case !want && r.music != nil:
		r.stopLocked()
	}
}

// Close stops the melody.
func (r *Reactor) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Reactor) startLocked() {
	sr := r.out.SampleRate()
	i := 0
	next := func() beep.Streamer {
		s, err := melody[i%len(melody)].streamer(sr)
		if err != nil {
			r.logger.Debug("melody stopped", "err", err)
			return nil
		}
		i++
		return s
	}
	r.music = &beep.Ctrl{Streamer: beep.Iterate(next)}
	r.out.Play(r.volume(r.music))
}

func (r *Reactor) stopLocked() {
	if r.music == nil {
		return
	}
	ctrl := r.music
	r.out.Locked(func() {
		ctrl.Streamer = nil
	})
	r.music = nil
}

func (r *Reactor) volume(s beep.Streamer) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: r.opts.Volume}
}

package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termfolio/internal/core"
)

const testRate = beep.SampleRate(8000)

type fakeOutput struct {
	played []beep.Streamer
	locks  int
}

func (f *fakeOutput) SampleRate() beep.SampleRate { return testRate }
func (f *fakeOutput) Play(s beep.Streamer)        { f.played = append(f.played, s) }
func (f *fakeOutput) Locked(fn func()) {
	f.locks++
	fn()
}

func on() Options {
	return Options{Enabled: true, Music: true}
}

// drain pulls every sample out of s, giving up after limit samples.
func drain(s beep.Streamer, limit int) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func peak(samples [][2]float64) float64 {
	m := 0.0
	for _, s := range samples {
		m = math.Max(m, math.Abs(s[0]))
	}
	return m
}

func TestHandlePlaysOneTonePerAudibleEvent(t *testing.T) {
	out := &fakeOutput{}
	r := NewReactor(out, on(), nil)

	r.Handle(core.Events{core.EventBounce, core.EventStart, core.EventScore, core.EventGameOver})
	assert.Len(t, out.played, 3, "start has no tone")
}

func TestToneIsFiniteAndDecays(t *testing.T) {
	out := &fakeOutput{}
	r := NewReactor(out, on(), nil)
	r.Handle(core.Events{core.EventGameOver})
	require.Len(t, out.played, 1)

	samples := drain(out.played[0], 10*int(testRate))
	want := testRate.N(tones[core.EventGameOver].dur)
	assert.Equal(t, want, len(samples))

	quarter := len(samples) / 4
	head, tail := peak(samples[:quarter]), peak(samples[3*quarter:])
	assert.LessOrEqual(t, head, 0.5+1e-6)
	assert.Less(t, tail, head, "envelope should decay")
}

func TestSuppression(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"disabled", Options{Enabled: false, Music: true}},
		{"reduced motion", Options{Enabled: true, ReducedMotion: true, Music: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &fakeOutput{}
			r := NewReactor(out, tt.opts, nil)

			r.Handle(core.Events{core.EventBounce, core.EventWin})
			r.Sync(core.StatusPlaying)

			assert.Empty(t, out.played)
			assert.Nil(t, r.music)
			assert.False(t, r.allowedLocked())
		})
	}
}

func TestNilOutputIsSilent(t *testing.T) {
	r := NewReactor(nil, on(), nil)
	assert.NotPanics(t, func() {
		r.Handle(core.Events{core.EventBounce})
		r.Sync(core.StatusPlaying)
		r.Close()
	})
	assert.Nil(t, r.music)
}

func TestSyncFollowsStatus(t *testing.T) {
	out := &fakeOutput{}
	r := NewReactor(out, on(), nil)

	r.Sync(core.StatusReady)
	assert.Nil(t, r.music)

	r.Sync(core.StatusPlaying)
	require.NotNil(t, r.music)
	require.Len(t, out.played, 1)

	// A second sync while playing does not stack another melody.
	r.Sync(core.StatusPlaying)
	assert.Len(t, out.played, 1)

	music := out.played[0]
	assert.NotEmpty(t, drain(music, 512), "melody should produce samples")

	r.Sync(core.StatusPaused)
	assert.Nil(t, r.music)
	assert.Equal(t, 1, out.locks)

	n, ok := music.Stream(make([][2]float64, 64))
	assert.Zero(t, n)
	assert.False(t, ok, "stopped melody should end its stream")
}

func TestMelodyLoops(t *testing.T) {
	out := &fakeOutput{}
	r := NewReactor(out, on(), nil)
	r.Sync(core.StatusPlaying)
	require.Len(t, out.played, 1)

	var total time.Duration
	for _, n := range melody {
		total += n.dur
	}
	// Twice the loop length is still streaming.
	want := 2 * testRate.N(total)
	assert.Len(t, drain(out.played[0], want), want)
}

func TestSetOptionsStopsMusic(t *testing.T) {
	out := &fakeOutput{}
	r := NewReactor(out, on(), nil)
	r.Sync(core.StatusPlaying)
	require.NotNil(t, r.music)

	r.SetOptions(Options{Enabled: true, ReducedMotion: true})
	assert.Nil(t, r.music)
	assert.False(t, r.Options().Music)
}

func TestMusicPreferenceOff(t *testing.T) {
	out := &fakeOutput{}
	r := NewReactor(out, Options{Enabled: true}, nil)
	r.Sync(core.StatusPlaying)
	assert.Nil(t, r.music)

	r.Handle(core.Events{core.EventEat})
	assert.Len(t, out.played, 1, "tones still play without music")
}

func TestUnrepresentableToneIsSkipped(t *testing.T) {
	_, err := tone{freq: float64(testRate), dur: time.Millisecond}.streamer(testRate)
	assert.Error(t, err)
}

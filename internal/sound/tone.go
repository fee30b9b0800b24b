package sound

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/termfolio/internal/core"
)

type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveTriangle
)

// tone is a short synthesized blip.
type tone struct {
	freq float64
	dur  time.Duration
	wave waveform
	peak float32
}

// tones maps step events to their blip. Events without an entry are silent.
var tones = map[core.Event]tone{
	core.EventBounce:    {freq: 440, dur: 60 * time.Millisecond, wave: waveSquare, peak: 0.3},
	core.EventScore:     {freq: 660, dur: 120 * time.Millisecond, wave: waveSine, peak: 0.5},
	core.EventEat:       {freq: 880, dur: 80 * time.Millisecond, wave: waveSine, peak: 0.5},
	core.EventLineClear: {freq: 523.25, dur: 200 * time.Millisecond, wave: waveTriangle, peak: 0.6},
	core.EventLifeLost:  {freq: 196, dur: 250 * time.Millisecond, wave: waveSquare, peak: 0.4},
	core.EventWin:       {freq: 1046.5, dur: 400 * time.Millisecond, wave: waveTriangle, peak: 0.6},
	core.EventGameOver:  {freq: 110, dur: 500 * time.Millisecond, wave: waveSquare, peak: 0.5},
}

// melody is the looping background line, one note after another.
var melody = []tone{
	{freq: 261.63, dur: 180 * time.Millisecond, wave: waveTriangle, peak: 0.15},
	{freq: 329.63, dur: 180 * time.Millisecond, wave: waveTriangle, peak: 0.15},
	{freq: 392.00, dur: 180 * time.Millisecond, wave: waveTriangle, peak: 0.15},
	{freq: 329.63, dur: 180 * time.Millisecond, wave: waveTriangle, peak: 0.15},
	{freq: 220.00, dur: 180 * time.Millisecond, wave: waveTriangle, peak: 0.15},
	{freq: 261.63, dur: 180 * time.Millisecond, wave: waveTriangle, peak: 0.15},
	{freq: 329.63, dur: 360 * time.Millisecond, wave: waveTriangle, peak: 0.15},
}

// streamer renders the tone at the given sample rate. It fails when the
// frequency cannot be represented (at or above Nyquist).
func (t tone) streamer(sr beep.SampleRate) (beep.Streamer, error) {
	var (
		src beep.Streamer
		err error
	)
	switch t.wave {
	case waveSquare:
		src, err = generators.SquareTone(sr, t.freq)
	case waveTriangle:
		src, err = generators.TriangleTone(sr, t.freq)
	default:
		src, err = generators.SineTone(sr, t.freq)
	}
	if err != nil {
		return nil, err
	}
	return decay(sr, beep.Take(sr.N(t.dur), src), t.dur, t.peak), nil
}

// envelope scales each sample by a gain tweened from peak down to zero.
type envelope struct {
	beep.Streamer
	gain *gween.Tween
	dt   float32
}

func decay(sr beep.SampleRate, s beep.Streamer, d time.Duration, peak float32) beep.Streamer {
	return &envelope{
		Streamer: s,
		gain:     gween.New(peak, 0, float32(d.Seconds()), ease.OutQuad),
		dt:       float32(1 / float64(sr)),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.Streamer.Stream(samples)
	for i := range samples[:n] {
		g, _ := e.gain.Update(e.dt)
		samples[i][0] *= float64(g)
		samples[i][1] *= float64(g)
	}
	return n, ok
}

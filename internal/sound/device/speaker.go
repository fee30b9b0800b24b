// Package device connects the sound reactor to the system speaker.
package device

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is used when the caller has no preference.
const DefaultSampleRate = beep.SampleRate(44100)

// Speaker mixes every played streamer into the single speaker stream.
type Speaker struct {
	sr    beep.SampleRate
	mixer *beep.Mixer
}

// Open initializes the speaker. The buffer trades latency for robustness;
// 50-100ms is fine for blips.
func Open(sr beep.SampleRate, buffer time.Duration) (*Speaker, error) {
	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, fmt.Errorf("sound: cannot open speaker: %w", err)
	}
	m := &beep.Mixer{}
	speaker.Play(m)
	return &Speaker{sr: sr, mixer: m}, nil
}

// SampleRate returns the output sample rate.
func (s *Speaker) SampleRate() beep.SampleRate { return s.sr }

// Play adds a streamer to the mix.
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Locked runs fn with the speaker paused.
func (s *Speaker) Locked(fn func()) {
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}

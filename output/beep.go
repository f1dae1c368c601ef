// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ik5/audmix/mixer"
)

// Streamer exposes the mixer as a beep.Streamer. It never drains: while
// no sound plays it streams silence.
type Streamer struct {
	mixer    *mixer.Mixer
	channels int
	buf      []int16
}

var _ beep.Streamer = (*Streamer)(nil)

func NewStreamer(m *mixer.Mixer) *Streamer {
	return &Streamer{mixer: m, channels: m.OutputChannels()}
}

// Format describes the samples Stream produces.
func (s *Streamer) Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(s.mixer.OutputRate()),
		NumChannels: 2,
		Precision:   bytesPerSample,
	}
}

func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	n := len(samples) * s.channels
	if cap(s.buf) < n {
		s.buf = make([]int16, n)
	}
	s.buf = s.buf[:n]

	s.mixer.MixCallback(s.buf)

	for i := range samples {
		left := float64(s.buf[i*s.channels]) / 32767
		right := left
		if s.channels == 2 {
			right = float64(s.buf[i*2+1]) / 32767
		}
		samples[i][0] = left
		samples[i][1] = right
	}

	return len(samples), true
}

func (s *Streamer) Err() error { return nil }

// Speaker plays the mixer through the beep speaker package, which owns a
// single process wide device.
type Speaker struct {
	streamer *Streamer
	ctrl     *beep.Ctrl
	mixer    *mixer.Mixer

	mu      sync.Mutex
	started bool
	closed  bool
}

func NewSpeaker(m *mixer.Mixer, bufferFrames int) (*Speaker, error) {
	s := NewStreamer(m)
	if err := speaker.Init(s.Format().SampleRate, bufferFrames); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	return &Speaker{
		streamer: s,
		ctrl:     &beep.Ctrl{Streamer: s},
		mixer:    m,
	}, nil
}

func (sp *Speaker) Start() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.closed {
		return fmt.Errorf("speaker closed")
	}
	if !sp.started {
		sp.mixer.SetReady(true)
		speaker.Play(sp.ctrl)
		sp.started = true
	}

	return nil
}

func (sp *Speaker) Pause(paused bool) {
	speaker.Lock()
	sp.ctrl.Paused = paused
	speaker.Unlock()
}

func (sp *Speaker) Close() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.closed {
		return nil
	}
	sp.closed = true

	speaker.Clear()
	speaker.Close()
	sp.mixer.SetReady(false)

	return nil
}

// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides scripted sources and streams for tests.
// The types satisfy audio.Source and audio.Stream structurally, without
// importing the audio package, so any package may use them.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrClosed is returned by reads after Close.
var ErrClosed = errors.New("mock stream closed")

// MockSource generates a fixed number of frames from a waveform function.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) float32

	closed     int
	closeErr   error
	failAfter  int
	failReason error
}

// NewMockSource creates a source of totalFrames frames. waveform returns
// the value of a sample given its frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
		failAfter:   -1,
	}
}

// NewSilentSource creates a source of zeros.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalFrames, 0)
}

// NewSineSource creates a sine wave at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a source where every sample equals value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float32 {
		return value
	})
}

// FailAfter makes reads fail with err once frames frames were produced.
func (m *MockSource) FailAfter(frames int, err error) *MockSource {
	m.failAfter = frames
	m.failReason = err
	return m
}

// CloseError makes Close return err.
func (m *MockSource) CloseError(err error) *MockSource {
	m.closeErr = err
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed++
	return m.closeErr
}

// Closed returns how many times Close was called.
func (m *MockSource) Closed() int { return m.closed }

// Generated returns the number of frames read so far.
func (m *MockSource) Generated() int { return m.generated }

// Reset restarts generation from the first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.closed > 0 {
		return 0, ErrClosed
	}
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, m.failReason
	}
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalFrames-m.generated)
	if m.failAfter >= 0 {
		framesToWrite = min(framesToWrite, m.failAfter-m.generated)
	}

	for frame := range framesToWrite {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalFrames {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// MockStream is a MockSource with the stream end and rewind reporting the
// mixer schedules on.
type MockStream struct {
	*MockSource

	rewindable bool
	rewinds    int
}

// NewMockStream creates a stream of frames frames holding value.
func NewMockStream(sampleRate, channels, frames int, value float32, rewindable bool) *MockStream {
	return &MockStream{
		MockSource: NewConstantSource(sampleRate, channels, frames, value),
		rewindable: rewindable,
	}
}

// NewRampStream creates a mono stream whose frame i holds i/frames.
func NewRampStream(sampleRate, frames int) *MockStream {
	return &MockStream{
		MockSource: NewMockSource(sampleRate, 1, frames, func(frame int, _ int) float32 {
			return float32(frame) / float32(frames)
		}),
	}
}

func (s *MockStream) EndOfData() bool   { return s.EndOfStream() }
func (s *MockStream) EndOfStream() bool { return s.closed > 0 || s.generated >= s.totalFrames }
func (s *MockStream) Rewindable() bool  { return s.rewindable }

// Rewinds returns how many times the stream was rewound.
func (s *MockStream) Rewinds() int { return s.rewinds }

func (s *MockStream) Rewind() error {
	if !s.rewindable {
		return errors.New("mock stream is not rewindable")
	}
	s.rewinds++
	s.Reset()

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// SourceStream adapts a one-shot decoded Source to the Stream contract.
// The stream ends on io.EOF or on the first read error, which is kept and
// reported by Err. It cannot be rewound.
type SourceStream struct {
	src   Source
	ended bool
	err   error
}

// NewStream wraps src. Mono and stereo sources are accepted.
func NewStream(src Source) (*SourceStream, error) {
	if src == nil {
		return nil, fmt.Errorf("nil source: %w", ErrInvalidChannels)
	}
	if ch := src.Channels(); ch != 1 && ch != 2 {
		return nil, fmt.Errorf("%d channels: %w", ch, ErrInvalidChannels)
	}

	return &SourceStream{src: src}, nil
}

func (s *SourceStream) SampleRate() int { return s.src.SampleRate() }
func (s *SourceStream) Channels() int   { return s.src.Channels() }
func (s *SourceStream) BufSize() int    { return s.src.BufSize() }

func (s *SourceStream) EndOfData() bool   { return s.ended }
func (s *SourceStream) EndOfStream() bool { return s.ended }
func (s *SourceStream) Rewindable() bool  { return false }
func (s *SourceStream) Rewind() error     { return ErrNotRewindable }

// Err returns the read error that ended the stream, if any.
func (s *SourceStream) Err() error { return s.err }

func (s *SourceStream) ReadSamples(dst []float32) (int, error) {
	if s.ended {
		return 0, io.EOF
	}

	n, err := s.src.ReadSamples(dst)
	if err == nil {
		return n, nil
	}

	s.ended = true
	if !errors.Is(err, io.EOF) {
		s.err = err
		return n, fmt.Errorf("%w", err)
	}

	return n, io.EOF
}

func (s *SourceStream) Close() error {
	s.ended = true
	if err := s.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// MemoryStream plays interleaved samples held in memory. It is rewindable,
// which makes it suitable for looping.
type MemoryStream struct {
	sampleRate int
	channels   int
	data       []float32
	pos        int
}

// NewMemoryStream plays data, interleaved with the given channel count.
// A trailing partial frame is dropped.
func NewMemoryStream(sampleRate, channels int, data []float32) (*MemoryStream, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%d channels: %w", channels, ErrInvalidChannels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%d Hz: %w", sampleRate, ErrInvalidRate)
	}

	return &MemoryStream{
		sampleRate: sampleRate,
		channels:   channels,
		data:       data[:len(data)-len(data)%channels],
	}, nil
}

// Load drains src into memory and closes it.
func Load(src Source) (*MemoryStream, error) {
	defer src.Close()

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	bufSize -= bufSize % src.Channels()
	if bufSize == 0 {
		bufSize = src.Channels()
	}

	data := make([]float32, 0, src.SampleRate()*src.Channels())
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("loading source: %w", err)
		}
	}

	return NewMemoryStream(src.SampleRate(), src.Channels(), data)
}

func (m *MemoryStream) SampleRate() int { return m.sampleRate }
func (m *MemoryStream) Channels() int   { return m.channels }
func (m *MemoryStream) BufSize() int    { return 4096 }
func (m *MemoryStream) Close() error    { return nil }

func (m *MemoryStream) EndOfData() bool   { return m.pos >= len(m.data) }
func (m *MemoryStream) EndOfStream() bool { return m.pos >= len(m.data) }
func (m *MemoryStream) Rewindable() bool  { return true }

func (m *MemoryStream) Rewind() error {
	m.pos = 0
	return nil
}

// Frames returns the length of the stream in frames.
func (m *MemoryStream) Frames() int { return len(m.data) / m.channels }

func (m *MemoryStream) ReadSamples(dst []float32) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%m.channels
	n := copy(dst[:want], m.data[m.pos:])
	m.pos += n

	if m.pos >= len(m.data) {
		return n, io.EOF
	}

	return n, nil
}

// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// LoopingStream replays a rewindable parent a fixed number of times, or
// forever when loops is 0.
type LoopingStream struct {
	parent    Stream
	loops     int
	completed int
	pass      int
}

// NewLoopingStream wraps parent. A parent that is already at its end when
// wrapped is treated as empty and played once.
func NewLoopingStream(parent Stream, loops int) (*LoopingStream, error) {
	if !parent.Rewindable() {
		return nil, ErrNotRewindable
	}

	l := &LoopingStream{parent: parent, loops: loops}
	if parent.EndOfStream() {
		l.loops, l.completed = 1, 1
	}

	return l, nil
}

func (l *LoopingStream) SampleRate() int { return l.parent.SampleRate() }
func (l *LoopingStream) Channels() int   { return l.parent.Channels() }
func (l *LoopingStream) BufSize() int    { return l.parent.BufSize() }
func (l *LoopingStream) Rewindable() bool {
	return true
}

// Iterations returns how many times the parent was played to its end.
func (l *LoopingStream) Iterations() int { return l.completed }

func (l *LoopingStream) finished() bool {
	return l.loops != 0 && l.completed >= l.loops
}

func (l *LoopingStream) EndOfData() bool {
	return l.finished() || (l.parent.EndOfData() && !l.parent.EndOfStream())
}

func (l *LoopingStream) EndOfStream() bool { return l.finished() }

func (l *LoopingStream) Rewind() error {
	if err := l.parent.Rewind(); err != nil {
		return fmt.Errorf("%w", err)
	}
	l.completed = 0
	l.pass = 0

	return nil
}

func (l *LoopingStream) ReadSamples(dst []float32) (int, error) {
	written := 0
	for written < len(dst) && !l.finished() {
		n, err := l.parent.ReadSamples(dst[written:])
		written += n
		l.pass += n

		if err != nil && !errors.Is(err, io.EOF) {
			return written, fmt.Errorf("%w", err)
		}

		if !l.parent.EndOfStream() {
			if n == 0 {
				break
			}
			continue
		}

		l.completed++
		if l.pass == 0 {
			l.loops = l.completed
		}
		l.pass = 0
		if l.finished() {
			break
		}
		if err := l.parent.Rewind(); err != nil {
			l.loops = l.completed
			return written, fmt.Errorf("%w", err)
		}
	}

	if l.finished() {
		return written, io.EOF
	}

	return written, nil
}

func (l *LoopingStream) Close() error {
	if err := l.parent.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

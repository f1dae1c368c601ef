// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"sync"
)

// QueueStream plays blocks of samples in the order they were queued. It
// reports EndOfData while starved and only reaches EndOfStream after
// Finish was called and every queued block was read. Producers may queue
// from any goroutine.
type QueueStream struct {
	sampleRate int
	channels   int

	mtx      sync.Mutex
	blocks   [][]float32
	offset   int
	finished bool
}

func NewQueueStream(sampleRate, channels int) (*QueueStream, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%d channels: %w", channels, ErrInvalidChannels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%d Hz: %w", sampleRate, ErrInvalidRate)
	}

	return &QueueStream{sampleRate: sampleRate, channels: channels}, nil
}

// Queue appends interleaved samples. The slice is retained, not copied.
func (q *QueueStream) Queue(samples []float32) error {
	if len(samples)%q.channels != 0 {
		return ErrInvalidDstSize
	}

	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.finished {
		return ErrQueueFinished
	}
	if len(samples) > 0 {
		q.blocks = append(q.blocks, samples)
	}

	return nil
}

// Finish marks that nothing more will be queued.
func (q *QueueStream) Finish() {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.finished = true
}

// Pending returns the number of queued frames not yet read.
func (q *QueueStream) Pending() int {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	total := -q.offset
	for _, b := range q.blocks {
		total += len(b)
	}

	return total / q.channels
}

func (q *QueueStream) SampleRate() int  { return q.sampleRate }
func (q *QueueStream) Channels() int    { return q.channels }
func (q *QueueStream) BufSize() int     { return 4096 }
func (q *QueueStream) Rewindable() bool { return false }
func (q *QueueStream) Rewind() error    { return ErrNotRewindable }

func (q *QueueStream) EndOfData() bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return len(q.blocks) == 0
}

func (q *QueueStream) EndOfStream() bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return q.finished && len(q.blocks) == 0
}

func (q *QueueStream) ReadSamples(dst []float32) (int, error) {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	want := len(dst) - len(dst)%q.channels
	written := 0
	for written < want && len(q.blocks) > 0 {
		n := copy(dst[written:want], q.blocks[0][q.offset:])
		written += n
		q.offset += n

		if q.offset >= len(q.blocks[0]) {
			q.blocks[0] = nil
			q.blocks = q.blocks[1:]
			q.offset = 0
		}
	}

	if q.finished && len(q.blocks) == 0 {
		return written, io.EOF
	}

	return written, nil
}

// Close drops everything still queued and finishes the stream.
func (q *QueueStream) Close() error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.blocks = nil
	q.offset = 0
	q.finished = true

	return nil
}

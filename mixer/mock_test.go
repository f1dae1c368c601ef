// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// fakeClock is a settable wall clock.
type fakeClock struct {
	mtx sync.Mutex
	t   time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.t = c.t.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestMixer returns a ready stereo mixer at 8 kHz.
func newTestMixer(t *testing.T, opts ...Option) *Mixer {
	t.Helper()

	opts = append([]Option{WithLogger(discardLogger())}, opts...)
	m, err := New(8000, true, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.SetReady(true)

	t.Cleanup(func() { _ = m.Close() })

	return m
}

// channelOf returns the channel behind h, failing the test when it is gone.
func channelOf(t *testing.T, m *Mixer, h Handle) *channel {
	t.Helper()

	m.mtx.Lock()
	defer m.mtx.Unlock()

	c := m.lookup(h)
	if c == nil {
		t.Fatalf("handle %d is not active", h)
	}

	return c
}

func countID(m *Mixer, id int) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	n := 0
	for _, c := range m.channels {
		if c != nil && c.id == id {
			n++
		}
	}

	return n
}

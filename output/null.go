// SPDX-License-Identifier: EPL-2.0

package output

import (
	"sync"
	"time"

	"github.com/ik5/audmix/mixer"
)

// NullHost runs the mixer in real time without a device, discarding the
// output. It suits headless servers and tests.
type NullHost struct {
	mixer  *mixer.Mixer
	buf    []int16
	period time.Duration

	mu      sync.Mutex
	paused  bool
	started bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewNullHost(m *mixer.Mixer, bufferFrames int) *NullHost {
	return &NullHost{
		mixer:  m,
		buf:    make([]int16, bufferFrames*m.OutputChannels()),
		period: framesDuration(bufferFrames, m.OutputRate()),
	}
}

func (h *NullHost) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return nil
	}
	h.started = true
	h.done = make(chan struct{})
	h.mixer.SetReady(true)

	h.wg.Add(1)
	go h.run(h.done)

	return nil
}

func (h *NullHost) run(done <-chan struct{}) {
	defer h.wg.Done()

	ticker := time.NewTicker(h.period)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			h.mu.Lock()
			paused := h.paused
			h.mu.Unlock()

			if !paused {
				h.mixer.MixCallback(h.buf)
			}
		}
	}
}

func (h *NullHost) Pause(paused bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.paused = paused
}

func (h *NullHost) Close() error {
	h.mu.Lock()
	started := h.started
	h.started = false
	h.mu.Unlock()

	if started {
		close(h.done)
		h.wg.Wait()
		h.mixer.SetReady(false)
	}

	return nil
}

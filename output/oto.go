// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audmix/mixer"
)

// OtoPlayer plays the mixer through an oto context. oto allows a single
// context per process.
type OtoPlayer struct {
	mixer   *mixer.Mixer
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mutex   sync.Mutex
}

func NewOtoPlayer(m *mixer.Mixer, bufferFrames int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   m.OutputRate(),
		ChannelCount: m.OutputChannels(),
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   framesDuration(bufferFrames, m.OutputRate()),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening oto context: %w", err)
	}
	<-ready

	return &OtoPlayer{
		mixer:  m,
		ctx:    ctx,
		player: ctx.NewPlayer(NewPCMReader(m)),
	}, nil
}

func (op *OtoPlayer) Start() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player == nil {
		return fmt.Errorf("oto player closed")
	}
	if !op.started {
		op.mixer.SetReady(true)
		op.player.Play()
		op.started = true
	}

	return nil
}

func (op *OtoPlayer) Pause(paused bool) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player == nil || !op.started {
		return
	}
	if paused {
		op.player.Pause()
	} else {
		op.player.Play()
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	return op.started
}

func (op *OtoPlayer) Close() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player == nil {
		return nil
	}

	err := op.player.Close()
	op.player = nil
	op.started = false
	op.mixer.SetReady(false)

	if err != nil {
		return fmt.Errorf("closing oto player: %w", err)
	}

	return nil
}

func framesDuration(frames, rate int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(rate)
}

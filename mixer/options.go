// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"log/slog"
	"time"
)

// Option configures a Mixer.
type Option func(*Mixer)

// WithCapacity sets the number of channel slots.
func WithCapacity(n int) Option {
	return func(m *Mixer) { m.capacity = n }
}

// WithBufferSize records the output buffer size, in frames, the audio host
// asks for on each callback.
func WithBufferSize(frames int) Option {
	return func(m *Mixer) { m.bufferFrames = frames }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Mixer) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock replaces the wall clock used for elapsed time accounting.
func WithClock(now func() time.Time) Option {
	return func(m *Mixer) {
		if now != nil {
			m.now = now
		}
	}
}

type playConfig struct {
	id            int
	volume        uint8
	balance       int8
	ownership     Ownership
	permanent     bool
	reverseStereo bool
}

// PlayOption configures a single PlayStream call.
type PlayOption func(*playConfig)

// WithID tags the sound. While a sound with the id is active, further
// sounds with the same id are rejected.
func WithID(id int) PlayOption {
	return func(p *playConfig) { p.id = id }
}

func WithVolume(volume uint8) PlayOption {
	return func(p *playConfig) { p.volume = volume }
}

// WithBalance pans the sound, -127 is full left and 127 full right.
func WithBalance(balance int8) PlayOption {
	return func(p *playConfig) { p.balance = balance }
}

func WithOwnership(o Ownership) PlayOption {
	return func(p *playConfig) { p.ownership = o }
}

// Permanent exempts the sound from StopAll.
func Permanent() PlayOption {
	return func(p *playConfig) { p.permanent = true }
}

// ReverseStereo swaps the left and right output of the sound.
func ReverseStereo() PlayOption {
	return func(p *playConfig) { p.reverseStereo = true }
}

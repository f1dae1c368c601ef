// SPDX-License-Identifier: EPL-2.0

// Package output drives a mixer.Mixer from an audio device.
//
// Each Host calls MixCallback from its own goroutine whenever the device
// needs samples. Starting a host marks the mixer ready.
//
//	m, _ := mixer.New(44100, true)
//	host, err := output.Open(output.BackendOto, m, 2048)
//	if err != nil {
//	    return err
//	}
//	defer host.Close()
//	if err := host.Start(); err != nil {
//	    return err
//	}
package output

import (
	"errors"
	"fmt"

	"github.com/ik5/audmix/mixer"
)

// Backend names accepted by Open.
const (
	BackendOto  = "oto"
	BackendBeep = "beep"
	BackendNull = "null"
)

// ErrUnknownBackend is returned by Open for a backend name it does not know.
var ErrUnknownBackend = errors.New("unknown output backend")

// Host pulls mixed audio out of a mixer.
type Host interface {
	Start() error
	// Pause stops pulling samples without losing the mixer state.
	Pause(paused bool)
	Close() error
}

// Backends lists the names Open accepts.
func Backends() []string {
	return []string{BackendOto, BackendBeep, BackendNull}
}

// Open creates the host named by backend for m. bufferFrames is the
// number of frames the device asks for per callback.
func Open(backend string, m *mixer.Mixer, bufferFrames int) (Host, error) {
	if bufferFrames <= 0 {
		bufferFrames = 2048
	}

	switch backend {
	case BackendOto:
		return NewOtoPlayer(m, bufferFrames)
	case BackendBeep:
		return NewSpeaker(m, bufferFrames)
	case BackendNull:
		return NewNullHost(m, bufferFrames), nil
	}

	return nil, fmt.Errorf("%q: %w", backend, ErrUnknownBackend)
}

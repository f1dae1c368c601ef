// SPDX-License-Identifier: EPL-2.0

// Package mixer sums many independently controlled sounds into a single
// 16-bit PCM output buffer.
//
// A Mixer holds a fixed number of channel slots. Each call to PlayStream
// puts an audio.Stream into a free slot and returns a Handle. The handle
// stays valid until the sound ends or is stopped; after that every query
// on it returns a zero value and every mutation is ignored, even when a
// new sound reuses the slot.
//
//	m, err := mixer.New(44100, true)
//	if err != nil {
//	    return err
//	}
//
//	h, err := m.PlayStream(mixer.SFX, stream, mixer.WithVolume(200), mixer.WithBalance(-40))
//	if err != nil {
//	    return err
//	}
//	m.PauseHandle(h, true)
//
// # Audio Host
//
// The audio host calls MixCallback from its own goroutine with an
// interleaved int16 buffer. The first callback marks the mixer ready;
// PlayStream rejects sounds with ErrNotReady before that, unless SetReady
// was called. The output package wires a Mixer to oto or beep.
//
// # Volume
//
// Every sound belongs to a Category with its own volume (0 to
// MaxMixerVolume) and mute flag. The left and right gains of a sound
// combine the category volume, the channel volume, the balance and the
// two faders. At full volume the gains equal audio.UnityGain.
//
// # Ownership
//
// By default the mixer closes a stream when its sound ends, when it is
// stopped and when PlayStream rejects it. Pass WithOwnership(KeepAfterUse)
// to keep closing the stream to the caller.
package mixer

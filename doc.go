// SPDX-License-Identifier: EPL-2.0

// Package audmix is a software audio mixing engine.
//
// Sounds are decoded into audio.Stream values, handed to a mixer.Mixer
// with a category, volume and balance, and summed into 16-bit
// interleaved buffers whenever an audio host calls MixCallback. Each
// sound is converted to the output rate and channel layout on the fly.
//
// # Packages
//
//   - audio: the Source and Stream contracts, the rate converter, looping
//     and queued streams, and the decoder registry.
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders.
//     formats.NewRegistry holds all of them.
//   - mixer: the channel table, gain model and MixCallback.
//   - output: hosts that drive MixCallback from oto, beep or a timer.
//
// # Quick Start
//
//	reg := formats.NewRegistry()
//	music, _ := audmix.LoadFile(reg, "theme.ogg")
//
//	m, _ := mixer.New(44100, true)
//	h, _ := m.PlayStream(mixer.Music, music, mixer.WithVolume(200))
//
//	host, _ := output.Open(output.BackendOto, m, 2048)
//	defer host.Close()
//	host.Start()
//
//	for m.IsSoundHandleActive(h) {
//	    time.Sleep(100 * time.Millisecond)
//	}
//
// # Offline Rendering
//
// Render drives the mixer without a device and returns everything it
// produced, which wav.WriteWAV16 can store:
//
//	samples, _ := audmix.Render(m, 2048, 0)
//	f, _ := os.Create("mix.wav")
//	wav.WriteWAV16(f, m.OutputRate(), m.OutputChannels(), samples)
package audmix

// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files through github.com/go-audio/wav.
//
// The Decoder accepts 16, 24 and 32-bit integer PCM with any channel count
// and sample rate. The go-audio decoder seeks between chunks, so input
// that is not an io.ReadSeeker is read into memory first.
//
//	f, _ := os.Open("clip.wav")
//	source, err := wav.Decoder{}.Decode(f)
//
// WriteWAV16 writes interleaved 16-bit samples, as produced by the mixer,
// to a file:
//
//	f, _ := os.Create("mix.wav")
//	err := wav.WriteWAV16(f, 44100, 2, samples)
//
// Errors wrap ErrNotWavFile, ErrUnsupportedEncoding, ErrUnsupportedBitDepth
// or ErrInvalidOutput and can be matched with errors.Is.
package wav

// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio through
// github.com/jfreymuth/oggvorbis.
//
// The decoder keeps the stream's own channel count and sample rate; the
// mixer accepts mono and stereo streams.
//
//	f, _ := os.Open("speech.ogg")
//	source, err := vorbis.Decoder{}.Decode(f)
package vorbis

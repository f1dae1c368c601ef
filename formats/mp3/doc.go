// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always decodes to 16-bit stereo, so every source this package
// returns reports two channels, even for mono files. Reads return whole
// frames only.
//
//	f, _ := os.Open("music.mp3")
//	source, err := mp3.Decoder{}.Decode(f)
//	if errors.Is(err, mp3.ErrNotMP3File) {
//	    // no MPEG frame found
//	}
package mp3

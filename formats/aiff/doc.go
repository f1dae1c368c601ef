// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// AIFF stores big-endian integer PCM; the decoder accepts 8, 16, 24 and
// 32-bit samples at any rate and channel count and normalizes them to
// float32. Input that cannot seek is read into memory first.
//
//	f, _ := os.Open("clip.aiff")
//	source, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF file
//	}
package aiff

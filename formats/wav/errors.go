// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input has no RIFF/WAVE header.
	ErrNotWavFile = errors.New("not a WAV file")
	// ErrUnsupportedEncoding indicates compressed or floating point data.
	ErrUnsupportedEncoding = errors.New("only integer PCM WAV is supported")
	// ErrUnsupportedBitDepth indicates a sample width other than 16, 24
	// or 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	// ErrInvalidOutput indicates WriteWAV16 was given a bad rate, channel
	// count, or a partial frame.
	ErrInvalidOutput = errors.New("invalid WAV output parameters")
)

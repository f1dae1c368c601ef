// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

const writeChunk = 8192

// WriteWAV16 writes interleaved 16-bit samples as a PCM WAV file. The
// header sizes are patched once all data is written, so w must seek.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if sampleRate <= 0 || channels <= 0 || len(samples)%channels != 0 {
		return fmt.Errorf("%d Hz, %d channels, %d samples: %w", sampleRate, channels, len(samples), ErrInvalidOutput)
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, 0, min(len(samples), writeChunk)),
	}

	// an empty write still emits the headers
	for i := 0; i == 0 || i < len(samples); i += writeChunk {
		chunk := samples[i:min(i+writeChunk, len(samples))]

		buf.Data = buf.Data[:len(chunk)]
		for j, s := range chunk {
			buf.Data[j] = int(s)
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav file: %w", err)
	}

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"

	"github.com/ik5/audmix/mixer"
)

const bytesPerSample = 2

// PCMReader serves the mixer output as signed 16-bit little-endian bytes.
// Read always fills whole frames and pads the rest of p with silence, so
// a device never starves.
type PCMReader struct {
	mixer    *mixer.Mixer
	channels int
	buf      []int16
}

func NewPCMReader(m *mixer.Mixer) *PCMReader {
	return &PCMReader{
		mixer:    m,
		channels: m.OutputChannels(),
	}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	frameBytes := r.channels * bytesPerSample
	samples := (len(p) / frameBytes) * r.channels

	if cap(r.buf) < samples {
		r.buf = make([]int16, samples)
	}
	r.buf = r.buf[:samples]

	r.mixer.MixCallback(r.buf)

	for i, s := range r.buf {
		binary.LittleEndian.PutUint16(p[i*bytesPerSample:], uint16(s))
	}
	clear(p[samples*bytesPerSample:])

	return len(p), nil
}

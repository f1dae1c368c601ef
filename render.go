// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats"
	"github.com/ik5/audmix/mixer"
)

var (
	ErrNilMixer      = errors.New("mixer is nil")
	ErrUnknownFormat = errors.New("no decoder for file format")
)

// Render calls m.MixCallback with bufferFrames sized buffers until no
// channel is left or limit frames were produced, and returns the mixed
// interleaved samples. A limit of 0 means no limit. Trailing silence
// after the last audible frame is dropped.
//
// Render never returns while an infinitely looping sound plays unless
// limit is set.
func Render(m *mixer.Mixer, bufferFrames, limit int) ([]int16, error) {
	if m == nil {
		return nil, ErrNilMixer
	}
	if bufferFrames <= 0 {
		bufferFrames = m.OutputBufSize()
	}
	if bufferFrames <= 0 {
		bufferFrames = 2048
	}

	ch := m.OutputChannels()
	buf := make([]int16, bufferFrames*ch)
	out := make([]int16, 0, m.OutputRate()*ch)
	end := 0

	m.SetReady(true)
	for limit <= 0 || len(out) < limit*ch {
		n := m.MixCallback(buf)
		if n == 0 && m.ActiveChannelCount() == 0 {
			break
		}

		out = append(out, buf...)
		if n > 0 {
			end = len(out) - (bufferFrames-n)*ch
		}
	}

	if limit > 0 && end > limit*ch {
		end = limit * ch
	}

	return out[:end], nil
}

// LoadFile decodes the file at path with the decoder registered for its
// extension and loads it into memory. The result is rewindable, so it can
// be looped.
func LoadFile(reg *audio.Registry, path string) (*audio.MemoryStream, error) {
	format := formats.FromPath(path)
	dec, ok := reg.Get(format)
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownFormat, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	stream, err := audio.Load(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return stream, nil
}

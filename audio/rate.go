// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audmix/utils"
)

const (
	// MaxInputRate is the exclusive upper bound for a converter input rate.
	MaxInputRate = 131072
	// UnityGain is the gain value that leaves samples unchanged.
	UnityGain = 256
)

// RateConverter pulls frames from a Stream at the stream's rate and mixes
// them into an interleaved int16 buffer at the output rate, applying a
// left/right gain pair. It uses cubic interpolation between frames.
// Mono input is duplicated to both sides of a stereo output, stereo input
// is averaged for a mono output. With reverseStereo the left side, gain
// included, is written to the right output and the other way around.
type RateConverter struct {
	inRate        int
	outRate       int
	inChannels    int
	outChannels   int
	reverseStereo bool
	ratio         float64 // input frames per output frame

	// frames[0] is the last consumed frame, frames[1:1+have] the pending
	// ones. pos is the read position between frames[1] and frames[2].
	frames [4][]float32
	have   int
	primed bool
	pos    float64

	blk    []float32
	blkPos int
	blkLen int
}

func NewRateConverter(inRate, outRate int, inStereo, outStereo, reverseStereo bool) (*RateConverter, error) {
	if outRate <= 0 {
		return nil, fmt.Errorf("output %d Hz: %w", outRate, ErrInvalidRate)
	}

	c := &RateConverter{
		outRate:       outRate,
		inChannels:    1,
		outChannels:   1,
		reverseStereo: reverseStereo,
	}
	if inStereo {
		c.inChannels = 2
	}
	if outStereo {
		c.outChannels = 2
	}

	if err := c.SetInputRate(inRate); err != nil {
		return nil, err
	}

	for i := range c.frames {
		c.frames[i] = make([]float32, c.inChannels)
	}
	c.blk = make([]float32, 512*c.inChannels)

	return c, nil
}

// SetInputRate changes the rate the source is read at. Changing it while
// playing bends the pitch.
func (c *RateConverter) SetInputRate(rate int) error {
	if rate <= 0 || rate >= MaxInputRate {
		return fmt.Errorf("input %d Hz: %w", rate, ErrInvalidRate)
	}

	c.inRate = rate
	c.ratio = float64(rate) / float64(c.outRate)

	return nil
}

func (c *RateConverter) InputRate() int  { return c.inRate }
func (c *RateConverter) OutputRate() int { return c.outRate }

// NeedsDraining reports whether input frames are still held inside the
// converter and would be played by further Convert calls.
func (c *RateConverter) NeedsDraining() bool {
	return c.have > 0 || c.blkPos < c.blkLen
}

// Convert mixes up to frames output frames into dst, adding to what dst
// already holds, and returns the number of frames produced. It stops early
// when src has no data available.
func (c *RateConverter) Convert(src Stream, dst []int16, frames int, volL, volR uint16) int {
	if limit := len(dst) / c.outChannels; frames > limit {
		frames = limit
	}

	written := 0
	for written < frames {
		if !c.skip(src) {
			break
		}

		c.fill(src)
		if c.have == 0 || (c.have == 1 && !c.final(src)) {
			break
		}

		c.emit(dst[written*c.outChannels:], volL, volR)
		written++
		c.pos += c.ratio
	}

	if c.final(src) {
		c.skip(src)
	}

	return written
}

// final reports that the frames held now are the last ones.
func (c *RateConverter) final(src Stream) bool {
	return c.blkPos >= c.blkLen && src.EndOfStream()
}

// skip consumes the frames the read position has moved past.
func (c *RateConverter) skip(src Stream) bool {
	for c.pos >= 1.0 {
		if c.have == 0 {
			c.fill(src)
			if c.have == 0 {
				return false
			}
		}

		first := c.frames[0]
		c.frames[0], c.frames[1], c.frames[2], c.frames[3] = c.frames[1], c.frames[2], c.frames[3], first
		c.have--
		c.pos -= 1.0
	}

	return true
}

func (c *RateConverter) fill(src Stream) {
	for c.have < 3 && c.fetch(src, c.frames[1+c.have]) {
		c.have++
	}

	if !c.primed && c.have > 0 {
		copy(c.frames[0], c.frames[1])
		c.primed = true
	}
}

// fetch copies the next input frame into dst. Read errors are not
// reported here, the stream ends itself on them.
func (c *RateConverter) fetch(src Stream, dst []float32) bool {
	if c.blkPos >= c.blkLen {
		if src.EndOfData() {
			return false
		}

		n, _ := src.ReadSamples(c.blk)
		c.blkPos = 0
		c.blkLen = n - n%c.inChannels
		if c.blkLen == 0 {
			return false
		}
	}

	copy(dst, c.blk[c.blkPos:c.blkPos+c.inChannels])
	c.blkPos += c.inChannels

	return true
}

func (c *RateConverter) sample(ch int, alpha float32) float32 {
	y1 := c.frames[1][ch]
	if alpha == 0 {
		return y1
	}

	y2 := y1
	if c.have > 1 {
		y2 = c.frames[2][ch]
	}
	y3 := y2
	if c.have > 2 {
		y3 = c.frames[3][ch]
	}

	return utils.CubicInterpolate(c.frames[0][ch], y1, y2, y3, alpha)
}

func (c *RateConverter) emit(out []int16, volL, volR uint16) {
	alpha := float32(c.pos)

	left := c.sample(0, alpha)
	right := left
	if c.inChannels == 2 {
		right = c.sample(1, alpha)
	}

	if c.outChannels == 1 {
		vol := (uint32(volL) + uint32(volR)) / 2
		out[0] = utils.AddClamped(out[0], scale((left+right)*0.5, vol))
		return
	}

	l, r := 0, 1
	if c.reverseStereo {
		l, r = 1, 0
	}

	out[l] = utils.AddClamped(out[l], scale(left, uint32(volL)))
	out[r] = utils.AddClamped(out[r], scale(right, uint32(volR)))
}

func scale(v float32, vol uint32) int32 {
	return int32(v * utils.Int16MaxScale * float32(vol) / UnityGain)
}

// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"time"

	"github.com/ik5/audmix/audio"
)

// channel is one playing sound. It is only touched with the mixer lock held.
type channel struct {
	mixer     *Mixer
	category  Category
	handle    Handle
	id        int
	permanent bool

	pauseLevel int

	volume  uint8
	balance int8
	faderL  uint8
	faderR  uint8

	// effective gains, recomputed by updateVolumes
	volL uint16
	volR uint16

	samplesConsumed uint64
	samplesDecoded  uint64
	mixerTimeStamp  time.Time
	pauseStartTime  time.Time
	pauseTime       time.Duration

	converter *audio.RateConverter
	stream    audio.Stream
	ownership Ownership
}

func newChannel(m *Mixer, category Category, stream audio.Stream, cfg playConfig) (*channel, error) {
	converter, err := audio.NewRateConverter(
		stream.SampleRate(),
		m.sampleRate,
		stream.Channels() == 2,
		m.stereo,
		cfg.reverseStereo,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	c := &channel{
		mixer:     m,
		category:  category,
		id:        cfg.id,
		permanent: cfg.permanent,
		volume:    MaxChannelVolume,
		faderL:    MaxFader,
		faderR:    MaxFader,
		converter: converter,
		stream:    stream,
		ownership: cfg.ownership,
	}
	c.setVolume(cfg.volume)
	c.setBalance(cfg.balance)

	return c, nil
}

// dispose releases the stream if the mixer owns it.
func (c *channel) dispose() error {
	stream := c.stream
	c.stream = nil
	c.converter = nil

	if stream == nil || c.ownership != DisposeAfterUse {
		return nil
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("closing %s stream: %w", c.category, err)
	}

	return nil
}

func (c *channel) isFinished() bool {
	return c.stream.EndOfStream() && !c.converter.NeedsDraining()
}

func (c *channel) isPaused() bool { return c.pauseLevel != 0 }

func (c *channel) setVolume(volume uint8) {
	c.volume = volume
	c.updateVolumes()
}

func (c *channel) setBalance(balance int8) {
	if balance < -127 {
		balance = -127
	}
	c.balance = balance
	c.updateVolumes()
}

func (c *channel) setFaderL(fader uint8) {
	c.faderL = fader
	c.updateVolumes()
}

func (c *channel) setFaderR(fader uint8) {
	c.faderR = fader
	c.updateVolumes()
}

// updateVolumes derives the left and right gains from the category volume,
// the channel volume, the balance and the faders. The category volume is at
// most MaxMixerVolume, so the gains are too.
func (c *channel) updateVolumes() {
	settings := c.mixer.categories[c.category]
	if settings.muted {
		c.volL, c.volR = 0, 0
		return
	}

	vol := settings.volume * int(c.volume)
	balance := int(c.balance)

	var volL, volR int
	switch {
	case balance == 0:
		volL = vol / MaxChannelVolume
		volR = vol / MaxChannelVolume
	case balance < 0:
		volL = vol / MaxChannelVolume
		volR = ((127 + balance) * vol) / (MaxChannelVolume * 127)
	default:
		volL = ((127 - balance) * vol) / (MaxChannelVolume * 127)
		volR = vol / MaxChannelVolume
	}

	c.volL = uint16(volL * int(c.faderL) / MaxFader)
	c.volR = uint16(volR * int(c.faderR) / MaxFader)
}

// pause nests: every pause needs a matching unpause. Unpausing a channel
// that is not paused is ignored.
func (c *channel) pause(paused bool) {
	if paused {
		c.pauseLevel++
		if c.pauseLevel == 1 {
			c.pauseStartTime = c.mixer.now()
		}
		return
	}

	if c.pauseLevel == 0 {
		return
	}

	c.pauseLevel--
	if c.pauseLevel == 0 {
		c.pauseTime += c.mixer.now().Sub(c.pauseStartTime)
		c.pauseStartTime = time.Time{}
	}
}

func (c *channel) setRate(rate int) error {
	return c.converter.SetInputRate(rate)
}

func (c *channel) rate() int { return c.converter.InputRate() }

func (c *channel) resetRate() error {
	return c.converter.SetInputRate(c.stream.SampleRate())
}

// elapsedTime approximates how long the sound has been audible. It starts
// from the frames played up to the last mix and adds the wall time since
// that mix, minus time spent paused. The result is not capped by the frames
// decoded so far: the callback does not run at a steady enough cadence for
// the cap to look smooth.
func (c *channel) elapsedTime() time.Duration {
	if c.mixerTimeStamp.IsZero() {
		return 0
	}

	var delta time.Duration
	if c.isPaused() {
		delta = c.pauseStartTime.Sub(c.mixerTimeStamp)
	} else {
		delta = c.mixer.now().Sub(c.mixerTimeStamp) - c.pauseTime
	}

	return framesToDuration(c.samplesConsumed, c.mixer.sampleRate) + delta
}

// loop replaces the stream with one that repeats it forever. Streams that
// cannot rewind are left alone.
func (c *channel) loop() bool {
	if !c.stream.Rewindable() {
		return false
	}

	looping, err := audio.NewLoopingStream(c.stream, 0)
	if err != nil {
		return false
	}
	c.stream = looping

	return true
}

// mix adds up to frames frames of the sound into buf and returns how many
// were produced. A sound with no data right now is idle, not finished.
func (c *channel) mix(buf []int16, frames int) int {
	if c.stream.EndOfData() && !c.converter.NeedsDraining() {
		return 0
	}

	c.samplesConsumed = c.samplesDecoded
	c.mixerTimeStamp = c.mixer.now()
	c.pauseTime = 0

	n := c.converter.Convert(c.stream, buf, frames, c.volL, c.volR)
	c.samplesDecoded += uint64(n)

	return n
}

func framesToDuration(frames uint64, rate int) time.Duration {
	r := uint64(rate)
	secs := frames / r
	rem := frames % r

	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(r)
}

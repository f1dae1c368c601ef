// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/audmix/audio"
)

// Mixer owns a fixed table of channel slots and sums every playing channel
// into the buffer handed to MixCallback. All methods are safe for
// concurrent use; one lock serializes them with the callback.
type Mixer struct {
	mtx sync.Mutex

	sampleRate   int
	stereo       bool
	bufferFrames int
	capacity     int

	ready      bool
	handleSeed uint64
	categories [numCategories]categorySettings
	channels   []*channel

	log *slog.Logger
	now func() time.Time
}

// New creates a mixer producing 16-bit samples at sampleRate, interleaved
// stereo when stereo is true.
func New(sampleRate int, stereo bool, opts ...Option) (*Mixer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%d Hz: %w", sampleRate, ErrInvalidSampleRate)
	}

	m := &Mixer{
		sampleRate: sampleRate,
		stereo:     stereo,
		capacity:   DefaultCapacity,
		handleSeed: 1,
		log:        slog.Default().With("component", "mixer"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.capacity <= 0 {
		return nil, fmt.Errorf("%d slots: %w", m.capacity, ErrInvalidCapacity)
	}

	m.channels = make([]*channel, m.capacity)
	for i := range m.categories {
		m.categories[i] = categorySettings{volume: MaxMixerVolume}
	}

	return m, nil
}

func (m *Mixer) OutputRate() int     { return m.sampleRate }
func (m *Mixer) OutputStereo() bool  { return m.stereo }
func (m *Mixer) OutputBufSize() int  { return m.bufferFrames }
func (m *Mixer) Capacity() int       { return m.capacity }
func (m *Mixer) OutputChannels() int { return outputChannels(m.stereo) }

func outputChannels(stereo bool) int {
	if stereo {
		return 2
	}
	return 1
}

// SetReady tells the mixer the audio host is running. The first
// MixCallback sets it as well.
func (m *Mixer) SetReady(ready bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.ready = ready
}

func (m *Mixer) IsReady() bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.ready
}

// lookup returns the channel h refers to, or nil when the sound is gone.
func (m *Mixer) lookup(h Handle) *channel {
	if h == 0 {
		return nil
	}

	c := m.channels[uint64(h)%uint64(m.capacity)]
	if c == nil || c.handle != h {
		return nil
	}

	return c
}

// remove frees slot i and releases its channel.
func (m *Mixer) remove(i int) {
	c := m.channels[i]
	m.channels[i] = nil

	if err := c.dispose(); err != nil {
		m.log.Warn("failed to release stream", slog.Int("slot", i), slog.Any("error", err))
	}
}

func (m *Mixer) release(stream audio.Stream, ownership Ownership) {
	if ownership != DisposeAfterUse {
		return
	}
	if err := stream.Close(); err != nil {
		m.log.Warn("failed to release rejected stream", slog.Any("error", err))
	}
}

// PlayStream starts playing stream in the given category and returns a
// handle to it. Unless KeepAfterUse is given the mixer owns the stream from
// here on, also when the request is rejected.
//
// Rejections are logged and returned as ErrNilStream, ErrNotReady,
// ErrDuplicateID, ErrNoFreeSlot or ErrInvalidStream with a zero Handle.
// They never affect sounds already playing.
func (m *Mixer) PlayStream(category Category, stream audio.Stream, opts ...PlayOption) (Handle, error) {
	cfg := playConfig{id: NoID, volume: MaxChannelVolume}
	for _, opt := range opts {
		opt(&cfg)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if stream == nil {
		m.log.Warn("refusing to play a nil stream")
		return 0, ErrNilStream
	}

	if !m.ready {
		m.log.Warn("refusing to play before the audio host started", slog.String("category", category.String()))
		m.release(stream, cfg.ownership)
		return 0, ErrNotReady
	}

	if !category.valid() {
		m.log.Warn("refusing to play in an unknown category", slog.Int("category", int(category)))
		m.release(stream, cfg.ownership)
		return 0, fmt.Errorf("%s: %w", category, ErrInvalidStream)
	}

	if cfg.id != NoID {
		for _, c := range m.channels {
			if c != nil && c.id == cfg.id {
				m.log.Debug("sound id already playing", slog.Int("id", cfg.id))
				m.release(stream, cfg.ownership)
				return 0, ErrDuplicateID
			}
		}
	}

	c, err := newChannel(m, category, stream, cfg)
	if err != nil {
		m.log.Warn("cannot play stream", slog.Any("error", err))
		m.release(stream, cfg.ownership)
		return 0, err
	}

	return m.insert(c)
}

func (m *Mixer) insert(c *channel) (Handle, error) {
	index := -1
	for i, slot := range m.channels {
		if slot == nil {
			index = i
			break
		}
	}

	if index == -1 {
		m.log.Warn("out of mixer slots", slog.Int("capacity", m.capacity))
		if err := c.dispose(); err != nil {
			m.log.Warn("failed to release rejected stream", slog.Any("error", err))
		}
		return 0, ErrNoFreeSlot
	}

	h := Handle(uint64(index) + m.handleSeed*uint64(m.capacity))
	m.handleSeed++

	c.handle = h
	m.channels[index] = c

	return h, nil
}

// MixCallback is the audio host's entry point. It zeroes buf, removes the
// sounds that ended, and mixes every other unpaused sound into buf, which
// holds interleaved samples. It returns the largest number of frames any
// sound produced, 0 meaning buf holds silence.
func (m *Mixer) MixCallback(buf []int16) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.ready = true
	clear(buf)

	outCh := m.OutputChannels()
	if len(buf)%outCh != 0 {
		m.log.Warn("mix buffer ends in a partial frame", slog.Int("samples", len(buf)))
	}
	frames := len(buf) / outCh
	if frames == 0 {
		return 0
	}

	res := 0
	for i, c := range m.channels {
		if c == nil {
			continue
		}

		if c.isFinished() {
			m.log.Debug("sound finished", slog.Int("slot", i), slog.Int("id", c.id))
			m.remove(i)
			continue
		}

		if c.isPaused() {
			continue
		}

		if n := c.mix(buf, frames); n > res {
			res = n
		}
	}

	return res
}

// StopAll stops every sound that is not permanent.
func (m *Mixer) StopAll() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i, c := range m.channels {
		if c != nil && !c.permanent {
			m.remove(i)
		}
	}
}

// StopID stops every sound tagged with id.
func (m *Mixer) StopID(id int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i, c := range m.channels {
		if c != nil && c.id == id {
			m.remove(i)
		}
	}
}

// StopHandle stops the sound h refers to. Stopping a sound that already
// ended does nothing.
func (m *Mixer) StopHandle(h Handle) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.lookup(h) == nil {
		return
	}
	m.remove(int(uint64(h) % uint64(m.capacity)))
}

// PauseAll pauses or unpauses every sound, permanent ones included.
func (m *Mixer) PauseAll(paused bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, c := range m.channels {
		if c != nil {
			c.pause(paused)
		}
	}
}

// PauseID pauses or unpauses the first sound tagged with id.
func (m *Mixer) PauseID(id int, paused bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, c := range m.channels {
		if c != nil && c.id == id {
			c.pause(paused)
			return
		}
	}
}

func (m *Mixer) PauseHandle(h Handle, paused bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		c.pause(paused)
	}
}

func (m *Mixer) IsSoundIDActive(id int) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, c := range m.channels {
		if c != nil && c.id == id {
			return true
		}
	}

	return false
}

// SoundID returns the id h was played with, 0 when the sound is gone.
func (m *Mixer) SoundID(h Handle) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		return c.id
	}

	return 0
}

func (m *Mixer) IsSoundHandleActive(h Handle) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.lookup(h) != nil
}

func (m *Mixer) HasActiveChannelOfType(category Category) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, c := range m.channels {
		if c != nil && c.category == category {
			return true
		}
	}

	return false
}

// ActiveChannelCount returns the number of occupied slots.
func (m *Mixer) ActiveChannelCount() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	n := 0
	for _, c := range m.channels {
		if c != nil {
			n++
		}
	}

	return n
}

func (m *Mixer) SetChannelVolume(h Handle, volume uint8) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		c.setVolume(volume)
	}
}

func (m *Mixer) ChannelVolume(h Handle) uint8 {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		return c.volume
	}

	return 0
}

func (m *Mixer) SetChannelBalance(h Handle, balance int8) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		c.setBalance(balance)
	}
}

func (m *Mixer) ChannelBalance(h Handle) int8 {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		return c.balance
	}

	return 0
}

func (m *Mixer) SetChannelFaderL(h Handle, fader uint8) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		c.setFaderL(fader)
	}
}

func (m *Mixer) ChannelFaderL(h Handle) uint8 {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		return c.faderL
	}

	return 0
}

func (m *Mixer) SetChannelFaderR(h Handle, fader uint8) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		c.setFaderR(fader)
	}
}

func (m *Mixer) ChannelFaderR(h Handle) uint8 {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		return c.faderR
	}

	return 0
}

// SetChannelRate changes the rate the sound's stream is read at, which
// bends its pitch and speed. Rates outside (0, audio.MaxInputRate) are
// ignored.
func (m *Mixer) SetChannelRate(h Handle, rate int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	c := m.lookup(h)
	if c == nil {
		return
	}
	if err := c.setRate(rate); err != nil {
		m.log.Warn("ignoring channel rate", slog.Int("rate", rate), slog.Any("error", err))
	}
}

func (m *Mixer) ChannelRate(h Handle) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		return c.rate()
	}

	return 0
}

// ResetChannelRate restores the stream's own sample rate.
func (m *Mixer) ResetChannelRate(h Handle) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	c := m.lookup(h)
	if c == nil {
		return
	}
	if err := c.resetRate(); err != nil {
		m.log.Warn("cannot reset channel rate", slog.Any("error", err))
	}
}

// ElapsedTime approximates how long the sound has played, excluding time
// spent paused. It is 0 for sounds that are gone or not mixed yet.
func (m *Mixer) ElapsedTime(h Handle) time.Duration {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c := m.lookup(h); c != nil {
		return c.elapsedTime()
	}

	return 0
}

// SoundElapsedTime is ElapsedTime in milliseconds.
func (m *Mixer) SoundElapsedTime(h Handle) uint32 {
	return uint32(m.ElapsedTime(h).Milliseconds())
}

// LoopChannel makes the sound repeat forever, if its stream can rewind.
func (m *Mixer) LoopChannel(h Handle) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	c := m.lookup(h)
	if c == nil {
		return
	}
	if !c.loop() {
		m.log.Debug("stream cannot loop", slog.Uint64("handle", uint64(h)))
	}
}

// SetVolumeForSoundType sets the category volume, clipped to
// [0, MaxMixerVolume], and applies it to the category's sounds.
func (m *Mixer) SetVolumeForSoundType(category Category, volume int) {
	if !category.valid() {
		m.log.Warn("unknown sound category", slog.Int("category", int(category)))
		return
	}

	volume = min(max(volume, 0), MaxMixerVolume)

	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.categories[category].volume = volume
	m.notifyCategory(category)
}

func (m *Mixer) VolumeForSoundType(category Category) int {
	if !category.valid() {
		return 0
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.categories[category].volume
}

func (m *Mixer) MuteSoundType(category Category, mute bool) {
	if !category.valid() {
		m.log.Warn("unknown sound category", slog.Int("category", int(category)))
		return
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.categories[category].muted = mute
	m.notifyCategory(category)
}

func (m *Mixer) IsSoundTypeMuted(category Category) bool {
	if !category.valid() {
		return false
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.categories[category].muted
}

func (m *Mixer) notifyCategory(category Category) {
	for _, c := range m.channels {
		if c != nil && c.category == category {
			c.updateVolumes()
		}
	}
}

// Close stops every sound, permanent ones included, and releases the
// streams the mixer owns.
func (m *Mixer) Close() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	var errs []error
	for i, c := range m.channels {
		if c == nil {
			continue
		}
		m.channels[i] = nil
		if err := c.dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	m.ready = false

	return errors.Join(errs...)
}

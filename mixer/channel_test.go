// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"testing"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
)

func TestChannel_Gains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		catVolume int
		muted     bool
		volume    uint8
		balance   int8
		faderL    uint8
		faderR    uint8
		wantL     uint16
		wantR     uint16
	}{
		{"full volume centered", 256, false, 255, 0, 255, 255, 256, 256},
		{"full right", 256, false, 255, 127, 255, 255, 0, 256},
		{"full left", 256, false, 255, -127, 255, 255, 256, 0},
		{"half right", 256, false, 255, 64, 255, 255, 126, 256},
		{"half left", 256, false, 255, -64, 255, 255, 256, 126},
		{"balance -128 clamps", 256, false, 255, -128, 255, 255, 256, 0},
		{"half category", 128, false, 255, 0, 255, 255, 128, 128},
		{"half channel", 256, false, 128, 0, 255, 255, 128, 128},
		{"faders after balance", 256, false, 255, 0, 128, 64, 128, 64},
		{"faders truncate after balance", 256, false, 255, 64, 128, 255, 63, 256},
		{"silent channel", 256, false, 0, 0, 255, 255, 0, 0},
		{"muted", 256, true, 255, 0, 255, 255, 0, 0},
		{"muted ignores balance", 256, true, 200, -50, 255, 255, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMixer(t)
			m.SetVolumeForSoundType(SFX, tt.catVolume)
			m.MuteSoundType(SFX, tt.muted)

			h, err := m.PlayStream(SFX, audiotest.NewMockStream(8000, 1, 8000, 0.5, false),
				WithVolume(tt.volume), WithBalance(tt.balance))
			if err != nil {
				t.Fatalf("PlayStream() error = %v", err)
			}
			m.SetChannelFaderL(h, tt.faderL)
			m.SetChannelFaderR(h, tt.faderR)

			c := channelOf(t, m, h)
			if c.volL != tt.wantL || c.volR != tt.wantR {
				t.Errorf("gains = (%d, %d), want (%d, %d)", c.volL, c.volR, tt.wantL, tt.wantR)
			}
		})
	}
}

func TestChannel_CenteredBalanceIsSymmetric(t *testing.T) {
	t.Parallel()

	m := newTestMixer(t)
	h, err := m.PlayStream(Music, audiotest.NewMockStream(8000, 2, 100, 0.1, false))
	if err != nil {
		t.Fatalf("PlayStream() error = %v", err)
	}
	c := channelOf(t, m, h)

	for catVolume := 0; catVolume <= MaxMixerVolume; catVolume += 16 {
		for volume := 0; volume <= MaxChannelVolume; volume += 15 {
			m.SetVolumeForSoundType(Music, catVolume)
			m.SetChannelVolume(h, uint8(volume))

			if c.volL != c.volR {
				t.Fatalf("category %d volume %d: gains (%d, %d) differ", catVolume, volume, c.volL, c.volR)
			}
			if c.volL > MaxMixerVolume {
				t.Fatalf("category %d volume %d: gain %d above %d", catVolume, volume, c.volL, MaxMixerVolume)
			}
		}
	}
}

func TestChannel_CategoryChangesReachLiveChannels(t *testing.T) {
	t.Parallel()

	m := newTestMixer(t)
	music, _ := m.PlayStream(Music, audiotest.NewMockStream(8000, 1, 100, 0.1, false))
	speech, _ := m.PlayStream(Speech, audiotest.NewMockStream(8000, 1, 100, 0.1, false))

	m.MuteSoundType(Music, true)
	if c := channelOf(t, m, music); c.volL != 0 || c.volR != 0 {
		t.Errorf("muted music gains = (%d, %d), want (0, 0)", c.volL, c.volR)
	}
	if c := channelOf(t, m, speech); c.volL != 256 {
		t.Errorf("speech gain = %d, want 256", c.volL)
	}

	m.MuteSoundType(Music, false)
	m.SetVolumeForSoundType(Music, 64)
	if c := channelOf(t, m, music); c.volL != 64 || c.volR != 64 {
		t.Errorf("music gains = (%d, %d), want (64, 64)", c.volL, c.volR)
	}
}

func TestChannel_PauseNesting(t *testing.T) {
	t.Parallel()

	m := newTestMixer(t)
	h, _ := m.PlayStream(SFX, audiotest.NewMockStream(8000, 1, 8000, 0.5, false))
	buf := make([]int16, 64)

	m.PauseHandle(h, true)
	m.PauseHandle(h, true)
	m.PauseHandle(h, false)

	if n := m.MixCallback(buf); n != 0 {
		t.Fatalf("MixCallback() = %d while paused, want 0", n)
	}
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %d while paused, want 0", i, v)
		}
	}

	m.PauseHandle(h, false)
	if n := m.MixCallback(buf); n != 32 {
		t.Fatalf("MixCallback() = %d after unpause, want 32", n)
	}

	// extra unpauses must not leave the counter negative
	m.PauseHandle(h, false)
	m.PauseHandle(h, true)
	if n := m.MixCallback(buf); n != 0 {
		t.Errorf("MixCallback() = %d after single pause, want 0", n)
	}
}

func TestChannel_ElapsedTime(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := newTestMixer(t, WithClock(clock.Now))
	h, _ := m.PlayStream(Music, audiotest.NewMockStream(8000, 1, 80000, 0.25, false))

	if got := m.ElapsedTime(h); got != 0 {
		t.Fatalf("ElapsedTime() before mixing = %v, want 0", got)
	}

	buf := make([]int16, 800*2) // 100ms at 8kHz
	m.MixCallback(buf)
	clock.Advance(50 * time.Millisecond)
	if got := m.ElapsedTime(h); got != 50*time.Millisecond {
		t.Fatalf("ElapsedTime() = %v, want 50ms", got)
	}

	m.MixCallback(buf)
	clock.Advance(20 * time.Millisecond)
	if got := m.ElapsedTime(h); got != 120*time.Millisecond {
		t.Fatalf("ElapsedTime() = %v, want 120ms", got)
	}

	m.PauseHandle(h, true)
	clock.Advance(time.Second)
	if got := m.ElapsedTime(h); got != 120*time.Millisecond {
		t.Fatalf("ElapsedTime() while paused = %v, want 120ms", got)
	}

	m.PauseHandle(h, false)
	if got := m.ElapsedTime(h); got != 120*time.Millisecond {
		t.Fatalf("ElapsedTime() after unpause = %v, want 120ms", got)
	}

	clock.Advance(10 * time.Millisecond)
	if got := m.SoundElapsedTime(h); got != 130 {
		t.Errorf("SoundElapsedTime() = %d, want 130", got)
	}
}

func TestChannel_ElapsedTimeAccumulatesPauses(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := newTestMixer(t, WithClock(clock.Now))
	h, _ := m.PlayStream(Music, audiotest.NewMockStream(8000, 1, 80000, 0.25, false))

	m.MixCallback(make([]int16, 16))

	for range 3 {
		clock.Advance(10 * time.Millisecond)
		m.PauseHandle(h, true)
		clock.Advance(100 * time.Millisecond)
		m.PauseHandle(h, false)
	}

	// nothing was consumed before the only mix, so only the unpaused wall
	// time since it counts
	want := 30 * time.Millisecond
	if got := m.ElapsedTime(h); got != want {
		t.Errorf("ElapsedTime() = %v, want %v", got, want)
	}
}

func TestChannel_Loop(t *testing.T) {
	t.Parallel()

	m := newTestMixer(t)
	stream, err := audio.NewMemoryStream(8000, 1, make([]float32, 100))
	if err != nil {
		t.Fatal(err)
	}

	h, _ := m.PlayStream(SFX, stream)
	m.LoopChannel(h)

	buf := make([]int16, 64*2)
	for i := range 20 {
		if n := m.MixCallback(buf); n != 64 {
			t.Fatalf("callback %d produced %d frames, want 64", i, n)
		}
	}
	if !m.IsSoundHandleActive(h) {
		t.Error("looping sound finished")
	}
}

func TestChannel_LoopIgnoresOneShotStreams(t *testing.T) {
	t.Parallel()

	m := newTestMixer(t)
	stream := audiotest.NewMockStream(8000, 1, 100, 0.5, false)
	h, _ := m.PlayStream(SFX, stream)
	m.LoopChannel(h)

	buf := make([]int16, 64*2)
	for range 4 {
		m.MixCallback(buf)
	}

	if m.IsSoundHandleActive(h) {
		t.Error("one-shot sound still active after it ended")
	}
	if stream.Rewinds() != 0 {
		t.Errorf("stream rewound %d times, want 0", stream.Rewinds())
	}
}

func TestChannel_Rate(t *testing.T) {
	t.Parallel()

	m := newTestMixer(t)
	h, _ := m.PlayStream(Music, audiotest.NewMockStream(22050, 2, 1000, 0.1, false))

	if got := m.ChannelRate(h); got != 22050 {
		t.Fatalf("ChannelRate() = %d, want 22050", got)
	}

	m.SetChannelRate(h, 11025)
	if got := m.ChannelRate(h); got != 11025 {
		t.Errorf("ChannelRate() after set = %d, want 11025", got)
	}

	m.SetChannelRate(h, 0)
	m.SetChannelRate(h, audio.MaxInputRate)
	if got := m.ChannelRate(h); got != 11025 {
		t.Errorf("ChannelRate() after invalid rates = %d, want 11025", got)
	}

	m.ResetChannelRate(h)
	if got := m.ChannelRate(h); got != 22050 {
		t.Errorf("ChannelRate() after reset = %d, want 22050", got)
	}
}

func TestFramesToDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		frames uint64
		rate   int
		want   time.Duration
	}{
		{0, 44100, 0},
		{44100, 44100, time.Second},
		{22050, 44100, 500 * time.Millisecond},
		{8, 8000, time.Millisecond},
		{44100 * 3600 * 100, 44100, 100 * time.Hour},
	}

	for _, tt := range tests {
		if got := framesToDuration(tt.frames, tt.rate); got != tt.want {
			t.Errorf("framesToDuration(%d, %d) = %v, want %v", tt.frames, tt.rate, got, tt.want)
		}
	}
}

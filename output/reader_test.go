// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/mixer"
)

func newMixer(t *testing.T, stereo bool) *mixer.Mixer {
	t.Helper()

	m, err := mixer.New(8000, stereo, mixer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatal(err)
	}
	m.SetReady(true)
	t.Cleanup(func() { _ = m.Close() })

	return m
}

func play(t *testing.T, m *mixer.Mixer, frames int, value float32) mixer.Handle {
	t.Helper()

	data := make([]float32, frames)
	for i := range data {
		data[i] = value
	}
	stream, err := audio.NewMemoryStream(m.OutputRate(), 1, data)
	if err != nil {
		t.Fatal(err)
	}

	h, err := m.PlayStream(mixer.SFX, stream)
	if err != nil {
		t.Fatal(err)
	}

	return h
}

func TestPCMReader_Read(t *testing.T) {
	t.Parallel()

	m := newMixer(t, true)
	play(t, m, 2, 0.5)

	r := NewPCMReader(m)

	// 3 stereo frames and a dangling byte
	p := make([]byte, 13)
	for i := range p {
		p[i] = 0xFF
	}

	n, err := r.Read(p)
	if n != len(p) || err != nil {
		t.Fatalf("Read() = %d, %v, want %d, nil", n, err, len(p))
	}

	want := []int16{16383, 16383, 16383, 16383, 0, 0}
	for i, w := range want {
		if got := int16(binary.LittleEndian.Uint16(p[i*2:])); got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
	if p[12] != 0 {
		t.Errorf("padding byte = %#x, want 0", p[12])
	}
}

func TestStreamer_Stream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stereo bool
	}{
		{"stereo mixer", true},
		{"mono mixer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMixer(t, tt.stereo)
			play(t, m, 2, 1)

			s := NewStreamer(m)
			if s.Format().SampleRate != 8000 || s.Format().NumChannels != 2 {
				t.Errorf("Format() = %+v", s.Format())
			}

			samples := make([][2]float64, 4)
			n, ok := s.Stream(samples)
			if n != 4 || !ok {
				t.Fatalf("Stream() = %d, %v, want 4, true", n, ok)
			}

			want := [][2]float64{{1, 1}, {1, 1}, {0, 0}, {0, 0}}
			for i := range want {
				if samples[i] != want[i] {
					t.Errorf("frame %d = %v, want %v", i, samples[i], want[i])
				}
			}
			if s.Err() != nil {
				t.Errorf("Err() = %v", s.Err())
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	t.Parallel()

	m := newMixer(t, true)
	if _, err := Open("alsa", m, 512); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(alsa) error = %v, want ErrUnknownBackend", err)
	}
}

func TestNullHost_DrivesMixer(t *testing.T) {
	t.Parallel()

	m, err := mixer.New(8000, true, mixer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = m.Close() })

	host, err := Open(BackendNull, m, 80)
	if err != nil {
		t.Fatal(err)
	}
	if err := host.Start(); err != nil {
		t.Fatal(err)
	}
	if !m.IsReady() {
		t.Fatal("Start() did not mark the mixer ready")
	}

	h := play(t, m, 160, 0.5)

	deadline := time.Now().Add(5 * time.Second)
	for m.IsSoundHandleActive(h) {
		if time.Now().After(deadline) {
			t.Fatal("null host never finished the sound")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := host.Close(); err != nil {
		t.Fatal(err)
	}
	if m.IsReady() {
		t.Error("Close() left the mixer ready")
	}

	// restarting after Close works
	if err := host.Start(); err != nil {
		t.Fatal(err)
	}
	host.Pause(true)
	host.Pause(false)
	if err := host.Close(); err != nil {
		t.Fatal(err)
	}
}

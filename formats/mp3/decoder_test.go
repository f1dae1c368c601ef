// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// mockPCM serves little-endian int16 bytes in chunks of at most step
// bytes, the way go-mp3 hands out decoded frames.
type mockPCM struct {
	sampleRate int
	data       []byte
	step       int
	err        error
}

func newMockPCM(sampleRate, step int, samples ...int16) *mockPCM {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return &mockPCM{sampleRate: sampleRate, data: buf.Bytes(), step: step}
}

func (m *mockPCM) SampleRate() int { return m.sampleRate }

func (m *mockPCM) Read(p []byte) (int, error) {
	if len(m.data) == 0 {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}

	n := copy(p[:min(len(p), m.step)], m.data)
	m.data = m.data[n:]

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not an MP3 file")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); !errors.Is(err, ErrNotMP3File) {
				t.Errorf("Decode() error = %v, want ErrNotMP3File", err)
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		step    int
		bufSize int
	}{
		{"one read", 1 << 16, 64},
		{"odd chunks", 3, 64},
		{"small buffer", 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newSource(newMockPCM(44100, tt.step, 0, 16384, -16384, 32767, -32768, 8192))
			if src.SampleRate() != 44100 || src.Channels() != 2 {
				t.Fatalf("format = %d Hz x %d", src.SampleRate(), src.Channels())
			}

			var out []float32
			buf := make([]float32, tt.bufSize)
			for range 100 {
				n, err := src.ReadSamples(buf)
				if n%2 != 0 {
					t.Fatalf("ReadSamples() returned %d samples, not whole frames", n)
				}
				out = append(out, buf[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1, 0.25}
			if len(out) != len(want) {
				t.Fatalf("read %d samples, want %d", len(out), len(want))
			}
			for i := range want {
				if out[i] != want[i] {
					t.Errorf("sample %d = %v, want %v", i, out[i], want[i])
				}
			}
		})
	}
}

func TestSource_DropsPartialFrameAtEnd(t *testing.T) {
	t.Parallel()

	src := newSource(newMockPCM(22050, 64, 1, 2, 3))

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v, want 2, io.EOF", n, err)
	}

	if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = %d, %v", n, err)
	}
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	m := newMockPCM(44100, 64, 1, 2)
	m.err = boom
	src := newSource(m)

	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 8192)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := newSource(newMockPCM(44100, 4608, samples...))
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}

// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audmix/mixer"
)

func load(t *testing.T, yaml string) *Config {
	t.Helper()

	v := New()
	if yaml != "" {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
			t.Fatal(err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(t.TempDir())
	}

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := load(t, "")

	if cfg.Mixer.SampleRate != 44100 || !cfg.Mixer.Stereo || cfg.Mixer.Channels != 32 || cfg.Mixer.BufferFrames != 2048 {
		t.Errorf("mixer = %+v", cfg.Mixer)
	}
	for _, c := range mixer.Categories {
		if got := cfg.Volume.For(c); got != mixer.MaxMixerVolume {
			t.Errorf("volume.%s = %d, want %d", c, got, mixer.MaxMixerVolume)
		}
	}
	if cfg.Output.Backend != "oto" || cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("output = %+v, logging = %+v", cfg.Output, cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()

	cfg := load(t, `
mixer:
  sample_rate: 22050
  stereo: false
  channels: 8
volume:
  music: 128
  speech: 0
output:
  backend: beep
logging:
  format: json
`)

	if cfg.Mixer.SampleRate != 22050 || cfg.Mixer.Stereo || cfg.Mixer.Channels != 8 {
		t.Errorf("mixer = %+v", cfg.Mixer)
	}
	if cfg.Mixer.BufferFrames != 2048 {
		t.Errorf("buffer_frames = %d, want the default", cfg.Mixer.BufferFrames)
	}
	if cfg.Volume.Music != 128 || cfg.Volume.Speech != 0 || cfg.Volume.SFX != mixer.MaxMixerVolume {
		t.Errorf("volume = %+v", cfg.Volume)
	}
	if cfg.Output.Backend != "beep" || cfg.Logging.Format != "json" {
		t.Errorf("output = %+v, logging = %+v", cfg.Output, cfg.Logging)
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("AUDMIX_MIXER_SAMPLE_RATE", "48000")
	t.Setenv("AUDMIX_OUTPUT_BACKEND", "null")

	cfg := load(t, "")

	if cfg.Mixer.SampleRate != 48000 {
		t.Errorf("sample_rate = %d, want 48000", cfg.Mixer.SampleRate)
	}
	if cfg.Output.Backend != "null" {
		t.Errorf("backend = %q, want null", cfg.Output.Backend)
	}
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mixer: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}

	v := New()
	v.SetConfigFile(path)
	if _, err := LoadConfig(v); err == nil {
		t.Error("LoadConfig() error = nil for broken yaml")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"sample rate", func(c *Config) { c.Mixer.SampleRate = 0 }, "mixer.sample_rate"},
		{"channels", func(c *Config) { c.Mixer.Channels = -1 }, "mixer.channels"},
		{"buffer", func(c *Config) { c.Mixer.BufferFrames = 0 }, "mixer.buffer_frames"},
		{"volume", func(c *Config) { c.Volume.SFX = 300 }, "volume.sfx"},
		{"backend", func(c *Config) { c.Output.Backend = "alsa" }, "output.backend"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := load(t, "")
			tt.mutate(cfg)

			err := cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

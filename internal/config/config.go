// SPDX-License-Identifier: EPL-2.0

// Package config loads the audmix settings from a config file, the
// environment and command line flags through viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
)

// Config holds all configuration for the application
type Config struct {
	Mixer   MixerConfig   `mapstructure:"mixer"`
	Volume  VolumeConfig  `mapstructure:"volume"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MixerConfig holds the output format and slot count of the mixer
type MixerConfig struct {
	SampleRate   int  `mapstructure:"sample_rate"`
	Stereo       bool `mapstructure:"stereo"`
	Channels     int  `mapstructure:"channels"`
	BufferFrames int  `mapstructure:"buffer_frames"`
}

// VolumeConfig holds the initial volume of every sound category
type VolumeConfig struct {
	Plain  int `mapstructure:"plain"`
	Music  int `mapstructure:"music"`
	SFX    int `mapstructure:"sfx"`
	Speech int `mapstructure:"speech"`
}

// For returns the configured volume of category.
func (v VolumeConfig) For(category mixer.Category) int {
	switch category {
	case mixer.Music:
		return v.Music
	case mixer.SFX:
		return v.SFX
	case mixer.Speech:
		return v.Speech
	}

	return v.Plain
}

// OutputConfig selects the audio host
type OutputConfig struct {
	Backend string `mapstructure:"backend"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mixer.sample_rate", 44100)
	v.SetDefault("mixer.stereo", true)
	v.SetDefault("mixer.channels", mixer.DefaultCapacity)
	v.SetDefault("mixer.buffer_frames", 2048)
	for _, c := range mixer.Categories {
		v.SetDefault("volume."+c.String(), mixer.MaxMixerVolume)
	}
	v.SetDefault("output.backend", output.BackendOto)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// New returns a viper instance with defaults, the config search path and
// AUDMIX_ prefixed environment variables set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.audmix")
	v.AddConfigPath("/etc/audmix")

	v.SetEnvPrefix("AUDMIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig reads the config file, if any, and decodes every setting.
// A missing config file is not an error.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment variables")
	} else {
		slog.Debug("Using config file", slog.String("file", v.ConfigFileUsed()))
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Mixer.SampleRate <= 0 {
		return &ConfigError{Field: "mixer.sample_rate", Message: "must be positive"}
	}
	if c.Mixer.Channels <= 0 {
		return &ConfigError{Field: "mixer.channels", Message: "must be positive"}
	}
	if c.Mixer.BufferFrames <= 0 {
		return &ConfigError{Field: "mixer.buffer_frames", Message: "must be positive"}
	}

	for _, cat := range mixer.Categories {
		if vol := c.Volume.For(cat); vol < 0 || vol > mixer.MaxMixerVolume {
			return &ConfigError{
				Field:   "volume." + cat.String(),
				Message: fmt.Sprintf("must be between 0 and %d", mixer.MaxMixerVolume),
			}
		}
	}

	if !slices.Contains(output.Backends(), c.Output.Backend) {
		return &ConfigError{
			Field:   "output.backend",
			Message: "must be one of " + strings.Join(output.Backends(), ", "),
		}
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be text or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

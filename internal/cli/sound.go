// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/internal/logger"
	"github.com/ik5/audmix/mixer"
)

var (
	ErrInvalidVolume  = errors.New("volume must be between 0 and 255")
	ErrInvalidBalance = errors.New("balance must be between -127 and 127")
	ErrInvalidLoop    = errors.New("loop count must not be negative")
)

// soundFlags are the per sound settings shared by play and render.
type soundFlags struct {
	category string
	volume   int
	balance  int
	loop     int
	reverse  bool
}

func (sf *soundFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&sf.category, "category", "c", mixer.Plain.String(), "sound category (plain, music, sfx, speech)")
	f.IntVar(&sf.volume, "volume", mixer.MaxChannelVolume, "channel volume, 0 to 255")
	f.IntVar(&sf.balance, "balance", 0, "stereo balance, -127 (left) to 127 (right)")
	f.IntVar(&sf.loop, "loop", 1, "times to play each file, 0 loops forever")
	f.BoolVar(&sf.reverse, "reverse-stereo", false, "swap the left and right channels")
}

func (sf *soundFlags) options() ([]mixer.PlayOption, error) {
	if sf.volume < 0 || sf.volume > mixer.MaxChannelVolume {
		return nil, fmt.Errorf("%d: %w", sf.volume, ErrInvalidVolume)
	}
	if sf.balance < -127 || sf.balance > 127 {
		return nil, fmt.Errorf("%d: %w", sf.balance, ErrInvalidBalance)
	}
	if sf.loop < 0 {
		return nil, fmt.Errorf("%d: %w", sf.loop, ErrInvalidLoop)
	}

	opts := []mixer.PlayOption{
		mixer.WithVolume(uint8(sf.volume)),
		mixer.WithBalance(int8(sf.balance)),
	}
	if sf.reverse {
		opts = append(opts, mixer.ReverseStereo())
	}

	return opts, nil
}

// newMixer creates a mixer with the configured format, slots and
// category volumes.
func newMixer(cfg *config.Config) (*mixer.Mixer, error) {
	m, err := mixer.New(cfg.Mixer.SampleRate, cfg.Mixer.Stereo,
		mixer.WithCapacity(cfg.Mixer.Channels),
		mixer.WithBufferSize(cfg.Mixer.BufferFrames),
		mixer.WithLogger(logger.WithComponent("mixer")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mixer: %w", err)
	}

	for _, c := range mixer.Categories {
		m.SetVolumeForSoundType(c, cfg.Volume.For(c))
	}

	return m, nil
}

// playFiles decodes every file and starts it on m.
func playFiles(m *mixer.Mixer, files []string, sf *soundFlags) ([]mixer.Handle, error) {
	category, err := mixer.ParseCategory(sf.category)
	if err != nil {
		return nil, err
	}

	opts, err := sf.options()
	if err != nil {
		return nil, err
	}

	reg := formats.NewRegistry()
	handles := make([]mixer.Handle, 0, len(files))

	for _, path := range files {
		loaded, err := audmix.LoadFile(reg, path)
		if err != nil {
			return handles, err
		}

		var stream audio.Stream = loaded
		if sf.loop != 1 {
			if stream, err = audio.NewLoopingStream(loaded, sf.loop); err != nil {
				return handles, fmt.Errorf("%s: %w", path, err)
			}
		}

		h, err := m.PlayStream(category, stream, opts...)
		if err != nil {
			return handles, fmt.Errorf("%s: %w", path, err)
		}

		slog.Info("Playing",
			slog.String("file", path),
			slog.String("category", category.String()),
			slog.Int("rate", loaded.SampleRate()),
			slog.Int("channels", loaded.Channels()),
		)
		handles = append(handles, h)
	}

	return handles, nil
}

func anyActive(m *mixer.Mixer, handles []mixer.Handle) bool {
	for _, h := range handles {
		if m.IsSoundHandleActive(h) {
			return true
		}
	}

	return false
}

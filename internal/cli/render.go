// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/formats/wav"
)

// ErrEndlessRender is returned when rendering an infinite loop without a
// duration limit.
var ErrEndlessRender = errors.New("looping forever needs --duration")

func (a *app) renderCmd() *cobra.Command {
	var (
		sf       soundFlags
		out      string
		duration time.Duration
		mono     bool
	)

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Mix audio files into a wav file",
		Long: `Render mixes every file offline, without an audio device, and writes
the result as a 16-bit PCM wav file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mono {
				a.cfg.Mixer.Stereo = false
			}
			return a.runRender(cmd, args, &sf, out, duration)
		},
	}

	sf.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&out, "output", "o", "", "wav file to write")
	f.DurationVarP(&duration, "duration", "d", 0, "stop after this much audio, 0 renders until every file ends")
	f.BoolVar(&mono, "mono", false, "render a single channel")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (a *app) runRender(cmd *cobra.Command, files []string, sf *soundFlags, out string, duration time.Duration) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if sf.loop == 0 && duration <= 0 {
		return ErrEndlessRender
	}

	m, err := newMixer(a.cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	m.SetReady(true)
	if _, err := playFiles(m, files, sf); err != nil {
		return err
	}

	limit := int(duration.Seconds() * float64(m.OutputRate()))
	samples, err := audmix.Render(m, a.cfg.Mixer.BufferFrames, limit)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := wav.WriteWAV16(f, m.OutputRate(), m.OutputChannels(), samples); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	frames := len(samples) / m.OutputChannels()
	length := time.Duration(frames) * time.Second / time.Duration(m.OutputRate())
	slog.Debug("Rendered", slog.String("file", out), slog.Int("frames", frames))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d frames, %d Hz, %d channels, %s\n",
		out, frames, m.OutputRate(), m.OutputChannels(), length)

	return nil
}

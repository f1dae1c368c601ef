// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/output"
)

const pollInterval = 50 * time.Millisecond

func (a *app) playCmd() *cobra.Command {
	var sf soundFlags

	cmd := &cobra.Command{
		Use:   "play FILE...",
		Short: "Play audio files through the output device",
		Long: `Play decodes every file and mixes them together on the configured
output backend. It returns once every file finished, or on SIGINT.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd, args, &sf)
		},
	}

	sf.register(cmd)
	cmd.Flags().StringP("backend", "b", output.BackendOto, "output backend (oto, beep, null)")
	_ = a.v.BindPFlag("output.backend", cmd.Flags().Lookup("backend"))

	return cmd
}

func (a *app) runPlay(cmd *cobra.Command, files []string, sf *soundFlags) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m, err := newMixer(a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			slog.Warn("Closing mixer", slog.Any("error", err))
		}
	}()

	host, err := output.Open(a.cfg.Output.Backend, m, a.cfg.Mixer.BufferFrames)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer func() {
		if err := host.Close(); err != nil {
			slog.Warn("Closing output", slog.Any("error", err))
		}
	}()

	if err := host.Start(); err != nil {
		return fmt.Errorf("failed to start output: %w", err)
	}

	handles, err := playFiles(m, files, sf)
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for anyActive(m, handles) {
		select {
		case <-ctx.Done():
			slog.Info("Interrupted, stopping playback")
			m.StopAll()
			return nil
		case <-ticker.C:
		}
	}

	slog.Debug("Playback finished", slog.Int("files", len(files)))

	return nil
}

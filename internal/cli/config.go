// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/mixer"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long:  "Commands for showing and validating the audmix configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long:  "Validate the current configuration file and environment variables.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				slog.Error("Configuration validation failed", slog.Any("error", err))
				return err
			}

			slog.Info("Configuration is valid")
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current configuration values from file, environment variables and flags.",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			cfg := a.cfg

			fmt.Fprintln(w, "Current Configuration:")
			fmt.Fprintf(w, "  Mixer:\n")
			fmt.Fprintf(w, "    Sample rate: %d\n", cfg.Mixer.SampleRate)
			fmt.Fprintf(w, "    Stereo: %t\n", cfg.Mixer.Stereo)
			fmt.Fprintf(w, "    Channels: %d\n", cfg.Mixer.Channels)
			fmt.Fprintf(w, "    Buffer frames: %d\n", cfg.Mixer.BufferFrames)
			fmt.Fprintf(w, "  Volume:\n")
			for _, c := range mixer.Categories {
				fmt.Fprintf(w, "    %s: %d\n", c, cfg.Volume.For(c))
			}
			fmt.Fprintf(w, "  Output:\n")
			fmt.Fprintf(w, "    Backend: %s\n", cfg.Output.Backend)
			fmt.Fprintf(w, "  Logging:\n")
			fmt.Fprintf(w, "    Level: %s\n", cfg.Logging.Level)
			fmt.Fprintf(w, "    Format: %s\n", cfg.Logging.Format)
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(w, "  File: %s\n", used)
			}
		},
	})

	return cmd
}

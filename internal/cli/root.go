// SPDX-License-Identifier: EPL-2.0

// Package cli implements the audmix command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/internal/logger"
)

// app carries the state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	cfgFile string
	verbose bool
}

// NewRootCmd builds the audmix command tree around a fresh viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "audmix",
		Short: "A software audio mixer",
		Long: `audmix decodes wav, mp3, ogg vorbis and aiff files and mixes them
in software, either to an audio device or into a wav file.

Every setting can come from a config.yaml file, AUDMIX_ prefixed
environment variables or flags, in increasing order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	// Global flags
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	pf.Int("rate", 44100, "output sample rate in Hz")
	pf.Int("channels", 32, "number of mixer channel slots")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	// Bind flags to viper
	_ = a.v.BindPFlag("mixer.sample_rate", pf.Lookup("rate"))
	_ = a.v.BindPFlag("mixer.channels", pf.Lookup("channels"))
	_ = a.v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", pf.Lookup("log-format"))

	root.AddCommand(a.playCmd(), a.renderCmd(), a.configCmd(), versionCmd())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads the config file and environment, then sets up logging.
func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}

	if a.verbose {
		a.v.Set("logging.level", "debug")
	}

	cfg, err := config.LoadConfig(a.v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	a.cfg = cfg

	return nil
}

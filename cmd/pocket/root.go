package main

import (
	"io"
	"log/slog"

	"github.com/pocketaudio/pocket/cmd"
	"github.com/pocketaudio/pocket/config"
	"github.com/pocketaudio/pocket/version"
	"github.com/spf13/cobra"
)

var (
	argConfig   string
	argLogLevel string
	argLogFile  string

	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer

	rootCmd = &cobra.Command{
		Use:          "pocket",
		Short:        "Measure how far MIDI notes land from the beat",
		Version:      version.VersionOrHash,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			var err error
			if logger, logCloser, err = cmd.NewLogger(argLogLevel, argLogFile); err != nil {
				return err
			}
			slog.SetDefault(logger)
			if cfg, err = config.Load(argConfig); err != nil {
				return err
			}
			logger.Debug("config loaded", "path", argConfig, "config", cfg)
			return nil
		},
		PersistentPostRun: func(c *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&argConfig, "config", "", "config file (default <user config dir>/Pocket/config.yml)")
	rootCmd.PersistentFlags().StringVar(&argLogLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&argLogFile, "log-file", "", "write the log to a file instead of stderr")
	rootCmd.AddCommand(liveCmd, replayCmd, listCmd, initConfigCmd, versionCmd)
}

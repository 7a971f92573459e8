package main

import (
	"fmt"
	"os"

	"github.com/pocketaudio/pocket/replay"
	"github.com/spf13/cobra"
)

var (
	argTemplate   string
	argSampleRate int
	argBlockSize  int

	replayCmd = &cobra.Command{
		Use:   "replay <file.mid>",
		Short: "Report the timing of every note of a MIDI file",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
)

func init() {
	replayCmd.Flags().StringVar(&argTemplate, "template", "", "report template file (default built-in)")
	replayCmd.Flags().IntVar(&argSampleRate, "sample-rate", 0, "sample rate of the simulated host (default from config)")
	replayCmd.Flags().IntVar(&argBlockSize, "block-size", 0, "block size of the simulated host (default from config)")
}

func runReplay(c *cobra.Command, args []string) error {
	rc := cfg.Replay
	if c.Flags().Changed("template") {
		rc.Template = argTemplate
	}
	if c.Flags().Changed("sample-rate") {
		rc.SampleRate = argSampleRate
	}
	if c.Flags().Changed("block-size") {
		rc.BlockSize = argBlockSize
	}
	var text string
	if rc.Template != "" {
		b, err := os.ReadFile(rc.Template)
		if err != nil {
			return fmt.Errorf("could not read template: %w", err)
		}
		text = string(b)
	}
	perf, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	logger.Debug("performance loaded", "file", args[0], "notes", len(perf.Notes), "tempos", len(perf.Tempo), "duration", perf.Duration())
	report, err := replay.Run(perf, replay.Options{SampleRate: rc.SampleRate, BlockSize: rc.BlockSize, Threshold: cfg.Monitor.Threshold})
	if err != nil {
		return err
	}
	return report.Render(c.OutOrStdout(), text)
}

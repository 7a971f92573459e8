package main

import (
	"fmt"

	"github.com/pocketaudio/pocket/cmd"
	"github.com/pocketaudio/pocket/version"
	"github.com/spf13/cobra"
)

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the MIDI inputs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			midiContext := cmd.NewMidiContext(cfg.Host.SampleRate)
			defer midiContext.Close()
			inputs := midiContext.Inputs()
			if len(inputs) == 0 {
				fmt.Fprintln(c.ErrOrStderr(), "no MIDI inputs found")
				return nil
			}
			for i, name := range inputs {
				fmt.Fprintf(c.OutOrStdout(), "%d: %s\n", i, name)
			}
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), version.VersionOrHash)
		},
	}
)

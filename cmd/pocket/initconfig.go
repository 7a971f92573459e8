package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pocketaudio/pocket/config"
	"github.com/spf13/cobra"
)

var (
	argForce bool

	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			path := argConfig
			if path == "" {
				var err error
				if path, err = config.Path(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !argForce {
				return fmt.Errorf("%v already exists, use --force to overwrite it", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			logger.Info("config written", "path", path)
			return nil
		},
	}
)

func init() {
	initConfigCmd.Flags().BoolVar(&argForce, "force", false, "overwrite an existing file")
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"song-catalog/internal/shared"
)

const defaultConfigFile = "song-catalog.json"

// NewConfigCommand creates the config command group
func NewConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the song-catalog configuration.",
	}
	cmd.AddCommand(newConfigInitCommand(opts))
	return cmd
}

func newConfigInitCommand(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a JSON file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if shared.FileExists(path) && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			cfg, container, err := initConfigAndServices(opts)
			if err != nil {
				return err
			}
			if err := container.Config.SaveConfig(path, cfg); err != nil {
				return err
			}
			container.Logger.Success("Configuration saved to %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

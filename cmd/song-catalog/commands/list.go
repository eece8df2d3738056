package commands

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the command that prints the catalog
func NewListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print one line per catalog song.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, container, err := initConfigAndServices(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			count := container.Catalog.ListSongs(out)
			container.WarningCollector.PrintSummary(out)
			container.Logger.Info("📊 %d songs in catalog", count)
			return nil
		},
	}
}

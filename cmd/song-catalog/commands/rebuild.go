package commands

import (
	"github.com/spf13/cobra"
)

// NewRebuildFiltersCommand creates the command that refolds the whole
// catalog into the filter index
func NewRebuildFiltersCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild-filters",
		Short: "Fold every catalog song into the filter index.",
		Long: `Reads every song of the catalog and merges its categorical values into the
filter index. Use it when the index fell behind the catalog, for example after
a run was interrupted between the two saves.`,
		Args: cobra.NoArgs,
		RunE: runRebuildFiltersCommand(opts),
	}
}

func runRebuildFiltersCommand(opts *rootOptions) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, container, err := initConfigAndServices(opts)
		if err != nil {
			return err
		}

		container.Logger.Info("🔄 Rebuilding %s from %s", cfg.FiltersFile, cfg.MetadataFile)
		folded, err := container.Catalog.RebuildFilters()
		container.WarningCollector.PrintSummary(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		container.Logger.Success("Folded %d songs into the filter index", folded)
		return nil
	}
}

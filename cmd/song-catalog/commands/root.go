package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"song-catalog/internal/config"
	"song-catalog/internal/core/builder"
	"song-catalog/internal/services"
)

const toolVersion = "1.0.0"

// rootOptions carries the state shared by every command of one invocation
type rootOptions struct {
	v          *viper.Viper
	configFile string
	dir        string
	in         io.Reader
	out        io.Writer

	// builderOptions lets tests pin the clock and id generator
	builderOptions []builder.Option
}

// NewRootCommand creates the song-catalog command tree. Without a
// subcommand it adds one song.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	return newRootCommand(&rootOptions{v: config.New(), in: in, out: out})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "song-catalog",
		Version: toolVersion,
		Short:   "Add songs to a JSON song catalog and keep its filter index current.",
		Long: fmt.Sprintf(`song-catalog (v%s)

Prompts for the details of one song, derives its CDN audio and cover URLs,
appends it to the catalog document and folds its languages, genres, years,
singers, composer and album into the filter index document.

Running without a subcommand is the same as "song-catalog add".`, toolVersion),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddCommand(opts)
		},
	}
	cmd.SetIn(opts.in)
	cmd.SetOut(opts.out)
	cmd.SetErr(opts.out)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file (JSON, YAML or TOML)")
	flags.StringVar(&opts.dir, "dir", "", "Directory holding the catalog documents")
	flags.String("metadata", "", "Catalog document (default \"metadata.json\")")
	flags.String("filters", "", "Filter index document (default \"filters.json\")")
	flags.Bool("debug", false, "Enable debug logging")

	_ = opts.v.BindPFlag("metadata_file", flags.Lookup("metadata"))
	_ = opts.v.BindPFlag("filters_file", flags.Lookup("filters"))
	_ = opts.v.BindPFlag("debug", flags.Lookup("debug"))

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRebuildFiltersCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// loadConfig resolves the effective configuration for this invocation
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		return nil, err
	}
	cfg.InDir(o.dir)
	return cfg, nil
}

// initConfigAndServices loads configuration and wires the services
func initConfigAndServices(opts *rootOptions) (*config.Config, *services.ServiceContainer, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	container := services.NewServiceContainer(cfg, opts.in, opts.out, opts.builderOptions...)
	container.Logger.Debug("Catalog: %s, filters: %s", cfg.MetadataFile, cfg.FiltersFile)
	return cfg, container, nil
}

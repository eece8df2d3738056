package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"song-catalog/internal/shared"
)

// NewAddCommand creates the command that adds one song
func NewAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Prompt for one song and add it to the catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddCommand(opts)
		},
	}
}

func runAddCommand(opts *rootOptions) error {
	_, container, err := initConfigAndServices(opts)
	if err != nil {
		return err
	}

	song, err := container.Catalog.AddSong()
	if err != nil {
		if errors.Is(err, shared.ErrInputClosed) {
			container.Logger.Warning("Input ended before the song was complete, nothing was saved.")
		}
		return err
	}

	container.Logger.Success("Added %q (%s)", song.Title, song.ID)
	return nil
}

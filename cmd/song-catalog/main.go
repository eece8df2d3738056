package main

import (
	"os"

	"song-catalog/cmd/song-catalog/commands"
	"song-catalog/internal/shared"
)

func main() {
	shared.InitializeColors()
	if err := commands.NewRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		shared.ColorError.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/statusline"
	"github.com/mrukavishnikov/claude-pulse/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run a live-updating status line in the terminal",
		Long: "Run the status line full screen, refreshing continuously. " +
			"Configuration changes are picked up live. Press q to quit.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return watch.Run(statusline.NewApp())
		},
	}
}

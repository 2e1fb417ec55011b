package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/appupdate"
	"github.com/mrukavishnikov/claude-pulse/internal/config"
	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

func newUpdateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update claude-pulse to the latest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checker := appupdate.New(config.StateDir())
			if !checker.IsGitInstall() {
				return fmt.Errorf("not a git install; update with your package manager instead")
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			local := checker.LocalCommit()
			remote := checker.RemoteCommit(ctx)
			if remote == "" {
				return fmt.Errorf("failed to reach %s", appupdate.GitHubRepo)
			}
			if local == remote {
				cmd.Println("Already up to date.")
				checker.DropCache()
				return nil
			}
			if checkOnly {
				cmd.Println("Update available. Run claude-pulse update to install it.")
				return nil
			}

			cmd.Println("Pulling latest changes...")
			out, err := checker.Pull(ctx)
			if err != nil {
				return fmt.Errorf("failed to pull update: %w", err)
			}
			if out != "" {
				cmd.Print(out)
			}

			// Stale caches would keep showing the update arrow.
			checker.DropCache()
			store.DropCache(cachePath())
			cmd.Println("Updated. The new version takes effect on the next status line refresh.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check whether an update is available")
	return cmd
}

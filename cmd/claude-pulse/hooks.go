package main

import (
	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

// hook-start and hook-stop are invoked by the host lifecycle hooks. They
// stay hidden, silent and must never fail the hook pipeline.

func newHookStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "hook-start",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		Run: func(_ *cobra.Command, _ []string) {
			store.NewAnimationState(config.StateDir()).SetProcessing(true)
		},
	}
}

func newHookStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "hook-stop",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		Run: func(_ *cobra.Command, _ []string) {
			store.NewAnimationState(config.StateDir()).SetProcessing(false)
		},
	}
}

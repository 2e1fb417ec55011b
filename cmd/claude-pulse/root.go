package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/statusline"
	"github.com/mrukavishnikov/claude-pulse/internal/version"
)

// newRootCmd builds the command tree. The bare command is the hot path the
// host invokes several times a second, so it stays free of flag parsing
// beyond what cobra needs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "claude-pulse",
		Short:   "Claude usage status line with themes, trends and streaks",
		Version: version.Info(),
		Args:    cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			runStatusLine()
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(
		newThemeCmd(),
		newThemesCmd(),
		newThemesDemoCmd(),
		newShowCmd(),
		newHideCmd(),
		newSetCmd(),
		newConfigCmd(),
		newHistoryCmd(),
		newWatchCmd(),
		newUpdateCmd(),
		newInstallCmd(),
		newInstallHooksCmd(),
		newHookStartCmd(),
		newHookStopCmd(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runStatusLine is the host-invoked path: drain stdin (the host pipes a
// context blob and expects us to consume it), render, print.
func runStatusLine() {
	stdin := readStdin()
	app := statusline.NewApp()
	out := bufio.NewWriter(os.Stdout)
	app.Run(stdin, out)
	_ = out.Flush()
}

func readStdin() []byte {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(os.Stdin, 1<<20))
	if err != nil {
		return nil
	}
	return data
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the current configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			s := config.Load()

			cmd.Println()
			cmd.Println(headingStyle.Render("claude-pulse configuration"))
			cmd.Println(mutedStyle.Render("  " + config.Path()))
			cmd.Println()
			printSetting(cmd, "theme", s.Theme)
			printSetting(cmd, "text-color", s.TextColor)
			printSetting(cmd, "bar-style", s.BarStyle)
			printSetting(cmd, "bar-width", fmt.Sprintf("%d", s.BarWidth))
			printSetting(cmd, "layout", s.Layout)
			printSetting(cmd, "rainbow-bars", onOff(s.RainbowBars))
			printSetting(cmd, "animate", onOff(s.Animate))
			printSetting(cmd, "currency", s.Currency)
			printSetting(cmd, "reset-mode", s.ResetTimeMode)
			printSetting(cmd, "weekly-reset-mode", s.WeeklyResetMode)
			printSetting(cmd, "context-format", s.ContextFormat)
			printSetting(cmd, "cache-ttl", fmt.Sprintf("%ds", s.CacheTTLSeconds))
			cmd.Println()

			var shown, hidden []string
			for _, key := range config.ShowKeys {
				if s.Show[key] {
					shown = append(shown, key)
				} else {
					hidden = append(hidden, key)
				}
			}
			printSetting(cmd, "shown", strings.Join(shown, ", "))
			printSetting(cmd, "hidden", strings.Join(hidden, ", "))
			cmd.Println()
		},
	}
}

func printSetting(cmd *cobra.Command, key, value string) {
	cmd.Printf("  %s %s\n", mutedStyle.Render(fmt.Sprintf("%-18s", key)), value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

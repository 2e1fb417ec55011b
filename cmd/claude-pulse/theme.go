package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
	"github.com/mrukavishnikov/claude-pulse/internal/models"
	"github.com/mrukavishnikov/claude-pulse/internal/render"
	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// themePreview renders a short tri-color bar for a theme listing.
func themePreview(name string) string {
	fill := string(render.GetBarStyle("classic").Fill)
	if name == render.RainbowTheme {
		return render.Colorize(strings.Repeat(fill, 8), false, false, time.Now())
	}
	t := render.GetTheme(name)
	return t.Low + strings.Repeat(fill, 3) +
		t.Mid + strings.Repeat(fill, 3) +
		t.High + strings.Repeat(fill, 2) + render.Reset
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme <name>",
		Short: "Set the active theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if _, ok := render.Themes[name]; !ok {
				return fmt.Errorf("unknown theme %q (available: %s)",
					name, strings.Join(render.ThemeNames, ", "))
			}
			s := config.LoadFile()
			s.Theme = name
			if err := config.Save(s); err != nil {
				return err
			}
			// Drop the cache so the new theme shows up on the next refresh.
			store.DropCache(cachePath())
			cmd.Printf("Theme set to %s  %s\n", headingStyle.Render(name), themePreview(name))
			return nil
		},
	}
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes with color previews",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println()
			cmd.Println(headingStyle.Render("Available themes:"))
			cmd.Println()
			for _, name := range render.ThemeNames {
				note := "low / mid / high"
				if name == render.RainbowTheme {
					note = "animated rainbow"
				}
				cmd.Printf("  %-10s %s  %s\n", name, themePreview(name), mutedStyle.Render(note))
			}
			cmd.Println()
		},
	}
}

func newThemesDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes-demo",
		Short: "Preview a simulated status line in every theme",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			reset := time.Now().Add(2*time.Hour + 5*time.Minute)
			snapshot := &models.UsageSnapshot{
				Session: &models.UsageWindow{Utilization: 42, ResetsAt: &reset},
				Weekly:  &models.UsageWindow{Utilization: 67},
			}
			current := config.Load().Theme

			cmd.Println()
			cmd.Println(headingStyle.Render("Theme previews:"))
			cmd.Println()
			for _, name := range render.ThemeNames {
				s := config.Defaults()
				s.Theme = name
				s.Show["timer"] = false
				cfg := s.RenderConfig(0)
				line := render.StatusLine(snapshot, render.Derived{Plan: "Max 20x"}, cfg, false, time.Now())
				marker := ""
				if name == current {
					marker = mutedStyle.Render("  << current")
				}
				cmd.Printf("  %s %s%s\n", headingStyle.Render(fmt.Sprintf("%-10s", name)), line, marker)
			}
			cmd.Println()
			cmd.Println(mutedStyle.Render("  Set with: claude-pulse theme <name>"))
			cmd.Println()
		},
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/config"
	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <part>[,<part>...]",
		Short: "Show status line parts",
		Long: "Show one or more status line parts. Available parts: " +
			strings.Join(config.ShowKeys, ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleParts(cmd, args[0], true)
		},
	}
}

func newHideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <part>[,<part>...]",
		Short: "Hide status line parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleParts(cmd, args[0], false)
		},
	}
}

func toggleParts(cmd *cobra.Command, list string, visible bool) error {
	s := config.LoadFile()
	var changed []string
	for _, part := range strings.Split(list, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if _, ok := s.Show[part]; !ok {
			return fmt.Errorf("unknown part %q (available: %s)",
				part, strings.Join(config.ShowKeys, ", "))
		}
		s.Show[part] = visible
		// Hiding extra also suppresses the automatic gifted-credits
		// display; showing clears the suppression again.
		if part == "extra" {
			s.ExtraHidden = !visible
		}
		changed = append(changed, part)
	}
	if len(changed) == 0 {
		return fmt.Errorf("no parts given")
	}
	if err := config.Save(s); err != nil {
		return err
	}
	store.DropCache(cachePath())

	verb := "Hidden"
	if visible {
		verb = "Showing"
	}
	cmd.Printf("%s: %s\n", verb, strings.Join(changed, ", "))
	return nil
}

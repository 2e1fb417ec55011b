package main

import (
	"context"
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mrukavishnikov/claude-pulse/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var span time.Duration
	var weekly bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Chart recent usage from the local sample database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := store.OpenHistory(historyPath())
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer h.Close()

			samples, err := h.Recent(context.Background(), time.Now(), span)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if len(samples) < 2 {
				cmd.Println("Not enough samples yet. History fills in as the status line runs.")
				return nil
			}

			series := make([]float64, len(samples))
			for i, s := range samples {
				if weekly {
					series[i] = s.WeeklyPct
				} else {
					series[i] = s.SessionPct
				}
			}
			label := "Session usage %"
			if weekly {
				label = "Weekly usage %"
			}

			first := time.Unix(samples[0].T, 0).Local()
			last := time.Unix(samples[len(samples)-1].T, 0).Local()
			cmd.Println()
			cmd.Println(headingStyle.Render(label))
			cmd.Println(mutedStyle.Render(fmt.Sprintf("  %s to %s, %d samples",
				first.Format("Jan 2 15:04"), last.Format("Jan 2 15:04"), len(samples))))
			cmd.Println()
			cmd.Println(asciigraph.Plot(series,
				asciigraph.Height(12),
				asciigraph.Width(64),
				asciigraph.Precision(0)))
			cmd.Println()
			return nil
		},
	}

	cmd.Flags().DurationVar(&span, "span", 6*time.Hour, "how far back to chart")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "chart the weekly window instead of the session window")
	return cmd
}

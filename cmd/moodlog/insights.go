// ABOUTME: CLI command for showing ranked insights.
// ABOUTME: Loads a window snapshot and runs the default insight rules.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	insightsDays  int
	insightsLimit int
)

var insightsCmd = &cobra.Command{
	Use:     "insights",
	Aliases: []string{"i"},
	Short:   "Show what moodlog has noticed",
	Long: `Show ranked insights over the lookback window: habits that go with
better or worse moods, weekday patterns, health links, and milestones.

EXAMPLES:

  moodlog insights
  moodlog insights --days 90 -n 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := windowDays(insightsDays)
		snap, err := loadSnapshot(cmd, days)
		if err != nil {
			return err
		}

		insights := engine.GenerateInsights(snap, days)
		if insightsLimit > 0 && len(insights) > insightsLimit {
			insights = insights[:insightsLimit]
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		for i, in := range insights {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s %s\n", bold.Sprint(in.Title), faint.Sprintf("[%s]", in.Category))
			fmt.Fprintf(out, "  %s\n", in.Description)
		}
		return nil
	},
}

// loadSnapshot reads everything analysis needs for a window of days.
func loadSnapshot(cmd *cobra.Command, days int) (*models.Snapshot, error) {
	snap, err := repo.Snapshot(cmd.Context(), engine.WindowStart(days))
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	logger.Debug("snapshot loaded",
		"window_days", days,
		"habits", len(snap.Habits),
		"entries", len(snap.Entries),
		"moods", len(snap.Moods),
		"health", len(snap.Health),
	)
	return snap, nil
}

func init() {
	insightsCmd.Flags().IntVarP(&insightsDays, "days", "d", 0, "lookback window in days (default from config)")
	insightsCmd.Flags().IntVarP(&insightsLimit, "limit", "n", 0, "max insights to show")
	rootCmd.AddCommand(insightsCmd)
}

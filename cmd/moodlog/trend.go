// ABOUTME: CLI command for showing the daily sentiment trend.
// ABOUTME: Renders a gap-filled sparkline plus min, max, and mean.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/analysis"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
)

var trendDays int

// sparkBlocks index 0..5 maps sentiment 1..6.
var sparkBlocks = []rune("▁▂▃▅▆█")

var trendCmd = &cobra.Command{
	Use:     "trend",
	Aliases: []string{"t"},
	Short:   "Show daily mood as a sparkline",
	Long: `Show the average sentiment of every day in the lookback window,
oldest first. Days without data are shown as a space.

EXAMPLES:

  moodlog trend
  moodlog trend --days 14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := windowDays(trendDays)
		snap, err := loadSnapshot(cmd, days)
		if err != nil {
			return err
		}

		points := engine.Trend(snap.Entries, snap.Moods, days)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s → %s\n", points[0].Date, points[len(points)-1].Date)
		fmt.Fprintln(out, sparkline(points))

		var avgs stats.Float64Data
		for _, p := range points {
			if p.Average != nil {
				avgs = append(avgs, *p.Average)
			}
		}
		if len(avgs) == 0 {
			fmt.Fprintln(out, "No mood data in this window.")
			return nil
		}

		lo, _ := avgs.Min()
		hi, _ := avgs.Max()
		mean, _ := avgs.Mean()
		fmt.Fprintln(out, color.New(color.Faint).Sprintf("%d days with data · min %.1f · max %.1f · mean %.1f",
			len(avgs), lo, hi, mean))
		return nil
	},
}

func sparkline(points []analysis.TrendPoint) string {
	var b strings.Builder
	for _, p := range points {
		if p.Average == nil {
			b.WriteRune(' ')
			continue
		}
		i := int(*p.Average+0.5) - 1
		i = min(max(i, 0), len(sparkBlocks)-1)
		b.WriteRune(sparkBlocks[i])
	}
	return b.String()
}

func init() {
	trendCmd.Flags().IntVarP(&trendDays, "days", "d", 0, "lookback window in days (default from config)")
	rootCmd.AddCommand(trendCmd)
}

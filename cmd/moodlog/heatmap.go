// ABOUTME: CLI command for rendering a habit's calendar heatmap.
// ABOUTME: One row per week, shaded by the day's average sentiment.
package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/analysis"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/spf13/cobra"
)

var heatmapWeeks int

var heatmapCmd = &cobra.Command{
	Use:     "heatmap <habit>",
	Aliases: []string{"hm"},
	Short:   "Show a calendar heatmap of a habit",
	Long: `Show the habit's activity over recent weeks. Each row is a calendar
week starting on the configured week_start; each cell is one day.

  ·   not logged
  ■   logged, colored by average sentiment (red 1-2, yellow 3-4, green 5-6)

EXAMPLES:

  moodlog heatmap water
  moodlog heatmap reading --weeks 26`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := storage.ResolveHabit(repo, args[0])
		if err != nil {
			return err
		}
		weeks := heatmapWeeks
		if weeks <= 0 {
			weeks = cfg.GetHeatmapWeeks()
		}

		start := engine.HeatmapStart(weeks)
		snap, err := loadSnapshot(cmd, start.DaysUntil(engine.Today()))
		if err != nil {
			return err
		}

		hm := engine.BuildHeatmap(h, snap.Entries, weeks)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s → %s\n", color.New(color.Bold).Sprint(hm.HabitName), hm.Start, hm.End)
		fmt.Fprintln(out, color.New(color.Faint).Sprint(weekdayHeader(hm.Start)))

		logged := 0
		for _, week := range hm.Weeks {
			cells := make([]string, 0, len(week))
			for _, c := range week {
				cells = append(cells, heatCell(c))
				if c.Count > 0 {
					logged++
				}
			}
			fmt.Fprintln(out, strings.Join(cells, " "))
		}
		fmt.Fprintf(out, "\nLogged on %d of %d days\n", logged, len(hm.Cells()))
		return nil
	},
}

func weekdayHeader(start analysis.Date) string {
	labels := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		labels = append(labels, start.AddDays(i).Weekday().String()[:1])
	}
	return strings.Join(labels, " ")
}

func heatCell(c analysis.HeatmapCell) string {
	if c.Count == 0 || c.AverageSentiment == nil {
		return color.New(color.Faint).Sprint("·")
	}
	return sentimentColor(int(math.Round(*c.AverageSentiment))).Sprint("■")
}

func init() {
	heatmapCmd.Flags().IntVarP(&heatmapWeeks, "weeks", "w", 0, "number of weeks (default from config)")
	rootCmd.AddCommand(heatmapCmd)
}

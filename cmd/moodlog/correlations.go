// ABOUTME: CLI command for ranking habit and health correlations with mood.
// ABOUTME: Prints coefficient, strength band, and sample counts per habit or metric.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	corrDays   int
	corrHealth bool
)

var correlationsCmd = &cobra.Command{
	Use:     "correlations",
	Aliases: []string{"corr", "c"},
	Short:   "Rank habits by how they go with mood",
	Long: `Correlate each habit with daily mood over the lookback window.

For every day with mood data, the habit is 1 if logged that day and 0
otherwise; the Pearson coefficient against the day's average sentiment
is reported. At least three days with data, and both logged and
unlogged days, are required.

With --health, correlates sleep, steps, resting heart rate, and HRV
with mood instead.

EXAMPLES:

  moodlog correlations
  moodlog correlations --days 90
  moodlog correlations --health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := windowDays(corrDays)
		snap, err := loadSnapshot(cmd, days)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		if corrHealth {
			for _, res := range engine.FindHealthCorrelations(snap.Health, snap.Entries, snap.Moods, days) {
				fmt.Fprintf(out, "%s %s\n", padRight(analysis.HealthTitle(res.Kind), 20), coefficientCell(res.Coefficient))
				fmt.Fprintf(out, "  %s\n", faint.Sprint(engine.DescribeHealth(res)))
			}
			return nil
		}

		results := engine.FindMoodCorrelations(snap.Habits, snap.Entries, snap.Moods, days)
		if len(results) == 0 {
			fmt.Fprintln(out, "No habits yet. Add one with 'moodlog habit add <name>'.")
			return nil
		}
		for _, res := range results {
			fmt.Fprintf(out, "%s %s %s\n",
				padRight(res.HabitName, 20),
				coefficientCell(res.Coefficient),
				faint.Sprintf("%s (%d/%d days)", engine.Describe(res), res.SampleSize, res.PairCount))
		}
		return nil
	},
}

// coefficientCell formats r with sign color, or n/a when not computed.
func coefficientCell(c analysis.Correlation) string {
	r, ok := c.Value()
	if !ok {
		return padRight("n/a", 6)
	}
	s := fmt.Sprintf("%+.2f", r)
	if r < 0 {
		return color.RedString(s)
	}
	return color.GreenString(s)
}

func init() {
	correlationsCmd.Flags().IntVarP(&corrDays, "days", "d", 0, "lookback window in days (default from config)")
	correlationsCmd.Flags().BoolVar(&corrHealth, "health", false, "correlate health metrics instead of habits")
	rootCmd.AddCommand(correlationsCmd)
}

// ABOUTME: CLI commands for recording health samples.
// ABOUTME: Supports sleep, steps, resting heart rate, and HRV.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	healthAt    string
	healthKind  string
	healthLimit int
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Record and list health samples",
	Long: `Record health samples that moodlog correlates with mood.

METRICS:

  sleep_hours          hours
  steps                steps (zero-step days are ignored in analysis)
  resting_heart_rate   bpm
  hrv                  ms

EXAMPLES:

  moodlog health add sleep_hours 7.5
  moodlog health add steps 9500 --at 2025-01-31
  moodlog health list --kind hrv`,
}

var healthAddCmd = &cobra.Command{
	Use:   "add <kind> <value>",
	Short: "Add a health sample",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if !models.IsValidHealthMetric(kind) {
			return fmt.Errorf("unknown health metric: %s\nValid metrics: sleep_hours, steps, resting_heart_rate, hrv", kind)
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		hs := models.NewHealthSample(models.HealthMetric(kind), value)
		if healthAt != "" {
			t, err := parseTime(healthAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", healthAt)
			}
			hs.WithRecordedAt(t)
		}

		if err := repo.CreateHealthSample(hs); err != nil {
			return fmt.Errorf("failed to add health sample: %w", err)
		}

		color.Green("✓ Added %s", kind)
		fmt.Printf("  %s %.2f %s\n",
			color.New(color.Faint).Sprint(hs.ID.String()[:8]),
			hs.Value, hs.Unit)
		return nil
	},
}

var healthListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List health samples",
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind *models.HealthMetric
		if healthKind != "" {
			if !models.IsValidHealthMetric(healthKind) {
				return fmt.Errorf("unknown health metric: %s", healthKind)
			}
			k := models.HealthMetric(healthKind)
			kind = &k
		}

		samples, err := repo.ListHealthSamples(kind, healthLimit)
		if err != nil {
			return fmt.Errorf("failed to list health samples: %w", err)
		}
		if len(samples) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No health samples found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range samples {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %.2f %s\n",
				faint.Sprint(s.ID.String()[:8]),
				faint.Sprint(s.RecordedAt.Format("2006-01-02 15:04")),
				padRight(string(s.Kind), 20),
				s.Value,
				s.Unit)
		}
		return nil
	},
}

func init() {
	healthAddCmd.Flags().StringVar(&healthAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	healthListCmd.Flags().StringVarP(&healthKind, "kind", "k", "", "filter by metric")
	healthListCmd.Flags().IntVarP(&healthLimit, "limit", "n", 20, "max number of results")

	healthCmd.AddCommand(healthAddCmd)
	healthCmd.AddCommand(healthListCmd)
	rootCmd.AddCommand(healthCmd)
}

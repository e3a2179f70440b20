// ABOUTME: CLI command for recording a standalone mood check-in.
// ABOUTME: Moods count toward daily averages alongside habit entries.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	moodAt    string
	moodNotes string
)

var moodCmd = &cobra.Command{
	Use:     "mood <sentiment>",
	Aliases: []string{"m"},
	Short:   "Record how you feel right now",
	Long: `Record a mood check-in from 1 (awful) to 6 (great) that is not tied
to any habit.

EXAMPLES:

  moodlog mood 4
  moodlog mood 2 --notes "rough meeting"
  moodlog mood 5 --at "2025-01-31 21:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sentiment, err := parseSentiment(args[0])
		if err != nil {
			return err
		}

		m := models.NewMood(sentiment)
		if moodNotes != "" {
			m.WithNotes(moodNotes)
		}
		if moodAt != "" {
			t, err := parseTime(moodAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", moodAt)
			}
			m.WithRecordedAt(t)
		}

		if err := repo.CreateMood(m); err != nil {
			return fmt.Errorf("failed to record mood: %w", err)
		}

		color.Green("✓ Mood %d (%s)", m.Sentiment, models.SentimentLabels[m.Sentiment])
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(m.ID.String()[:8]))
		return nil
	},
}

func init() {
	moodCmd.Flags().StringVar(&moodAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	moodCmd.Flags().StringVar(&moodNotes, "notes", "", "notes for the mood")
	rootCmd.AddCommand(moodCmd)
}

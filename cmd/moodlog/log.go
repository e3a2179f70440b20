// ABOUTME: CLI command for logging a habit entry.
// ABOUTME: Records sentiment plus optional value, notes, tags, and timestamp.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/models"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	logAt    string
	logNotes string
	logValue float64
	logTags  []string
)

var logCmd = &cobra.Command{
	Use:     "log <habit> <sentiment>",
	Aliases: []string{"l"},
	Short:   "Log a habit with how it felt",
	Long: `Log a habit entry. Sentiment runs from 1 (awful) to 6 (great);
values outside that range are clamped.

The habit can be given by name (case-insensitive) or ID prefix.

EXAMPLES:

  moodlog log water 5
  moodlog log reading 6 --value 45 --notes "finished the book"
  moodlog log run 3 --tag morning --tag tired
  moodlog log water 4 --at "2025-01-31 08:00"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := storage.ResolveHabit(repo, args[0])
		if err != nil {
			return err
		}
		sentiment, err := parseSentiment(args[1])
		if err != nil {
			return err
		}

		e := models.NewEntry(h.ID, sentiment)
		if cmd.Flags().Changed("value") {
			e.WithValue(logValue)
		}
		if logNotes != "" {
			e.WithNotes(logNotes)
		}
		if len(logTags) > 0 {
			e.WithTags(logTags...)
		}
		if logAt != "" {
			t, err := parseTime(logAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", logAt)
			}
			e.WithLoggedAt(t)
		}

		if err := repo.CreateEntry(e); err != nil {
			return fmt.Errorf("failed to log habit: %w", err)
		}
		logger.Debug("entry logged", "habit", h.Name, "sentiment", e.Sentiment)

		color.Green("✓ Logged %s", h.Name)
		fmt.Printf("  %s %d (%s)%s\n",
			color.New(color.Faint).Sprint(e.ID.String()[:8]),
			e.Sentiment, models.SentimentLabels[e.Sentiment],
			valueSuffix(e.Value, h.Unit))
		return nil
	},
}

// parseSentiment parses an integer sentiment and clamps it to the scale.
func parseSentiment(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid sentiment: %s (use 1-6)", s)
	}
	return models.ClampSentiment(n), nil
}

func valueSuffix(v *float64, unit string) string {
	if v == nil {
		return ""
	}
	if unit == "" {
		return fmt.Sprintf(" %g", *v)
	}
	return fmt.Sprintf(" %g %s", *v, unit)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	logCmd.Flags().StringVar(&logAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "notes for the entry")
	logCmd.Flags().Float64Var(&logValue, "value", 0, "duration or quantity")
	logCmd.Flags().StringSliceVar(&logTags, "tag", nil, "context tag (repeatable)")
	rootCmd.AddCommand(logCmd)
}

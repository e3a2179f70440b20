// ABOUTME: CLI command for listing recent entries and moods.
// ABOUTME: Shows a merged timeline, optionally filtered to one habit.
package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	listHabit string
	listLimit int
)

// timelineRow is one printable line of the list output.
type timelineRow struct {
	id        string
	at        time.Time
	label     string
	sentiment int
	detail    string
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent entries and moods",
	Long: `List recent habit entries and mood check-ins, newest first.

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  HABIT|mood  SENTIMENT  (NOTES)

  The ID is an 8-character prefix you can use with 'moodlog delete'.

EXAMPLES:

  moodlog list                 # Last 20 entries and moods
  moodlog list --habit water   # Only Water entries
  moodlog list -n 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, err := repo.ListHabits()
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		names := make(map[uuid.UUID]string, len(habits))
		for _, h := range habits {
			names[h.ID] = h.Name
		}

		var habitID *uuid.UUID
		if listHabit != "" {
			h, err := storage.ResolveHabit(repo, listHabit)
			if err != nil {
				return err
			}
			habitID = &h.ID
		}

		entries, err := repo.ListEntries(habitID, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		var rows []timelineRow
		for _, e := range entries {
			rows = append(rows, timelineRow{
				id:        e.ID.String()[:8],
				at:        e.LoggedAt,
				label:     names[e.HabitID],
				sentiment: e.Sentiment,
				detail:    noteDetail(e.Notes, e.Tags),
			})
		}

		if habitID == nil {
			moods, err := repo.ListMoods(listLimit)
			if err != nil {
				return fmt.Errorf("failed to list moods: %w", err)
			}
			for _, m := range moods {
				rows = append(rows, timelineRow{
					id:        m.ID.String()[:8],
					at:        m.RecordedAt,
					label:     "mood",
					sentiment: m.Sentiment,
					detail:    noteDetail(m.Notes, nil),
				})
			}
		}

		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing logged yet.")
			return nil
		}

		sort.SliceStable(rows, func(i, j int) bool { return rows[i].at.After(rows[j].at) })
		if listLimit > 0 && len(rows) > listLimit {
			rows = rows[:listLimit]
		}

		faint := color.New(color.Faint)
		for _, r := range rows {
			detail := ""
			if r.detail != "" {
				detail = faint.Sprintf(" (%s)", truncate(r.detail, 40))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s%s\n",
				faint.Sprint(r.id),
				faint.Sprint(r.at.Local().Format("2006-01-02 15:04")),
				padRight(r.label, 16),
				sentimentColor(r.sentiment).Sprintf("%d", r.sentiment),
				detail)
		}
		return nil
	},
}

func noteDetail(notes *string, tags []string) string {
	var parts []string
	if notes != nil && *notes != "" {
		parts = append(parts, *notes)
	}
	for _, t := range tags {
		parts = append(parts, "#"+t)
	}
	return strings.Join(parts, " ")
}

// sentimentColor maps the 1-6 scale from red through yellow to green.
func sentimentColor(s int) *color.Color {
	switch {
	case s <= 2:
		return color.New(color.FgRed)
	case s <= 4:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVar(&listHabit, "habit", "", "only show entries for this habit")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}

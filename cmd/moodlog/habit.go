// ABOUTME: CLI commands for managing habits.
// ABOUTME: Supports add, list, and delete of tracked habits.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/models"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	habitStyle string
	habitUnit  string
	habitColor string
	habitIcon  string
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits", "h"},
	Short:   "Manage tracked habits",
	Long: `Create, list, and delete the habits you track.

TRACKING STYLES:

  occurrence   Did it happen? (default)
  duration     How long, e.g. --unit min
  quantity     How much, e.g. --unit glasses

EXAMPLES:

  moodlog habit add Water
  moodlog habit add Reading --style duration --unit min --icon 📚
  moodlog habit list
  moodlog habit delete reading`,
}

var habitAddCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"a"},
	Short:   "Create a habit",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(strings.Join(args, " "))
		if name == "" {
			return fmt.Errorf("habit name is required")
		}
		if !models.IsValidTrackingStyle(habitStyle) {
			return fmt.Errorf("unknown tracking style: %s (use occurrence, duration, or quantity)", habitStyle)
		}

		h := models.NewHabit(name).
			WithStyle(models.TrackingStyle(habitStyle), habitUnit).
			WithColor(habitColor).
			WithIcon(habitIcon)
		if err := repo.CreateHabit(h); err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		color.Green("✓ Added habit %s", h.Name)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(h.ID.String()[:8]),
			h.Style)
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, err := repo.ListHabits()
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		if len(habits) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No habits yet. Add one with 'moodlog habit add <name>'.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, h := range habits {
			label := h.Name
			if h.Icon != "" {
				label = h.Icon + " " + label
			}
			style := string(h.Style)
			if h.Unit != "" {
				style += " (" + h.Unit + ")"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				faint.Sprint(h.ID.String()[:8]),
				padRight(label, 24),
				faint.Sprint(style))
		}
		return nil
	},
}

var habitDeleteCmd = &cobra.Command{
	Use:     "delete <name-or-id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a habit and all of its entries",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := storage.ResolveHabit(repo, args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteHabit(h.ID.String()); err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}

		color.Yellow("✗ Deleted habit %s", h.Name)
		return nil
	},
}

func init() {
	habitAddCmd.Flags().StringVar(&habitStyle, "style", string(models.StyleOccurrence), "tracking style (occurrence, duration, quantity)")
	habitAddCmd.Flags().StringVar(&habitUnit, "unit", "", "unit for duration or quantity habits")
	habitAddCmd.Flags().StringVar(&habitColor, "color", "", "display color")
	habitAddCmd.Flags().StringVar(&habitIcon, "icon", "", "display icon")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitDeleteCmd)
	rootCmd.AddCommand(habitCmd)
}

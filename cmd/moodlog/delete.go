// ABOUTME: CLI command for deleting entries, moods, and health samples.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an entry, mood, or health sample",
	Long: `Delete a habit entry, mood check-in, or health sample by its ID or ID prefix.

The ID prefix is shown in the first column of 'moodlog list' and
'moodlog health list' output. To delete a habit use 'moodlog habit delete'.

EXAMPLES:

  moodlog delete abc12345      # Delete by 8-char prefix
  moodlog rm abc1              # Short prefix (if unique)

CAUTION:

  This permanently deletes the record. There is no undo.
  If the prefix matches multiple records, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := storage.DeleteRecord(repo, args[0])
		if err != nil {
			return err
		}

		color.Yellow("✗ Deleted %s %s", kind, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/moodlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CONFIGURATION:

  {
    "mcpServers": {
      "moodlog": {
        "command": "moodlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_habit                Create a habit
  list_habits              List habits
  log_habit                Log a habit entry with sentiment
  log_mood                 Record a mood check-in
  add_health_sample        Record sleep, steps, resting heart rate, or HRV
  get_correlations         Habits ranked by mood correlation
  get_health_correlations  Health metrics correlated with mood
  get_heatmap              Calendar heatmap of a habit
  get_trend                Daily average sentiment
  get_insights             Ranked insights

AVAILABLE RESOURCES:

  moodlog://today          Entries and moods logged today
  moodlog://insights       Ranked insights over the default window
  moodlog://correlations   Habit and health correlations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, engine, mcp.Options{
			Logger:       logger,
			WindowDays:   cfg.GetWindowDays(),
			HeatmapWeeks: cfg.GetHeatmapWeeks(),
			Version:      version,
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

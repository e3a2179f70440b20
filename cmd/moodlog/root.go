// ABOUTME: Root Cobra command for moodlog CLI.
// ABOUTME: Loads config, opens storage, and builds the analysis engine per invocation.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/moodlog/internal/analysis"
	"github.com/harperreed/moodlog/internal/config"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that manage storage themselves.
const skipStorage = "skip-storage"

var (
	cfg    *config.Config
	repo   storage.Repository
	engine *analysis.Engine
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "moodlog"})

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "moodlog",
	Short: "Habit and mood tracker that finds what lifts your mood",
	Long: `Moodlog tracks habits and mood check-ins and correlates them to show
which habits go together with better days.

QUICK START:

  $ moodlog habit add Water                  # Create a habit
  $ moodlog log water 5 --notes "big glass"  # Log it with how it felt (1-6)
  $ moodlog mood 4                           # Record a standalone mood
  $ moodlog insights                         # See what's working

SENTIMENT SCALE:

  1 awful   2 bad   3 meh   4 okay   5 good   6 great

ANALYSIS:

  $ moodlog correlations            # Habits ranked by mood correlation
  $ moodlog correlations --health   # Sleep, steps, heart rate, HRV vs mood
  $ moodlog heatmap water           # Calendar heatmap of a habit
  $ moodlog trend --days 14         # Daily mood sparkline

MCP INTEGRATION:

  Run 'moodlog mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "moodlog": { "command": "moodlog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  SQLite at ~/.local/share/moodlog/moodlog.db by default. Set "backend":
  "charm" in ~/.config/moodlog/config.json to store in Charm KV with
  encrypted cloud sync instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.WarnLevel)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		engineCfg, err := cfg.EngineConfig()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		engine = analysis.NewEngine(engineCfg)

		if !needsStorage(cmd) {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// needsStorage reports whether cmd and its parents want the shared repository.
func needsStorage(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion":
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStorage] == "true" {
			return false
		}
	}
	return true
}

// windowDays returns days when positive, otherwise the configured default.
func windowDays(days int) int {
	if days > 0 {
		return days
	}
	return cfg.GetWindowDays()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

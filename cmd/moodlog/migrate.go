// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies everything from Charm KV to SQLite or the reverse.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/moodlog/internal/charm"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Migrate data between Charm KV and SQLite",
	Annotations: map[string]string{skipStorage: "true"},
	Long: `Copy every habit, entry, mood, and health sample from one storage
backend to the other.

IMPORTANT:

  - The destination should be empty; use --force to migrate anyway
  - Records with IDs already in the destination cause an error
  - Run with --dry-run first to see what would be migrated

USAGE:

  moodlog migrate --dry-run                 # Preview Charm -> SQLite
  moodlog migrate                           # Charm KV -> SQLite
  moodlog migrate --from sqlite --to charm  # SQLite -> Charm KV

AFTER MIGRATION:

  Set "backend" in ~/.config/moodlog/config.json to the destination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}

		src, err := openBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateFrom, err)
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			data, err := src.GetAllData()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", migrateFrom, err)
			}
			fmt.Printf("Would migrate from %s to %s:\n", migrateFrom, migrateTo)
			fmt.Printf("  Habits:         %d\n", len(data.Habits))
			fmt.Printf("  Entries:        %d\n", len(data.Entries))
			fmt.Printf("  Moods:          %d\n", len(data.Moods))
			fmt.Printf("  Health samples: %d\n", len(data.Health))
			return nil
		}

		if migrateTo == "sqlite" && !migrateForce {
			dbPath := filepath.Join(cfg.GetDataDir(), storage.DBFileName)
			populated, err := sqliteHasData(dbPath)
			if err != nil {
				return err
			}
			if populated {
				return fmt.Errorf("destination %s already has data (use --force to migrate anyway)", dbPath)
			}
		}

		dst, err := openBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		if migrateTo == "charm" && !migrateForce {
			habits, err := dst.ListHabits()
			if err != nil {
				return fmt.Errorf("failed to inspect charm: %w", err)
			}
			if len(habits) > 0 {
				return fmt.Errorf("destination charm already has %d habits (use --force to migrate anyway)", len(habits))
			}
		}
		if c, ok := dst.(*charm.Client); ok {
			c.SetAutoSync(false)
			defer func() {
				c.SetAutoSync(true)
				if err := c.Sync(); err != nil {
					logger.Warn("sync after migration failed", "err", err)
				}
			}()
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %d records from %s to %s", summary.Total(), migrateFrom, migrateTo)
		fmt.Printf("  Habits:         %d\n", summary.Habits)
		fmt.Printf("  Entries:        %d\n", summary.Entries)
		fmt.Printf("  Moods:          %d\n", summary.Moods)
		fmt.Printf("  Health samples: %d\n", summary.HealthSamples)
		return nil
	},
}

// openBackend opens a backend by name regardless of the configured one.
func openBackend(name string) (storage.Repository, error) {
	switch name {
	case "sqlite":
		return cfg.OpenSQLite()
	case "charm":
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", name)
	}
}

// sqliteHasData reports whether the database at dbPath holds any habits or moods.
func sqliteHasData(dbPath string) (bool, error) {
	nonEmpty, err := storage.IsDirNonEmpty(filepath.Dir(dbPath))
	if err != nil || !nonEmpty {
		return false, err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", dbPath, err)
	}
	defer db.Close()

	habits, err := db.ListHabits()
	if err != nil {
		return false, err
	}
	moods, err := db.ListMoods(1)
	if err != nil {
		return false, err
	}
	return len(habits) > 0 || len(moods) > 0, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "charm", "source backend (charm or sqlite)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "sqlite", "destination backend (charm or sqlite)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate even if the destination has data")
	rootCmd.AddCommand(migrateCmd)
}

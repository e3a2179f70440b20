// ABOUTME: Data migration between moodlog storage backends.
// ABOUTME: Copies habits, entries, moods, and health samples from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Habits        int
	Entries       int
	Moods         int
	HealthSamples int
}

// Total returns the number of records migrated.
func (s *MigrateSummary) Total() int {
	return s.Habits + s.Entries + s.Moods + s.HealthSamples
}

// MigrateData copies all data from src to dst storage.
// Habits are copied first so entries always reference an existing habit.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	habits, err := src.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("list source habits: %w", err)
	}
	for _, h := range habits {
		if err := dst.CreateHabit(h); err != nil {
			return nil, fmt.Errorf("create habit %s: %w", h.ID, err)
		}
		summary.Habits++
	}

	entries, err := src.ListEntries(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source entries: %w", err)
	}
	for _, e := range entries {
		if err := dst.CreateEntry(e); err != nil {
			return nil, fmt.Errorf("create entry %s: %w", e.ID, err)
		}
		summary.Entries++
	}

	moods, err := src.ListMoods(0)
	if err != nil {
		return nil, fmt.Errorf("list source moods: %w", err)
	}
	for _, m := range moods {
		if err := dst.CreateMood(m); err != nil {
			return nil, fmt.Errorf("create mood %s: %w", m.ID, err)
		}
		summary.Moods++
	}

	samples, err := src.ListHealthSamples(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source health samples: %w", err)
	}
	for _, s := range samples {
		if err := dst.CreateHealthSample(s); err != nil {
			return nil, fmt.Errorf("create health sample %s: %w", s.ID, err)
		}
		summary.HealthSamples++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}

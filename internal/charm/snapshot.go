// ABOUTME: Snapshot and export support for the Charm KV backend.
// ABOUTME: Snapshots read all prefixes under one read lock.
package charm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/moodlog/internal/models"
	"github.com/harperreed/moodlog/internal/storage"
)

// Snapshot reads every habit and all records at or after since while
// holding the read lock, so no local write interleaves.
func (c *Client) Snapshot(ctx context.Context, since time.Time) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	read := func(prefix string) ([][]byte, error) {
		values, err := c.listByPrefixLocked(prefix)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", prefix, err)
		}
		return values, nil
	}

	habits, err := read(HabitPrefix)
	if err != nil {
		return nil, err
	}
	entries, err := read(EntryPrefix)
	if err != nil {
		return nil, err
	}
	moods, err := read(MoodPrefix)
	if err != nil {
		return nil, err
	}
	health, err := read(HealthPrefix)
	if err != nil {
		return nil, err
	}

	return buildSnapshot(habits, entries, moods, health, since), nil
}

// buildSnapshot decodes raw values and keeps records at or after since,
// oldest first.
func buildSnapshot(habits, entries, moods, health [][]byte, since time.Time) *models.Snapshot {
	snap := &models.Snapshot{Habits: decodeAll[models.Habit](habits)}
	sortHabits(snap.Habits)

	for _, e := range decodeAll[models.Entry](entries) {
		if !e.LoggedAt.Before(since) {
			snap.Entries = append(snap.Entries, e)
		}
	}
	sort.Slice(snap.Entries, func(i, j int) bool {
		return snap.Entries[i].LoggedAt.Before(snap.Entries[j].LoggedAt)
	})

	for _, m := range decodeAll[models.Mood](moods) {
		if !m.RecordedAt.Before(since) {
			snap.Moods = append(snap.Moods, m)
		}
	}
	sort.Slice(snap.Moods, func(i, j int) bool {
		return snap.Moods[i].RecordedAt.Before(snap.Moods[j].RecordedAt)
	})

	for _, s := range decodeAll[models.HealthSample](health) {
		if !s.RecordedAt.Before(since) {
			snap.Health = append(snap.Health, s)
		}
	}
	sort.Slice(snap.Health, func(i, j int) bool {
		return snap.Health[i].RecordedAt.Before(snap.Health[j].RecordedAt)
	})

	return snap
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	return storage.CollectExportData(c)
}

// ImportData imports data with auto-sync paused, syncing once at the end.
func (c *Client) ImportData(data *storage.ExportData) error {
	c.SetAutoSync(false)
	defer c.SetAutoSync(true)

	if err := storage.ApplyImportData(c, data); err != nil {
		return err
	}
	return c.Sync()
}

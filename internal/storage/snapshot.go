// ABOUTME: Consistent read of all record kinds for the analysis engine.
// ABOUTME: Every query runs inside one transaction; WAL mode pins the read view.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/moodlog/internal/models"
)

// Snapshot reads every habit and all entries, moods and health samples at or
// after since inside a single read transaction.
func (d *DB) Snapshot(ctx context.Context, since time.Time) (*models.Snapshot, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	snap := &models.Snapshot{}
	if snap.Habits, err = listHabits(tx); err != nil {
		return nil, err
	}
	if snap.Entries, err = entriesSince(tx, since); err != nil {
		return nil, err
	}
	if snap.Moods, err = moodsSince(tx, since); err != nil {
		return nil, err
	}
	if snap.Health, err = healthSince(tx, since); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return snap, nil
}

// ABOUTME: Health sample storage for SQLite.
// ABOUTME: Samples are imported or entered by hand; analysis reads them through snapshots.
package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

const healthColumns = `id, kind, value, unit, recorded_at, created_at`

// CreateHealthSample stores a new health sample.
func (d *DB) CreateHealthSample(s *models.HealthSample) error {
	query := `
		INSERT INTO health_samples (id, kind, value, unit, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		s.ID.String(),
		string(s.Kind),
		s.Value,
		s.Unit,
		formatTime(s.RecordedAt),
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create health sample: %w", err)
	}
	return nil
}

// ListHealthSamples retrieves samples with optional filtering by kind.
// Results are sorted by RecordedAt descending (most recent first).
func (d *DB) ListHealthSamples(kind *models.HealthMetric, limit int) ([]*models.HealthSample, error) {
	query := `SELECT ` + healthColumns + ` FROM health_samples`
	var args []any

	if kind != nil {
		query += ` WHERE kind = ?`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY recorded_at DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return queryHealthSamples(d.db, query, args...)
}

// DeleteHealthSample removes a sample by ID or prefix.
func (d *DB) DeleteHealthSample(idOrPrefix string) error {
	if err := d.deleteByID("health_samples", idOrPrefix); err != nil {
		return fmt.Errorf("delete health sample: %w", err)
	}
	return nil
}

func healthSince(q querier, since time.Time) ([]*models.HealthSample, error) {
	query := `SELECT ` + healthColumns + ` FROM health_samples WHERE recorded_at >= ? ORDER BY recorded_at ASC`
	return queryHealthSamples(q, query, formatTime(since))
}

func queryHealthSamples(q querier, query string, args ...any) ([]*models.HealthSample, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list health samples: %w", err)
	}
	defer rows.Close()

	var samples []*models.HealthSample
	for rows.Next() {
		var s models.HealthSample
		var idStr, kind, recordedAt, createdAt string

		if err := rows.Scan(&idStr, &kind, &s.Value, &s.Unit, &recordedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan health sample: %w", err)
		}

		s.ID, _ = uuid.Parse(idStr)
		s.Kind = models.HealthMetric(kind)
		s.RecordedAt = parseTime(recordedAt)
		s.CreatedAt = parseTime(createdAt)
		samples = append(samples, &s)
	}
	return samples, rows.Err()
}

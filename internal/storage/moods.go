// ABOUTME: Mood check-in CRUD operations for SQLite storage.
// ABOUTME: Moods are stand-alone sentiment ratings not tied to a habit.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

const moodColumns = `id, sentiment, notes, recorded_at, created_at`

// CreateMood stores a new mood check-in. The sentiment is clamped to [1,6].
func (d *DB) CreateMood(m *models.Mood) error {
	query := `
		INSERT INTO moods (id, sentiment, notes, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		m.ID.String(),
		models.ClampSentiment(m.Sentiment),
		m.Notes,
		formatTime(m.RecordedAt),
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create mood: %w", err)
	}
	return nil
}

// GetMood retrieves a mood by ID or ID prefix.
func (d *DB) GetMood(idOrPrefix string) (*models.Mood, error) {
	id, err := resolveID(d.db, "moods", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return scanMood(d.db.QueryRow(`SELECT `+moodColumns+` FROM moods WHERE id = ?`, id))
}

// ListMoods retrieves moods sorted by RecordedAt descending.
func (d *DB) ListMoods(limit int) ([]*models.Mood, error) {
	query := `SELECT ` + moodColumns + ` FROM moods ORDER BY recorded_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return queryMoods(d.db, query, args...)
}

// DeleteMood removes a mood by ID or prefix.
func (d *DB) DeleteMood(idOrPrefix string) error {
	if err := d.deleteByID("moods", idOrPrefix); err != nil {
		return fmt.Errorf("delete mood: %w", err)
	}
	return nil
}

func moodsSince(q querier, since time.Time) ([]*models.Mood, error) {
	query := `SELECT ` + moodColumns + ` FROM moods WHERE recorded_at >= ? ORDER BY recorded_at ASC`
	return queryMoods(q, query, formatTime(since))
}

func queryMoods(q querier, query string, args ...any) ([]*models.Mood, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	defer rows.Close()

	var moods []*models.Mood
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

func scanMood(row scanner) (*models.Mood, error) {
	var m models.Mood
	var idStr, recordedAt, createdAt string
	var notes sql.NullString

	err := row.Scan(&idStr, &m.Sentiment, &notes, &recordedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan mood: %w", err)
	}

	m.ID, _ = uuid.Parse(idStr)
	m.RecordedAt = parseTime(recordedAt)
	m.CreatedAt = parseTime(createdAt)
	if notes.Valid {
		m.Notes = &notes.String
	}

	return &m, nil
}

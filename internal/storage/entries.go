// ABOUTME: Habit entry CRUD operations for SQLite storage.
// ABOUTME: Tags are stored as a JSON array in a text column.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

const entryColumns = `id, habit_id, sentiment, value, notes, tags, logged_at, created_at`

// CreateEntry stores a new habit entry. The sentiment is clamped to [1,6].
func (d *DB) CreateEntry(e *models.Entry) error {
	tags, err := encodeTags(e.Tags)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	query := `
		INSERT INTO entries (id, habit_id, sentiment, value, notes, tags, logged_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query,
		e.ID.String(),
		e.HabitID.String(),
		models.ClampSentiment(e.Sentiment),
		e.Value,
		e.Notes,
		tags,
		formatTime(e.LoggedAt),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// GetEntry retrieves an entry by ID or ID prefix.
func (d *DB) GetEntry(idOrPrefix string) (*models.Entry, error) {
	id, err := resolveID(d.db, "entries", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return scanEntry(d.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
}

// ListEntries retrieves entries with optional filtering by habit.
// Results are sorted by LoggedAt descending (most recent first).
func (d *DB) ListEntries(habitID *uuid.UUID, limit int) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`
	var args []any

	if habitID != nil {
		query += ` WHERE habit_id = ?`
		args = append(args, habitID.String())
	}
	query += ` ORDER BY logged_at DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return queryEntries(d.db, query, args...)
}

// DeleteEntry removes an entry by ID or prefix.
func (d *DB) DeleteEntry(idOrPrefix string) error {
	if err := d.deleteByID("entries", idOrPrefix); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// entriesSince lists all entries logged at or after since, oldest first.
func entriesSince(q querier, since time.Time) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE logged_at >= ? ORDER BY logged_at ASC`
	return queryEntries(q, query, formatTime(since))
}

func queryEntries(q querier, query string, args ...any) ([]*models.Entry, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// scanEntry scans a single row into an Entry struct.
func scanEntry(row scanner) (*models.Entry, error) {
	var e models.Entry
	var idStr, habitID, loggedAt, createdAt string
	var value sql.NullFloat64
	var notes, tags sql.NullString

	err := row.Scan(&idStr, &habitID, &e.Sentiment, &value, &notes, &tags, &loggedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.HabitID, _ = uuid.Parse(habitID)
	e.LoggedAt = parseTime(loggedAt)
	e.CreatedAt = parseTime(createdAt)
	if value.Valid {
		e.Value = &value.Float64
	}
	if notes.Valid {
		e.Notes = &notes.String
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &e.Tags); err != nil {
			return nil, fmt.Errorf("decode entry tags: %w", err)
		}
	}

	return &e, nil
}

func encodeTags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	s := string(b)
	return &s, nil
}

// ABOUTME: Habit CRUD operations for SQLite storage.
// ABOUTME: Habit names are unique case-insensitively; deleting a habit cascades to its entries.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

const habitColumns = `id, name, color, icon, style, unit, created_at`

// CreateHabit stores a new habit in the database.
func (d *DB) CreateHabit(h *models.Habit) error {
	query := `
		INSERT INTO habits (id, name, color, icon, style, unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		h.ID.String(),
		h.Name,
		h.Color,
		h.Icon,
		string(h.Style),
		h.Unit,
		formatTime(h.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// GetHabit retrieves a habit by ID or ID prefix.
func (d *DB) GetHabit(idOrPrefix string) (*models.Habit, error) {
	id, err := resolveID(d.db, "habits", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return scanHabit(d.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id))
}

// GetHabitByName retrieves a habit by its name, ignoring case.
func (d *DB) GetHabitByName(name string) (*models.Habit, error) {
	h, err := scanHabit(d.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = ?`, name))
	if err != nil {
		return nil, fmt.Errorf("not found: %s", name)
	}
	return h, nil
}

// ListHabits retrieves all habits sorted by name.
func (d *DB) ListHabits() ([]*models.Habit, error) {
	return listHabits(d.db)
}

// DeleteHabit removes a habit and all its entries (cascade delete).
func (d *DB) DeleteHabit(idOrPrefix string) error {
	if err := d.deleteByID("habits", idOrPrefix); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

func listHabits(q querier) ([]*models.Habit, error) {
	rows, err := q.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// scanHabit scans a single row into a Habit struct.
func scanHabit(row scanner) (*models.Habit, error) {
	var h models.Habit
	var idStr, style, createdAt string
	var color, icon, unit sql.NullString

	err := row.Scan(&idStr, &h.Name, &color, &icon, &style, &unit, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan habit: %w", err)
	}

	h.ID, _ = uuid.Parse(idStr)
	h.Style = models.TrackingStyle(style)
	h.Color = color.String
	h.Icon = icon.String
	h.Unit = unit.String
	h.CreatedAt = parseTime(createdAt)

	return &h, nil
}

// ABOUTME: Repository interface for habit and mood data storage.
// ABOUTME: Defines the CRUD contract plus consistent snapshots for analysis.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

// Repository defines the storage interface for moodlog data.
// Both the SQLite DB and the Charm KV client implement it.
type Repository interface {
	// Habit operations
	CreateHabit(h *models.Habit) error
	GetHabit(idOrPrefix string) (*models.Habit, error)
	GetHabitByName(name string) (*models.Habit, error)
	ListHabits() ([]*models.Habit, error)
	DeleteHabit(idOrPrefix string) error

	// Entry operations
	CreateEntry(e *models.Entry) error
	GetEntry(idOrPrefix string) (*models.Entry, error)
	ListEntries(habitID *uuid.UUID, limit int) ([]*models.Entry, error)
	DeleteEntry(idOrPrefix string) error

	// Mood operations
	CreateMood(m *models.Mood) error
	GetMood(idOrPrefix string) (*models.Mood, error)
	ListMoods(limit int) ([]*models.Mood, error)
	DeleteMood(idOrPrefix string) error

	// Health sample operations
	CreateHealthSample(s *models.HealthSample) error
	ListHealthSamples(kind *models.HealthMetric, limit int) ([]*models.HealthSample, error)
	DeleteHealthSample(idOrPrefix string) error

	// Snapshot returns every habit plus all records at or after since,
	// read as one consistent view.
	Snapshot(ctx context.Context, since time.Time) (*models.Snapshot, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// ResolveHabit finds a habit by case-insensitive name, falling back to an
// ID prefix.
func ResolveHabit(repo Repository, nameOrPrefix string) (*models.Habit, error) {
	nameOrPrefix = strings.TrimSpace(nameOrPrefix)
	if h, err := repo.GetHabitByName(nameOrPrefix); err == nil {
		return h, nil
	}
	h, err := repo.GetHabit(nameOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("habit %q: %w", nameOrPrefix, err)
	}
	return h, nil
}

// DeleteRecord removes an entry, mood, or health sample by ID prefix,
// whichever kind the prefix matches. It returns the kind deleted.
func DeleteRecord(repo Repository, idOrPrefix string) (string, error) {
	if err := repo.DeleteEntry(idOrPrefix); err == nil {
		return "entry", nil
	} else if IsAmbiguous(err) {
		return "", err
	}
	if err := repo.DeleteMood(idOrPrefix); err == nil {
		return "mood", nil
	} else if IsAmbiguous(err) {
		return "", err
	}
	if err := repo.DeleteHealthSample(idOrPrefix); err == nil {
		return "health sample", nil
	} else if IsAmbiguous(err) {
		return "", err
	}
	return "", fmt.Errorf("not found: %s", idOrPrefix)
}

// IsAmbiguous reports whether err came from a prefix matching several records.
func IsAmbiguous(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ambiguous prefix")
}

// IsNotFound reports whether err came from a lookup with no match.
func IsNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}

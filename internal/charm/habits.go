// ABOUTME: Habit and entry CRUD operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side filtering.
package charm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

// CreateHabit stores a new habit. Names are unique ignoring case.
func (c *Client) CreateHabit(h *models.Habit) error {
	if _, err := c.GetHabitByName(h.Name); err == nil {
		return fmt.Errorf("create habit: %q already exists", h.Name)
	}
	data, err := marshalJSON(h)
	if err != nil {
		return fmt.Errorf("marshal habit: %w", err)
	}
	return c.set(HabitPrefix+h.ID.String(), data)
}

// GetHabit retrieves a habit by ID or ID prefix.
func (c *Client) GetHabit(idOrPrefix string) (*models.Habit, error) {
	data, err := c.getByIDPrefix(HabitPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	h, err := unmarshalJSON[models.Habit](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal habit: %w", err)
	}
	return h, nil
}

// GetHabitByName retrieves a habit by its name, ignoring case.
func (c *Client) GetHabitByName(name string) (*models.Habit, error) {
	habits, err := c.ListHabits()
	if err != nil {
		return nil, err
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, name) {
			return h, nil
		}
	}
	return nil, fmt.Errorf("not found: %s", name)
}

// ListHabits retrieves all habits sorted by name.
func (c *Client) ListHabits() ([]*models.Habit, error) {
	values, err := c.listByPrefix(HabitPrefix)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	habits := decodeAll[models.Habit](values)
	sortHabits(habits)
	return habits, nil
}

// DeleteHabit removes a habit and all its entries (cascade delete).
func (c *Client) DeleteHabit(idOrPrefix string) error {
	h, err := c.GetHabit(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	entries, err := c.ListEntries(&h.ID, 0)
	if err != nil {
		return fmt.Errorf("delete habit entries: %w", err)
	}
	keys := make([][]byte, 0, len(entries)+1)
	for _, e := range entries {
		keys = append(keys, []byte(EntryPrefix+e.ID.String()))
	}
	keys = append(keys, []byte(HabitPrefix+h.ID.String()))

	if err := c.deleteKeys(keys); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

// CreateEntry stores a new habit entry. The sentiment is clamped to [1,6].
func (c *Client) CreateEntry(e *models.Entry) error {
	stored := *e
	stored.Sentiment = models.ClampSentiment(e.Sentiment)
	data, err := marshalJSON(&stored)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return c.set(EntryPrefix+e.ID.String(), data)
}

// GetEntry retrieves an entry by ID or ID prefix.
func (c *Client) GetEntry(idOrPrefix string) (*models.Entry, error) {
	data, err := c.getByIDPrefix(EntryPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	e, err := unmarshalJSON[models.Entry](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal entry: %w", err)
	}
	return e, nil
}

// ListEntries retrieves entries with optional filtering by habit.
// Results are sorted by LoggedAt descending (most recent first).
func (c *Client) ListEntries(habitID *uuid.UUID, limit int) ([]*models.Entry, error) {
	values, err := c.listByPrefix(EntryPrefix)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	entries := filterEntries(decodeAll[models.Entry](values), habitID)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LoggedAt.After(entries[j].LoggedAt)
	})
	return limitSlice(entries, limit), nil
}

// DeleteEntry removes an entry by ID or prefix.
func (c *Client) DeleteEntry(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(EntryPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func sortHabits(habits []*models.Habit) {
	sort.Slice(habits, func(i, j int) bool {
		return strings.ToLower(habits[i].Name) < strings.ToLower(habits[j].Name)
	})
}

func filterEntries(entries []*models.Entry, habitID *uuid.UUID) []*models.Entry {
	if habitID == nil {
		return entries
	}
	var out []*models.Entry
	for _, e := range entries {
		if e.HabitID == *habitID {
			out = append(out, e)
		}
	}
	return out
}

// limitSlice truncates s to limit items when limit is positive.
func limitSlice[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

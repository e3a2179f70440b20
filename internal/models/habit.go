// ABOUTME: Habit and Entry models for behavior tracking.
// ABOUTME: Entries are individual logs of a habit, each carrying a sentiment score.
package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackingStyle describes what a habit records per entry.
type TrackingStyle string

const (
	StyleOccurrence TrackingStyle = "occurrence"
	StyleDuration   TrackingStyle = "duration"
	StyleQuantity   TrackingStyle = "quantity"
)

// AllTrackingStyles returns all valid tracking styles.
var AllTrackingStyles = []TrackingStyle{StyleOccurrence, StyleDuration, StyleQuantity}

// IsValidTrackingStyle checks if a string is a valid tracking style.
func IsValidTrackingStyle(s string) bool {
	for _, ts := range AllTrackingStyles {
		if string(ts) == s {
			return true
		}
	}
	return false
}

// Habit is a tracked behavior. Color and Icon are display labels only.
type Habit struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Color     string        `json:"color,omitempty"`
	Icon      string        `json:"icon,omitempty"`
	Style     TrackingStyle `json:"style"`
	Unit      string        `json:"unit,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewHabit creates an occurrence-style Habit with a generated UUID.
func NewHabit(name string) *Habit {
	return &Habit{
		ID:        uuid.New(),
		Name:      name,
		Style:     StyleOccurrence,
		CreatedAt: time.Now(),
	}
}

// WithStyle sets the tracking style and its display unit.
func (h *Habit) WithStyle(style TrackingStyle, unit string) *Habit {
	h.Style = style
	h.Unit = unit
	return h
}

// WithColor sets the display color.
func (h *Habit) WithColor(color string) *Habit {
	h.Color = color
	return h
}

// WithIcon sets the display icon.
func (h *Habit) WithIcon(icon string) *Habit {
	h.Icon = icon
	return h
}

// Entry is a single log of a habit.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	HabitID   uuid.UUID `json:"habit_id"`
	Sentiment int       `json:"sentiment"`
	Value     *float64  `json:"value,omitempty"` // Duration or quantity; nil for occurrence habits
	Notes     *string   `json:"notes,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry creates an Entry for a habit. The sentiment is clamped to [1,6].
func NewEntry(habitID uuid.UUID, sentiment int) *Entry {
	now := time.Now()
	return &Entry{
		ID:        uuid.New(),
		HabitID:   habitID,
		Sentiment: ClampSentiment(sentiment),
		LoggedAt:  now,
		CreatedAt: now,
	}
}

// WithValue sets the duration or quantity value.
func (e *Entry) WithValue(v float64) *Entry {
	e.Value = &v
	return e
}

// WithNotes sets notes on the entry.
func (e *Entry) WithNotes(notes string) *Entry {
	e.Notes = &notes
	return e
}

// WithTags sets context tags on the entry.
func (e *Entry) WithTags(tags ...string) *Entry {
	e.Tags = tags
	return e
}

// WithLoggedAt sets a custom logged_at timestamp.
func (e *Entry) WithLoggedAt(t time.Time) *Entry {
	e.LoggedAt = t
	return e
}

// ABOUTME: Snapshot bundles a consistent read of all record kinds.
// ABOUTME: The analysis engine consumes snapshots and never mutates them.
package models

// Snapshot is a point-in-time copy of the record store.
type Snapshot struct {
	Habits  []*Habit
	Entries []*Entry
	Moods   []*Mood
	Health  []*HealthSample
}

// HabitByID returns a lookup table of habits keyed by ID string.
func (s *Snapshot) HabitByID() map[string]*Habit {
	byID := make(map[string]*Habit, len(s.Habits))
	for _, h := range s.Habits {
		byID[h.ID.String()] = h
	}
	return byID
}

// ABOUTME: Shared fixtures for analysis tests.
// ABOUTME: Builds a fixed-clock engine and records relative to its today.
package analysis

import (
	"time"

	"github.com/harperreed/moodlog/internal/models"
)

// testNow is a Saturday evening.
var testNow = time.Date(2025, time.June, 14, 20, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngine(Config{
		Now:      func() time.Time { return testNow },
		Location: time.UTC,
	})
}

func daysAgo(n, hour int) time.Time {
	d := testNow.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func entryAt(h *models.Habit, sentiment int, at time.Time) *models.Entry {
	return models.NewEntry(h.ID, sentiment).WithLoggedAt(at)
}

func moodAt(sentiment int, at time.Time) *models.Mood {
	return models.NewMood(sentiment).WithRecordedAt(at)
}

func today() Date {
	return DateOf(testNow, time.UTC)
}

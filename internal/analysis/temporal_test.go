// ABOUTME: Tests for daily, weekday, and hour-of-day sentiment aggregation.
// ABOUTME: Covers window edges, gap-filled trends, and calendar dates.
package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/harperreed/moodlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyMoodAveragesSingleDay(t *testing.T) {
	e := testEngine()
	h := models.NewHabit("Walk")
	entries := []*models.Entry{
		entryAt(h, 4, daysAgo(2, 8)),
		entryAt(h, 4, daysAgo(2, 13)),
	}
	moods := []*models.Mood{moodAt(4, daysAgo(2, 21))}

	got := e.DailyMoodAverages(entries, moods, 30)

	assert.Equal(t, map[Date]float64{today().AddDays(-2): 4.0}, got)
}

func TestDailyMoodAveragesWindowAndClamp(t *testing.T) {
	e := testEngine()
	h := models.NewHabit("Walk")
	entries := []*models.Entry{
		{HabitID: h.ID, Sentiment: 9, LoggedAt: daysAgo(1, 9)},  // clamps to 6
		{HabitID: h.ID, Sentiment: -4, LoggedAt: daysAgo(3, 9)}, // clamps to 1
		{HabitID: h.ID, Sentiment: 5, LoggedAt: daysAgo(31, 9)}, // outside window
		{HabitID: h.ID, Sentiment: 5, LoggedAt: daysAgo(-1, 9)}, // tomorrow
	}
	moods := []*models.Mood{moodAt(4, daysAgo(1, 10))}

	got := e.DailyMoodAverages(entries, moods, 30)

	require.Len(t, got, 2)
	assert.Equal(t, 5.0, got[today().AddDays(-1)])
	assert.Equal(t, 1.0, got[today().AddDays(-3)])
}

func TestDailyMoodAveragesWindowEdges(t *testing.T) {
	e := testEngine()
	moods := []*models.Mood{
		moodAt(3, daysAgo(7, 0)),
		moodAt(5, daysAgo(8, 23)),
		moodAt(6, testNow),
	}

	got := e.DailyMoodAverages(nil, moods, 7)

	assert.Len(t, got, 2)
	assert.Contains(t, got, today().AddDays(-7))
	assert.Contains(t, got, today())
}

func TestTrendGapFilled(t *testing.T) {
	e := testEngine()
	moods := []*models.Mood{
		moodAt(2, daysAgo(0, 9)),
		moodAt(4, daysAgo(0, 18)),
		moodAt(5, daysAgo(3, 12)),
	}

	for _, n := range []int{0, 1, 7, 30} {
		points := e.Trend(nil, moods, n)
		require.Len(t, points, n+1)
		assert.Equal(t, today().AddDays(-n), points[0].Date)
		assert.Equal(t, today(), points[n].Date)
		for i := 1; i < len(points); i++ {
			assert.Equal(t, points[i-1].Date.AddDays(1), points[i].Date)
		}
	}

	points := e.Trend(nil, moods, 7)
	last := points[7]
	require.NotNil(t, last.Average)
	assert.Equal(t, 3.0, *last.Average)
	assert.Equal(t, 2, last.Count)
	assert.Nil(t, points[6].Average)
	require.NotNil(t, points[4].Average)
	assert.Equal(t, 5.0, *points[4].Average)
}

func TestSentimentByWeekday(t *testing.T) {
	e := testEngine()
	moods := []*models.Mood{
		moodAt(6, daysAgo(0, 10)), // Saturday
		moodAt(4, daysAgo(7, 10)), // Saturday
		moodAt(2, daysAgo(1, 10)), // Friday
	}

	got := e.SentimentByWeekday(nil, moods, 30)

	assert.Equal(t, map[time.Weekday]float64{time.Saturday: 5, time.Friday: 2}, got)
}

func TestSentimentByHourOfDay(t *testing.T) {
	e := testEngine()
	moods := []*models.Mood{
		moodAt(5, daysAgo(0, 8)),
		moodAt(3, daysAgo(2, 8)),
		moodAt(1, daysAgo(1, 22)),
	}

	got := e.SentimentByHourOfDay(nil, moods, 30)

	assert.Equal(t, map[int]float64{8: 4, 22: 1}, got)
}

func TestDayBoundaryUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	e := NewEngine(Config{Now: func() time.Time { return testNow }, Location: loc})

	// 02:00 UTC on June 14 is still June 13 at UTC-5.
	moods := []*models.Mood{moodAt(3, time.Date(2025, 6, 14, 2, 0, 0, 0, time.UTC))}
	got := e.DailyMoodAverages(nil, moods, 30)

	assert.Contains(t, got, Date{2025, time.June, 13})
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(time.Monday))
	assert.Equal(t, 6, ISOWeekday(time.Saturday))
	assert.Equal(t, 7, ISOWeekday(time.Sunday))
}

func TestDateArithmetic(t *testing.T) {
	d := Date{2025, time.February, 27}

	assert.Equal(t, Date{2025, time.March, 2}, d.AddDays(3))
	assert.Equal(t, Date{2024, time.December, 31}, Date{2025, time.January, 1}.AddDays(-1))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
	assert.Equal(t, 3, d.DaysUntil(d.AddDays(3)))
	assert.Equal(t, time.Saturday, today().Weekday())
	assert.Equal(t, 165, today().YearDay())
	assert.Equal(t, Date{2025, time.June, 8}, startOfWeek(today(), time.Sunday))
	assert.Equal(t, Date{2025, time.June, 9}, startOfWeek(today(), time.Monday))
}

func TestDateText(t *testing.T) {
	b, err := json.Marshal(map[Date]float64{{2025, time.June, 1}: 4.5})
	require.NoError(t, err)
	assert.Equal(t, `{"2025-06-01":4.5}`, string(b))

	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2024-02-29")))
	assert.Equal(t, Date{2024, time.February, 29}, d)
	assert.Error(t, d.UnmarshalText([]byte("29/02/2024")))
}

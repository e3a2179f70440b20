// ABOUTME: Tests for the insight generator and each default rule.
// ABOUTME: Checks ordering, thresholds, caps, and the small-dataset fallback.
package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/harperreed/moodlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInsightsEmpty(t *testing.T) {
	e := testEngine()

	for _, snap := range []*models.Snapshot{nil, {}} {
		insights := e.GenerateInsights(snap, 30)
		require.Len(t, insights, 1)
		assert.Equal(t, "Food for Thought", insights[0].Title)
		assert.Equal(t, CategoryMilestone, insights[0].Category)
	}
}

func TestGenerateInsightsWaterScenario(t *testing.T) {
	e := testEngine()
	water, entries, moods := waterScenario()
	snap := &models.Snapshot{Habits: []*models.Habit{water}, Entries: entries, Moods: moods}

	insights := e.GenerateInsights(snap, 10)

	require.NotEmpty(t, insights)
	assert.Equal(t, "Pattern with Water", insights[0].Title)
	assert.InDelta(t, 1.0, insights[0].Strength, 1e-3)
	require.NotNil(t, insights[0].HabitID)
	assert.Equal(t, water.ID, *insights[0].HabitID)
	assert.Contains(t, insights[0].Description, "6.0 mood vs 2.0")

	for i := 1; i < len(insights); i++ {
		assert.GreaterOrEqual(t, insights[i-1].Strength, insights[i].Strength)
	}

	titles := make(map[string]bool)
	for _, in := range insights {
		titles[in.Title] = true
	}
	assert.True(t, titles["Mood Snapshot"])
	assert.True(t, titles["Most Tracked: Water"])
	assert.True(t, titles["Building Momentum"])
	assert.True(t, titles["Food for Thought"])
}

func TestDefaultRulesOrder(t *testing.T) {
	var names []string
	for _, r := range DefaultRules() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{
		"habit_correlation", "weekly_pattern", "logging_frequency", "health_correlation",
		"mood_snapshot", "most_tracked", "milestone", "wisdom",
	}, names)
}

func TestGeneratorCustomRules(t *testing.T) {
	e := testEngine()
	g := e.NewGenerator(MilestoneRule{})
	snap := &models.Snapshot{Moods: []*models.Mood{moodAt(4, daysAgo(0, 9))}}

	insights := g.Generate(snap, 30)

	require.Len(t, g.Rules(), 1)
	require.Len(t, insights, 1)
	assert.Equal(t, "You've Started", insights[0].Title)
}

func TestHabitCorrelationRuleCapsAtThree(t *testing.T) {
	e := testEngine()
	var habits []*models.Habit
	var entries []*models.Entry
	var moods []*models.Mood
	for i := 0; i < 5; i++ {
		h := models.NewHabit(fmt.Sprintf("Habit %d", i))
		habits = append(habits, h)
		for d := 0; d < 5; d++ {
			entries = append(entries, entryAt(h, 6, daysAgo(d, 8+i)))
		}
	}
	for d := 5; d < 10; d++ {
		moods = append(moods, moodAt(2, daysAgo(d, 9)))
	}

	c := e.NewContext(&models.Snapshot{Habits: habits, Entries: entries, Moods: moods}, 30)
	out := HabitCorrelationRule{}.Evaluate(c)

	assert.Len(t, out, 3)
	for _, in := range out {
		assert.Equal(t, CategoryHabitCorrelation, in.Category)
	}
}

func TestHabitCorrelationRuleThreshold(t *testing.T) {
	e := testEngine()
	c := &InsightContext{
		Engine:     e,
		WindowDays: 30,
		HabitCorrelations: []CorrelationResult{
			{HabitName: "Weak", Coefficient: Computed(0.15)},
			{HabitName: "Missing", Coefficient: InsufficientData(), SampleSize: 4},
		},
	}

	assert.Empty(t, HabitCorrelationRule{}.Evaluate(c))
}

func TestWeeklyPatternRule(t *testing.T) {
	e := testEngine()

	c := &InsightContext{Engine: e, Weekday: map[time.Weekday]float64{
		time.Saturday:  5.5,
		time.Monday:    1.5,
		time.Wednesday: 3,
	}}
	out := WeeklyPatternRule{}.Evaluate(c)
	require.Len(t, out, 1)
	assert.Equal(t, CategoryTemporalPattern, out[0].Category)
	assert.InDelta(t, 0.8, out[0].Strength, 1e-9)
	assert.Contains(t, out[0].Description, "Saturdays")
	assert.Contains(t, out[0].Description, "Mondays")

	c.Weekday = map[time.Weekday]float64{time.Saturday: 4.2, time.Monday: 4.0}
	assert.Empty(t, WeeklyPatternRule{}.Evaluate(c))

	c.Weekday = map[time.Weekday]float64{time.Saturday: 6}
	assert.Empty(t, WeeklyPatternRule{}.Evaluate(c))
}

func TestLoggingFrequencyRule(t *testing.T) {
	e := testEngine()
	h := models.NewHabit("Anything")
	var entries []*models.Entry
	for d := 0; d < 4; d++ {
		for k := 0; k <= d; k++ {
			entries = append(entries, entryAt(h, 2+d, daysAgo(3-d, 8+k)))
		}
	}

	c := e.NewContext(&models.Snapshot{Habits: []*models.Habit{h}, Entries: entries}, 30)
	out := LoggingFrequencyRule{}.Evaluate(c)

	require.Len(t, out, 1)
	assert.InDelta(t, 0.8, out[0].Strength, 1e-3)
	assert.Contains(t, out[0].Description, "better days")
}

func TestLoggingFrequencyRuleNeedsThreeDays(t *testing.T) {
	e := testEngine()
	h := models.NewHabit("Anything")
	entries := []*models.Entry{
		entryAt(h, 2, daysAgo(0, 8)),
		entryAt(h, 6, daysAgo(1, 8)),
		entryAt(h, 6, daysAgo(1, 9)),
	}

	c := e.NewContext(&models.Snapshot{Habits: []*models.Habit{h}, Entries: entries}, 30)

	assert.Empty(t, LoggingFrequencyRule{}.Evaluate(c))
}

func TestHealthCorrelationRule(t *testing.T) {
	e := testEngine()
	var samples []*models.HealthSample
	var moods []*models.Mood
	for d := 0; d < 5; d++ {
		samples = append(samples, sampleAt(models.HealthSleep, float64(5+d), d))
		moods = append(moods, moodAt(2+d, daysAgo(d, 20)))
	}

	c := e.NewContext(&models.Snapshot{Moods: moods, Health: samples}, 30)
	out := HealthCorrelationRule{}.Evaluate(c)

	require.Len(t, out, 1)
	assert.Equal(t, CategoryHealthCorrelation, out[0].Category)
	assert.Equal(t, "Sleep & Mood", out[0].Title)
	assert.InDelta(t, 1.0, out[0].Strength, 1e-3)
}

func TestMoodSnapshotRule(t *testing.T) {
	e := testEngine()
	c := e.NewContext(&models.Snapshot{Moods: []*models.Mood{
		moodAt(4, daysAgo(0, 9)),
		moodAt(6, daysAgo(2, 9)),
	}}, 30)

	out := MoodSnapshotRule{}.Evaluate(c)

	require.Len(t, out, 1)
	assert.Equal(t, SnapshotStrength, out[0].Strength)
	assert.Contains(t, out[0].Description, "5.0 (good)")
	assert.Contains(t, out[0].Description, "2 check-ins")

	assert.Empty(t, MoodSnapshotRule{}.Evaluate(e.NewContext(&models.Snapshot{}, 30)))
}

func TestMostTrackedRule(t *testing.T) {
	e := testEngine()
	a := models.NewHabit("Tea")
	b := models.NewHabit("Run")
	snap := &models.Snapshot{
		Habits: []*models.Habit{a, b},
		Entries: []*models.Entry{
			entryAt(a, 4, daysAgo(0, 8)),
			entryAt(a, 4, daysAgo(1, 8)),
			entryAt(a, 4, daysAgo(2, 8)),
			entryAt(b, 5, daysAgo(1, 18)),
		},
	}

	out := MostTrackedRule{}.Evaluate(e.NewContext(snap, 30))
	require.Len(t, out, 1)
	assert.Equal(t, "Most Tracked: Tea", out[0].Title)
	assert.Equal(t, a.ID, *out[0].HabitID)

	single := &models.Snapshot{Habits: []*models.Habit{b}, Entries: []*models.Entry{entryAt(b, 5, daysAgo(1, 18))}}
	assert.Empty(t, MostTrackedRule{}.Evaluate(e.NewContext(single, 30)))
}

func TestMilestoneBands(t *testing.T) {
	e := testEngine()
	tests := []struct {
		total    int
		want     string
		strength float64
	}{
		{0, "", 0},
		{1, "You've Started", StartedStrength},
		{5, "You've Started", StartedStrength},
		{6, "", 0},
		{9, "", 0},
		{10, "Building Momentum", MomentumStrength},
		{24, "Building Momentum", MomentumStrength},
		{25, "Rich Dataset", RichDatasetStrength},
		{400, "Rich Dataset", RichDatasetStrength},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.total), func(t *testing.T) {
			out := MilestoneRule{}.Evaluate(&InsightContext{Engine: e, TotalLogs: tt.total, WindowDays: 30})
			if tt.want == "" {
				assert.Empty(t, out)
				return
			}
			require.Len(t, out, 1)
			assert.Equal(t, tt.want, out[0].Title)
			assert.Equal(t, tt.strength, out[0].Strength)
		})
	}
}

func TestWisdomRule(t *testing.T) {
	e := testEngine()

	out := WisdomRule{}.Evaluate(&InsightContext{Engine: e, Today: today(), TotalLogs: 14})
	require.Len(t, out, 1)
	assert.Equal(t, wisdomPool[165%6], out[0].Description)
	assert.Equal(t, WisdomStrength, out[0].Strength)

	assert.Empty(t, WisdomRule{}.Evaluate(&InsightContext{Engine: e, Today: today(), TotalLogs: 15}))
	assert.Len(t, wisdomPool, 6)
}

func TestInsightContextWindowsRecords(t *testing.T) {
	e := testEngine()
	h := models.NewHabit("Tea")
	snap := &models.Snapshot{
		Habits:  []*models.Habit{h},
		Entries: []*models.Entry{entryAt(h, 4, daysAgo(0, 8)), entryAt(h, 4, daysAgo(45, 8))},
		Moods:   []*models.Mood{moodAt(3, daysAgo(60, 8))},
	}

	c := e.NewContext(snap, 30)

	assert.Len(t, c.Entries, 1)
	assert.Empty(t, c.Moods)
	assert.Equal(t, 1, c.TotalLogs)
	assert.Equal(t, h, c.Habit(h.ID))
	assert.Len(t, snap.Entries, 2, "snapshot is not mutated")
}

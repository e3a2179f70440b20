// ABOUTME: The default insight rules, one type per rule.
// ABOUTME: Each rule is independent and reads only the shared InsightContext.
package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

// Fixed strengths for informational insights.
const (
	SnapshotStrength    = 0.15
	MostTrackedStrength = 0.15
	StartedStrength     = 0.2
	MomentumStrength    = 0.25
	RichDatasetStrength = 0.3
	WisdomStrength      = 0.1
)

// DefaultRules returns the standard pipeline in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		HabitCorrelationRule{},
		WeeklyPatternRule{},
		LoggingFrequencyRule{},
		HealthCorrelationRule{},
		MoodSnapshotRule{},
		MostTrackedRule{},
		MilestoneRule{},
		WisdomRule{},
	}
}

// HabitCorrelationRule reports the strongest habit/mood correlations.
type HabitCorrelationRule struct{}

func (HabitCorrelationRule) Name() string { return "habit_correlation" }

func (HabitCorrelationRule) Evaluate(c *InsightContext) []Insight {
	th := c.Engine.Thresholds()
	var out []Insight
	for _, res := range c.HabitCorrelations {
		if len(out) >= th.MaxHabitInsights {
			break
		}
		r, ok := res.Coefficient.Value()
		if !ok || math.Abs(r) <= th.InsightMinCorrelation {
			continue
		}
		h := c.Habit(res.HabitID)
		if h == nil {
			continue
		}
		cmp := c.Engine.CompareMood(h, c.Entries, c.Moods, c.WindowDays)
		desc := fmt.Sprintf("%s (r = %.2f).", c.Engine.Describe(res), r)
		if cmp.WithHabit != nil && cmp.WithoutHabit != nil {
			desc = fmt.Sprintf("Days with %s average a %.1f mood vs %.1f without: %s", h.Name, *cmp.WithHabit, *cmp.WithoutHabit, desc)
		}
		id := h.ID
		out = append(out, Insight{
			Category:    CategoryHabitCorrelation,
			Title:       "Pattern with " + h.Name,
			Description: desc,
			Strength:    math.Abs(r),
			HabitID:     &id,
		})
	}
	return out
}

// WeeklyPatternRule compares the best and worst weekdays.
type WeeklyPatternRule struct{}

func (WeeklyPatternRule) Name() string { return "weekly_pattern" }

func (WeeklyPatternRule) Evaluate(c *InsightContext) []Insight {
	if len(c.Weekday) < 2 {
		return nil
	}
	var best, worst time.Weekday
	found := false
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		avg, ok := c.Weekday[wd]
		if !ok {
			continue
		}
		if !found {
			best, worst, found = wd, wd, true
			continue
		}
		if avg > c.Weekday[best] {
			best = wd
		}
		if avg < c.Weekday[worst] {
			worst = wd
		}
	}
	spread := c.Weekday[best] - c.Weekday[worst]
	if spread <= c.Engine.Thresholds().WeeklySpread {
		return nil
	}
	return []Insight{{
		Category: CategoryTemporalPattern,
		Title:    "Weekly Rhythm",
		Description: fmt.Sprintf("Your mood peaks on %ss (%.1f) and dips on %ss (%.1f).",
			best, c.Weekday[best], worst, c.Weekday[worst]),
		Strength: math.Min(spread/5, 1.0),
	}}
}

// LoggingFrequencyRule correlates how much is logged per day with that day's mood.
type LoggingFrequencyRule struct{}

func (LoggingFrequencyRule) Name() string { return "logging_frequency" }

func (LoggingFrequencyRule) Evaluate(c *InsightContext) []Insight {
	th := c.Engine.Thresholds()
	counts := make(map[Date]float64)
	for _, en := range c.Entries {
		counts[DateOf(en.LoggedAt, c.Engine.Location())]++
	}
	var x, y []float64
	for _, d := range sortedDates(c.DailyMood) {
		x = append(x, counts[d])
		y = append(y, c.DailyMood[d])
	}
	if len(x) < th.MinLoggingDays {
		return nil
	}
	r, ok := PearsonCorrelation(x, y).Value()
	if !ok || math.Abs(r) <= th.InsightMinCorrelation {
		return nil
	}
	desc := fmt.Sprintf("Days you log more habits tend to be better days (r = %.2f).", r)
	if r < 0 {
		desc = fmt.Sprintf("Busier logging days tend to come with lower moods (r = %.2f).", r)
	}
	return []Insight{{
		Category:    CategoryTemporalPattern,
		Title:       "Logging & Mood",
		Description: desc,
		Strength:    math.Abs(r) * th.LoggingFrequencyWeight,
	}}
}

// HealthCorrelationRule emits one insight per notable health metric.
type HealthCorrelationRule struct{}

func (HealthCorrelationRule) Name() string { return "health_correlation" }

func (HealthCorrelationRule) Evaluate(c *InsightContext) []Insight {
	var out []Insight
	for _, res := range c.HealthCorrelations {
		r, ok := res.Coefficient.Value()
		if !ok || math.Abs(r) <= c.Engine.Thresholds().InsightMinCorrelation {
			continue
		}
		out = append(out, Insight{
			Category:    CategoryHealthCorrelation,
			Title:       HealthTitle(res.Kind),
			Description: c.Engine.DescribeHealth(res),
			Strength:    math.Abs(r),
		})
	}
	return out
}

// MoodSnapshotRule summarises average mood over the window.
type MoodSnapshotRule struct{}

func (MoodSnapshotRule) Name() string { return "mood_snapshot" }

func (MoodSnapshotRule) Evaluate(c *InsightContext) []Insight {
	samples := c.Engine.samples(c.Entries, c.Moods, c.WindowDays)
	if len(samples) == 0 {
		return nil
	}
	vals := make([]float64, len(samples))
	for i, s := range samples {
		vals[i] = s.sentiment
	}
	avg := mean(vals)
	label := models.SentimentLabels[models.ClampSentiment(int(math.Round(avg)))]
	return []Insight{{
		Category: CategoryTemporalPattern,
		Title:    "Mood Snapshot",
		Description: fmt.Sprintf("Your average mood over the last %d days is %.1f (%s) across %d check-ins.",
			c.WindowDays, avg, label, len(samples)),
		Strength: SnapshotStrength,
	}}
}

// MostTrackedRule names the habit logged most often in the window.
type MostTrackedRule struct{}

func (MostTrackedRule) Name() string { return "most_tracked" }

func (MostTrackedRule) Evaluate(c *InsightContext) []Insight {
	counts := make(map[uuid.UUID]int)
	for _, en := range c.Entries {
		if c.Habit(en.HabitID) != nil {
			counts[en.HabitID]++
		}
	}
	var top *models.Habit
	topCount := 0
	for id, n := range counts {
		h := c.Habit(id)
		if n > topCount || (n == topCount && top != nil && h.Name < top.Name) {
			top, topCount = h, n
		}
	}
	if top == nil || topCount < c.Engine.Thresholds().MostTrackedMinEntries {
		return nil
	}
	id := top.ID
	return []Insight{{
		Category:    CategoryHabitCorrelation,
		Title:       "Most Tracked: " + top.Name,
		Description: fmt.Sprintf("You've logged %s %d times in the last %d days.", top.Name, topCount, c.WindowDays),
		Strength:    MostTrackedStrength,
		HabitID:     &id,
	}}
}

// MilestoneRule celebrates dataset size. Bands: 1-5, 10-24, 25+.
type MilestoneRule struct{}

func (MilestoneRule) Name() string { return "milestone" }

func (MilestoneRule) Evaluate(c *InsightContext) []Insight {
	n := c.TotalLogs
	var in Insight
	switch {
	case n >= 25:
		in = Insight{
			Title:       "Rich Dataset",
			Description: fmt.Sprintf("%d logs in the last %d days give your patterns plenty to work with.", n, c.WindowDays),
			Strength:    RichDatasetStrength,
		}
	case n >= 10:
		in = Insight{
			Title:       "Building Momentum",
			Description: fmt.Sprintf("%d logs in the last %d days. Correlations get more reliable from here.", n, c.WindowDays),
			Strength:    MomentumStrength,
		}
	case n >= 1 && n <= 5:
		in = Insight{
			Title:       "You've Started",
			Description: fmt.Sprintf("%d logs so far. Keep going and patterns will start to appear.", n),
			Strength:    StartedStrength,
		}
	default:
		return nil
	}
	in.Category = CategoryMilestone
	return []Insight{in}
}

// wisdomPool must stay at six entries; the rotation is day-of-year modulo its length.
var wisdomPool = []string{
	"Small habits, repeated daily, shape how you feel more than rare big efforts.",
	"Noticing your mood is the first step to understanding it.",
	"There are no bad logs. Every entry makes the picture clearer.",
	"Rest is a habit too. Tracking it counts.",
	"Patterns take time to surface. Consistency beats intensity.",
	"How you feel today is data, not a verdict.",
}

// WisdomRule shows a rotating encouragement while the dataset is small.
type WisdomRule struct{}

func (WisdomRule) Name() string { return "wisdom" }

func (WisdomRule) Evaluate(c *InsightContext) []Insight {
	if c.TotalLogs >= c.Engine.Thresholds().WisdomMaxLogs {
		return nil
	}
	return []Insight{{
		Category:    CategoryMilestone,
		Title:       "Food for Thought",
		Description: wisdomPool[c.Today.YearDay()%len(wisdomPool)],
		Strength:    WisdomStrength,
	}}
}

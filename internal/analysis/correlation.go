// ABOUTME: Correlation service relating habit presence to daily mood.
// ABOUTME: Ranks habits by correlation strength and bands coefficients into words.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

// CorrelationResult is the point-biserial correlation of one habit with mood.
type CorrelationResult struct {
	HabitID     uuid.UUID   `json:"habit_id"`
	HabitName   string      `json:"habit_name"`
	Coefficient Correlation `json:"coefficient"`
	// SampleSize counts logged days that also have mood data.
	SampleSize int `json:"sample_size"`
	// PairCount counts every day with mood data fed to the kernel.
	PairCount  int `json:"pair_count"`
	WindowDays int `json:"window_days"`
	// AverageMoodWhenLogged is the fallback signal when Coefficient is insufficient.
	AverageMoodWhenLogged *float64 `json:"average_mood_when_logged"`
}

// loggedDays returns the days in the window on which the habit has an entry.
func (e *Engine) loggedDays(habitID uuid.UUID, entries []*models.Entry, windowDays int) map[Date]bool {
	days := make(map[Date]bool)
	for _, en := range entries {
		if en.HabitID == habitID && e.inWindow(en.LoggedAt, windowDays) {
			days[DateOf(en.LoggedAt, e.loc)] = true
		}
	}
	return days
}

// HabitMoodCorrelation correlates "habit logged on day X" (1/0) with the
// average mood of day X across all records in the window.
func (e *Engine) HabitMoodCorrelation(habit *models.Habit, entries []*models.Entry, moods []*models.Mood, windowDays int) CorrelationResult {
	logged := e.loggedDays(habit.ID, entries, windowDays)
	daily := e.DailyMoodAverages(entries, moods, windowDays)

	var x, y, whenLogged []float64
	for _, d := range sortedDates(daily) {
		mood := daily[d]
		if logged[d] {
			x = append(x, 1)
			whenLogged = append(whenLogged, mood)
		} else {
			x = append(x, 0)
		}
		y = append(y, mood)
	}

	res := CorrelationResult{
		HabitID:     habit.ID,
		HabitName:   habit.Name,
		Coefficient: PearsonCorrelation(x, y),
		SampleSize:  len(whenLogged),
		PairCount:   len(x),
		WindowDays:  windowDays,
	}
	if len(whenLogged) > 0 {
		res.AverageMoodWhenLogged = ptr(mean(whenLogged))
	}
	return res
}

// FindMoodCorrelations computes and ranks correlations for every habit.
func (e *Engine) FindMoodCorrelations(habits []*models.Habit, entries []*models.Entry, moods []*models.Mood, windowDays int) []CorrelationResult {
	results := make([]CorrelationResult, 0, len(habits))
	for _, h := range habits {
		results = append(results, e.HabitMoodCorrelation(h, entries, moods, windowDays))
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Coefficient.Magnitude() != b.Coefficient.Magnitude() {
			return a.Coefficient.Magnitude() > b.Coefficient.Magnitude()
		}
		if a.SampleSize != b.SampleSize {
			return a.SampleSize > b.SampleSize
		}
		return a.HabitName < b.HabitName
	})
	return results
}

// MoodComparison contrasts mean mood on days with and without a habit.
type MoodComparison struct {
	HabitID      uuid.UUID `json:"habit_id"`
	WithHabit    *float64  `json:"with_habit"`
	WithoutHabit *float64  `json:"without_habit"`
	DaysWith     int       `json:"days_with"`
	DaysWithout  int       `json:"days_without"`
}

// Difference returns WithHabit - WithoutHabit when both sides exist.
func (c MoodComparison) Difference() *float64 {
	if c.WithHabit == nil || c.WithoutHabit == nil {
		return nil
	}
	return ptr(*c.WithHabit - *c.WithoutHabit)
}

// CompareMood computes the mean daily mood on days with vs. without the habit.
func (e *Engine) CompareMood(habit *models.Habit, entries []*models.Entry, moods []*models.Mood, windowDays int) MoodComparison {
	logged := e.loggedDays(habit.ID, entries, windowDays)
	var with, without []float64
	for d, mood := range e.DailyMoodAverages(entries, moods, windowDays) {
		if logged[d] {
			with = append(with, mood)
		} else {
			without = append(without, mood)
		}
	}

	c := MoodComparison{HabitID: habit.ID, DaysWith: len(with), DaysWithout: len(without)}
	if len(with) > 0 {
		c.WithHabit = ptr(mean(with))
	}
	if len(without) > 0 {
		c.WithoutHabit = ptr(mean(without))
	}
	return c
}

// StrengthBand is the verbal strength of a coefficient.
type StrengthBand string

const (
	BandStrong   StrengthBand = "strong"
	BandModerate StrengthBand = "moderate"
	BandMild     StrengthBand = "mild"
	BandWeak     StrengthBand = "weak"
)

// Band classifies |r| using these thresholds.
func (t Thresholds) Band(r float64) StrengthBand {
	a := math.Abs(r)
	switch {
	case a > t.StrongBand:
		return BandStrong
	case a > t.ModerateBand:
		return BandModerate
	case a > t.MildBand:
		return BandMild
	default:
		return BandWeak
	}
}

// Band classifies |r| using the default thresholds.
func Band(r float64) StrengthBand {
	return DefaultThresholds().Band(r)
}

// Direction maps the sign of r to its effect on mood.
func Direction(r float64) string {
	if r < 0 {
		return "lowers mood"
	}
	return "improves mood"
}

// Describe renders the strength label of a habit correlation, e.g.
// "strong · improves mood". Results without a coefficient fall back to
// "early data" when any logged day had mood data.
func (e *Engine) Describe(res CorrelationResult) string {
	if r, ok := res.Coefficient.Value(); ok {
		return fmt.Sprintf("%s · %s", e.th.Band(r), Direction(r))
	}
	if res.AverageMoodWhenLogged != nil {
		return fmt.Sprintf("early data · avg mood %.1f when logged", *res.AverageMoodWhenLogged)
	}
	return "insufficient data"
}

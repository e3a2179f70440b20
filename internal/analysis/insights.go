// ABOUTME: Insight generator running an ordered list of rules over a shared context.
// ABOUTME: Output is sorted by strength; presentation decides how many to show.
package analysis

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

// Category tags the kind of signal an insight is derived from.
type Category string

const (
	CategoryHabitCorrelation  Category = "habit_correlation"
	CategoryTemporalPattern   Category = "temporal_pattern"
	CategoryHealthCorrelation Category = "health_correlation"
	CategoryMilestone         Category = "milestone"
)

// Insight is a ranked natural-language observation.
type Insight struct {
	Category    Category   `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Strength    float64    `json:"strength"` // [0,1], ranking only
	HabitID     *uuid.UUID `json:"habit_id,omitempty"`
}

// InsightContext is the aggregated view every rule evaluates.
type InsightContext struct {
	Engine     *Engine
	Today      Date
	WindowDays int

	Habits  []*models.Habit
	Entries []*models.Entry // restricted to the window
	Moods   []*models.Mood  // restricted to the window
	Health  []*models.HealthSample

	DailyMood          map[Date]float64
	Weekday            map[time.Weekday]float64
	HabitCorrelations  []CorrelationResult // ranked
	HealthCorrelations []HealthCorrelationResult
	TotalLogs          int

	habitByID map[uuid.UUID]*models.Habit
}

// Habit returns the habit with the given ID, or nil.
func (c *InsightContext) Habit(id uuid.UUID) *models.Habit {
	return c.habitByID[id]
}

// NewContext aggregates a snapshot for rule evaluation.
func (e *Engine) NewContext(snap *models.Snapshot, windowDays int) *InsightContext {
	if snap == nil {
		snap = &models.Snapshot{}
	}
	c := &InsightContext{
		Engine:     e,
		Today:      e.Today(),
		WindowDays: windowDays,
		Habits:     snap.Habits,
		Health:     snap.Health,
		habitByID:  make(map[uuid.UUID]*models.Habit, len(snap.Habits)),
	}
	for _, h := range snap.Habits {
		c.habitByID[h.ID] = h
	}
	for _, en := range snap.Entries {
		if e.inWindow(en.LoggedAt, windowDays) {
			c.Entries = append(c.Entries, en)
		}
	}
	for _, m := range snap.Moods {
		if e.inWindow(m.RecordedAt, windowDays) {
			c.Moods = append(c.Moods, m)
		}
	}

	c.DailyMood = e.DailyMoodAverages(c.Entries, c.Moods, windowDays)
	c.Weekday = e.SentimentByWeekday(c.Entries, c.Moods, windowDays)
	c.HabitCorrelations = e.FindMoodCorrelations(c.Habits, c.Entries, c.Moods, windowDays)
	c.HealthCorrelations = e.FindHealthCorrelations(c.Health, c.Entries, c.Moods, windowDays)
	c.TotalLogs = len(c.Entries) + len(c.Moods)
	return c
}

// Rule produces zero or more insights from a context.
type Rule interface {
	Name() string
	Evaluate(c *InsightContext) []Insight
}

// Generator evaluates rules in order and ranks their output.
type Generator struct {
	engine *Engine
	rules  []Rule
}

// NewGenerator creates a Generator. With no rules, DefaultRules is used.
func (e *Engine) NewGenerator(rules ...Rule) *Generator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Generator{engine: e, rules: rules}
}

// Rules returns the rules in evaluation order.
func (g *Generator) Rules() []Rule {
	return g.rules
}

// Generate evaluates every rule against the snapshot and returns all
// emitted insights sorted by descending strength. Ties keep rule order.
func (g *Generator) Generate(snap *models.Snapshot, windowDays int) []Insight {
	c := g.engine.NewContext(snap, windowDays)
	var out []Insight
	for _, r := range g.rules {
		out = append(out, r.Evaluate(c)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Strength > out[j].Strength
	})
	return out
}

// GenerateInsights runs the default rule pipeline.
func (e *Engine) GenerateInsights(snap *models.Snapshot, windowDays int) []Insight {
	return e.NewGenerator().Generate(snap, windowDays)
}

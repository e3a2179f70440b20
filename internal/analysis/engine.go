// ABOUTME: Engine configuration and window arithmetic for mood analysis.
// ABOUTME: An Engine is immutable after construction and safe for concurrent use.
package analysis

import (
	"time"
)

// Thresholds holds the numeric cut-offs used by banding and insight rules.
type Thresholds struct {
	StrongBand   float64 // |r| above this is "strong"
	ModerateBand float64
	MildBand     float64

	InsightMinCorrelation  float64
	MaxHabitInsights       int
	WeeklySpread           float64
	LoggingFrequencyWeight float64
	MinLoggingDays         int
	MostTrackedMinEntries  int
	WisdomMaxLogs          int
}

// DefaultThresholds returns the standard thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StrongBand:             0.6,
		ModerateBand:           0.3,
		MildBand:               0.1,
		InsightMinCorrelation:  0.15,
		MaxHabitInsights:       3,
		WeeklySpread:           0.3,
		LoggingFrequencyWeight: 0.8,
		MinLoggingDays:         3,
		MostTrackedMinEntries:  2,
		WisdomMaxLogs:          15,
	}
}

// Config controls an Engine. Zero values fall back to defaults.
type Config struct {
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
	// Location defines calendar day boundaries; defaults to time.Local.
	Location *time.Location
	// WeekStart is the first column of heatmap rows. Zero value is Sunday.
	WeekStart  time.Weekday
	Thresholds Thresholds
}

// Engine computes correlations, aggregates, heatmaps and insights.
type Engine struct {
	now       func() time.Time
	loc       *time.Location
	weekStart time.Weekday
	th        Thresholds
}

// NewEngine creates an Engine from cfg.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		now:       cfg.Now,
		loc:       cfg.Location,
		weekStart: cfg.WeekStart,
		th:        cfg.Thresholds,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.th == (Thresholds{}) {
		e.th = DefaultThresholds()
	}
	return e
}

// Thresholds returns the thresholds in effect.
func (e *Engine) Thresholds() Thresholds {
	return e.th
}

// Location returns the calendar location used for day bucketing.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Today returns the current calendar date.
func (e *Engine) Today() Date {
	return DateOf(e.now(), e.loc)
}

// firstDay is the oldest calendar day covered by a window of windowDays.
func (e *Engine) firstDay(windowDays int) Date {
	return e.Today().AddDays(-max(windowDays, 0))
}

// WindowStart returns the first instant covered by a window of windowDays.
// Storage snapshots read from here.
func (e *Engine) WindowStart(windowDays int) time.Time {
	return e.firstDay(windowDays).In(e.loc)
}

// inWindow reports whether t falls within [today - windowDays, today].
func (e *Engine) inWindow(t time.Time, windowDays int) bool {
	d := DateOf(t, e.loc)
	return !d.Before(e.firstDay(windowDays)) && !e.Today().Before(d)
}

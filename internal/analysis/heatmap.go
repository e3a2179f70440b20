// ABOUTME: Heatmap grid builder for a single habit's calendar activity.
// ABOUTME: Rows are calendar weeks starting on the configured first weekday.
package analysis

import (
	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

// HeatmapCell summarises one calendar day of a habit.
type HeatmapCell struct {
	Date             Date     `json:"date"`
	Count            int      `json:"count"`
	AverageSentiment *float64 `json:"average_sentiment"`
	TotalValue       *float64 `json:"total_value,omitempty"`
}

// Heatmap is a week-aligned grid of cells. The last row may be partial.
type Heatmap struct {
	HabitID   uuid.UUID       `json:"habit_id"`
	HabitName string          `json:"habit_name"`
	Start     Date            `json:"start"`
	End       Date            `json:"end"`
	Weeks     [][]HeatmapCell `json:"weeks"`
}

// Cells returns all cells in chronological order.
func (h Heatmap) Cells() []HeatmapCell {
	var cells []HeatmapCell
	for _, w := range h.Weeks {
		cells = append(cells, w...)
	}
	return cells
}

// HeatmapStart returns the first date of a heatmap spanning weeks.
func (e *Engine) HeatmapStart(weeks int) Date {
	weeks = max(weeks, 1)
	return startOfWeek(e.Today().AddDays(-(weeks*7 - 1)), e.weekStart)
}

// BuildHeatmap lays out the habit's entries over the trailing weeks. The grid
// starts at the beginning of the calendar week containing
// today-(weeks*7-1) and runs through today. Entries of other habits are ignored.
func (e *Engine) BuildHeatmap(habit *models.Habit, entries []*models.Entry, weeks int) Heatmap {
	today := e.Today()
	start := e.HeatmapStart(weeks)

	type dayAgg struct {
		count     int
		sentiment int
		value     float64
		hasValue  bool
	}
	days := make(map[Date]*dayAgg)
	for _, en := range entries {
		if en.HabitID != habit.ID {
			continue
		}
		d := DateOf(en.LoggedAt, e.loc)
		if d.Before(start) || today.Before(d) {
			continue
		}
		agg, ok := days[d]
		if !ok {
			agg = &dayAgg{}
			days[d] = agg
		}
		agg.count++
		agg.sentiment += models.ClampSentiment(en.Sentiment)
		if en.Value != nil {
			agg.value += *en.Value
			agg.hasValue = true
		}
	}

	hm := Heatmap{HabitID: habit.ID, HabitName: habit.Name, Start: start, End: today}
	var row []HeatmapCell
	for d := start; !today.Before(d); d = d.AddDays(1) {
		cell := HeatmapCell{Date: d}
		if agg, ok := days[d]; ok {
			cell.Count = agg.count
			cell.AverageSentiment = ptr(float64(agg.sentiment) / float64(agg.count))
			if agg.hasValue && agg.value != 0 {
				cell.TotalValue = ptr(agg.value)
			}
		}
		row = append(row, cell)
		if len(row) == 7 {
			hm.Weeks = append(hm.Weeks, row)
			row = nil
		}
	}
	if len(row) > 0 {
		hm.Weeks = append(hm.Weeks, row)
	}
	return hm
}

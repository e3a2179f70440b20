// ABOUTME: JSON views of engine results returned by MCP tools and resources.
// ABOUTME: Views flatten IDs, dates, and correlations into plain JSON types.
package mcp

import (
	"github.com/harperreed/moodlog/internal/analysis"
	"github.com/harperreed/moodlog/internal/models"
)

type habitView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Style string `json:"style"`
	Unit  string `json:"unit,omitempty"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

func newHabitView(h *models.Habit) habitView {
	return habitView{
		ID:    h.ID.String()[:8],
		Name:  h.Name,
		Style: string(h.Style),
		Unit:  h.Unit,
		Color: h.Color,
		Icon:  h.Icon,
	}
}

type correlationView struct {
	Habit       string   `json:"habit"`
	HabitID     string   `json:"habit_id"`
	Coefficient *float64 `json:"coefficient"`
	Strength    string   `json:"strength"`
	Summary     string   `json:"summary"`
	SampleSize  int      `json:"sample_size"`
	PairCount   int      `json:"pair_count"`
	AvgWhenLog  *float64 `json:"avg_mood_when_logged,omitempty"`
}

func newCorrelationView(e *analysis.Engine, res analysis.CorrelationResult) correlationView {
	v := correlationView{
		Habit:      res.HabitName,
		HabitID:    res.HabitID.String()[:8],
		Summary:    e.Describe(res),
		SampleSize: res.SampleSize,
		PairCount:  res.PairCount,
		AvgWhenLog: res.AverageMoodWhenLogged,
		Strength:   "insufficient",
	}
	if r, ok := res.Coefficient.Value(); ok {
		v.Coefficient = &r
		v.Strength = string(e.Thresholds().Band(r))
	}
	return v
}

type healthCorrelationView struct {
	Kind          string   `json:"kind"`
	Title         string   `json:"title"`
	Coefficient   *float64 `json:"coefficient"`
	Summary       string   `json:"summary"`
	SampleSize    int      `json:"sample_size"`
	AverageMetric *float64 `json:"average_metric,omitempty"`
}

func newHealthCorrelationView(e *analysis.Engine, res analysis.HealthCorrelationResult) healthCorrelationView {
	v := healthCorrelationView{
		Kind:          string(res.Kind),
		Title:         analysis.HealthTitle(res.Kind),
		Summary:       e.DescribeHealth(res),
		SampleSize:    res.SampleSize,
		AverageMetric: res.AverageMetric,
	}
	if r, ok := res.Coefficient.Value(); ok {
		v.Coefficient = &r
	}
	return v
}

type heatmapCellView struct {
	Date             string   `json:"date"`
	Count            int      `json:"count"`
	AverageSentiment *float64 `json:"average_sentiment,omitempty"`
	TotalValue       *float64 `json:"total_value,omitempty"`
}

type trendPointView struct {
	Date    string   `json:"date"`
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

type insightView struct {
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Strength    float64 `json:"strength"`
	HabitID     string  `json:"habit_id,omitempty"`
}

func newInsightView(in analysis.Insight) insightView {
	v := insightView{
		Category:    string(in.Category),
		Title:       in.Title,
		Description: in.Description,
		Strength:    in.Strength,
	}
	if in.HabitID != nil {
		v.HabitID = in.HabitID.String()[:8]
	}
	return v
}

// ABOUTME: MCP tool implementations for habits, moods, and analysis.
// ABOUTME: Logging tools write through the Repository; analysis tools read a snapshot.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/moodlog/internal/models"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Create a habit to track (occurrence, duration, or quantity style)",
	}, s.handleAddHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List all tracked habits",
	}, s.handleListHabits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_habit",
		Description: "Log a habit entry with a sentiment from 1 (awful) to 6 (great)",
	}, s.handleLogHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_mood",
		Description: "Record a mood check-in from 1 (awful) to 6 (great)",
	}, s.handleLogMood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_health_sample",
		Description: "Record a health sample (sleep_hours, steps, resting_heart_rate, hrv)",
	}, s.handleAddHealthSample)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_correlations",
		Description: "Rank habits by how strongly they correlate with mood",
	}, s.handleGetCorrelations)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_health_correlations",
		Description: "Correlate sleep, steps, resting heart rate, and HRV with mood",
	}, s.handleGetHealthCorrelations)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_heatmap",
		Description: "Calendar heatmap of a habit over recent weeks",
	}, s.handleGetHeatmap)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_trend",
		Description: "Daily average sentiment for every day in the window",
	}, s.handleGetTrend)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_insights",
		Description: "Ranked natural-language insights about habits and mood",
	}, s.handleGetInsights)
}

// Tool input/output types

type addHabitInput struct {
	Name  string `json:"name" jsonschema:"Habit name, unique ignoring case"`
	Style string `json:"style,omitempty" jsonschema:"Tracking style: occurrence (default), duration, or quantity"`
	Unit  string `json:"unit,omitempty" jsonschema:"Display unit for duration or quantity habits"`
	Color string `json:"color,omitempty" jsonschema:"Display color"`
	Icon  string `json:"icon,omitempty" jsonschema:"Display icon"`
}

type habitOutput struct {
	Habit   habitView `json:"habit"`
	Message string    `json:"message"`
}

type listHabitsInput struct{}

type listHabitsOutput struct {
	Habits []habitView `json:"habits"`
}

type logHabitInput struct {
	Habit     string   `json:"habit" jsonschema:"Habit name or ID prefix"`
	Sentiment int      `json:"sentiment" jsonschema:"How it felt, 1 (awful) to 6 (great)"`
	Value     *float64 `json:"value,omitempty" jsonschema:"Duration or quantity for non-occurrence habits"`
	Notes     string   `json:"notes,omitempty" jsonschema:"Optional notes"`
	Tags      []string `json:"tags,omitempty" jsonschema:"Optional context tags"`
	LoggedAt  string   `json:"logged_at,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
}

type recordOutput struct {
	ID        string `json:"id"`
	Sentiment int    `json:"sentiment,omitempty"`
	Message   string `json:"message"`
}

type logMoodInput struct {
	Sentiment  int    `json:"sentiment" jsonschema:"Mood, 1 (awful) to 6 (great)"`
	Notes      string `json:"notes,omitempty" jsonschema:"Optional notes"`
	RecordedAt string `json:"recorded_at,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
}

type addHealthSampleInput struct {
	Kind       string  `json:"kind" jsonschema:"Metric: sleep_hours, steps, resting_heart_rate, or hrv"`
	Value      float64 `json:"value" jsonschema:"The sample value"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
}

type windowInput struct {
	Days int `json:"days,omitempty" jsonschema:"Lookback window in days (default from config)"`
}

type correlationsOutput struct {
	WindowDays   int               `json:"window_days"`
	Correlations []correlationView `json:"correlations"`
}

type healthCorrelationsOutput struct {
	WindowDays   int                     `json:"window_days"`
	Correlations []healthCorrelationView `json:"correlations"`
}

type heatmapInput struct {
	Habit string `json:"habit" jsonschema:"Habit name or ID prefix"`
	Weeks int    `json:"weeks,omitempty" jsonschema:"Number of weeks (default from config)"`
}

type heatmapOutput struct {
	Habit string              `json:"habit"`
	Start string              `json:"start"`
	End   string              `json:"end"`
	Weeks [][]heatmapCellView `json:"weeks"`
}

type trendOutput struct {
	WindowDays int              `json:"window_days"`
	Points     []trendPointView `json:"points"`
}

type insightsInput struct {
	Days  int `json:"days,omitempty" jsonschema:"Lookback window in days (default from config)"`
	Limit int `json:"limit,omitempty" jsonschema:"Max insights to return (default all)"`
}

type insightsOutput struct {
	WindowDays int           `json:"window_days"`
	Insights   []insightView `json:"insights"`
}

// parseTimestamp accepts RFC 3339 or "2006-01-02 15:04" in local time.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: use ISO 8601", s)
	}
	return t, nil
}

// Tool handlers

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, habitOutput{}, fmt.Errorf("habit name is required")
	}
	style := models.StyleOccurrence
	if input.Style != "" {
		if !models.IsValidTrackingStyle(input.Style) {
			return nil, habitOutput{}, fmt.Errorf("unknown tracking style: %s", input.Style)
		}
		style = models.TrackingStyle(input.Style)
	}

	h := models.NewHabit(name).WithStyle(style, input.Unit).WithColor(input.Color).WithIcon(input.Icon)
	if err := s.repo.CreateHabit(h); err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to create habit: %w", err)
	}
	s.logger.Debug("habit created", "id", h.ID.String()[:8], "name", h.Name, "style", h.Style)

	return nil, habitOutput{
		Habit:   newHabitView(h),
		Message: fmt.Sprintf("Added habit %s (ID: %s)", h.Name, h.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, listHabitsOutput, error) {
	habits, err := s.repo.ListHabits()
	if err != nil {
		return nil, listHabitsOutput{}, fmt.Errorf("failed to list habits: %w", err)
	}

	out := listHabitsOutput{Habits: make([]habitView, 0, len(habits))}
	for _, h := range habits {
		out.Habits = append(out.Habits, newHabitView(h))
	}
	return nil, out, nil
}

func (s *Server) handleLogHabit(ctx context.Context, req *mcp.CallToolRequest, input logHabitInput) (*mcp.CallToolResult, recordOutput, error) {
	h, err := storage.ResolveHabit(s.repo, input.Habit)
	if err != nil {
		return nil, recordOutput{}, err
	}

	e := models.NewEntry(h.ID, input.Sentiment)
	if input.Value != nil {
		e.WithValue(*input.Value)
	}
	if input.Notes != "" {
		e.WithNotes(input.Notes)
	}
	if len(input.Tags) > 0 {
		e.WithTags(input.Tags...)
	}
	if input.LoggedAt != "" {
		t, err := parseTimestamp(input.LoggedAt)
		if err != nil {
			return nil, recordOutput{}, err
		}
		e.WithLoggedAt(t)
	}

	if err := s.repo.CreateEntry(e); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to log habit: %w", err)
	}
	s.logger.Debug("entry logged", "habit", h.Name, "sentiment", e.Sentiment)

	return nil, recordOutput{
		ID:        e.ID.String()[:8],
		Sentiment: e.Sentiment,
		Message: fmt.Sprintf("Logged %s feeling %s (ID: %s)",
			h.Name, models.SentimentLabels[e.Sentiment], e.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogMood(ctx context.Context, req *mcp.CallToolRequest, input logMoodInput) (*mcp.CallToolResult, recordOutput, error) {
	m := models.NewMood(input.Sentiment)
	if input.Notes != "" {
		m.WithNotes(input.Notes)
	}
	if input.RecordedAt != "" {
		t, err := parseTimestamp(input.RecordedAt)
		if err != nil {
			return nil, recordOutput{}, err
		}
		m.WithRecordedAt(t)
	}

	if err := s.repo.CreateMood(m); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to log mood: %w", err)
	}
	s.logger.Debug("mood logged", "sentiment", m.Sentiment)

	return nil, recordOutput{
		ID:        m.ID.String()[:8],
		Sentiment: m.Sentiment,
		Message:   fmt.Sprintf("Logged mood %d (%s) (ID: %s)", m.Sentiment, models.SentimentLabels[m.Sentiment], m.ID.String()[:8]),
	}, nil
}

func (s *Server) handleAddHealthSample(ctx context.Context, req *mcp.CallToolRequest, input addHealthSampleInput) (*mcp.CallToolResult, recordOutput, error) {
	if !models.IsValidHealthMetric(input.Kind) {
		return nil, recordOutput{}, fmt.Errorf("unknown health metric: %s", input.Kind)
	}

	hs := models.NewHealthSample(models.HealthMetric(input.Kind), input.Value)
	if input.RecordedAt != "" {
		t, err := parseTimestamp(input.RecordedAt)
		if err != nil {
			return nil, recordOutput{}, err
		}
		hs.WithRecordedAt(t)
	}

	if err := s.repo.CreateHealthSample(hs); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to add health sample: %w", err)
	}

	return nil, recordOutput{
		ID:      hs.ID.String()[:8],
		Message: fmt.Sprintf("Added %s: %.2f %s (ID: %s)", hs.Kind, hs.Value, hs.Unit, hs.ID.String()[:8]),
	}, nil
}

func (s *Server) handleGetCorrelations(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, correlationsOutput, error) {
	days := s.days(input.Days)
	snap, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, correlationsOutput{}, fmt.Errorf("failed to load data: %w", err)
	}

	results := s.engine.FindMoodCorrelations(snap.Habits, snap.Entries, snap.Moods, days)
	out := correlationsOutput{WindowDays: days, Correlations: make([]correlationView, 0, len(results))}
	for _, res := range results {
		out.Correlations = append(out.Correlations, newCorrelationView(s.engine, res))
	}
	return nil, out, nil
}

func (s *Server) handleGetHealthCorrelations(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, healthCorrelationsOutput, error) {
	days := s.days(input.Days)
	snap, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, healthCorrelationsOutput{}, fmt.Errorf("failed to load data: %w", err)
	}

	results := s.engine.FindHealthCorrelations(snap.Health, snap.Entries, snap.Moods, days)
	out := healthCorrelationsOutput{WindowDays: days, Correlations: make([]healthCorrelationView, 0, len(results))}
	for _, res := range results {
		out.Correlations = append(out.Correlations, newHealthCorrelationView(s.engine, res))
	}
	return nil, out, nil
}

func (s *Server) handleGetHeatmap(ctx context.Context, req *mcp.CallToolRequest, input heatmapInput) (*mcp.CallToolResult, heatmapOutput, error) {
	h, err := storage.ResolveHabit(s.repo, input.Habit)
	if err != nil {
		return nil, heatmapOutput{}, err
	}
	weeks := input.Weeks
	if weeks <= 0 {
		weeks = s.heatmapWeeks
	}

	start := s.engine.HeatmapStart(weeks)
	snap, err := s.snapshot(ctx, start.DaysUntil(s.engine.Today()))
	if err != nil {
		return nil, heatmapOutput{}, fmt.Errorf("failed to load data: %w", err)
	}

	hm := s.engine.BuildHeatmap(h, snap.Entries, weeks)
	out := heatmapOutput{
		Habit: hm.HabitName,
		Start: hm.Start.String(),
		End:   hm.End.String(),
		Weeks: make([][]heatmapCellView, 0, len(hm.Weeks)),
	}
	for _, week := range hm.Weeks {
		row := make([]heatmapCellView, 0, len(week))
		for _, c := range week {
			row = append(row, heatmapCellView{
				Date:             c.Date.String(),
				Count:            c.Count,
				AverageSentiment: c.AverageSentiment,
				TotalValue:       c.TotalValue,
			})
		}
		out.Weeks = append(out.Weeks, row)
	}
	return nil, out, nil
}

func (s *Server) handleGetTrend(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, trendOutput, error) {
	days := s.days(input.Days)
	snap, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, trendOutput{}, fmt.Errorf("failed to load data: %w", err)
	}

	points := s.engine.Trend(snap.Entries, snap.Moods, days)
	out := trendOutput{WindowDays: days, Points: make([]trendPointView, 0, len(points))}
	for _, p := range points {
		out.Points = append(out.Points, trendPointView{Date: p.Date.String(), Average: p.Average, Count: p.Count})
	}
	return nil, out, nil
}

func (s *Server) handleGetInsights(ctx context.Context, req *mcp.CallToolRequest, input insightsInput) (*mcp.CallToolResult, insightsOutput, error) {
	days := s.days(input.Days)
	insights, err := s.insights(ctx, days)
	if err != nil {
		return nil, insightsOutput{}, err
	}
	if input.Limit > 0 && len(insights) > input.Limit {
		insights = insights[:input.Limit]
	}
	return nil, insightsOutput{WindowDays: days, Insights: insights}, nil
}

// insights generates ranked insight views for a window.
func (s *Server) insights(ctx context.Context, days int) ([]insightView, error) {
	snap, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	insights := s.engine.GenerateInsights(snap, days)
	views := make([]insightView, 0, len(insights))
	for _, in := range insights {
		views = append(views, newInsightView(in))
	}
	return views, nil
}

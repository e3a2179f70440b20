// ABOUTME: MCP resource implementations for moodlog.
// ABOUTME: Provides moodlog://today, moodlog://insights, and moodlog://correlations resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/moodlog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// moodlog://today - Everything logged since local midnight
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "moodlog://today",
		Name:        "Today's Log",
		Description: "Habit entries and mood check-ins recorded today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// moodlog://insights - Ranked insights over the default window
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "moodlog://insights",
		Name:        "Insights",
		Description: "Ranked insights over the default lookback window",
		MIMEType:    "application/json",
	}, s.handleInsightsResource)

	// moodlog://correlations - Habit and health correlations over the default window
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "moodlog://correlations",
		Name:        "Correlations",
		Description: "Habit-mood and health-mood correlations over the default lookback window",
		MIMEType:    "application/json",
	}, s.handleCorrelationsResource)
}

type entryView struct {
	ID        string   `json:"id"`
	Habit     string   `json:"habit"`
	Sentiment int      `json:"sentiment"`
	Value     *float64 `json:"value,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	LoggedAt  string   `json:"logged_at"`
}

type moodView struct {
	ID         string `json:"id"`
	Sentiment  int    `json:"sentiment"`
	Label      string `json:"label"`
	Notes      string `json:"notes,omitempty"`
	RecordedAt string `json:"recorded_at"`
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.engine.Today()
	snap, err := s.snapshot(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	names := snap.HabitByID()

	entries := make([]entryView, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		v := entryView{
			ID:        e.ID.String()[:8],
			Sentiment: e.Sentiment,
			Value:     e.Value,
			Tags:      e.Tags,
			LoggedAt:  e.LoggedAt.Format(time.RFC3339),
		}
		if h, ok := names[e.HabitID.String()]; ok {
			v.Habit = h.Name
		}
		if e.Notes != nil {
			v.Notes = *e.Notes
		}
		entries = append(entries, v)
	}

	moods := make([]moodView, 0, len(snap.Moods))
	for _, m := range snap.Moods {
		moods = append(moods, newMoodView(m))
	}

	result := map[string]interface{}{
		"date":    today.String(),
		"entries": entries,
		"moods":   moods,
		"counts": map[string]int{
			"entries": len(entries),
			"moods":   len(moods),
		},
	}
	return jsonResource("moodlog://today", result)
}

func newMoodView(m *models.Mood) moodView {
	v := moodView{
		ID:         m.ID.String()[:8],
		Sentiment:  m.Sentiment,
		Label:      models.SentimentLabels[m.Sentiment],
		RecordedAt: m.RecordedAt.Format(time.RFC3339),
	}
	if m.Notes != nil {
		v.Notes = *m.Notes
	}
	return v
}

func (s *Server) handleInsightsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	insights, err := s.insights(ctx, s.windowDays)
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"window_days":  s.windowDays,
		"insights":     insights,
	}
	return jsonResource("moodlog://insights", result)
}

func (s *Server) handleCorrelationsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap, err := s.snapshot(ctx, s.windowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	habits := make([]correlationView, 0, len(snap.Habits))
	for _, res := range s.engine.FindMoodCorrelations(snap.Habits, snap.Entries, snap.Moods, s.windowDays) {
		habits = append(habits, newCorrelationView(s.engine, res))
	}
	health := make([]healthCorrelationView, 0, len(models.AllHealthMetrics))
	for _, res := range s.engine.FindHealthCorrelations(snap.Health, snap.Entries, snap.Moods, s.windowDays) {
		health = append(health, newHealthCorrelationView(s.engine, res))
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"window_days":  s.windowDays,
		"habits":       habits,
		"health":       health,
	}
	return jsonResource("moodlog://correlations", result)
}

// ABOUTME: Export and import functionality for moodlog data.
// ABOUTME: Supports JSON (restorable), YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/moodlog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for moodlog data.
type ExportData struct {
	Version    string                 `json:"version" yaml:"version"`
	ExportedAt time.Time              `json:"exported_at" yaml:"exported_at"`
	Tool       string                 `json:"tool" yaml:"tool"`
	Habits     []*models.Habit        `json:"habits" yaml:"habits"`
	Entries    []*models.Entry        `json:"entries" yaml:"entries"`
	Moods      []*models.Mood         `json:"moods" yaml:"moods"`
	Health     []*models.HealthSample `json:"health" yaml:"health"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return CollectExportData(d)
}

// ImportData imports data from an export file. Habits are created before
// the entries that reference them.
func (d *DB) ImportData(data *ExportData) error {
	return ApplyImportData(d, data)
}

// CollectExportData gathers every record from repo into an ExportData.
func CollectExportData(repo Repository) (*ExportData, error) {
	habits, err := repo.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	entries, err := repo.ListEntries(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	moods, err := repo.ListMoods(0)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	health, err := repo.ListHealthSamples(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list health samples: %w", err)
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "moodlog",
		Habits:     habits,
		Entries:    entries,
		Moods:      moods,
		Health:     health,
	}, nil
}

// ApplyImportData writes every record of data into repo, habits first.
func ApplyImportData(repo Repository, data *ExportData) error {
	for _, h := range data.Habits {
		if err := repo.CreateHabit(h); err != nil {
			return fmt.Errorf("import habit: %w", err)
		}
	}
	for _, e := range data.Entries {
		if err := repo.CreateEntry(e); err != nil {
			return fmt.Errorf("import entry: %w", err)
		}
	}
	for _, m := range data.Moods {
		if err := repo.CreateMood(m); err != nil {
			return fmt.Errorf("import mood: %w", err)
		}
	}
	for _, s := range data.Health {
		if err := repo.CreateHealthSample(s); err != nil {
			return fmt.Errorf("import health sample: %w", err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if err := repo.ImportData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

type yamlHabit struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Style   string      `yaml:"style"`
	Unit    string      `yaml:"unit,omitempty"`
	Entries []yamlEntry `yaml:"entries,omitempty"`
}

type yamlEntry struct {
	ID        string   `yaml:"id"`
	Sentiment int      `yaml:"sentiment"`
	Value     *float64 `yaml:"value,omitempty"`
	Notes     string   `yaml:"notes,omitempty"`
	Tags      []string `yaml:"tags,omitempty"`
	LoggedAt  string   `yaml:"logged_at"`
}

type yamlMood struct {
	ID         string `yaml:"id"`
	Sentiment  int    `yaml:"sentiment"`
	Label      string `yaml:"label"`
	Notes      string `yaml:"notes,omitempty"`
	RecordedAt string `yaml:"recorded_at"`
}

type yamlSample struct {
	ID         string  `yaml:"id"`
	Value      float64 `yaml:"value"`
	Unit       string  `yaml:"unit"`
	RecordedAt string  `yaml:"recorded_at"`
}

// ExportYAML exports all data as YAML with entries nested under their
// habit and health samples grouped by kind.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                  `yaml:"version"`
		ExportedAt string                  `yaml:"exported_at"`
		Tool       string                  `yaml:"tool"`
		Habits     []yamlHabit             `yaml:"habits"`
		Moods      []yamlMood              `yaml:"moods"`
		Health     map[string][]yamlSample `yaml:"health"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Habits:     make([]yamlHabit, 0, len(data.Habits)),
		Moods:      make([]yamlMood, 0, len(data.Moods)),
		Health:     make(map[string][]yamlSample),
	}

	index := make(map[string]int, len(data.Habits))
	for i, h := range data.Habits {
		index[h.ID.String()] = i
		yamlData.Habits = append(yamlData.Habits, yamlHabit{
			ID:    shortID(h.ID.String()),
			Name:  h.Name,
			Style: string(h.Style),
			Unit:  h.Unit,
		})
	}

	for _, e := range data.Entries {
		i, ok := index[e.HabitID.String()]
		if !ok {
			continue
		}
		ye := yamlEntry{
			ID:        shortID(e.ID.String()),
			Sentiment: e.Sentiment,
			Value:     e.Value,
			Tags:      e.Tags,
			LoggedAt:  e.LoggedAt.Format(time.RFC3339),
		}
		if e.Notes != nil {
			ye.Notes = *e.Notes
		}
		yamlData.Habits[i].Entries = append(yamlData.Habits[i].Entries, ye)
	}

	for _, m := range data.Moods {
		ym := yamlMood{
			ID:         shortID(m.ID.String()),
			Sentiment:  m.Sentiment,
			Label:      models.SentimentLabels[models.ClampSentiment(m.Sentiment)],
			RecordedAt: m.RecordedAt.Format(time.RFC3339),
		}
		if m.Notes != nil {
			ym.Notes = *m.Notes
		}
		yamlData.Moods = append(yamlData.Moods, ym)
	}

	for _, s := range data.Health {
		kind := string(s.Kind)
		yamlData.Health[kind] = append(yamlData.Health[kind], yamlSample{
			ID:         shortID(s.ID.String()),
			Value:      s.Value,
			Unit:       s.Unit,
			RecordedAt: s.RecordedAt.Format(time.RFC3339),
		})
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown exports data as Markdown tables. When since is non-nil only
// records at or after it are included.
func ExportMarkdown(repo Repository, since *time.Time) (string, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return "", err
	}

	keep := func(t time.Time) bool {
		return since == nil || !t.Before(*since)
	}
	byID := make(map[string]*models.Habit, len(data.Habits))
	for _, h := range data.Habits {
		byID[h.ID.String()] = h
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Moodlog Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(data.Habits) > 0 {
		sb.WriteString("## Habits\n\n")
		sb.WriteString("| Name | Style | Unit |\n")
		sb.WriteString("|------|-------|------|\n")
		for _, h := range data.Habits {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", h.Name, h.Style, h.Unit))
		}
		sb.WriteString("\n")
	}

	var entries []*models.Entry
	for _, e := range data.Entries {
		if keep(e.LoggedAt) {
			entries = append(entries, e)
		}
	}
	if len(entries) > 0 {
		sb.WriteString("## Entries\n\n")
		sb.WriteString("| Date | Habit | Sentiment | Value | Notes |\n")
		sb.WriteString("|------|-------|-----------|-------|-------|\n")
		for _, e := range entries {
			name := e.HabitID.String()[:8]
			if h, ok := byID[e.HabitID.String()]; ok {
				name = h.Name
			}
			value := ""
			if e.Value != nil {
				value = fmt.Sprintf("%.2f", *e.Value)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				e.LoggedAt.Local().Format("2006-01-02 15:04"),
				name, sentimentCell(e.Sentiment), value, deref(e.Notes)))
		}
		sb.WriteString("\n")
	}

	var moods []*models.Mood
	for _, m := range data.Moods {
		if keep(m.RecordedAt) {
			moods = append(moods, m)
		}
	}
	if len(moods) > 0 {
		sb.WriteString("## Moods\n\n")
		sb.WriteString("| Date | Sentiment | Notes |\n")
		sb.WriteString("|------|-----------|-------|\n")
		for _, m := range moods {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				m.RecordedAt.Local().Format("2006-01-02 15:04"),
				sentimentCell(m.Sentiment), deref(m.Notes)))
		}
		sb.WriteString("\n")
	}

	grouped := make(map[models.HealthMetric][]*models.HealthSample)
	for _, s := range data.Health {
		if keep(s.RecordedAt) {
			grouped[s.Kind] = append(grouped[s.Kind], s)
		}
	}
	var kinds []models.HealthMetric
	for k := range grouped {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return string(kinds[i]) < string(kinds[j])
	})
	for _, k := range kinds {
		sb.WriteString(fmt.Sprintf("## %s\n\n", k))
		sb.WriteString("| Date | Value |\n")
		sb.WriteString("|------|-------|\n")
		for _, s := range grouped[k] {
			sb.WriteString(fmt.Sprintf("| %s | %.2f %s |\n",
				s.RecordedAt.Local().Format("2006-01-02 15:04"), s.Value, s.Unit))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func sentimentCell(s int) string {
	s = models.ClampSentiment(s)
	return fmt.Sprintf("%d (%s)", s, models.SentimentLabels[s])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

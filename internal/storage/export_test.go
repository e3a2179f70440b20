// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON round trip plus YAML and Markdown layouts.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/moodlog/internal/models"
	"gopkg.in/yaml.v3"
)

func seedExportData(t *testing.T, db *DB) *models.Habit {
	t.Helper()
	h := mustCreateHabit(t, db, "Water")
	if err := db.CreateEntry(models.NewEntry(h.ID, 5).WithValue(2).WithNotes("two glasses").WithTags("work")); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if err := db.CreateMood(models.NewMood(4).WithNotes("steady")); err != nil {
		t.Fatalf("CreateMood failed: %v", err)
	}
	if err := db.CreateHealthSample(models.NewHealthSample(models.HealthSleep, 7)); err != nil {
		t.Fatalf("CreateHealthSample failed: %v", err)
	}
	return h
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if export.Version != ExportVersion {
		t.Errorf("Expected version %s, got %s", ExportVersion, export.Version)
	}
	if export.Tool != "moodlog" {
		t.Errorf("Expected tool moodlog, got %s", export.Tool)
	}
	if len(export.Habits) != 1 || len(export.Entries) != 1 || len(export.Moods) != 1 || len(export.Health) != 1 {
		t.Errorf("unexpected counts: %d habits, %d entries, %d moods, %d health",
			len(export.Habits), len(export.Entries), len(export.Moods), len(export.Health))
	}
	if !strings.Contains(string(data), `"habit_id"`) {
		t.Error("expected snake_case JSON field names")
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	h := seedExportData(t, src)

	raw, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	imported, err := ImportJSON(dst, raw)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if len(imported.Entries) != 1 {
		t.Errorf("Expected 1 imported entry, got %d", len(imported.Entries))
	}

	got, err := dst.GetHabitByName("water")
	if err != nil {
		t.Fatalf("GetHabitByName failed: %v", err)
	}
	if got.ID != h.ID {
		t.Errorf("habit ID not preserved: got %v, want %v", got.ID, h.ID)
	}

	entries, _ := dst.ListEntries(&h.ID, 0)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Value == nil || *entries[0].Value != 2 {
		t.Errorf("entry value not preserved: %v", entries[0].Value)
	}
	if len(entries[0].Tags) != 1 || entries[0].Tags[0] != "work" {
		t.Errorf("entry tags not preserved: %v", entries[0].Tags)
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	if _, err := ImportJSON(db, []byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}

	habits, ok := parsed["habits"].([]any)
	if !ok || len(habits) != 1 {
		t.Fatalf("Expected 1 habit in YAML, got %v", parsed["habits"])
	}
	habit := habits[0].(map[string]any)
	entries, ok := habit["entries"].([]any)
	if !ok || len(entries) != 1 {
		t.Errorf("Expected entries nested under habit, got %v", habit["entries"])
	}

	health, ok := parsed["health"].(map[string]any)
	if !ok {
		t.Fatalf("Expected health map, got %T", parsed["health"])
	}
	if _, ok := health["sleep_hours"]; !ok {
		t.Error("Expected sleep_hours group in YAML health section")
	}

	if !strings.Contains(string(data), "label: okay") {
		t.Error("Expected mood label in YAML")
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	md, err := ExportMarkdown(db, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Moodlog Export",
		"## Habits",
		"| Water | occurrence |",
		"## Entries",
		"5 (good)",
		"two glasses",
		"## Moods",
		"4 (okay)",
		"## sleep_hours",
		"7.00 hours",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestExportMarkdownSince(t *testing.T) {
	db := setupTestDB(t)
	h := mustCreateHabit(t, db, "Read")
	_ = db.CreateEntry(models.NewEntry(h.ID, 2).WithLoggedAt(time.Now().AddDate(0, 0, -10)).WithNotes("old"))
	_ = db.CreateEntry(models.NewEntry(h.ID, 6).WithNotes("new"))

	since := time.Now().AddDate(0, 0, -1)
	md, err := ExportMarkdown(db, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if strings.Contains(md, "| old |") {
		t.Error("Expected old entry to be filtered out")
	}
	if !strings.Contains(md, "| new |") {
		t.Error("Expected new entry in output")
	}
	if strings.Contains(md, "## Moods") {
		t.Error("Expected no moods section without moods")
	}
}

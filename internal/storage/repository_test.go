// ABOUTME: Tests for the SQLite Repository implementation.
// ABOUTME: Verifies CRUD, prefix resolution, cascade delete, and snapshots.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/moodlog/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "moodlog-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := Open(filepath.Join(tmpDir, DBFileName))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func mustCreateHabit(t *testing.T, db *DB, name string) *models.Habit {
	t.Helper()
	h := models.NewHabit(name)
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	return h
}

func TestCreateAndGetHabit(t *testing.T) {
	db := setupTestDB(t)

	h := models.NewHabit("Meditate").WithStyle(models.StyleDuration, "min").WithColor("#88c0d0").WithIcon("🧘")
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	got, err := db.GetHabit(h.ID.String())
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != "Meditate" || got.Style != models.StyleDuration || got.Unit != "min" {
		t.Errorf("unexpected habit: %+v", got)
	}
	if got.Color != "#88c0d0" || got.Icon != "🧘" {
		t.Errorf("labels not round-tripped: %+v", got)
	}

	byPrefix, err := db.GetHabit(h.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetHabit by prefix failed: %v", err)
	}
	if byPrefix.ID != h.ID {
		t.Errorf("ID mismatch: got %v, want %v", byPrefix.ID, h.ID)
	}
}

func TestGetHabitByNameIgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	h := mustCreateHabit(t, db, "Water")

	got, err := db.GetHabitByName("wATer")
	if err != nil {
		t.Fatalf("GetHabitByName failed: %v", err)
	}
	if got.ID != h.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, h.ID)
	}

	if _, err := db.GetHabitByName("coffee"); !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestHabitNamesUnique(t *testing.T) {
	db := setupTestDB(t)
	mustCreateHabit(t, db, "Run")

	if err := db.CreateHabit(models.NewHabit("run")); err == nil {
		t.Error("expected duplicate habit name to fail")
	}
}

func TestListHabitsSortedByName(t *testing.T) {
	db := setupTestDB(t)
	for _, name := range []string{"Yoga", "Alcohol", "Reading"} {
		mustCreateHabit(t, db, name)
	}

	habits, err := db.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	var names []string
	for _, h := range habits {
		names = append(names, h.Name)
	}
	if got := strings.Join(names, ","); got != "Alcohol,Reading,Yoga" {
		t.Errorf("ListHabits order = %s", got)
	}
}

func TestAmbiguousPrefix(t *testing.T) {
	db := setupTestDB(t)

	h1 := models.NewHabit("One")
	h1.ID = uuid.MustParse("abcd1234-0000-4000-8000-000000000001")
	h2 := models.NewHabit("Two")
	h2.ID = uuid.MustParse("abcd1234-0000-4000-8000-000000000002")
	for _, h := range []*models.Habit{h1, h2} {
		if err := db.CreateHabit(h); err != nil {
			t.Fatalf("CreateHabit failed: %v", err)
		}
	}

	_, err := db.GetHabit("abcd")
	if !IsAmbiguous(err) {
		t.Fatalf("expected ambiguous prefix error, got %v", err)
	}

	if _, err := db.GetHabit("ffff"); !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreateAndListEntries(t *testing.T) {
	db := setupTestDB(t)
	water := mustCreateHabit(t, db, "Water")
	run := mustCreateHabit(t, db, "Run")

	now := time.Now()
	e1 := models.NewEntry(water.ID, 5).WithLoggedAt(now.Add(-2 * time.Hour)).WithValue(0.5).WithNotes("glass").WithTags("home", "morning")
	e2 := models.NewEntry(water.ID, 4).WithLoggedAt(now.Add(-1 * time.Hour))
	e3 := models.NewEntry(run.ID, 6).WithLoggedAt(now)
	for _, e := range []*models.Entry{e1, e2, e3} {
		if err := db.CreateEntry(e); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	all, err := db.ListEntries(nil, 0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	if all[0].ID != e3.ID {
		t.Errorf("Expected most recent first, got %v", all[0].ID)
	}

	waterEntries, err := db.ListEntries(&water.ID, 0)
	if err != nil {
		t.Fatalf("ListEntries by habit failed: %v", err)
	}
	if len(waterEntries) != 2 {
		t.Errorf("Expected 2 water entries, got %d", len(waterEntries))
	}

	limited, err := db.ListEntries(nil, 1)
	if err != nil {
		t.Fatalf("ListEntries with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 entry with limit, got %d", len(limited))
	}

	got, err := db.GetEntry(e1.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Value == nil || *got.Value != 0.5 {
		t.Errorf("Value mismatch: got %v", got.Value)
	}
	if got.Notes == nil || *got.Notes != "glass" {
		t.Errorf("Notes mismatch: got %v", got.Notes)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "home" || got.Tags[1] != "morning" {
		t.Errorf("Tags mismatch: got %v", got.Tags)
	}
	if !got.LoggedAt.Equal(e1.LoggedAt.Truncate(time.Second)) {
		t.Errorf("LoggedAt mismatch: got %v, want %v", got.LoggedAt, e1.LoggedAt)
	}
}

func TestCreateEntryClampsSentiment(t *testing.T) {
	db := setupTestDB(t)
	h := mustCreateHabit(t, db, "Coffee")

	e := models.NewEntry(h.ID, 3)
	e.Sentiment = 42
	if err := db.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	got, err := db.GetEntry(e.ID.String())
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Sentiment != models.MaxSentiment {
		t.Errorf("Sentiment = %d, want %d", got.Sentiment, models.MaxSentiment)
	}
}

func TestDeleteHabitCascadesEntries(t *testing.T) {
	db := setupTestDB(t)
	h := mustCreateHabit(t, db, "Snooze")
	if err := db.CreateEntry(models.NewEntry(h.ID, 2)); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	if err := db.DeleteHabit(h.ID.String()[:8]); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	entries, err := db.ListEntries(nil, 0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected entries to be deleted, got %d", len(entries))
	}

	if err := db.DeleteHabit(h.ID.String()); err == nil {
		t.Error("expected deleting a missing habit to fail")
	}
}

func TestMoodCRUD(t *testing.T) {
	db := setupTestDB(t)

	m1 := models.NewMood(2).WithRecordedAt(time.Now().Add(-time.Hour))
	m2 := models.NewMood(5).WithNotes("sunny")
	for _, m := range []*models.Mood{m1, m2} {
		if err := db.CreateMood(m); err != nil {
			t.Fatalf("CreateMood failed: %v", err)
		}
	}

	moods, err := db.ListMoods(0)
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if len(moods) != 2 || moods[0].ID != m2.ID {
		t.Fatalf("ListMoods returned %d moods, first %v", len(moods), moods[0].ID)
	}
	if moods[0].Notes == nil || *moods[0].Notes != "sunny" {
		t.Errorf("Notes mismatch: got %v", moods[0].Notes)
	}

	if err := db.DeleteMood(m1.ID.String()[:8]); err != nil {
		t.Fatalf("DeleteMood failed: %v", err)
	}
	if _, err := db.GetMood(m1.ID.String()); err == nil {
		t.Error("expected deleted mood to be gone")
	}
}

func TestHealthSampleCRUD(t *testing.T) {
	db := setupTestDB(t)

	sleep := models.NewHealthSample(models.HealthSleep, 7.5)
	steps := models.NewHealthSample(models.HealthSteps, 9000)
	for _, s := range []*models.HealthSample{sleep, steps} {
		if err := db.CreateHealthSample(s); err != nil {
			t.Fatalf("CreateHealthSample failed: %v", err)
		}
	}

	kind := models.HealthSleep
	got, err := db.ListHealthSamples(&kind, 0)
	if err != nil {
		t.Fatalf("ListHealthSamples failed: %v", err)
	}
	if len(got) != 1 || got[0].Value != 7.5 || got[0].Unit != "hours" {
		t.Fatalf("unexpected sleep samples: %+v", got)
	}

	if err := db.DeleteHealthSample(steps.ID.String()[:8]); err != nil {
		t.Fatalf("DeleteHealthSample failed: %v", err)
	}
	all, _ := db.ListHealthSamples(nil, 0)
	if len(all) != 1 {
		t.Errorf("Expected 1 sample after delete, got %d", len(all))
	}
}

func TestSnapshotFiltersBySince(t *testing.T) {
	db := setupTestDB(t)
	h := mustCreateHabit(t, db, "Walk")

	now := time.Now()
	old := now.AddDate(0, 0, -40)
	since := now.AddDate(0, 0, -30)

	_ = db.CreateEntry(models.NewEntry(h.ID, 4).WithLoggedAt(old))
	_ = db.CreateEntry(models.NewEntry(h.ID, 5).WithLoggedAt(now.Add(-2 * time.Hour)))
	_ = db.CreateEntry(models.NewEntry(h.ID, 6).WithLoggedAt(now.Add(-time.Hour)))
	_ = db.CreateMood(models.NewMood(3).WithRecordedAt(old))
	_ = db.CreateMood(models.NewMood(4))
	_ = db.CreateHealthSample(models.NewHealthSample(models.HealthHRV, 55).WithRecordedAt(old))
	_ = db.CreateHealthSample(models.NewHealthSample(models.HealthHRV, 60))

	snap, err := db.Snapshot(context.Background(), since)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if len(snap.Habits) != 1 {
		t.Errorf("Expected 1 habit, got %d", len(snap.Habits))
	}
	if len(snap.Entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(snap.Entries))
	}
	if len(snap.Entries) == 2 && snap.Entries[0].Sentiment != 5 {
		t.Errorf("Expected oldest entry first, got sentiment %d", snap.Entries[0].Sentiment)
	}
	if len(snap.Moods) != 1 {
		t.Errorf("Expected 1 mood, got %d", len(snap.Moods))
	}
	if len(snap.Health) != 1 {
		t.Errorf("Expected 1 health sample, got %d", len(snap.Health))
	}
}

func TestSnapshotCanceledContext(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := db.Snapshot(ctx, time.Now()); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestResolveHabit(t *testing.T) {
	db := setupTestDB(t)
	h := mustCreateHabit(t, db, "Stretch")

	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"by name", "stretch", false},
		{"by name with spaces", "  Stretch ", false},
		{"by prefix", h.ID.String()[:8], false},
		{"unknown", "juggling", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveHabit(db, tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveHabit(%q) failed: %v", tt.ref, err)
			}
			if got.ID != h.ID {
				t.Errorf("ID mismatch: got %v, want %v", got.ID, h.ID)
			}
		})
	}
}

func TestDeleteRecord(t *testing.T) {
	db := setupTestDB(t)
	h := mustCreateHabit(t, db, "Tea")
	e := models.NewEntry(h.ID, 4)
	m := models.NewMood(4)
	s := models.NewHealthSample(models.HealthSteps, 1200)
	_ = db.CreateEntry(e)
	_ = db.CreateMood(m)
	_ = db.CreateHealthSample(s)

	for _, tc := range []struct {
		id   string
		kind string
	}{
		{e.ID.String()[:8], "entry"},
		{m.ID.String()[:8], "mood"},
		{s.ID.String()[:8], "health sample"},
	} {
		kind, err := DeleteRecord(db, tc.id)
		if err != nil {
			t.Fatalf("DeleteRecord(%s) failed: %v", tc.id, err)
		}
		if kind != tc.kind {
			t.Errorf("DeleteRecord(%s) kind = %q, want %q", tc.id, kind, tc.kind)
		}
	}

	if _, err := DeleteRecord(db, e.ID.String()); !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

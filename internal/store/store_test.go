package store

import (
	"path/filepath"
	"testing"
	"time"

	"aurum-cli/internal/model"
)

func mustLoad(t *testing.T, s Store) *DB {
	t.Helper()
	db, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return db
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	due := time.Date(2026, 4, 1, 23, 59, 59, 0, time.UTC)
	taskID := "task-aaaa1111"
	db := &DB{
		Version: 1,
		Context: model.HierarchyContext{PillarID: "pill-one", AreaID: "area-one"},
		Pillars: []model.Pillar{
			{ID: "pill-one", Name: "Health", Icon: "💪", Color: "#22C55E", SortOrder: 1},
			{ID: "pill-two", Name: "Career", SortOrder: 2},
		},
		Areas: []model.Area{
			{ID: "area-one", PillarID: "pill-one", Name: "Fitness", SortOrder: 1},
		},
		Projects: []model.Project{
			{ID: "proj-one", AreaID: "area-one", Name: "Marathon", Status: model.ProjectActive, Priority: model.PriorityHigh, DueDate: &due},
		},
		Tasks: []model.Task{
			{ID: taskID, ProjectID: "proj-one", Name: "Long run", Status: model.TaskTodo, Priority: model.PriorityMedium, Tags: []string{"run", "gear"}},
		},
		Captures: []model.CaptureItem{
			{ID: "cap-one", Content: "Buy shoes", Kind: model.CaptureTodo, State: model.CaptureConverted, TaskID: &taskID, CapturedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		},
		Journal: []model.JournalEntry{
			{ID: "jour-one", Title: "First run", Content: "Felt good.", Mood: model.MoodOptimistic, CreatedAt: time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC)},
		},
	}
	if err := s.Save(db); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := mustLoad(t, s)
	if got.Version != 1 {
		t.Fatalf("version = %d, want 1", got.Version)
	}
	if got.Context != db.Context {
		t.Fatalf("context = %+v, want %+v", got.Context, db.Context)
	}
	if len(got.Pillars) != 2 || got.Pillars[0].ID != "pill-one" || got.Pillars[1].ID != "pill-two" {
		t.Fatalf("pillars = %+v", got.Pillars)
	}
	if got.Pillars[0].Icon != "💪" || got.Pillars[0].Color != "#22C55E" {
		t.Fatalf("pillar decoration lost: %+v", got.Pillars[0])
	}
	if len(got.Projects) != 1 {
		t.Fatalf("projects = %+v", got.Projects)
	}
	p := got.Projects[0]
	if p.DueDate == nil || !p.DueDate.Equal(due) {
		t.Fatalf("project due = %v, want %v", p.DueDate, due)
	}
	if len(got.Tasks) != 1 || len(got.Tasks[0].Tags) != 2 {
		t.Fatalf("tasks = %+v", got.Tasks)
	}
	if len(got.Captures) != 1 {
		t.Fatalf("captures = %+v", got.Captures)
	}
	c := got.Captures[0]
	if c.State != model.CaptureConverted || c.TaskID == nil || *c.TaskID != taskID {
		t.Fatalf("capture back-reference lost: %+v", c)
	}
	if len(got.Journal) != 1 || got.Journal[0].Mood != model.MoodOptimistic {
		t.Fatalf("journal = %+v", got.Journal)
	}
}

func TestLoadEmptyStoreHasNonNilSlices(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	db := mustLoad(t, s)
	if db.Pillars == nil || db.Areas == nil || db.Projects == nil || db.Tasks == nil || db.Captures == nil || db.Journal == nil {
		t.Fatalf("fresh load returned nil slices: %+v", db)
	}
	if db.Version != 1 {
		t.Fatalf("fresh version = %d, want 1", db.Version)
	}
}

func TestSaveReplacesPreviousState(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	if err := s.Save(&DB{Version: 1, Pillars: []model.Pillar{{ID: "pill-gone", Name: "Old"}}}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(&DB{Version: 1, Pillars: []model.Pillar{{ID: "pill-kept", Name: "New"}}}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	db := mustLoad(t, s)
	if len(db.Pillars) != 1 || db.Pillars[0].ID != "pill-kept" {
		t.Fatalf("pillars after replace = %+v", db.Pillars)
	}
}

func TestLocalDirHandlesAurumSuffix(t *testing.T) {
	base := t.TempDir()

	plain := Store{Dir: base}
	if got := plain.localDir(); got != filepath.Join(base, ".aurum") {
		t.Fatalf("localDir(%q) = %q", base, got)
	}
	nested := Store{Dir: filepath.Join(base, ".aurum")}
	if got := nested.localDir(); got != filepath.Join(base, ".aurum") {
		t.Fatalf("localDir already at .aurum = %q", got)
	}
}

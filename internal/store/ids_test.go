package store

import (
	"strings"
	"testing"

	"aurum-cli/internal/model"
)

func TestNewRandomID_ShapeIsStable(t *testing.T) {
	for _, prefix := range []string{"pill", "area", "proj", "task", "cap", "note"} {
		id, err := newRandomID(prefix)
		if err != nil {
			t.Fatalf("newRandomID(%q): %v", prefix, err)
		}
		if !strings.HasPrefix(id, prefix+"-") {
			t.Fatalf("expected %s prefix, got %q", prefix, id)
		}
		suffix := strings.TrimPrefix(id, prefix+"-")
		if got, want := len(suffix), 8; got != want {
			t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
		}
		if suffix != strings.ToLower(suffix) {
			t.Fatalf("expected lowercase suffix, got %q", suffix)
		}
	}
}

func TestNextID_SkipsExistingIDs(t *testing.T) {
	s := Store{}
	db := &DB{}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := s.NextID(db, "task")
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		db.Tasks = append(db.Tasks, model.Task{ID: id})
	}
}

func TestIDExists_ScansAllTables(t *testing.T) {
	db := &DB{
		Pillars:  []model.Pillar{{ID: "pill-x"}},
		Areas:    []model.Area{{ID: "area-x"}},
		Projects: []model.Project{{ID: "proj-x"}},
		Tasks:    []model.Task{{ID: "task-x"}},
		Captures: []model.CaptureItem{{ID: "cap-x"}},
		Journal:  []model.JournalEntry{{ID: "note-x"}},
	}
	for _, id := range []string{"pill-x", "area-x", "proj-x", "task-x", "cap-x", "note-x"} {
		if !idExists(db, id) {
			t.Fatalf("idExists(%q) = false", id)
		}
	}
	if idExists(db, "task-y") {
		t.Fatalf("idExists should be false for unknown id")
	}
}

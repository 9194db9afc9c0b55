package store

import (
	"testing"
)

func TestAppendAndReadEvents(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}

	steps := []struct{ typ, id string }{
		{"pillar.create", "pill-one"},
		{"task.create", "task-one"},
		{"task.set_status", "task-one"},
		{"task.set_status", "task-one"},
	}
	for _, st := range steps {
		if err := s.AppendEvent(st.typ, st.id, map[string]any{"via": "test"}); err != nil {
			t.Fatalf("AppendEvent(%s): %v", st.typ, err)
		}
	}

	all, err := ReadEvents(dir, 0)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len(all) = %d, want 4", len(all))
	}
	for i, ev := range all {
		if ev.Type != steps[i].typ || ev.EntityID != steps[i].id {
			t.Fatalf("event %d = %s/%s, want %s/%s", i, ev.Type, ev.EntityID, steps[i].typ, steps[i].id)
		}
		if ev.ID == "" || ev.TS.IsZero() {
			t.Fatalf("event %d missing id or timestamp: %+v", i, ev)
		}
	}

	limited, err := ReadEvents(dir, 2)
	if err != nil {
		t.Fatalf("ReadEvents limit: %v", err)
	}
	if len(limited) != 2 || limited[0].Type != "pillar.create" {
		t.Fatalf("limited = %+v", limited)
	}

	forTask, err := ReadEventsForEntity(dir, "task-one", 0)
	if err != nil {
		t.Fatalf("ReadEventsForEntity: %v", err)
	}
	if len(forTask) != 3 {
		t.Fatalf("len(forTask) = %d, want 3", len(forTask))
	}
	if forTask[0].Type != "task.create" || forTask[1].Type != "task.set_status" {
		t.Fatalf("forTask order = %+v", forTask)
	}
}

func TestAppendEventRejectsBadContract(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	if err := s.AppendEvent("bogus.create", "x-1", nil); err == nil {
		t.Fatal("want error for unknown entity kind")
	}
	if err := s.AppendEvent("nodot", "x-1", nil); err == nil {
		t.Fatal("want error for type without a dot")
	}
	if err := s.AppendEvent("task.create", "  ", nil); err == nil {
		t.Fatal("want error for blank entity id")
	}
}

func TestReadEventsForEntityBlankID(t *testing.T) {
	evs, err := ReadEventsForEntity(t.TempDir(), "  ", 0)
	if err != nil {
		t.Fatalf("ReadEventsForEntity: %v", err)
	}
	if len(evs) != 0 {
		t.Fatalf("evs = %+v, want empty", evs)
	}
}

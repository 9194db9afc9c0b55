package store

import (
	"reflect"
	"testing"

	"aurum-cli/internal/model"
)

func TestParseTaskStatus_Aliases(t *testing.T) {
	cases := map[string]model.TaskStatus{
		"todo":        model.TaskTodo,
		"in_progress": model.TaskInProgress,
		"in-progress": model.TaskInProgress,
		"doing":       model.TaskInProgress,
		"done":        model.TaskCompleted,
		"completed":   model.TaskCompleted,
		"cancelled":   model.TaskCancelled,
	}
	for in, want := range cases {
		got, err := ParseTaskStatus(in)
		if err != nil {
			t.Fatalf("ParseTaskStatus(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTaskStatus(%q) = %s, want %s", in, got, want)
		}
	}
	// Trims and lowercases before matching.
	if got, err := ParseTaskStatus("  Completed "); err != nil || got != model.TaskCompleted {
		t.Fatalf("ParseTaskStatus with whitespace/case = %s, %v", got, err)
	}
	if _, err := ParseTaskStatus("blocked"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestParseProjectStatus_DefaultsToPlanning(t *testing.T) {
	got, err := ParseProjectStatus("")
	if err != nil {
		t.Fatalf("ParseProjectStatus: %v", err)
	}
	if got != model.ProjectPlanning {
		t.Fatalf("empty project status = %s, want planning", got)
	}
	if got, err := ParseProjectStatus("active"); err != nil || got != model.ProjectActive {
		t.Fatalf("ParseProjectStatus(active) = %s, %v", got, err)
	}
	if _, err := ParseProjectStatus("stalled"); err == nil {
		t.Fatalf("expected error for unknown project status")
	}
}

func TestParsePriority_DefaultsToMedium(t *testing.T) {
	got, err := ParsePriority("")
	if err != nil {
		t.Fatalf("ParsePriority: %v", err)
	}
	if got != model.PriorityMedium {
		t.Fatalf("empty priority = %s, want medium", got)
	}
	if _, err := ParsePriority("asap"); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}

func TestParseMood_DefaultsToReflective(t *testing.T) {
	got, err := ParseMood("")
	if err != nil {
		t.Fatalf("ParseMood: %v", err)
	}
	if got != model.MoodReflective {
		t.Fatalf("empty mood = %s", got)
	}
}

func TestParseCaptureKind_TaskAlias(t *testing.T) {
	got, err := ParseCaptureKind("task")
	if err != nil {
		t.Fatalf("ParseCaptureKind: %v", err)
	}
	if got != model.CaptureTodo {
		t.Fatalf("kind task = %s, want todo", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" #run ", "run", "", "gear", "#gear"})
	want := []string{"run", "gear"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeTags = %v, want %v", got, want)
	}
	if NormalizeTags(nil) != nil {
		t.Fatalf("nil tags should stay nil")
	}
}

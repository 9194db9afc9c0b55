package mutate

import (
	"errors"
	"testing"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

func TestCaptureLifecycle_CapturedToConverted(t *testing.T) {
	db := &store.DB{}
	nextID := testNextID()
	_, _, projectID, _ := buildTree(t, db, nextID)

	item, err := AddCapture(db, nextID, "Call the dentist\nask about Friday", model.CaptureTodo)
	if err != nil {
		t.Fatalf("AddCapture: %v", err)
	}
	if item.State != model.CaptureCaptured {
		t.Fatalf("new capture state = %s", item.State)
	}
	if item.TaskID != nil {
		t.Fatalf("new capture must have no task back-ref")
	}

	cat, err := CategorizeCapture(db, item.ID, "pill-000001", "area-000002")
	if err != nil {
		t.Fatalf("CategorizeCapture: %v", err)
	}
	if cat.State != model.CaptureCategorized {
		t.Fatalf("state after categorize = %s", cat.State)
	}
	if cat.SuggestedPillar != "pill-000001" {
		t.Fatalf("suggested pillar = %s", cat.SuggestedPillar)
	}

	res, err := ConvertCapture(db, nextID, item.ID, ConvertCaptureParams{ProjectID: projectID})
	if err != nil {
		t.Fatalf("ConvertCapture: %v", err)
	}

	// The task is real: it lives in the hierarchy with the capture's content.
	task, ok := db.FindTask(res.Task.ID)
	if !ok {
		t.Fatalf("converted task not in store")
	}
	if task.ProjectID != projectID {
		t.Fatalf("task project = %s", task.ProjectID)
	}
	if task.Name != "Call the dentist" {
		t.Fatalf("task name should default to first line, got %q", task.Name)
	}

	// The capture carries the back-reference and is terminal.
	if res.Capture.State != model.CaptureConverted {
		t.Fatalf("capture state = %s", res.Capture.State)
	}
	if res.Capture.TaskID == nil || *res.Capture.TaskID != task.ID {
		t.Fatalf("capture back-ref = %v", res.Capture.TaskID)
	}
	if res.Capture.ProcessedAt == nil {
		t.Fatalf("ProcessedAt not stamped")
	}
}

func TestConvertCapture_ConvertedIsTerminal(t *testing.T) {
	db := &store.DB{}
	nextID := testNextID()
	_, _, projectID, _ := buildTree(t, db, nextID)

	item, err := AddCapture(db, nextID, "one-shot", model.CaptureNote)
	if err != nil {
		t.Fatalf("AddCapture: %v", err)
	}
	if _, err := ConvertCapture(db, nextID, item.ID, ConvertCaptureParams{ProjectID: projectID}); err != nil {
		t.Fatalf("first convert: %v", err)
	}

	var stateErr CaptureStateError
	if _, err := ConvertCapture(db, nextID, item.ID, ConvertCaptureParams{ProjectID: projectID}); !errors.As(err, &stateErr) {
		t.Fatalf("expected CaptureStateError on re-convert, got %v", err)
	}
	if _, err := CategorizeCapture(db, item.ID, "p", "a"); !errors.As(err, &stateErr) {
		t.Fatalf("expected CaptureStateError on categorize-after-convert, got %v", err)
	}
}

func TestConvertCapture_RequiresExistingProject(t *testing.T) {
	db := &store.DB{}
	nextID := testNextID()

	item, err := AddCapture(db, nextID, "stray", model.CaptureNote)
	if err != nil {
		t.Fatalf("AddCapture: %v", err)
	}
	if _, err := ConvertCapture(db, nextID, item.ID, ConvertCaptureParams{ProjectID: "proj-none"}); err == nil {
		t.Fatalf("expected error for missing project")
	}
	// Failed conversion must not change capture state.
	got, _ := db.FindCapture(item.ID)
	if got.State != model.CaptureCaptured {
		t.Fatalf("capture state after failed convert = %s", got.State)
	}
}

func TestDeleteCapture_KeepsConvertedTask(t *testing.T) {
	db := &store.DB{}
	nextID := testNextID()
	_, _, projectID, _ := buildTree(t, db, nextID)

	item, _ := AddCapture(db, nextID, "keep my task", model.CaptureTodo)
	res, err := ConvertCapture(db, nextID, item.ID, ConvertCaptureParams{ProjectID: projectID})
	if err != nil {
		t.Fatalf("ConvertCapture: %v", err)
	}
	if _, err := DeleteCapture(db, item.ID); err != nil {
		t.Fatalf("DeleteCapture: %v", err)
	}
	if _, ok := db.FindTask(res.Task.ID); !ok {
		t.Fatalf("deleting the capture must not delete the converted task")
	}
}

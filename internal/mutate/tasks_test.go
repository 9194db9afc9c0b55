package mutate

import (
	"reflect"
	"testing"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

func TestSetTaskStatus_StampsAndClearsCompletedAt(t *testing.T) {
	db := &store.DB{}
	_, _, _, taskIDs := buildTree(t, db, testNextID())
	id := taskIDs[0]

	res, err := SetTaskStatus(db, id, model.TaskCompleted)
	if err != nil {
		t.Fatalf("SetTaskStatus: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	if res.Task.CompletedAt == nil {
		t.Fatalf("expected CompletedAt to be stamped")
	}
	if got := res.EventPayload["to"]; got != string(model.TaskCompleted) {
		t.Fatalf("event payload to = %v", got)
	}

	// Same status again is a no-op.
	res2, err := SetTaskStatus(db, id, model.TaskCompleted)
	if err != nil {
		t.Fatalf("SetTaskStatus repeat: %v", err)
	}
	if res2.Changed {
		t.Fatalf("expected changed=false for same status")
	}

	// Leaving completed clears the stamp.
	res3, err := SetTaskStatus(db, id, model.TaskInProgress)
	if err != nil {
		t.Fatalf("SetTaskStatus reopen: %v", err)
	}
	if res3.Task.CompletedAt != nil {
		t.Fatalf("expected CompletedAt cleared on reopen")
	}
}

func TestUpdateTask_MoveValidatesTargetProject(t *testing.T) {
	db := &store.DB{}
	_, _, _, taskIDs := buildTree(t, db, testNextID())

	bad := "proj-none"
	if _, err := UpdateTask(db, taskIDs[0], UpdateTaskParams{ProjectID: &bad}); err == nil {
		t.Fatalf("expected error moving task to missing project")
	}
}

func TestTaskTags_AddRemoveNormalizes(t *testing.T) {
	db := &store.DB{}
	_, _, _, taskIDs := buildTree(t, db, testNextID())
	id := taskIDs[0]

	task, err := AddTaskTags(db, id, []string{"#run", " run ", "gear"})
	if err != nil {
		t.Fatalf("AddTaskTags: %v", err)
	}
	want := []string{"run", "gear"}
	if !reflect.DeepEqual(task.Tags, want) {
		t.Fatalf("tags = %v, want %v", task.Tags, want)
	}

	task, err = RemoveTaskTags(db, id, []string{"run"})
	if err != nil {
		t.Fatalf("RemoveTaskTags: %v", err)
	}
	if !reflect.DeepEqual(task.Tags, []string{"gear"}) {
		t.Fatalf("tags after remove = %v", task.Tags)
	}
}

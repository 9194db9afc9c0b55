package mutate

import (
	"errors"
	"fmt"
	"testing"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

// testNextID returns a deterministic id generator for tests.
func testNextID() func(prefix string) string {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%06d", prefix, n)
	}
}

// buildTree creates pillar -> area -> project -> two tasks and returns the ids.
func buildTree(t *testing.T, db *store.DB, nextID func(string) string) (pillarID, areaID, projectID string, taskIDs []string) {
	t.Helper()

	pillar, err := CreatePillar(db, nextID, CreatePillarParams{Name: "Health"})
	if err != nil {
		t.Fatalf("CreatePillar: %v", err)
	}
	area, err := CreateArea(db, nextID, CreateAreaParams{PillarID: pillar.ID, Name: "Fitness"})
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	project, err := CreateProject(db, nextID, CreateProjectParams{AreaID: area.ID, Name: "Run 5k"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	for _, name := range []string{"Buy shoes", "Interval training"} {
		task, err := CreateTask(db, nextID, CreateTaskParams{ProjectID: project.ID, Name: name})
		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		taskIDs = append(taskIDs, task.ID)
	}
	return pillar.ID, area.ID, project.ID, taskIDs
}

func TestUpdate_RefreshesChildIndexes(t *testing.T) {
	db := &store.DB{}
	nextID := testNextID()
	pillarID, areaID, projectID, taskIDs := buildTree(t, db, nextID)

	// Warm the derived per-parent indexes so an update has a cache to go
	// stale against.
	_ = db.AreasOf(pillarID)
	_ = db.ProjectsOf(areaID)
	_ = db.TasksOf(projectID)

	newName := "Mobility"
	if _, err := UpdateArea(db, areaID, UpdateAreaParams{Name: &newName}); err != nil {
		t.Fatalf("UpdateArea: %v", err)
	}
	areas := db.AreasOf(pillarID)
	if len(areas) != 1 || areas[0].Name != "Mobility" {
		t.Fatalf("AreasOf after rename = %+v", areas)
	}

	projName := "Run 10k"
	if _, err := UpdateProject(db, projectID, UpdateProjectParams{Name: &projName}); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	projects := db.ProjectsOf(areaID)
	if len(projects) != 1 || projects[0].Name != "Run 10k" {
		t.Fatalf("ProjectsOf after rename = %+v", projects)
	}

	taskName := "Buy trail shoes"
	if _, err := UpdateTask(db, taskIDs[0], UpdateTaskParams{Name: &taskName}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if _, err := AddTaskTags(db, taskIDs[1], []string{"speed"}); err != nil {
		t.Fatalf("AddTaskTags: %v", err)
	}
	tasks := db.TasksOf(projectID)
	if len(tasks) != 2 || tasks[0].Name != "Buy trail shoes" {
		t.Fatalf("TasksOf after rename = %+v", tasks)
	}
	if len(tasks[1].Tags) != 1 || tasks[1].Tags[0] != "speed" {
		t.Fatalf("TasksOf after tag add = %+v", tasks[1])
	}
}

func TestCreateArea_RequiresExistingPillar(t *testing.T) {
	db := &store.DB{}
	_, err := CreateArea(db, testNextID(), CreateAreaParams{PillarID: "pill-nope", Name: "Fitness"})
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "pillar" {
		t.Fatalf("expected pillar not-found, got %q", nf.Kind)
	}
	if len(db.Areas) != 0 {
		t.Fatalf("orphan area entered the store")
	}
}

func TestCreateProject_RequiresExistingArea(t *testing.T) {
	db := &store.DB{}
	if _, err := CreateProject(db, testNextID(), CreateProjectParams{AreaID: "area-nope", Name: "P"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCreateTask_RequiresExistingProject(t *testing.T) {
	db := &store.DB{}
	if _, err := CreateTask(db, testNextID(), CreateTaskParams{ProjectID: "proj-nope", Name: "T"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCreate_RejectsEmptyName(t *testing.T) {
	db := &store.DB{}
	if _, err := CreatePillar(db, testNextID(), CreatePillarParams{Name: "   "}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestDeletePillar_CascadeIsComplete(t *testing.T) {
	db := &store.DB{}
	nextID := testNextID()
	pillarID, areaID, projectID, taskIDs := buildTree(t, db, nextID)

	// A sibling pillar whose subtree must survive.
	otherPillarID, _, _, otherTasks := buildTree(t, db, nextID)

	removed, cascade, err := DeletePillar(db, pillarID)
	if err != nil {
		t.Fatalf("DeletePillar: %v", err)
	}
	if removed.ID != pillarID {
		t.Fatalf("deleted wrong pillar: %s", removed.ID)
	}
	if len(cascade.RemovedAreas) != 1 || cascade.RemovedAreas[0] != areaID {
		t.Fatalf("cascade areas = %v", cascade.RemovedAreas)
	}
	if len(cascade.RemovedProjects) != 1 || cascade.RemovedProjects[0] != projectID {
		t.Fatalf("cascade projects = %v", cascade.RemovedProjects)
	}
	if len(cascade.RemovedTasks) != len(taskIDs) {
		t.Fatalf("cascade tasks = %v, want %v", cascade.RemovedTasks, taskIDs)
	}

	// Nothing under the deleted pillar remains.
	if _, ok := db.FindPillar(pillarID); ok {
		t.Fatalf("pillar still present")
	}
	if _, ok := db.FindArea(areaID); ok {
		t.Fatalf("area survived cascade")
	}
	if _, ok := db.FindProject(projectID); ok {
		t.Fatalf("project survived cascade")
	}
	for _, id := range taskIDs {
		if _, ok := db.FindTask(id); ok {
			t.Fatalf("task %s survived cascade", id)
		}
	}

	// The sibling subtree is untouched.
	if _, ok := db.FindPillar(otherPillarID); !ok {
		t.Fatalf("sibling pillar was removed")
	}
	for _, id := range otherTasks {
		if _, ok := db.FindTask(id); !ok {
			t.Fatalf("sibling task %s was removed", id)
		}
	}
}

func TestDeleteArea_CascadeStopsAtPillar(t *testing.T) {
	db := &store.DB{}
	pillarID, areaID, projectID, taskIDs := buildTree(t, db, testNextID())

	_, cascade, err := DeleteArea(db, areaID)
	if err != nil {
		t.Fatalf("DeleteArea: %v", err)
	}
	if len(cascade.RemovedProjects) != 1 || cascade.RemovedProjects[0] != projectID {
		t.Fatalf("cascade projects = %v", cascade.RemovedProjects)
	}
	if len(cascade.RemovedTasks) != len(taskIDs) {
		t.Fatalf("cascade tasks = %v", cascade.RemovedTasks)
	}
	if _, ok := db.FindPillar(pillarID); !ok {
		t.Fatalf("parent pillar must survive area delete")
	}
}

func TestDelete_MissingIDReturnsNotFound(t *testing.T) {
	db := &store.DB{}
	var nf NotFoundError
	if _, _, err := DeletePillar(db, "pill-none"); !errors.As(err, &nf) {
		t.Fatalf("DeletePillar: expected NotFoundError, got %v", err)
	}
	if _, _, err := DeleteArea(db, "area-none"); !errors.As(err, &nf) {
		t.Fatalf("DeleteArea: expected NotFoundError, got %v", err)
	}
	if _, _, err := DeleteProject(db, "proj-none"); !errors.As(err, &nf) {
		t.Fatalf("DeleteProject: expected NotFoundError, got %v", err)
	}
	if _, err := DeleteTask(db, "task-none"); !errors.As(err, &nf) {
		t.Fatalf("DeleteTask: expected NotFoundError, got %v", err)
	}
}

func TestDeleteProject_ClearsOnlyProjectContext(t *testing.T) {
	db := &store.DB{}
	pillarID, areaID, projectID, _ := buildTree(t, db, testNextID())
	db.Context = model.HierarchyContext{PillarID: pillarID, AreaID: areaID, ProjectID: projectID}

	if _, _, err := DeleteProject(db, projectID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	want := model.HierarchyContext{PillarID: pillarID, AreaID: areaID}
	if db.Context != want {
		t.Fatalf("context = %+v, want %+v", db.Context, want)
	}
}

func TestDeletePillar_ClearsWholeContext(t *testing.T) {
	db := &store.DB{}
	pillarID, areaID, projectID, _ := buildTree(t, db, testNextID())
	db.Context = model.HierarchyContext{PillarID: pillarID, AreaID: areaID, ProjectID: projectID}

	if _, _, err := DeletePillar(db, pillarID); err != nil {
		t.Fatalf("DeletePillar: %v", err)
	}
	if db.Context != (model.HierarchyContext{}) {
		t.Fatalf("context not cleared: %+v", db.Context)
	}
}

func TestUpdateArea_MoveValidatesTargetPillar(t *testing.T) {
	db := &store.DB{}
	_, areaID, _, _ := buildTree(t, db, testNextID())

	bad := "pill-none"
	if _, err := UpdateArea(db, areaID, UpdateAreaParams{PillarID: &bad}); err == nil {
		t.Fatalf("expected error moving area to missing pillar")
	}
}

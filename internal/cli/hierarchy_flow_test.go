package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRunJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: aurum %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope with data key; got: %v", env)
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data to be an object; got: %#v", env["data"])
	}
	return m
}

func idOf(t *testing.T, env map[string]any) string {
	t.Helper()
	id, _ := dataMap(t, env)["id"].(string)
	if id == "" {
		t.Fatalf("expected data.id; got: %#v", env["data"])
	}
	return id
}

func TestHierarchyCreateAndHealthFlow(t *testing.T) {
	dir := t.TempDir()

	pillarID := idOf(t, mustRunJSON(t, "--dir", dir, "pillars", "create", "--name", "Health", "--icon", "💪"))
	areaID := idOf(t, mustRunJSON(t, "--dir", dir, "areas", "create", "--pillar", pillarID, "--name", "Fitness"))
	projectID := idOf(t, mustRunJSON(t, "--dir", dir, "projects", "create", "--area", areaID, "--name", "Marathon", "--status", "active"))

	taskA := idOf(t, mustRunJSON(t, "--dir", dir, "tasks", "create", "--project", projectID, "--name", "Long run"))
	taskB := idOf(t, mustRunJSON(t, "--dir", dir, "tasks", "create", "--project", projectID, "--name", "Buy shoes"))

	// Half the tasks completed => health 50 at every level.
	mustRunJSON(t, "--dir", dir, "tasks", "complete", taskA)

	show := dataMap(t, mustRunJSON(t, "--dir", dir, "pillars", "show", pillarID))
	m, _ := show["metrics"].(map[string]any)
	if got, _ := m["healthScore"].(float64); got != 50 {
		t.Fatalf("pillar healthScore = %v, want 50", m["healthScore"])
	}
	if got, _ := m["tasks"].(float64); got != 2 {
		t.Fatalf("pillar tasks = %v, want 2", m["tasks"])
	}

	projShow := dataMap(t, mustRunJSON(t, "--dir", dir, "projects", "show", projectID))
	if got, _ := projShow["progress"].(float64); got != 50 {
		t.Fatalf("project progress = %v, want 50", projShow["progress"])
	}

	// Completing the rest moves everything to 100.
	mustRunJSON(t, "--dir", dir, "tasks", "set-status", taskB, "completed")
	show = dataMap(t, mustRunJSON(t, "--dir", dir, "pillars", "show", pillarID))
	m, _ = show["metrics"].(map[string]any)
	if got, _ := m["healthScore"].(float64); got != 100 {
		t.Fatalf("pillar healthScore = %v, want 100", m["healthScore"])
	}

	dash := dataMap(t, mustRunJSON(t, "--dir", dir, "dashboard"))
	if got, _ := dash["completed"].(float64); got != 2 {
		t.Fatalf("dashboard completed = %v, want 2", dash["completed"])
	}
}

func TestPillarDeleteCascades(t *testing.T) {
	dir := t.TempDir()

	pillarID := idOf(t, mustRunJSON(t, "--dir", dir, "pillars", "create", "--name", "Career"))
	areaID := idOf(t, mustRunJSON(t, "--dir", dir, "areas", "create", "--pillar", pillarID, "--name", "Finance"))
	projectID := idOf(t, mustRunJSON(t, "--dir", dir, "projects", "create", "--area", areaID, "--name", "Emergency Fund"))
	mustRunJSON(t, "--dir", dir, "tasks", "create", "--project", projectID, "--name", "Open account")

	del := dataMap(t, mustRunJSON(t, "--dir", dir, "pillars", "delete", pillarID))
	cascade, _ := del["cascade"].(map[string]any)
	if cascade == nil {
		t.Fatalf("expected cascade summary; got: %#v", del)
	}

	for _, args := range [][]string{
		{"--dir", dir, "areas", "list"},
		{"--dir", dir, "projects", "list"},
		{"--dir", dir, "tasks", "list"},
	} {
		env := mustRunJSON(t, args...)
		if xs, ok := env["data"].([]any); !ok || len(xs) != 0 {
			t.Fatalf("%v left descendants behind: %#v", args[2], env["data"])
		}
	}

	if _, stderr, err := runCLI(t, []string{"--dir", dir, "pillars", "show", pillarID}); err == nil {
		t.Fatalf("expected not-found after delete; stderr:\n%s", string(stderr))
	}
}

func TestProjectsCreateDefaultsToPlanning(t *testing.T) {
	dir := t.TempDir()

	pillarID := idOf(t, mustRunJSON(t, "--dir", dir, "pillars", "create", "--name", "Growth"))
	areaID := idOf(t, mustRunJSON(t, "--dir", dir, "areas", "create", "--pillar", pillarID, "--name", "Mind"))

	// No --status: the project starts in planning.
	proj := dataMap(t, mustRunJSON(t, "--dir", dir, "projects", "create", "--area", areaID, "--name", "Mindfulness Practice"))
	if got, _ := proj["status"].(string); got != "planning" {
		t.Fatalf("default project status = %q, want planning", got)
	}
	if got, _ := proj["priority"].(string); got != "medium" {
		t.Fatalf("default project priority = %q, want medium", got)
	}
}

func TestTasksCreateRequiresValidProject(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "create", "--project", "proj-missing", "--name", "Orphan"})
	if err == nil {
		t.Fatal("expected error for missing parent project")
	}
	if len(stderr) == 0 {
		t.Fatal("expected error message on stderr")
	}
}

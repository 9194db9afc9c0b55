package cli

import (
	"testing"
)

func navContext(t *testing.T, env map[string]any) (ctx map[string]any, level string) {
	t.Helper()
	d := dataMap(t, env)
	ctx, _ = d["context"].(map[string]any)
	level, _ = d["level"].(string)
	return ctx, level
}

func TestNavToDerivesAncestors(t *testing.T) {
	dir := t.TempDir()
	pillarID, areaID, projectID := seedProject(t, dir)

	ctx, level := navContext(t, mustRunJSON(t, "--dir", dir, "nav", "to", projectID))
	if level != "project" {
		t.Fatalf("level = %q, want project", level)
	}
	if ctx["pillarId"] != pillarID || ctx["areaId"] != areaID || ctx["projectId"] != projectID {
		t.Fatalf("context = %#v, want full trail", ctx)
	}

	// Moving back up to the pillar clears the deeper selections.
	ctx, level = navContext(t, mustRunJSON(t, "--dir", dir, "nav", "to", pillarID))
	if level != "pillar" {
		t.Fatalf("level = %q, want pillar", level)
	}
	if _, ok := ctx["areaId"]; ok {
		t.Fatalf("area survived pillar navigation: %#v", ctx)
	}
}

func TestNavSelectionClearedAfterProjectDelete(t *testing.T) {
	dir := t.TempDir()
	pillarID, _, projectID := seedProject(t, dir)

	mustRunJSON(t, "--dir", dir, "nav", "to", projectID)
	mustRunJSON(t, "--dir", dir, "projects", "delete", projectID)

	ctx, level := navContext(t, mustRunJSON(t, "--dir", dir, "nav", "show"))
	if _, ok := ctx["projectId"]; ok {
		t.Fatalf("deleted project survived in context: %#v", ctx)
	}
	if level != "area" {
		t.Fatalf("level after stale cleanup = %q, want area", level)
	}
	if ctx["pillarId"] != pillarID {
		t.Fatalf("pillar selection lost during cleanup: %#v", ctx)
	}

	// The cleanup persisted: a reset then shows an empty context.
	ctx, level = navContext(t, mustRunJSON(t, "--dir", dir, "nav", "reset"))
	if len(ctx) != 0 || level != "none" {
		t.Fatalf("reset context = %#v level=%q", ctx, level)
	}
}

func TestNavToUnknownIDFails(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := runCLI(t, []string{"--dir", dir, "nav", "to", "proj-missing"}); err == nil {
		t.Fatal("expected not-found error")
	}
}

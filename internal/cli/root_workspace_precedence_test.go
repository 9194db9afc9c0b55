package cli

import (
	"testing"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

func TestRegisteredWorkspaceDirWinsOverManaged(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("AURUM_CONFIG_DIR", cfgDir)
	t.Setenv("AURUM_DIR", "")
	t.Setenv("AURUM_WORKSPACE", "")

	// Seed an external workspace dir with one pillar.
	extDir := t.TempDir()
	extDB := &store.DB{
		Version: 1,
		Pillars: []model.Pillar{{ID: "pill-ext", Name: "External"}},
	}
	if err := (store.Store{Dir: extDir}).Save(extDB); err != nil {
		t.Fatalf("seed external store: %v", err)
	}

	mustRunJSON(t, "workspace", "add", "ext", "--dir", extDir, "--use")

	// The registered path must be opened, not a fresh managed store.
	env := mustRunJSON(t, "--workspace", "ext", "pillars", "list")
	xs, ok := env["data"].([]any)
	if !ok || len(xs) != 1 {
		t.Fatalf("pillars in registered workspace = %#v, want the seeded one", env["data"])
	}
	first, _ := xs[0].(map[string]any)
	if id, _ := first["id"].(string); id != "pill-ext" {
		t.Fatalf("pillar id = %q, want pill-ext", first["id"])
	}

	// Current-workspace resolution (no --workspace flag) follows the registry too.
	env = mustRunJSON(t, "pillars", "list")
	if xs, ok := env["data"].([]any); !ok || len(xs) != 1 {
		t.Fatalf("pillars via current workspace = %#v, want the seeded one", env["data"])
	}

	// workspace current reports the registered path.
	cur := dataMap(t, mustRunJSON(t, "workspace", "current"))
	if got, _ := cur["dir"].(string); got != extDir {
		t.Fatalf("workspace current dir = %q, want %q", got, extDir)
	}
}

func TestResolveWorkspaceDirFallsBackToManaged(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("AURUM_CONFIG_DIR", cfgDir)

	got, err := store.ResolveWorkspaceDir("personal")
	if err != nil {
		t.Fatalf("ResolveWorkspaceDir: %v", err)
	}
	want, err := store.WorkspaceDir("personal")
	if err != nil {
		t.Fatalf("WorkspaceDir: %v", err)
	}
	if got != want {
		t.Fatalf("unregistered name resolved to %q, want managed %q", got, want)
	}
}

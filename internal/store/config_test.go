package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigRoundtrip(t *testing.T) {
	t.Setenv("AURUM_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig on empty dir: %v", err)
	}
	if cfg.CurrentWorkspace != "" || len(cfg.Workspaces) != 0 {
		t.Fatalf("empty config = %+v", cfg)
	}

	cfg.CurrentWorkspace = "work"
	cfg.Workspaces = map[string]string{"work": "/srv/aurum/work"}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig after save: %v", err)
	}
	if got.CurrentWorkspace != "work" || got.Workspaces["work"] != "/srv/aurum/work" {
		t.Fatalf("got = %+v", got)
	}
}

func TestNormalizeWorkspaceName(t *testing.T) {
	if got, err := NormalizeWorkspaceName("  personal "); err != nil || got != "personal" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := NormalizeWorkspaceName(""); err == nil {
		t.Fatal("want error for empty name")
	}
	if _, err := NormalizeWorkspaceName("a/b"); err == nil {
		t.Fatal("want error for path separator")
	}
	if _, err := NormalizeWorkspaceName(`a\b`); err == nil {
		t.Fatal("want error for backslash")
	}
}

func TestListWorkspacesUnionsDirsAndRegistry(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AURUM_CONFIG_DIR", dir)

	for _, name := range []string{"default", "personal"} {
		if err := os.MkdirAll(filepath.Join(dir, "workspaces", name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := SaveConfig(&GlobalConfig{Workspaces: map[string]string{"personal": "/x", "remote": "/y"}}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	want := []string{"default", "personal", "remote"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWorkspaceDirUsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AURUM_CONFIG_DIR", dir)

	got, err := WorkspaceDir("personal")
	if err != nil {
		t.Fatalf("WorkspaceDir: %v", err)
	}
	if want := filepath.Join(dir, "workspaces", "personal"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

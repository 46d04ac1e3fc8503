package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")

	if err := EnsureDir(target, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("target is not a directory")
	}
	if perm := info.Mode().Perm(); perm != DefaultDirPerm {
		t.Errorf("perm = %o, want %o", perm, DefaultDirPerm)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := t.TempDir()

	if err := EnsureDir(dir, 0o755); err != nil {
		t.Fatalf("EnsureDir() on existing dir error = %v", err)
	}
}

func TestAppPaths_UnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"AppConfigDir", AppConfigDir(), filepath.Join(home, ".ccconfig")},
		{"StoresPath", StoresPath(), filepath.Join(home, ".ccconfig", "stores.json")},
		{"BackupDir", BackupDir(), filepath.Join(home, ".ccconfig", "backups")},
		{"EventLogPath", EventLogPath(), filepath.Join(home, ".ccconfig", "events.jsonl")},
		{"ClaudeDir", ClaudeDir(), filepath.Join(home, ".claude")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestResolveHome(t *testing.T) {
	home, err := ResolveHome()
	if err != nil {
		t.Fatalf("ResolveHome() error = %v", err)
	}
	if home == "" {
		t.Error("ResolveHome() returned empty string")
	}
}

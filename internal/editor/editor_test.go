package editor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectPrefersEditorEnv(t *testing.T) {
	t.Setenv("EDITOR", "my-editor")
	t.Setenv("VISUAL", "other-editor")

	if got := Detect(); got != "my-editor" {
		t.Errorf("Detect() = %q, want my-editor", got)
	}
}

func TestDetectFallsBackToVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "visual-editor")

	if got := Detect(); got != "visual-editor" {
		t.Errorf("Detect() = %q, want visual-editor", got)
	}
}

func TestEditCreatesMissingFile(t *testing.T) {
	// "true" exits immediately so Edit returns without interaction.
	t.Setenv("EDITOR", "true")

	path := filepath.Join(t.TempDir(), "nested", "CLAUDE.md")
	if err := Edit(path); err != nil {
		t.Fatalf("Edit() error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Edit() did not create the file: %v", err)
	}
}

package settings

import (
	"reflect"
	"testing"
)

func TestMergeDisjointKeys(t *testing.T) {
	base := map[string]any{"model": "opus"}
	patch := map[string]any{"theme": "dark"}

	got := Merge(base, patch)

	want := map[string]any{"model": "opus", "theme": "dark"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}
}

func TestMergeNestedObjects(t *testing.T) {
	base := map[string]any{
		"env": map[string]any{
			"ANTHROPIC_BASE_URL": "https://api.example.com",
			"KEEP":               "me",
		},
		"permissions": map[string]any{"allow": []any{"Bash"}},
	}
	patch := map[string]any{
		"env": map[string]any{
			"ANTHROPIC_BASE_URL": "https://other.example.com",
		},
	}

	got := Merge(base, patch)

	env := got["env"].(map[string]any)
	if env["ANTHROPIC_BASE_URL"] != "https://other.example.com" {
		t.Errorf("patched key = %v", env["ANTHROPIC_BASE_URL"])
	}
	if env["KEEP"] != "me" {
		t.Error("key present only in base was lost")
	}
	if _, ok := got["permissions"]; !ok {
		t.Error("top-level key present only in base was lost")
	}
}

func TestMergeArraysReplace(t *testing.T) {
	base := map[string]any{"hooks": []any{"a", "b", "c"}}
	patch := map[string]any{"hooks": []any{"x"}}

	got := Merge(base, patch)

	hooks := got["hooks"].([]any)
	if len(hooks) != 1 || hooks[0] != "x" {
		t.Errorf("arrays must replace, not concatenate: %v", hooks)
	}
}

func TestMergeTypeMismatchReplaces(t *testing.T) {
	base := map[string]any{"env": map[string]any{"A": "1"}}
	patch := map[string]any{"env": "plain string"}

	got := Merge(base, patch)

	if got["env"] != "plain string" {
		t.Errorf("scalar patch must replace object: %v", got["env"])
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{
		"env": map[string]any{"A": "1"},
	}
	patch := map[string]any{
		"env": map[string]any{"B": "2"},
	}

	_ = Merge(base, patch)

	baseEnv := base["env"].(map[string]any)
	if len(baseEnv) != 1 || baseEnv["A"] != "1" {
		t.Errorf("base was mutated: %v", baseEnv)
	}
	patchEnv := patch["env"].(map[string]any)
	if len(patchEnv) != 1 || patchEnv["B"] != "2" {
		t.Errorf("patch was mutated: %v", patchEnv)
	}
}

func TestMergeResultIsIndependent(t *testing.T) {
	base := map[string]any{"env": map[string]any{"A": "1"}}

	got := Merge(base, nil)
	got["env"].(map[string]any)["A"] = "changed"

	if base["env"].(map[string]any)["A"] != "1" {
		t.Error("mutating the result leaked into base")
	}
}

func TestApplyNonObjectPatch(t *testing.T) {
	base := map[string]any{"model": "opus"}

	for _, patch := range []any{"string", 42.0, []any{"a"}, nil, true} {
		got := Apply(base, patch)
		if !reflect.DeepEqual(got, base) {
			t.Errorf("Apply(base, %v) = %v, want base unchanged", patch, got)
		}
	}
}

func TestCloneNil(t *testing.T) {
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

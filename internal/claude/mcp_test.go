package claude

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/ccmate/ccmate/internal/errors"
)

func newTestMCPManager(t *testing.T) (*MCPManager, *Paths) {
	t.Helper()
	paths := NewPathsAt(t.TempDir())
	return NewMCPManager(paths), paths
}

func TestMCPListEmptyWhenFileMissing(t *testing.T) {
	m, _ := newTestMCPManager(t)

	servers, err := m.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(servers) != 0 {
		t.Errorf("List() = %d servers, want 0", len(servers))
	}
}

func TestMCPAddGetRemove(t *testing.T) {
	m, _ := newTestMCPManager(t)

	server := &MCPServer{
		Name:    "github",
		Type:    "stdio",
		Command: "npx",
		Args:    []string{"-y", "@modelcontextprotocol/server-github"},
		Env:     map[string]string{"GITHUB_TOKEN": "ghp_test"},
	}
	if err := m.Add(server); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	got, err := m.Get("github")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Command != "npx" || len(got.Args) != 2 {
		t.Errorf("Get() = %+v", got)
	}

	if err := m.Remove("github"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := m.Get("github"); !errors.Is(err, ErrMCPServerNotFound) {
		t.Errorf("Get() after Remove = %v, want ErrMCPServerNotFound", err)
	}
}

func TestMCPAddInvalid(t *testing.T) {
	m, _ := newTestMCPManager(t)

	if err := m.Add(nil); !errors.Is(err, ErrInvalidMCPServer) {
		t.Errorf("Add(nil) = %v, want ErrInvalidMCPServer", err)
	}
	if err := m.Add(&MCPServer{}); !errors.Is(err, ErrInvalidMCPServer) {
		t.Errorf("Add(empty name) = %v, want ErrInvalidMCPServer", err)
	}
}

func TestMCPRemoveIdempotent(t *testing.T) {
	m, _ := newTestMCPManager(t)

	if err := m.Remove("never-existed"); err != nil {
		t.Errorf("Remove() of missing server = %v, want nil", err)
	}
}

func TestMCPListSorted(t *testing.T) {
	m, _ := newTestMCPManager(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := m.Add(&MCPServer{Name: name, Command: "true"}); err != nil {
			t.Fatal(err)
		}
	}

	servers, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(servers) != 3 {
		t.Fatalf("List() = %d servers, want 3", len(servers))
	}
	if servers[0].Name != "alpha" || servers[1].Name != "mid" || servers[2].Name != "zeta" {
		t.Errorf("List() not sorted: %s, %s, %s", servers[0].Name, servers[1].Name, servers[2].Name)
	}
}

func TestMCPPreservesUnknownKeys(t *testing.T) {
	m, paths := newTestMCPManager(t)

	// Simulate a live config with state ccmate doesn't understand.
	initial := `{
  "numStartups": 42,
  "projects": {"/tmp/foo": {"allowedTools": ["Bash"]}},
  "mcpServers": {"existing": {"command": "echo"}}
}`
	if err := os.WriteFile(paths.LiveConfigPath(), []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := m.Add(&MCPServer{Name: "new", Command: "cat"}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	data, err := os.ReadFile(paths.LiveConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	if doc["numStartups"] != 42.0 {
		t.Errorf("numStartups = %v, want 42", doc["numStartups"])
	}
	if _, ok := doc["projects"]; !ok {
		t.Error("projects key was lost")
	}
	servers := doc["mcpServers"].(map[string]any)
	if _, ok := servers["existing"]; !ok {
		t.Error("existing server was lost")
	}
	if _, ok := servers["new"]; !ok {
		t.Error("new server missing")
	}
}

func TestMCPRemoveLastDropsSection(t *testing.T) {
	m, paths := newTestMCPManager(t)

	if err := m.Add(&MCPServer{Name: "only", Command: "true"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Remove("only"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(paths.LiveConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["mcpServers"]; ok {
		t.Error("empty mcpServers section should be dropped")
	}
}

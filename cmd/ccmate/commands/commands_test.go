package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against a fresh HOME and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags clears package-level flag state between executions.
func resetFlags() {
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""

	profileCreateSettings = ""
	profileCreateSettingsFile = ""
	profileCreateFromCurrent = false
	profileShowReveal = false
	profileEditTitle = ""
	profileEditSettings = ""
	profileEditSettingsFile = ""
	profileDeleteForce = false
	profileResetForce = false

	settingsShowReveal = false

	mcpAddURL = ""
	mcpAddEnv = nil
	mcpAddTransport = ""
	mcpAddForce = false

	usageDays = 0
	backupPruneKeep = 0
	backupRestoreForce = false
	notifySetEnable = false
	notifySetDisable = false
	notifySetHooks = nil
}

func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	// Keep XDG lookups inside the sandbox too.
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("CCMATE_NO_TRACK", "1")
	return home
}

func TestProfileCreateAndList(t *testing.T) {
	testHome(t)

	out, err := execute(t, "profile", "create", "work",
		"--settings", `{"env":{"ANTHROPIC_AUTH_TOKEN":"sk-work-1234"}}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	assert.Contains(t, out, "now active")

	out, err = execute(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "*")
}

func TestProfileCreateCapturesOriginal(t *testing.T) {
	home := testHome(t)

	// Pre-existing live settings must be captured as Original Config.
	claudeDir := filepath.Join(home, ".claude")
	require.NoError(t, os.MkdirAll(claudeDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(claudeDir, "settings.json"),
		[]byte(`{"model":"opus"}`), 0o644))

	_, err := execute(t, "profile", "create", "work")
	require.NoError(t, err)

	out, err := execute(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Original Config")
	assert.Contains(t, out, "work")
}

func TestProfileUseSwitchesByTitle(t *testing.T) {
	home := testHome(t)

	_, err := execute(t, "profile", "create", "work",
		"--settings", `{"env":{"ANTHROPIC_AUTH_TOKEN":"sk-work"}}`)
	require.NoError(t, err)
	_, err = execute(t, "profile", "create", "personal",
		"--settings", `{"env":{"ANTHROPIC_AUTH_TOKEN":"sk-personal"}}`)
	require.NoError(t, err)

	out, err := execute(t, "profile", "use", "personal")
	require.NoError(t, err)
	assert.Contains(t, out, "Activated")

	// The switch must be reflected in the live settings file.
	data, err := os.ReadFile(filepath.Join(home, ".claude", "settings.json"))
	require.NoError(t, err)
	var live map[string]any
	require.NoError(t, json.Unmarshal(data, &live))
	env := live["env"].(map[string]any)
	assert.Equal(t, "sk-personal", env["ANTHROPIC_AUTH_TOKEN"])
}

func TestProfileShowMasksSecrets(t *testing.T) {
	testHome(t)

	_, err := execute(t, "profile", "create", "work",
		"--settings", `{"env":{"ANTHROPIC_AUTH_TOKEN":"sk-abcdef123456"}}`)
	require.NoError(t, err)

	out, err := execute(t, "profile", "show", "work")
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-abcdef123456")
	assert.Contains(t, out, "3456") // masked form keeps last 4

	out, err = execute(t, "profile", "show", "work", "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "sk-abcdef123456")
}

func TestProfileShowUnknown(t *testing.T) {
	testHome(t)

	_, err := execute(t, "profile", "show", "nope")
	require.Error(t, err)
}

func TestProfileDeleteForce(t *testing.T) {
	testHome(t)

	_, err := execute(t, "profile", "create", "doomed")
	require.NoError(t, err)

	out, err := execute(t, "profile", "delete", "doomed", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	out, err = execute(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles yet")
}

func TestProfileResetClearsEnv(t *testing.T) {
	home := testHome(t)

	_, err := execute(t, "profile", "create", "work",
		"--settings", `{"env":{"A":"1"},"model":"opus"}`)
	require.NoError(t, err)

	_, err = execute(t, "profile", "reset", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, ".claude", "settings.json"))
	require.NoError(t, err)
	var live map[string]any
	require.NoError(t, json.Unmarshal(data, &live))
	assert.Empty(t, live["env"])
	assert.Equal(t, "opus", live["model"])
}

func TestMCPAddListRemove(t *testing.T) {
	testHome(t)

	// Dash-prefixed server arguments go after the -- terminator so cobra
	// does not claim them as ccmate flags.
	out, err := execute(t, "mcp", "add", "github",
		"--env", "GITHUB_TOKEN=ghp_test",
		"--", "npx", "-y", "@modelcontextprotocol/server-github")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")

	out, err = execute(t, "mcp", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "github")
	assert.Contains(t, out, "npx -y @modelcontextprotocol/server-github")

	_, err = execute(t, "mcp", "remove", "github")
	require.NoError(t, err)

	out, err = execute(t, "mcp", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No MCP servers")
}

func TestMCPAddRequiresCommandOrURL(t *testing.T) {
	testHome(t)

	_, err := execute(t, "mcp", "add", "bare")
	require.ErrorIs(t, err, errMCPAddMissingCommandOrURL)
}

func TestMCPAddRejectsDuplicateWithoutForce(t *testing.T) {
	testHome(t)

	_, err := execute(t, "mcp", "add", "github", "npx")
	require.NoError(t, err)

	_, err = execute(t, "mcp", "add", "github", "other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "mcp", "add", "github", "other", "--force")
	require.NoError(t, err)
}

func TestNotifyShowDefaultsAndSet(t *testing.T) {
	testHome(t)

	out, err := execute(t, "notify", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "enabled")
	assert.Contains(t, out, "Notification")

	_, err = execute(t, "notify", "set", "--disable")
	require.NoError(t, err)

	out, err = execute(t, "notify", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "disabled")
}

func TestNotifySetNothingToChange(t *testing.T) {
	testHome(t)

	_, err := execute(t, "notify", "set")
	require.Error(t, err)
}

func TestUsageEmpty(t *testing.T) {
	testHome(t)

	out, err := execute(t, "usage")
	require.NoError(t, err)
	assert.Contains(t, out, "No usage recorded")
}

func TestUsageAggregates(t *testing.T) {
	home := testHome(t)

	logDir := filepath.Join(home, ".claude", "projects", "proj")
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	line := `{"uuid":"u1","timestamp":"2026-08-27T10:00:00Z","message":{"model":"claude-sonnet-4","usage":{"input_tokens":1200,"output_tokens":300}}}`
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "s.jsonl"), []byte(line+"\n"), 0o644))

	out, err := execute(t, "usage", "--days", "36500")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-08-27")
	assert.Contains(t, out, "claude-sonnet-4")
}

func TestSettingsShowAndPath(t *testing.T) {
	home := testHome(t)

	out, err := execute(t, "settings", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(home, ".claude", "settings.json"))

	out, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "{}")
}

func TestBackupCreateAndList(t *testing.T) {
	home := testHome(t)

	claudeDir := filepath.Join(home, ".claude")
	require.NoError(t, os.MkdirAll(claudeDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(claudeDir, "settings.json"), []byte(`{}`), 0o644))

	out, err := execute(t, "backup", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Created backup")

	out, err = execute(t, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "files")
}

func TestCommandListEmpty(t *testing.T) {
	testHome(t)

	out, err := execute(t, "command", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No commands installed")
}

func TestAgentListShowsEntries(t *testing.T) {
	home := testHome(t)

	agentDir := filepath.Join(home, ".claude", "agents")
	require.NoError(t, os.MkdirAll(agentDir, 0o755))
	content := "---\ndescription: Runs the tests\n---\n\nRun go test ./...\n"
	require.NoError(t, os.WriteFile(filepath.Join(agentDir, "tester.md"), []byte(content), 0o644))

	out, err := execute(t, "agent", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "tester")
	assert.Contains(t, out, "Runs the tests")
}

func TestQuietAndVerboseConflict(t *testing.T) {
	testHome(t)

	_, err := execute(t, "-q", "-v", "profile", "list")
	require.Error(t, err)
}

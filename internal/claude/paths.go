// Package claude provides access to the Claude Code installation: its
// settings file, live MCP configuration, slash commands, agents, memory
// file, and session logs.
package claude

import (
	"path/filepath"

	"github.com/ccmate/ccmate/internal/paths"
)

// Paths resolves the files ccmate manages inside a Claude Code home.
// The zero value is not usable; construct with NewPaths.
type Paths struct {
	home string
}

// NewPaths creates a Paths rooted at the user's home directory.
// Returns a Paths with empty home if the home directory cannot be resolved.
func NewPaths() *Paths {
	return &Paths{home: paths.Home()}
}

// NewPathsAt creates a Paths rooted at the given directory.
// Used by tests and the claude_dir config override.
func NewPathsAt(home string) *Paths {
	return &Paths{home: home}
}

// BaseDir returns the Claude Code configuration directory, ~/.claude.
func (p *Paths) BaseDir() string {
	if p.home == "" {
		return ""
	}
	return filepath.Join(p.home, paths.ClaudeDirName)
}

// SettingsPath returns the live settings file, ~/.claude/settings.json.
func (p *Paths) SettingsPath() string {
	base := p.BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "settings.json")
}

// ConfigPath returns ~/.claude/config.json, where Claude Code keeps
// onboarding state such as primaryApiKey.
func (p *Paths) ConfigPath() string {
	base := p.BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "config.json")
}

// LiveConfigPath returns ~/.claude.json, the runtime state file that holds
// MCP server registrations among other keys. Note it lives next to the
// .claude directory, not inside it.
func (p *Paths) LiveConfigPath() string {
	if p.home == "" {
		return ""
	}
	return filepath.Join(p.home, ".claude.json")
}

// CommandDir returns the slash command directory, ~/.claude/commands.
func (p *Paths) CommandDir() string {
	base := p.BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "commands")
}

// AgentDir returns the agents directory, ~/.claude/agents.
func (p *Paths) AgentDir() string {
	base := p.BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "agents")
}

// MemoryPath returns the global memory file, ~/.claude/CLAUDE.md.
func (p *Paths) MemoryPath() string {
	base := p.BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "CLAUDE.md")
}

// ProjectsDir returns ~/.claude/projects, the root of per-project
// session logs used for usage reporting.
func (p *Paths) ProjectsDir() string {
	base := p.BaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "projects")
}

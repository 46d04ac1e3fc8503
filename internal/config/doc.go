// Package config loads ccmate's own configuration file via Viper.
//
// This is the tool's configuration (claude_dir override, backup retention),
// not the Claude Code settings it manages. Values come from config.yaml in
// the XDG config directory, overridable per-key with CCMATE_* environment
// variables.
package config

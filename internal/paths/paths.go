package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ccmate/ccmate/internal/errors"
)

// AppDirName is the directory under the user's home that holds ccmate's
// own state (stores.json, backups, event log).
const AppDirName = ".ccconfig"

// ClaudeDirName is the directory under the user's home that Claude Code owns.
const ClaudeDirName = ".claude"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: it returns an empty string on error for call sites that tolerate
// missing paths. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns ccmate's state directory: ~/.ccconfig
// Returns an empty string if the home directory cannot be determined.
func AppConfigDir() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, AppDirName)
}

// StoresPath returns the path of the profile collection document:
// ~/.ccconfig/stores.json
func StoresPath() string {
	dir := AppConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "stores.json")
}

// BackupDir returns the root directory for configuration backups:
// ~/.ccconfig/backups
func BackupDir() string {
	dir := AppConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "backups")
}

// EventLogPath returns the path of the local analytics event log:
// ~/.ccconfig/events.jsonl
func EventLogPath() string {
	dir := AppConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "events.jsonl")
}

// ClaudeDir returns the Claude Code configuration directory: ~/.claude
// Returns an empty string if the home directory cannot be determined.
func ClaudeDir() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ClaudeDirName)
}

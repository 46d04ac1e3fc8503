package claude

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/pkg/fileutil"
)

// SettingsManager reads and writes the live settings document,
// ~/.claude/settings.json. The document is held as a generic map so keys
// ccmate does not know about survive round trips.
type SettingsManager struct {
	paths *Paths
}

// NewSettingsManager creates a SettingsManager for the given paths.
func NewSettingsManager(paths *Paths) *SettingsManager {
	return &SettingsManager{paths: paths}
}

// Exists reports whether the live settings file is present on disk.
func (m *SettingsManager) Exists() bool {
	path := m.paths.SettingsPath()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Read returns the live settings document.
// A missing file yields an empty document, not an error.
func (m *SettingsManager) Read() (map[string]any, error) {
	path := m.paths.SettingsPath()
	if path == "" {
		return nil, errors.New("settings path not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, errors.Wrap(err, "reading settings")
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrCorruptDocument, "%s: %v", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// Write replaces the live settings document atomically, creating
// ~/.claude if it does not exist yet.
func (m *SettingsManager) Write(doc map[string]any) error {
	path := m.paths.SettingsPath()
	if path == "" {
		return errors.New("settings path not configured")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}
	return errors.Wrap(fileutil.AtomicWriteJSON(path, doc), "writing settings")
}

// Unlock ensures ~/.claude/config.json has a primaryApiKey entry so the
// Claude Code onboarding flow accepts token-based auth. The placeholder
// value is never used for requests. An existing key is left alone.
func (m *SettingsManager) Unlock() error {
	path := m.paths.ConfigPath()
	if path == "" {
		return errors.New("config path not configured")
	}

	doc := map[string]any{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrap(err, "reading claude config")
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "parsing claude config")
	}

	if _, ok := doc["primaryApiKey"]; ok {
		return nil
	}
	doc["primaryApiKey"] = "xxx"

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating claude config directory")
	}
	return errors.Wrap(fileutil.AtomicWriteJSON(path, doc), "writing claude config")
}

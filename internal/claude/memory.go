package claude

import (
	"os"
	"path/filepath"

	"github.com/ccmate/ccmate/internal/errors"
)

// ReadMemory returns the contents of the global memory file,
// ~/.claude/CLAUDE.md. A missing file yields empty content.
func ReadMemory(paths *Paths) (string, error) {
	path := paths.MemoryPath()
	if path == "" {
		return "", errors.New("memory path not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "reading memory file")
	}
	return string(data), nil
}

// WriteMemory replaces the global memory file, creating ~/.claude if needed.
func WriteMemory(paths *Paths, content string) error {
	path := paths.MemoryPath()
	if path == "" {
		return errors.New("memory path not configured")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating claude directory")
	}
	return errors.Wrap(os.WriteFile(path, []byte(content), 0o644), "writing memory file")
}

package claude

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/pkg/frontmatter"
)

// Sentinel errors for command and agent operations.
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidEntry  = errors.New("invalid entry: name required")
)

// Entry is a markdown resource stored as <dir>/<name>.md with optional
// YAML frontmatter. Slash commands and agents share this shape.
type Entry struct {
	// Name is derived from the filename, never from frontmatter.
	Name        string `yaml:"-"`
	Description string `yaml:"description,omitempty"`
	Model       string `yaml:"model,omitempty"`

	// Body is the markdown content below the frontmatter.
	Body string `yaml:"-"`
}

// entryMatter is the frontmatter subset we understand. Unknown keys are
// dropped on rewrite; commands and agents ccmate manages only carry these.
type entryMatter struct {
	Description string `yaml:"description,omitempty"`
	Model       string `yaml:"model,omitempty"`
}

// EntryManager provides CRUD operations over one markdown entry directory.
type EntryManager struct {
	dir string
}

// NewCommandManager manages slash commands in ~/.claude/commands.
func NewCommandManager(paths *Paths) *EntryManager {
	return &EntryManager{dir: paths.CommandDir()}
}

// NewAgentManager manages agents in ~/.claude/agents.
func NewAgentManager(paths *Paths) *EntryManager {
	return &EntryManager{dir: paths.AgentDir()}
}

// List returns all entries sorted by name.
// Returns an empty slice if the directory doesn't exist.
func (m *EntryManager) List() ([]*Entry, error) {
	if m.dir == "" {
		return nil, nil
	}

	dirEntries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading entry directory")
	}

	entries := make([]*Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(de.Name(), ".md")
		entry, err := m.Get(name)
		if err != nil {
			return nil, errors.Wrapf(err, "reading entry %s", name)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// Get retrieves an entry by name.
// Returns ErrEntryNotFound if the file doesn't exist.
func (m *EntryManager) Get(name string) (*Entry, error) {
	if name == "" {
		return nil, ErrInvalidEntry
	}
	path := m.path(name)
	if path == "" {
		return nil, ErrEntryNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrEntryNotFound
		}
		return nil, errors.Wrap(err, "reading entry file")
	}

	var matter entryMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return nil, errors.Wrap(err, "parsing frontmatter")
	}

	return &Entry{
		Name:        name,
		Description: matter.Description,
		Model:       matter.Model,
		Body:        strings.TrimSpace(string(body)),
	}, nil
}

// Save writes an entry to disk, creating the directory if needed.
// Overwrites any existing entry with the same name.
func (m *EntryManager) Save(e *Entry) error {
	if e == nil || e.Name == "" {
		return ErrInvalidEntry
	}
	if m.dir == "" {
		return errors.New("entry directory path is empty")
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return errors.Wrap(err, "creating entry directory")
	}

	var content []byte
	if e.Description != "" || e.Model != "" {
		var err error
		content, err = frontmatter.Format(entryMatter{
			Description: e.Description,
			Model:       e.Model,
		}, e.Body)
		if err != nil {
			return errors.Wrap(err, "formatting frontmatter")
		}
	} else {
		content = []byte(e.Body)
		if !strings.HasSuffix(e.Body, "\n") {
			content = append(content, '\n')
		}
	}

	return errors.Wrap(os.WriteFile(m.path(e.Name), content, 0o644), "writing entry file")
}

// Remove deletes an entry from disk.
// This operation is idempotent; removing a non-existent entry returns nil.
func (m *EntryManager) Remove(name string) error {
	if name == "" {
		return ErrInvalidEntry
	}
	path := m.path(name)
	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "removing entry file")
	}
	return nil
}

// Path exposes the on-disk location for an entry, used by the editor flow.
func (m *EntryManager) Path(name string) string {
	return m.path(name)
}

func (m *EntryManager) path(name string) string {
	if m.dir == "" || name == "" {
		return ""
	}
	return filepath.Join(m.dir, name+".md")
}

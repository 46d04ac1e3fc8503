package claude

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/pkg/fileutil"
)

// Sentinel errors for MCP operations.
var (
	ErrMCPServerNotFound = errors.New("MCP server not found")
	ErrInvalidMCPServer  = errors.New("invalid MCP server: name required")
)

// mcpServersKey is the key inside ~/.claude.json that holds server
// registrations. Every other key in that file is opaque to ccmate.
const mcpServersKey = "mcpServers"

// MCPServer describes one MCP server registration.
type MCPServer struct {
	// Name is the registration key, derived from the map key rather
	// than stored in the entry.
	Name string `json:"-"`

	Type    string            `json:"type,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
}

// MCPManager provides CRUD operations for MCP server registrations in
// ~/.claude.json. The rest of that file is preserved byte-for-byte via
// raw message passthrough.
type MCPManager struct {
	paths *Paths
}

// NewMCPManager creates a new MCPManager instance.
func NewMCPManager(paths *Paths) *MCPManager {
	return &MCPManager{paths: paths}
}

// List returns all registered MCP servers sorted by name.
// Returns an empty slice if the live config file does not exist or has
// no mcpServers section.
func (m *MCPManager) List() ([]*MCPServer, error) {
	_, entries, err := m.load()
	if err != nil {
		return nil, err
	}

	servers := make([]*MCPServer, 0, len(entries))
	for name, raw := range entries {
		server, err := decodeServer(name, raw)
		if err != nil {
			return nil, err
		}
		servers = append(servers, server)
	}

	sort.Slice(servers, func(i, j int) bool {
		return servers[i].Name < servers[j].Name
	})

	return servers, nil
}

// Get returns a single MCP server by name.
// Returns ErrMCPServerNotFound if the server does not exist.
func (m *MCPManager) Get(name string) (*MCPServer, error) {
	_, entries, err := m.load()
	if err != nil {
		return nil, err
	}

	raw, ok := entries[name]
	if !ok {
		return nil, ErrMCPServerNotFound
	}
	return decodeServer(name, raw)
}

// Add adds or updates an MCP server registration.
// Returns ErrInvalidMCPServer if the server name is empty.
func (m *MCPManager) Add(server *MCPServer) error {
	if server == nil || server.Name == "" {
		return ErrInvalidMCPServer
	}

	full, entries, err := m.load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(server)
	if err != nil {
		return errors.Wrap(err, "marshaling MCP server")
	}
	entries[server.Name] = raw

	return m.save(full, entries)
}

// Remove removes an MCP server registration by name.
// This operation is idempotent - removing a non-existent server does not error.
// When the last server is removed the mcpServers key is dropped entirely.
func (m *MCPManager) Remove(name string) error {
	full, entries, err := m.load()
	if err != nil {
		return err
	}

	delete(entries, name)

	return m.save(full, entries)
}

// load reads ~/.claude.json into a raw top-level document plus the decoded
// mcpServers section. A missing file yields empty maps.
func (m *MCPManager) load() (map[string]json.RawMessage, map[string]json.RawMessage, error) {
	path := m.paths.LiveConfigPath()
	if path == "" {
		return nil, nil, errors.New("live config path not configured")
	}

	full := map[string]json.RawMessage{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return full, map[string]json.RawMessage{}, nil
		}
		return nil, nil, errors.Wrap(err, "reading live config")
	}
	if err := json.Unmarshal(data, &full); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrCorruptDocument, "%s: %v", path, err)
	}

	entries := map[string]json.RawMessage{}
	if raw, ok := full[mcpServersKey]; ok {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, nil, errors.Wrap(err, "parsing mcpServers section")
		}
	}

	return full, entries, nil
}

// save writes the document back, replacing only the mcpServers section.
func (m *MCPManager) save(full map[string]json.RawMessage, entries map[string]json.RawMessage) error {
	path := m.paths.LiveConfigPath()
	if path == "" {
		return errors.New("live config path not configured")
	}

	if len(entries) == 0 {
		delete(full, mcpServersKey)
	} else {
		raw, err := json.Marshal(entries)
		if err != nil {
			return errors.Wrap(err, "marshaling mcpServers section")
		}
		full[mcpServersKey] = raw
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating live config directory")
	}
	return errors.Wrap(fileutil.AtomicWriteJSON(path, full), "writing live config")
}

func decodeServer(name string, raw json.RawMessage) (*MCPServer, error) {
	var server MCPServer
	if err := json.Unmarshal(raw, &server); err != nil {
		return nil, errors.Wrapf(err, "parsing MCP server %q", name)
	}
	server.Name = name
	return &server, nil
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/errors"
)

// Sentinel errors for MCP add operations.
var (
	errMCPAddMissingCommandOrURL = errors.New("either command or --url is required")
	errMCPAddBothCommandAndURL   = errors.New("cannot specify both command and --url")
)

// Package-level flag variables for mcp add command.
var (
	mcpAddURL       string
	mcpAddEnv       []string
	mcpAddTransport string
	mcpAddForce     bool
)

func init() {
	mcpAddCmd.Flags().StringVar(&mcpAddURL, "url", "",
		"remote server endpoint for SSE transport")
	mcpAddCmd.Flags().StringSliceVar(&mcpAddEnv, "env", nil,
		"environment variables in KEY=VALUE format (repeatable)")
	mcpAddCmd.Flags().StringVar(&mcpAddTransport, "transport", "",
		"explicit transport type: stdio, sse")
	mcpAddCmd.Flags().BoolVarP(&mcpAddForce, "force", "f", false,
		"overwrite if server already exists")
	mcpCmd.AddCommand(mcpAddCmd)
}

var mcpAddCmd = &cobra.Command{
	Use:   "add <name> [command] [args...]",
	Short: "Add an MCP server registration",
	Long: `Add an MCP server registration.

For local stdio servers, provide a command and optional arguments. Put
-- before the command when its arguments start with dashes, so they are
passed through instead of being parsed as ccmate flags:
  ccmate mcp add github -- npx -y @modelcontextprotocol/server-github

For remote SSE servers, use the --url flag:
  ccmate mcp add api-gateway --url=https://api.example.com/mcp

Environment variables can be set with --env (repeatable, before the --):
  ccmate mcp add github --env GITHUB_TOKEN=ghp_xxx \
    -- npx -y @modelcontextprotocol/server-github`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMCPAdd,
}

// runMCPAdd implements the mcp add command logic.
func runMCPAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	var command string
	var cmdArgs []string

	if len(args) > 1 {
		command = args[1]
		if len(args) > 2 {
			cmdArgs = args[2:]
		}
	}

	// Validate: either command or --url is required, but not both
	if command == "" && mcpAddURL == "" {
		return errMCPAddMissingCommandOrURL
	}
	if command != "" && mcpAddURL != "" {
		return errMCPAddBothCommandAndURL
	}

	envMap, err := parseKeyValueSlice(mcpAddEnv, "--env")
	if err != nil {
		return err
	}

	// Determine transport type
	transport := mcpAddTransport
	if transport == "" {
		if mcpAddURL != "" {
			transport = "sse"
		} else {
			transport = "stdio"
		}
	}
	switch transport {
	case "stdio", "sse":
		// Valid
	default:
		return errors.Newf("invalid --transport %q: must be 'stdio' or 'sse'", transport)
	}

	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	manager := claude.NewMCPManager(d.claude)

	if !mcpAddForce {
		if _, err := manager.Get(name); err == nil {
			return errors.Newf("server %q already exists (use --force to overwrite)", name)
		}
	}

	d.snapshot(cmd)

	server := &claude.MCPServer{
		Name:    name,
		Type:    transport,
		Command: command,
		Args:    cmdArgs,
		Env:     envMap,
		URL:     mcpAddURL,
	}
	if err := manager.Add(server); err != nil {
		return err
	}

	d.tracker.Track("mcp_added", map[string]any{"transport": transport})

	fmt.Fprintf(cmd.OutOrStdout(), "%s MCP server %q\n", successColor.Sprint("Added"), name)
	return nil
}

// parseKeyValueSlice parses a slice of KEY=VALUE strings into a map.
// Returns an error if any entry is malformed.
func parseKeyValueSlice(entries []string, flagName string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			return nil, errors.Newf("invalid %s format %q: expected KEY=VALUE", flagName, entry)
		}
		result[key] = value
	}
	return result, nil
}

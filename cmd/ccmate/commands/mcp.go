package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP server registrations",
	Long: `Manage MCP server registrations in ~/.claude.json.

Only the mcpServers section of that file is touched; every other key
Claude Code keeps there survives untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

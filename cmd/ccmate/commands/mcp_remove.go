package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/claude"
)

func init() {
	mcpCmd.AddCommand(mcpRemoveCmd)
}

var mcpRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove an MCP server registration",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		d.snapshot(cmd)

		if err := claude.NewMCPManager(d.claude).Remove(args[0]); err != nil {
			return err
		}

		d.tracker.Track("mcp_removed", nil)

		fmt.Fprintf(cmd.OutOrStdout(), "%s MCP server %q\n", successColor.Sprint("Removed"), args[0])
		return nil
	},
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/claude"
)

func init() {
	mcpCmd.AddCommand(mcpListCmd)
	mcpCmd.AddCommand(mcpShowCmd)
}

var mcpListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List MCP servers",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		servers, err := claude.NewMCPManager(d.claude).List()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(servers) == 0 {
			fmt.Fprintln(out, "No MCP servers registered.")
			return nil
		}

		for _, s := range servers {
			detail := s.URL
			if detail == "" {
				detail = strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
			}
			fmt.Fprintf(out, "%s  %s\n", titleColor.Sprint(s.Name), dimColor.Sprint(detail))
		}
		return nil
	},
}

var mcpShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one MCP server registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		server, err := claude.NewMCPManager(d.claude).Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), server)
	},
}

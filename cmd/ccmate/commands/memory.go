package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/editor"
)

func init() {
	memoryCmd.AddCommand(memoryShowCmd)
	memoryCmd.AddCommand(memoryEditCmd)
	rootCmd.AddCommand(memoryCmd)
}

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage the global memory file (~/.claude/CLAUDE.md)",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var memoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the global memory file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		content, err := claude.ReadMemory(d.claude)
		if err != nil {
			return err
		}
		if content == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No global memory yet.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	},
}

var memoryEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the global memory file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		d.snapshot(cmd)
		return editor.Edit(d.claude.MemoryPath())
	},
}

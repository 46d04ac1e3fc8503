package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/editor"
)

func init() {
	rootCmd.AddCommand(newEntryCommand(
		"command",
		"Manage slash commands",
		"Slash commands are markdown files in ~/.claude/commands.",
		claude.NewCommandManager,
	))
	rootCmd.AddCommand(newEntryCommand(
		"agent",
		"Manage agents",
		"Agents are markdown files in ~/.claude/agents.",
		claude.NewAgentManager,
	))
}

// newEntryCommand builds the identical list/show/edit/remove surface
// shared by slash commands and agents.
func newEntryCommand(kind, short, long string, manager func(*claude.Paths) *claude.EntryManager) *cobra.Command {
	parent := &cobra.Command{
		Use:   kind,
		Short: short,
		Long:  long,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	parent.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List " + kind + "s",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := newDeps(cmd)
			if err != nil {
				return err
			}

			entries, err := manager(d.claude).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No %ss installed.\n", kind)
				return nil
			}
			for _, e := range entries {
				if e.Description != "" {
					fmt.Fprintf(out, "%s  %s\n", titleColor.Sprint(e.Name), dimColor.Sprint(e.Description))
				} else {
					fmt.Fprintln(out, titleColor.Sprint(e.Name))
				}
			}
			return nil
		},
	})

	parent.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps(cmd)
			if err != nil {
				return err
			}

			entry, err := manager(d.claude).Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleColor.Sprint(entry.Name))
			if entry.Description != "" {
				fmt.Fprintln(out, dimColor.Sprint(entry.Description))
			}
			if entry.Model != "" {
				fmt.Fprintf(out, "Model: %s\n", entry.Model)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, entry.Body)
			return nil
		},
	})

	parent.AddCommand(&cobra.Command{
		Use:   "edit <name>",
		Short: "Open a " + kind + " in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps(cmd)
			if err != nil {
				return err
			}

			d.snapshot(cmd)
			return editor.Edit(manager(d.claude).Path(args[0]))
		},
	})

	parent.AddCommand(&cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a " + kind,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps(cmd)
			if err != nil {
				return err
			}

			d.snapshot(cmd)

			if err := manager(d.claude).Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q\n", successColor.Sprint("Removed"), kind, args[0])
			return nil
		},
	})

	return parent
}

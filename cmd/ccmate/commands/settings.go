package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/editor"
)

// settingsShowReveal disables secret masking in the output.
var settingsShowReveal bool

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsShowReveal, "reveal", false,
		"print credential values instead of masking them")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEditCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit the live Claude Code settings",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the live settings document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		doc, err := claude.NewSettingsManager(d.claude).Read()
		if err != nil {
			return err
		}

		if !settingsShowReveal {
			doc = maskSettings(doc)
		}
		return printJSON(cmd.OutOrStdout(), doc)
	},
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the live settings in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		d.snapshot(cmd)
		return editor.Edit(d.claude.SettingsPath())
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the live settings file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), d.claude.SettingsPath())
		return nil
	},
}

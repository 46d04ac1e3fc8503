package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Manage configuration profiles",
	Long: `Manage named configuration profiles.

A profile holds a settings document that is merged into the live
~/.claude/settings.json when the profile is activated. At most one
profile is active at a time. The first profile you create captures any
pre-existing settings as an "Original Config" profile so nothing is
lost.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

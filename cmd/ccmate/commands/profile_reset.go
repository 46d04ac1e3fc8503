package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/cli/prompt"
)

// profileResetForce skips the confirmation prompt.
var profileResetForce bool

func init() {
	profileResetCmd.Flags().BoolVarP(&profileResetForce, "force", "f", false,
		"reset without confirmation")
	profileCmd.AddCommand(profileResetCmd)
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Deactivate all profiles and clear live credentials",
	Long: `Deactivate every profile and clear the env section of the live
~/.claude/settings.json. Other live settings keep their current values,
so a reset removes provider credentials without losing unrelated setup.`,
	Args: cobra.NoArgs,
	RunE: runProfileReset,
}

func runProfileReset(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	if !profileResetForce {
		ok, err := prompt.NewSelector().Confirm(
			"Deactivate all profiles and clear the live env settings?", false)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	d.snapshot(cmd)

	if err := d.stores.ResetToOriginal(); err != nil {
		return err
	}

	d.tracker.Track("profile_reset", nil)

	fmt.Fprintln(cmd.OutOrStdout(), successColor.Sprint("Reset")+" live settings; no profile is active.")
	return nil
}

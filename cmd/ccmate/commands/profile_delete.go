package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/cli/prompt"
)

// profileDeleteForce skips the confirmation prompt.
var profileDeleteForce bool

func init() {
	profileDeleteCmd.Flags().BoolVarP(&profileDeleteForce, "force", "f", false,
		"delete without confirmation")
	profileCmd.AddCommand(profileDeleteCmd)
}

var profileDeleteCmd = &cobra.Command{
	Use:     "delete <id|title>",
	Aliases: []string{"rm"},
	Short:   "Delete a profile",
	Long: `Delete a profile.

Deleting the active profile does not touch the live settings and does
not activate another profile; the live settings simply keep their
current values with no profile marked active.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileDelete,
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	s, err := resolveStore(d.stores, args[0])
	if err != nil {
		return err
	}

	if !profileDeleteForce {
		question := fmt.Sprintf("Delete profile %q (%s)?", s.Title, s.ID)
		if s.Using {
			question = fmt.Sprintf("Profile %q is active. Delete it anyway?", s.Title)
		}
		ok, err := prompt.NewSelector().Confirm(question, false)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	d.snapshot(cmd)

	if err := d.stores.Delete(s.ID); err != nil {
		return err
	}

	d.tracker.Track("profile_deleted", nil)

	fmt.Fprintf(cmd.OutOrStdout(), "%s profile %q (%s)\n",
		successColor.Sprint("Deleted"), s.Title, s.ID)
	return nil
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/cli/prompt"
	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/internal/logging"
	"github.com/ccmate/ccmate/internal/store"
)

func init() {
	profileCmd.AddCommand(profileUseCmd)
}

var profileUseCmd = &cobra.Command{
	Use:     "use [id|title]",
	Aliases: []string{"switch"},
	Short:   "Activate a profile",
	Long: `Activate a profile, merging its settings into the live
~/.claude/settings.json. Settings the profile does not mention are left
untouched.

Without an argument, an interactive picker is shown: a fuzzy finder on a
terminal, a numbered list otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfileUse,
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	var target *store.Store
	if len(args) == 1 {
		target, err = resolveStore(d.stores, args[0])
	} else {
		target, err = pickStore(d)
	}
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return nil
		}
		if errors.Is(err, prompt.ErrNoProfiles) {
			return errors.NewUserError(err, "create one with 'ccmate profile create <title>'")
		}
		return err
	}

	d.snapshot(cmd)

	activated, err := d.stores.Activate(target.ID)
	if err != nil {
		return err
	}

	d.tracker.Track("profile_activated", nil)

	fmt.Fprintf(cmd.OutOrStdout(), "%s profile %q (%s)\n",
		successColor.Sprint("Activated"), activated.Title, activated.ID)
	return nil
}

// pickStore runs the interactive profile picker.
func pickStore(d *deps) (*store.Store, error) {
	stores, err := d.stores.List()
	if err != nil {
		return nil, err
	}

	if logging.IsTTY(os.Stdout) {
		return prompt.FuzzySelectStore(stores)
	}
	return prompt.NewSelector().SelectStore(stores)
}

package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	profileCmd.AddCommand(profileListCmd)
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all profiles",
	Args:    cobra.NoArgs,
	RunE:    runProfileList,
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	stores, err := d.stores.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(stores) == 0 {
		fmt.Fprintln(out, "No profiles yet. Create one with 'ccmate profile create <title>'.")
		return nil
	}

	for _, s := range stores {
		marker := " "
		if s.Using {
			marker = activeColor.Sprint("*")
		}
		fmt.Fprintf(out, "%s %s  %s  %s\n",
			marker,
			dimColor.Sprint(s.ID),
			titleColor.Sprint(s.Title),
			dimColor.Sprint(time.Unix(s.CreatedAt, 0).Local().Format("2006-01-02 15:04")),
		)
	}
	return nil
}

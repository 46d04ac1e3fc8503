package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// profileShowReveal disables secret masking in the output.
var profileShowReveal bool

func init() {
	profileShowCmd.Flags().BoolVar(&profileShowReveal, "reveal", false,
		"print credential values instead of masking them")
	profileCmd.AddCommand(profileShowCmd)
}

var profileShowCmd = &cobra.Command{
	Use:   "show [id|title]",
	Short: "Show a profile's settings",
	Long: `Show a profile's settings as JSON.

Without an argument the active profile is shown. Credential-looking
values are masked unless --reveal is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfileShow,
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	s, err := targetStore(d, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)", titleColor.Sprint(s.Title), dimColor.Sprint(s.ID))
	if s.Using {
		fmt.Fprintf(out, " %s", activeColor.Sprint("[active]"))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Created: %s\n\n", time.Unix(s.CreatedAt, 0).Local().Format("2006-01-02 15:04:05"))

	settings := s.Settings
	if !profileShowReveal {
		settings = maskSettings(settings)
	}
	return printJSON(out, settings)
}

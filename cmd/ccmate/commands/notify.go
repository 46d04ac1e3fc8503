package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/internal/store"
)

// Package-level flag variables for notify set.
var (
	notifySetEnable  bool
	notifySetDisable bool
	notifySetHooks   []string
)

func init() {
	notifySetCmd.Flags().BoolVar(&notifySetEnable, "enable", false,
		"turn desktop notifications on")
	notifySetCmd.Flags().BoolVar(&notifySetDisable, "disable", false,
		"turn desktop notifications off")
	notifySetCmd.Flags().StringSliceVar(&notifySetHooks, "hooks", nil,
		"hook events that trigger notifications (repeatable)")

	notifyCmd.AddCommand(notifyShowCmd)
	notifyCmd.AddCommand(notifySetCmd)
	rootCmd.AddCommand(notifyCmd)
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Manage desktop notification preferences",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var notifyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print notification preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		n, err := d.stores.Notification()
		if err != nil {
			return err
		}

		state := "disabled"
		if n.Enable {
			state = "enabled"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Notifications: %s\nHooks: %s\n",
			state, strings.Join(n.EnabledHooks, ", "))
		return nil
	},
}

var notifySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change notification preferences",
	Example: `  ccmate notify set --disable
  ccmate notify set --enable --hooks Notification,Stop`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if notifySetEnable && notifySetDisable {
			return errors.NewUserError(nil, "cannot use --enable and --disable together")
		}
		if !notifySetEnable && !notifySetDisable && notifySetHooks == nil {
			return errors.NewUserError(nil, "nothing to change; pass --enable, --disable, or --hooks")
		}

		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		current, err := d.stores.Notification()
		if err != nil {
			return err
		}

		next := &store.Notification{
			Enable:       current.Enable,
			EnabledHooks: current.EnabledHooks,
		}
		if notifySetEnable {
			next.Enable = true
		}
		if notifySetDisable {
			next.Enable = false
		}
		if notifySetHooks != nil {
			next.EnabledHooks = notifySetHooks
		}

		if err := d.stores.SetNotification(next); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), successColor.Sprint("Updated")+" notification preferences.")
		return nil
	},
}

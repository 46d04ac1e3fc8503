package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/backup"
	"github.com/ccmate/ccmate/internal/cli/prompt"
	"github.com/ccmate/ccmate/internal/errors"
)

// Package-level flag variables for backup commands.
var (
	backupPruneKeep    int
	backupRestoreForce bool
)

func init() {
	backupPruneCmd.Flags().IntVar(&backupPruneKeep, "keep", 0,
		"number of backups to keep (default from config)")
	backupRestoreCmd.Flags().BoolVarP(&backupRestoreForce, "force", "f", false,
		"restore without confirmation")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupPruneCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot and restore the files ccmate manages",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backup now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		manifest, err := d.backups.Backup(backup.Targets(d.claude, d.storesPath))
		if err != nil {
			if errors.Is(err, backup.ErrNothingToBackUp) {
				return errors.NewUserError(err, "nothing ccmate manages exists yet")
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s backup %s (%d files)\n",
			successColor.Sprint("Created"), manifest.ID, len(manifest.Files))
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List backups, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		manifests, err := d.backups.List()
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups yet.")
				return nil
			}
			return err
		}

		out := cmd.OutOrStdout()
		for _, m := range manifests {
			fmt.Fprintf(out, "%s  %s  %d files\n",
				titleColor.Sprint(m.ID),
				dimColor.Sprint(m.CreatedAt.Local().Format("2006-01-02 15:04:05")),
				len(m.Files),
			)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a backup over the current files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		if !backupRestoreForce {
			ok, err := prompt.NewSelector().Confirm(
				fmt.Sprintf("Overwrite current files with backup %s?", args[0]), false)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		if err := d.backups.Restore(args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s backup %s\n", successColor.Sprint("Restored"), args[0])
		return nil
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups beyond the retention count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		keep := backupPruneKeep
		if keep <= 0 {
			keep = -1 // manager falls back to configured retention
		}
		if err := d.backups.Prune(keep); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), successColor.Sprint("Pruned")+" old backups.")
		return nil
	},
}

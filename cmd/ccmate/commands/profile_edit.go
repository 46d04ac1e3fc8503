package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/editor"
	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/internal/store"
)

// Package-level flag variables for profile edit.
var (
	profileEditTitle        string
	profileEditSettings     string
	profileEditSettingsFile string
)

func init() {
	profileEditCmd.Flags().StringVar(&profileEditTitle, "title", "",
		"new title for the profile")
	profileEditCmd.Flags().StringVar(&profileEditSettings, "settings", "",
		"replacement settings as a JSON object")
	profileEditCmd.Flags().StringVar(&profileEditSettingsFile, "settings-file", "",
		"read replacement settings from a JSON file")
	profileCmd.AddCommand(profileEditCmd)
}

var profileEditCmd = &cobra.Command{
	Use:   "edit [id|title]",
	Short: "Edit a profile",
	Long: `Edit a profile's title or settings.

With --title, --settings, or --settings-file the change is applied
directly. Without any flags the profile's settings open in $EDITOR as a
JSON document and are saved back on exit.

If the edited profile is active, the new settings are merged into the
live ~/.claude/settings.json immediately.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfileEdit,
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	s, err := targetStore(d, args)
	if err != nil {
		return err
	}

	if profileEditSettings != "" && profileEditSettingsFile != "" {
		return errors.NewUserError(nil, "use only one of --settings and --settings-file")
	}

	var newSettings map[string]any
	switch {
	case profileEditSettings != "":
		newSettings, err = parseSettingsJSON([]byte(profileEditSettings))
	case profileEditSettingsFile != "":
		var data []byte
		data, err = os.ReadFile(profileEditSettingsFile)
		if err == nil {
			newSettings, err = parseSettingsJSON(data)
		} else {
			err = errors.Wrap(err, "reading settings file")
		}
	case profileEditTitle == "":
		// No flags at all: interactive edit.
		newSettings, err = editSettingsInteractive(s)
	}
	if err != nil {
		return err
	}

	if profileEditTitle == "" && newSettings == nil {
		return nil
	}

	d.snapshot(cmd)

	updated, err := d.stores.Update(s.ID, profileEditTitle, newSettings)
	if err != nil {
		return err
	}

	d.tracker.Track("profile_updated", nil)

	fmt.Fprintf(cmd.OutOrStdout(), "%s profile %q (%s)\n",
		successColor.Sprint("Updated"), updated.Title, updated.ID)
	return nil
}

// editSettingsInteractive round-trips the profile's settings through
// $EDITOR. Returns nil when the user left the document unchanged.
func editSettingsInteractive(s *store.Store) (map[string]any, error) {
	original, err := json.MarshalIndent(s.Settings, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling settings")
	}
	original = append(original, '\n')

	tmpDir, err := os.MkdirTemp("", "ccmate-edit-*")
	if err != nil {
		return nil, errors.Wrap(err, "creating temp directory")
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, s.ID+".json")
	if err := os.WriteFile(tmpPath, original, 0o600); err != nil {
		return nil, errors.Wrap(err, "writing temp file")
	}

	if err := editor.Open(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading edited file")
	}
	if string(edited) == string(original) {
		return nil, nil
	}

	return parseSettingsJSON(edited)
}

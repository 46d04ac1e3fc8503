package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/internal/store"
)

// Package-level flag variables for profile create.
var (
	profileCreateSettings     string
	profileCreateSettingsFile string
	profileCreateFromCurrent  bool
)

func init() {
	profileCreateCmd.Flags().StringVar(&profileCreateSettings, "settings", "",
		"profile settings as a JSON object")
	profileCreateCmd.Flags().StringVar(&profileCreateSettingsFile, "settings-file", "",
		"read profile settings from a JSON file")
	profileCreateCmd.Flags().BoolVar(&profileCreateFromCurrent, "from-current", false,
		"copy the current live settings into the new profile")
	profileCmd.AddCommand(profileCreateCmd)
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new profile",
	Long: `Create a new profile.

The first profile created is activated immediately, and any settings
that already existed in ~/.claude/settings.json are captured as a
separate "Original Config" profile first.

Examples:
  ccmate profile create work --from-current
  ccmate profile create proxy --settings '{"env":{"ANTHROPIC_BASE_URL":"http://localhost:8080"}}'
  ccmate profile create personal --settings-file personal.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileCreate,
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	settings, err := createSettings(d)
	if err != nil {
		return err
	}

	d.snapshot(cmd)

	s, err := d.stores.Create(store.NewID(), args[0], settings)
	if err != nil {
		if errors.Is(err, errors.ErrMissingTitle) {
			return errors.NewUserError(err, "give the profile a non-empty title")
		}
		return err
	}

	d.tracker.Track("profile_created", map[string]any{"active": s.Using})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s profile %q (%s)\n", successColor.Sprint("Created"), s.Title, s.ID)
	if s.Using {
		fmt.Fprintln(out, "This profile is now active.")
	}
	return nil
}

// createSettings resolves the settings document for a new profile from
// the mutually exclusive source flags.
func createSettings(d *deps) (map[string]any, error) {
	sources := 0
	for _, set := range []bool{
		profileCreateSettings != "",
		profileCreateSettingsFile != "",
		profileCreateFromCurrent,
	} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.NewUserError(nil,
			"use only one of --settings, --settings-file, --from-current")
	}

	switch {
	case profileCreateFromCurrent:
		return claude.NewSettingsManager(d.claude).Read()

	case profileCreateSettingsFile != "":
		data, err := os.ReadFile(profileCreateSettingsFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading settings file")
		}
		return parseSettingsJSON(data)

	case profileCreateSettings != "":
		return parseSettingsJSON([]byte(profileCreateSettings))

	default:
		return map[string]any{}, nil
	}
}

func parseSettingsJSON(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewUserError(err, "settings must be a JSON object")
	}
	return doc, nil
}

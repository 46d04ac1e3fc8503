package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ccmate/ccmate/internal/backup"
	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/config"
	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/internal/logging"
	"github.com/ccmate/ccmate/internal/store"
	"github.com/ccmate/ccmate/internal/track"
)

// deps bundles the managers a command needs, built from the loaded config.
type deps struct {
	cfg     *config.Config
	claude  *claude.Paths
	stores  *store.Manager
	backups *backup.Manager
	tracker *track.Tracker

	storesPath string
}

// newDeps wires up managers from the effective configuration.
func newDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	if cfg.ClaudeDir == "" || cfg.AppDir == "" {
		return nil, errors.NewSystemError(
			errors.New("cannot resolve home directory"),
			"set HOME, or set claude_dir and app_dir in the ccmate config file")
	}

	// claude_dir points at the .claude directory; the runtime state file
	// (~/.claude.json) lives next to it, so Paths is rooted at its parent.
	claudePaths := claude.NewPathsAt(filepath.Dir(cfg.ClaudeDir))
	storesPath := filepath.Join(cfg.AppDir, "stores.json")

	logger := logging.FromContext(cmd.Context())
	stores := store.NewManager(storesPath, claudePaths, logger)

	d := &deps{
		cfg:    cfg,
		claude: claudePaths,
		stores: stores,
		backups: backup.NewManager(
			backup.WithBackupDir(filepath.Join(cfg.AppDir, "backups")),
			backup.WithRetentionCount(cfg.Backup.Retention),
		),
		tracker:    track.New(filepath.Join(cfg.AppDir, "events.jsonl"), stores.DistinctID, logger),
		storesPath: storesPath,
	}
	return d, nil
}

// snapshot backs up every managed file before a mutating operation.
// Backup failures never block the operation itself.
func (d *deps) snapshot(cmd *cobra.Command) {
	logger := logging.FromContext(cmd.Context())
	targets := backup.Targets(d.claude, d.storesPath)
	if _, err := d.backups.Backup(targets); err != nil {
		if errors.Is(err, backup.ErrNothingToBackUp) {
			return
		}
		logger.Debug("pre-change backup failed", "error", err)
		return
	}
	if err := d.backups.Prune(-1); err != nil {
		logger.Debug("backup prune failed", "error", err)
	}
}

// targetStore picks the profile named by args, or the active one when
// args is empty.
func targetStore(d *deps, args []string) (*store.Store, error) {
	if len(args) > 0 {
		return resolveStore(d.stores, args[0])
	}
	s, err := d.stores.Current()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.NewUserError(
			errors.New("no active profile"),
			"name a profile or activate one with 'ccmate profile use'")
	}
	return s, nil
}

// resolveStore finds a profile by id first, then by unique title.
func resolveStore(m *store.Manager, arg string) (*store.Store, error) {
	if s, err := m.Get(arg); err == nil {
		return s, nil
	} else if !errors.Is(err, errors.ErrStoreNotFound) {
		return nil, err
	}

	stores, err := m.List()
	if err != nil {
		return nil, err
	}

	var matches []*store.Store
	for _, s := range stores {
		if s.Title == arg {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, errors.Wrapf(errors.ErrStoreNotFound, "%q", arg)
	case 1:
		return matches[0], nil
	default:
		return nil, errors.Newf("title %q matches %d profiles; use the id", arg, len(matches))
	}
}

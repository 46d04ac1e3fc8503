package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/paths"
	"github.com/ccmate/ccmate/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Manager handles backup creation, restoration, and pruning.
type Manager struct {
	rootDir        string
	retentionCount int
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups to retain.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Targets returns the files ccmate writes and therefore snapshots: the
// live settings, runtime state, onboarding config, memory, commands,
// agents, and the profile document itself.
func Targets(cp *claude.Paths, storesPath string) []string {
	return []string{
		cp.SettingsPath(),
		cp.LiveConfigPath(),
		cp.ConfigPath(),
		cp.MemoryPath(),
		cp.CommandDir(),
		cp.AgentDir(),
		storesPath,
	}
}

// Backup snapshots the given paths into a new timestamped backup.
// Paths can be files or directories; directories are backed up
// recursively, and paths that do not exist yet are skipped.
func (m *Manager) Backup(targets []string) (*Manifest, error) {
	if len(targets) == 0 {
		return nil, errors.New("at least one path is required")
	}

	// Ids have second resolution, so two backups taken within the same
	// second land in the same directory and the later one wins.
	backupID := time.Now().Format("20060102T150405")
	backupPath := m.backupPath(backupID)

	if err := os.MkdirAll(backupPath, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	var files []File
	for _, p := range targets {
		if p == "" {
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", p)
		}

		if info.IsDir() {
			dirFiles, err := m.backupDirectory(p, backupPath)
			if err != nil {
				return nil, errors.Wrapf(err, "backing up directory %s", p)
			}
			files = append(files, dirFiles...)
		} else {
			bf, err := m.backupFile(p, backupPath)
			if err != nil {
				return nil, errors.Wrapf(err, "backing up file %s", p)
			}
			files = append(files, *bf)
		}
	}

	if len(files) == 0 {
		// Clean up empty backup directory
		os.RemoveAll(backupPath)
		return nil, ErrNothingToBackUp
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   time.Now().UTC(),
		Files:       files,
		ToolVersion: Version,
		ID:          backupID,
	}

	manifestPath := filepath.Join(backupPath, "manifest.json")
	if err := fileutil.AtomicWriteJSON(manifestPath, manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	return manifest, nil
}

// backupFile copies a single file to the backup directory.
func (m *Manager) backupFile(src, backupPath string) (*File, error) {
	relPath := generateRelPath(src)
	dst := filepath.Join(backupPath, relPath)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, err := copyFile(src, dst)
	if err != nil {
		return nil, err
	}

	return &File{
		OriginalPath: src,
		RelPath:      relPath,
		SHA256Hash:   hash,
		Mode:         mode,
	}, nil
}

// backupDirectory recursively backs up all files in a directory.
func (m *Manager) backupDirectory(srcDir, backupPath string) ([]File, error) {
	var files []File

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		bf, err := m.backupFile(path, backupPath)
		if err != nil {
			return err
		}
		files = append(files, *bf)
		return nil
	})

	return files, err
}

// Restore restores files from a backup to their original locations.
// Every file's hash is verified against the manifest before anything is
// written, so a half-corrupted backup never half-restores.
func (m *Manager) Restore(backupID string) error {
	if backupID == "" {
		return errors.New("backup ID is required")
	}

	manifest, err := m.Get(backupID)
	if err != nil {
		return err
	}

	backupPath := m.backupPath(backupID)

	for _, bf := range manifest.Files {
		srcPath := filepath.Join(backupPath, bf.RelPath)
		hash, err := hashFile(srcPath)
		if err != nil {
			return errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		if hash != bf.SHA256Hash {
			return errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.RelPath)
		}
	}

	for _, bf := range manifest.Files {
		srcPath := filepath.Join(backupPath, bf.RelPath)

		if err := os.MkdirAll(filepath.Dir(bf.OriginalPath), 0o755); err != nil {
			return errors.Wrapf(err, "creating directory for %s", bf.OriginalPath)
		}
		if _, _, err := copyFile(srcPath, bf.OriginalPath); err != nil {
			return errors.Wrapf(err, "restoring %s", bf.OriginalPath)
		}
		if err := os.Chmod(bf.OriginalPath, bf.Mode); err != nil {
			return errors.Wrapf(err, "setting permissions for %s", bf.OriginalPath)
		}
	}

	return nil
}

// List returns all available backups, sorted by date (newest first).
func (m *Manager) List() ([]Manifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(entry.Name())
		if err != nil {
			// Skip invalid backup directories
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		if a.CreatedAt.Before(b.CreatedAt) {
			return 1
		}
		return 0
	})

	return manifests, nil
}

// Prune removes old backups beyond the retention count.
// keep < 0 means use the configured retention count.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		keep = m.retentionCount
	}

	manifests, err := m.List()
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	// Already sorted newest first, delete everything beyond 'keep'
	for i := keep; i < len(manifests); i++ {
		backupPath := m.backupPath(manifests[i].ID)
		if err := os.RemoveAll(backupPath); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}

	return nil
}

// Get returns the manifest for a specific backup.
func (m *Manager) Get(backupID string) (*Manifest, error) {
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}

	manifestPath := filepath.Join(m.backupPath(backupID), "manifest.json")

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	manifest.ID = backupID
	return &manifest, nil
}

// backupPath returns the full path to a backup directory.
func (m *Manager) backupPath(backupID string) string {
	return filepath.Join(m.rootDir, backupID)
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies a file from src to dst, returning the SHA256 hash and mode.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	// Compute hash while copying
	h := sha256.New()
	w := io.MultiWriter(dstFile, h)

	if _, err := io.Copy(w, srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}

	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// generateRelPath creates a relative path for storage in the backup
// directory by stripping the leading separator from the absolute path.
func generateRelPath(absPath string) string {
	clean := filepath.Clean(absPath)
	if filepath.IsAbs(clean) {
		if len(clean) > 0 && clean[0] == filepath.Separator {
			clean = clean[1:]
		}
	}
	return clean
}

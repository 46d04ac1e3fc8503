package store

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/docstore"
	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/internal/settings"
)

// Manager owns the stores.json document and the projection of profiles
// into the live Claude Code settings file.
type Manager struct {
	storesPath string
	live       *claude.SettingsManager
	logger     *slog.Logger
}

// NewManager creates a Manager persisting to storesPath and projecting
// into the Claude Code installation described by paths.
func NewManager(storesPath string, paths *claude.Paths, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		storesPath: storesPath,
		live:       claude.NewSettingsManager(paths),
		logger:     logger,
	}
}

func (m *Manager) load() (*Document, error) {
	doc, err := docstore.Load(m.storesPath, DefaultDocument)
	if err != nil {
		return nil, err
	}
	doc.normalize()
	return doc, nil
}

func (m *Manager) save(doc *Document) error {
	return docstore.Save(m.storesPath, doc)
}

// List returns all profiles sorted ascending by creation time.
func (m *Manager) List() ([]*Store, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(doc.Configs, func(i, j int) bool {
		return doc.Configs[i].CreatedAt < doc.Configs[j].CreatedAt
	})
	return doc.Configs, nil
}

// Get returns the profile with the given id.
// Returns ErrStoreNotFound if no profile has that id.
func (m *Manager) Get(id string) (*Store, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	s := doc.find(id)
	if s == nil {
		return nil, errors.Wrapf(errors.ErrStoreNotFound, "id %q", id)
	}
	return s, nil
}

// Current returns the active profile, or nil when no profile is active.
func (m *Manager) Current() (*Store, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	return doc.current(), nil
}

// Create adds a new profile with the given id.
//
// On the very first profile two extra things happen: a pre-existing live
// settings file is captured verbatim as an inactive "Original Config"
// profile, and the new profile is activated immediately so the first
// create leaves the user on the profile they just made.
//
// The id is not checked for collisions; callers generate one with NewID.
func (m *Manager) Create(id, title string, stngs map[string]any) (*Store, error) {
	if title == "" {
		return nil, errors.ErrMissingTitle
	}
	if id == "" {
		id = NewID()
	}

	doc, err := m.load()
	if err != nil {
		return nil, err
	}

	firstRun := len(doc.Configs) == 0
	if firstRun {
		if err := m.migrateOriginal(doc); err != nil {
			return nil, err
		}
	}

	if stngs == nil {
		stngs = map[string]any{}
	}
	s := &Store{
		ID:        id,
		Title:     title,
		CreatedAt: time.Now().Unix(),
		Settings:  settings.Clone(stngs),
		Using:     firstRun,
	}

	if s.Using {
		if err := m.project(s); err != nil {
			return nil, err
		}
	}

	doc.Configs = append(doc.Configs, s)
	if err := m.save(doc); err != nil {
		return nil, err
	}

	m.logger.Debug("profile created", "id", s.ID, "title", s.Title, "active", s.Using)
	return s, nil
}

// migrateOriginal captures an existing live settings file as an inactive
// "Original Config" profile appended to the document. A missing file
// means there is nothing to preserve; an existing file is snapshotted
// verbatim, even when it holds an empty document.
func (m *Manager) migrateOriginal(doc *Document) error {
	if !m.live.Exists() {
		return nil
	}
	liveDoc, err := m.live.Read()
	if err != nil {
		return err
	}

	doc.Configs = append(doc.Configs, &Store{
		ID:        NewID(),
		Title:     OriginalTitle,
		CreatedAt: time.Now().Unix(),
		Settings:  settings.Clone(liveDoc),
		Using:     false,
	})
	m.logger.Debug("captured pre-existing settings", "title", OriginalTitle)
	return nil
}

// Update changes a profile's title and/or settings.
// A nil settings map leaves the stored settings alone; an empty title
// leaves the title alone. When the updated profile is active, its new
// settings are projected into the live settings immediately.
func (m *Manager) Update(id, title string, stngs map[string]any) (*Store, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}

	s := doc.find(id)
	if s == nil {
		return nil, errors.Wrapf(errors.ErrStoreNotFound, "id %q", id)
	}

	if title != "" {
		s.Title = title
	}
	if stngs != nil {
		s.Settings = settings.Clone(stngs)
	}

	if s.Using && stngs != nil {
		if err := m.project(s); err != nil {
			return nil, err
		}
	}

	if err := m.save(doc); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes a profile. The live settings are never touched and no
// other profile is activated in its place, even when the deleted profile
// was active.
func (m *Manager) Delete(id string) error {
	doc, err := m.load()
	if err != nil {
		return err
	}

	idx := -1
	for i, s := range doc.Configs {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.ErrStoreNotFound
	}

	doc.Configs = append(doc.Configs[:idx], doc.Configs[idx+1:]...)
	return m.save(doc)
}

// Activate makes the given profile the single active one and projects its
// settings into the live settings file. The live write happens before the
// stores write so a crash between the two leaves the marker behind the
// settings, never ahead of them.
func (m *Manager) Activate(id string) (*Store, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}

	target := doc.find(id)
	if target == nil {
		return nil, errors.Wrapf(errors.ErrStoreNotFound, "id %q", id)
	}

	if err := m.project(target); err != nil {
		return nil, err
	}

	for _, s := range doc.Configs {
		s.Using = s.ID == id
	}
	if err := m.save(doc); err != nil {
		return nil, err
	}

	m.logger.Debug("profile activated", "id", target.ID, "title", target.Title)
	return target, nil
}

// ResetToOriginal deactivates every profile and clears the env section of
// the live settings. Only env is cleared: every other live key survives,
// so a reset removes provider credentials without losing unrelated setup.
func (m *Manager) ResetToOriginal() error {
	doc, err := m.load()
	if err != nil {
		return err
	}

	liveDoc, err := m.live.Read()
	if err != nil {
		return err
	}
	liveDoc["env"] = map[string]any{}
	if err := m.live.Write(liveDoc); err != nil {
		return err
	}

	for _, s := range doc.Configs {
		s.Using = false
	}
	return m.save(doc)
}

// project merges a profile's settings into the live settings file and
// unlocks token auth. Unlock failures are logged, not returned: the
// settings write is the operation that matters.
func (m *Manager) project(s *Store) error {
	liveDoc, err := m.live.Read()
	if err != nil {
		return err
	}
	merged := settings.Merge(liveDoc, s.Settings)
	if err := m.live.Write(merged); err != nil {
		return err
	}

	if err := m.live.Unlock(); err != nil {
		m.logger.Warn("unlock skipped", "error", err)
	}
	return nil
}

// Notification returns the notification preferences.
func (m *Manager) Notification() (*Notification, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}
	return doc.Notification, nil
}

// SetNotification replaces the notification preferences.
func (m *Manager) SetNotification(n *Notification) error {
	if n == nil {
		return errors.New("notification preferences required")
	}
	doc, err := m.load()
	if err != nil {
		return err
	}
	doc.Notification = n
	doc.normalize()
	return m.save(doc)
}

// DistinctID returns the stable anonymous id for this installation,
// generating and persisting one on first use.
func (m *Manager) DistinctID() (string, error) {
	doc, err := m.load()
	if err != nil {
		return "", err
	}
	if doc.DistinctID != "" {
		return doc.DistinctID, nil
	}

	doc.DistinctID = uuid.NewString()
	if err := m.save(doc); err != nil {
		return "", err
	}
	return doc.DistinctID, nil
}

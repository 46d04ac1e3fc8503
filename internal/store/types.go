package store

// OriginalTitle is the title given to the profile that captures whatever
// settings existed before ccmate's first write.
const OriginalTitle = "Original Config"

// Store is one named configuration profile. CreatedAt is Unix seconds so
// the persisted document stays compatible with hand-written stores.json
// files that carry plain numbers.
type Store struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	CreatedAt int64          `json:"createdAt"`
	Settings  map[string]any `json:"settings"`
	Using     bool           `json:"using"`
}

// Notification holds desktop notification preferences.
type Notification struct {
	Enable       bool     `json:"enable"`
	EnabledHooks []string `json:"enabled_hooks"`
}

// Document is the full stores.json document.
type Document struct {
	Configs      []*Store      `json:"configs"`
	DistinctID   string        `json:"distinct_id"`
	Notification *Notification `json:"notification"`
}

// DefaultDocument returns the document written on first run: no profiles,
// no analytics id, notifications on for the Notification hook.
func DefaultDocument() *Document {
	return &Document{
		Configs: []*Store{},
		Notification: &Notification{
			Enable:       true,
			EnabledHooks: []string{"Notification"},
		},
	}
}

// normalize repairs optional sections after loading an older or
// hand-edited document.
func (d *Document) normalize() {
	if d.Configs == nil {
		d.Configs = []*Store{}
	}
	if d.Notification == nil {
		d.Notification = &Notification{
			Enable:       true,
			EnabledHooks: []string{"Notification"},
		}
	}
	if d.Notification.EnabledHooks == nil {
		d.Notification.EnabledHooks = []string{}
	}
}

// find returns the profile with the given id, or nil.
func (d *Document) find(id string) *Store {
	for _, s := range d.Configs {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// current returns the active profile, or nil when none is active.
func (d *Document) current() *Store {
	for _, s := range d.Configs {
		if s.Using {
			return s
		}
	}
	return nil
}

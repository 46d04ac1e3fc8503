// Package track appends anonymous usage events to a local JSONL log.
//
// Tracking is strictly best-effort: no failure here may ever surface to
// the user or abort an operation, so Track returns nothing and logs
// problems at debug level.
package track

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Event is one recorded action.
type Event struct {
	Name       string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Tracker appends events to a JSONL file.
type Tracker struct {
	path     string
	distinct func() (string, error)
	logger   *slog.Logger
	disabled bool
}

// New creates a Tracker writing to path. distinct supplies the stable
// anonymous installation id, typically store.Manager.DistinctID.
func New(path string, distinct func() (string, error), logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		path:     path,
		distinct: distinct,
		logger:   logger,
		disabled: os.Getenv("CCMATE_NO_TRACK") != "",
	}
}

// Track records an event. Failures are swallowed.
func (t *Tracker) Track(name string, props map[string]any) {
	if t == nil || t.disabled || t.path == "" {
		return
	}

	id, err := t.distinct()
	if err != nil {
		t.logger.Debug("tracking skipped", "error", err)
		return
	}

	event := Event{
		Name:       name,
		DistinctID: id,
		Timestamp:  time.Now().UTC(),
		Properties: props,
	}
	line, err := json.Marshal(event)
	if err != nil {
		t.logger.Debug("tracking skipped", "error", err)
		return
	}
	line = append(line, '\n')

	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		t.logger.Debug("tracking skipped", "error", err)
		return
	}
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		t.logger.Debug("tracking skipped", "error", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		t.logger.Debug("tracking skipped", "error", err)
	}
}

// Package docstore reads and writes whole-file JSON documents.
//
// Documents are loaded in full, mutated in memory, and written back
// atomically. There is no partial update and no locking: concurrent
// writers are last-writer-wins at file granularity.
package docstore

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ccmate/ccmate/internal/errors"
	"github.com/ccmate/ccmate/pkg/fileutil"
)

// Load reads the JSON document at path into a fresh T.
// A missing file is not an error: Load returns defaults() so callers can
// bootstrap on first run. A file that exists but cannot be parsed returns
// ErrCorruptDocument; the file is left untouched for manual recovery.
func Load[T any](path string, defaults func() *T) (*T, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	doc := defaults()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrapf(errors.ErrCorruptDocument, "%s: %v", path, err)
	}
	return doc, nil
}

// Save writes doc to path atomically, creating parent directories as needed.
func Save[T any](path string, doc *T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "creating document directory")
	}
	return fileutil.AtomicWriteJSON(path, doc)
}

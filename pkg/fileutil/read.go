package fileutil

import (
	"io"
	"os"

	"github.com/ccmate/ccmate/internal/errors"
)

// MaxFileSize caps reads at 1MB. Every document this tool handles —
// stores.json, settings files, backup manifests — is a few KB at most,
// so anything near the cap is damaged or hostile, not legitimate input.
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge indicates a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file, failing with ErrFileTooLarge rather
// than loading more than MaxFileSize into memory.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Reject by stat first; the LimitReader below still catches files
	// that grow between the stat and the read.
	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNegativeRetention indicates backup.retention is negative.
	ErrNegativeRetention = errors.New("backup.retention must be >= 0")

	// ErrInvalidDays indicates usage.days is not positive.
	ErrInvalidDays = errors.New("usage.days must be >= 1")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	// Version must be >= 1
	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Backup.Retention < 0 {
		errs = append(errs, ErrNegativeRetention)
	}

	if cfg.Usage.Days < 1 {
		errs = append(errs, ErrInvalidDays)
	}

	// Validate directory paths if set
	if cfg.ClaudeDir != "" {
		if err := validatePath(cfg.ClaudeDir); err != nil {
			errs = append(errs, &PathError{
				Field: "claude_dir",
				Path:  cfg.ClaudeDir,
				Err:   err,
			})
		}
	}

	if cfg.AppDir != "" {
		if err := validatePath(cfg.AppDir); err != nil {
			errs = append(errs, &PathError{
				Field: "app_dir",
				Path:  cfg.AppDir,
				Err:   err,
			})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}

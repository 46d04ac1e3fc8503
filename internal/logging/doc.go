// Package logging provides structured logging built on log/slog with a
// TTY-aware colorized handler, credential redaction for profile secrets,
// and helpers for tests and context propagation.
package logging

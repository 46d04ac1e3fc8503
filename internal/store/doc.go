// Package store manages configuration profiles for Claude Code.
//
// Profiles live in a single JSON document (stores.json) owned entirely by
// ccmate. At most one profile is active at a time; activating a profile
// projects its settings into the live Claude Code settings file with a
// non-destructive deep merge, so settings a profile does not mention are
// preserved.
package store

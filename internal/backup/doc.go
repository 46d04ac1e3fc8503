// Package backup snapshots the files ccmate touches so any write can be
// undone. Each backup is a timestamped directory holding copies of the
// live Claude Code files plus stores.json, described by a manifest with
// per-file SHA256 hashes that are verified before restore.
package backup

// Package paths centralizes filesystem layout for ccmate.
//
// Two directory trees matter:
//
//   - ~/.ccconfig: ccmate's own state (the profile collection document,
//     backups of the Claude configuration, the local event log).
//   - ~/.claude: owned by Claude Code itself. ccmate reads and patches
//     files here but never assumes it knows every key they contain.
//
// ccmate's own config file (config.yaml) lives under the XDG config home
// instead, resolved via ConfigHome.
//
// Path helpers return an empty string when the home directory cannot be
// resolved; callers that need a hard failure use ResolveHome.
package paths

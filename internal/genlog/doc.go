// Package genlog records generation runs in a SQLite database.
//
// The log is an audit trail: each `guilty generate` that writes output
// appends a run with the spec hash, output path, and tool version. The
// `guilty log` command reads it back. Staleness checks during generation use
// the hash embedded in the output file header, not the log, so the log can
// be deleted at any time without affecting correctness.
package genlog

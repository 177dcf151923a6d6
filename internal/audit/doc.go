// Package audit provides an audit trail for lockbox operations.
//
// Every state-changing operation (put, remove, rotate, init) and every
// secret read is recorded in a per-user log. Secret values are never
// written to the log; only names, operations, and timestamps.
//
// # Log Format
//
// The log is JSON Lines (one JSON object per line) at:
//
//	$XDG_DATA_HOME/lockbox/audit.jsonl
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk
// full), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit

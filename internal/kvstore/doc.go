// Package kvstore implements the per-user key-value store backing the
// secret vault.
//
// Records live in a single TOML file (by default
// $XDG_CONFIG_HOME/lockbox/secrets.toml) under a [secrets] table. The
// stored values are base64-encoded encrypted blobs produced by the
// protect package; this package treats them as opaque strings and holds
// no plaintext at any point.
//
// The file is written with 0600 permissions inside a 0700 directory.
package kvstore

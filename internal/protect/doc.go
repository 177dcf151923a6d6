// Package protect implements the user and machine bound encryption
// capability behind the secret vault.
//
// # Encryption
//
// Blobs are sealed with NaCl secretbox. The sealing key is never stored
// directly: it is derived with HKDF-SHA256 from a random 256-bit master
// key, using the caller's identity (OS username, machine ID, and the
// lockbox install UUID) as derivation input. A blob sealed on one
// user+machine+install cannot be opened on another, even if the master
// key material leaks to it.
//
// Sealed blobs carry a random 24-byte nonce prepended to the
// ciphertext, so re-encrypting the same value produces different output
// (non-deterministic encryption).
//
// # Master key storage
//
// The master key lives in the OS keyring (service "lockbox") when one
// is available. On headless machines the key falls back to a hex-encoded
// 0600 file under the user data directory. KeySource hides the choice
// from callers.
//
// # Rotation
//
// Rotation is a vault-level operation: a fresh master key produces a
// new Secretbox, and the vault re-encrypts every record under it. See
// the vault package.
package protect

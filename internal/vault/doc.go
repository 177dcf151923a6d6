// Package vault implements the named-secret store: put and get of
// secret strings, encrypted at rest with a user and machine bound key.
//
// # Architecture
//
// The Store composes two injected capabilities:
//
//   - Protector: reversible encryption bound to the invoking
//     user+machine principal (see the protect package for the real
//     implementation)
//   - KeyValueStore: a persistent string store keyed by record name
//     (see the kvstore package)
//
// Both are interfaces so the core logic is testable with fakes.
//
// # Contract
//
// PutSecret validates the name (^[A-Za-z_][A-Za-z0-9_]*$) and content
// before touching storage, applies the overwrite policy against the
// existing record, encrypts, and writes. Each failure mode surfaces as
// a distinct sentinel from internal/errors; a declined overwrite is
// never conflated with success or failure.
//
// GetSecret reads, decrypts, and returns the plaintext. "No record"
// (ErrNotFound) and "record cannot be decrypted" (ErrDecryptFailed) are
// distinct. The transient decrypted buffer is zeroed before returning
// on every exit path.
//
// # Concurrency
//
// Calls are single best-effort attempts with no internal retries.
// Concurrent writers to the same name are last-writer-wins; atomicity
// is whatever the backing KeyValueStore provides.
package vault

package errors

import "errors"

// Validation errors indicate the caller supplied bad input.
var (
	// ErrInvalidName indicates the secret name does not match the allowed pattern.
	ErrInvalidName = errors.New("secret name must start with a letter or underscore and contain only letters, digits, and underscores")

	// ErrEmptyContent indicates an empty secret value was supplied.
	ErrEmptyContent = errors.New("secret content must not be empty")
)

// Overwrite errors indicate an existing record was left untouched.
var (
	// ErrDeclined indicates a record already exists and overwrite was not granted.
	ErrDeclined = errors.New("secret already exists and overwrite was declined")
)

// Cryptographic errors indicate failures during protect or unprotect operations.
var (
	// ErrEncryptFailed indicates the secret could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt secret")

	// ErrDecryptFailed indicates the stored blob could not be decrypted.
	// This usually means it was encrypted by a different user or machine,
	// or the record is corrupt.
	ErrDecryptFailed = errors.New("failed to decrypt secret")
)

// Storage errors indicate issues with the backing key-value store.
var (
	// ErrNotFound indicates no record exists under the requested name.
	ErrNotFound = errors.New("secret not found")

	// ErrStoreRead indicates the backing store could not be read.
	ErrStoreRead = errors.New("failed to read secret store")

	// ErrStoreWrite indicates the backing store could not be written.
	ErrStoreWrite = errors.New("failed to write secret store")
)

// Key errors indicate issues with the user's master key.
var (
	// ErrMasterKeyNotFound indicates no master key has been provisioned.
	ErrMasterKeyNotFound = errors.New("master key not found")

	// ErrNotInitialized indicates lockbox has not been set up for this user.
	ErrNotInitialized = errors.New("lockbox has not been initialized")
)

package vault

import (
	"encoding/base64"
	"fmt"
	"regexp"

	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
)

// Protector is the user and machine bound encryption capability. Blobs
// produced by Protect are opaque; only the same principal's Unprotect
// can recover the plaintext.
type Protector interface {
	Protect(plaintext []byte) ([]byte, error)
	Unprotect(blob []byte) ([]byte, error)
}

// KeyValueStore is the persistent store records are written to. Read
// reports a missing record via found=false, not an error.
type KeyValueStore interface {
	Read(name string) (value string, found bool, err error)
	Write(name, value string) error
	Delete(name string) error
	List() ([]string, error)
}

// Options configures a Store.
type Options struct {
	// Confirm is consulted when PutSecret finds an existing record and
	// overwrite is false. Returning true grants the overwrite. When nil
	// (non-interactive callers), an existing record always declines.
	Confirm func(name string) bool
}

// Store puts and gets named secrets. Plaintext only exists in memory
// while a call is in flight; at rest every value is an encrypted blob.
type Store struct {
	protector Protector
	records   KeyValueStore
	confirm   func(name string) bool
}

// New returns a Store over the given protector and record store.
func New(protector Protector, records KeyValueStore, opts Options) *Store {
	return &Store{
		protector: protector,
		records:   records,
		confirm:   opts.Confirm,
	}
}

// namePattern is what the backing stores accept as a record key.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateName checks that name is usable as a record key.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidName, name)
	}
	return nil
}

// PutSecret encrypts content and persists it under name.
//
// Validation runs before any storage access, so a rejected call never
// leaves a partial write. If a record already exists and overwrite is
// false, the configured Confirm callback is asked once; without a
// grant the call returns ErrDeclined and the stored value is untouched.
//
// The content never appears in errors or logs.
func (s *Store) PutSecret(name, content string, overwrite bool) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	if content == "" {
		return false, kerrors.ErrEmptyContent
	}

	_, found, err := s.records.Read(name)
	if err != nil {
		return false, fmt.Errorf("%w: %v", kerrors.ErrStoreRead, err)
	}

	if found && !overwrite {
		if s.confirm == nil || !s.confirm(name) {
			return false, fmt.Errorf("%w: %s", kerrors.ErrDeclined, name)
		}
	}

	blob, err := s.protector.Protect([]byte(content))
	if err != nil {
		return false, fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	encoded := base64.StdEncoding.EncodeToString(blob)
	if err := s.records.Write(name, encoded); err != nil {
		return false, fmt.Errorf("%w: %v", kerrors.ErrStoreWrite, err)
	}

	return true, nil
}

// GetSecret decrypts and returns the secret stored under name.
//
// A missing record is ErrNotFound; a record that exists but cannot be
// decrypted (different principal, corruption) is ErrDecryptFailed. The
// transient decrypted buffer is zeroed on every exit path; only the
// returned string copy survives.
func (s *Store) GetSecret(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	encoded, found, err := s.records.Read(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrStoreRead, err)
	}
	if !found {
		return "", fmt.Errorf("%w: %s", kerrors.ErrNotFound, name)
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: record is not valid base64", kerrors.ErrDecryptFailed)
	}

	plaintext, err := s.protector.Unprotect(blob)
	defer wipe(plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrDecryptFailed, err)
	}

	return string(plaintext), nil
}

// DeleteSecret removes the record stored under name. Deleting a record
// that does not exist returns ErrNotFound.
func (s *Store) DeleteSecret(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	_, found, err := s.records.Read(name)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrStoreRead, err)
	}
	if !found {
		return fmt.Errorf("%w: %s", kerrors.ErrNotFound, name)
	}

	if err := s.records.Delete(name); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrStoreWrite, err)
	}

	return nil
}

// ListSecrets returns the stored record names. Values are never
// decrypted.
func (s *Store) ListSecrets() ([]string, error) {
	names, err := s.records.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrStoreRead, err)
	}
	return names, nil
}

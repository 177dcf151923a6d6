package vault

import (
	"encoding/base64"
	"fmt"

	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
)

// Rotate re-encrypts every stored record with next.
//
// All records are decrypted with the current protector and re-encrypted
// in memory first; nothing is written until every record has been
// staged. commit, when non-nil, runs after staging and before the first
// write — callers use it to persist the new master key, so a commit
// failure aborts the rotation with the store untouched. On success the
// store's protector is replaced by next.
//
// Returns the number of rotated records. A record that cannot be
// decrypted aborts the rotation with ErrDecryptFailed naming it.
func (s *Store) Rotate(next Protector, commit func() error) (int, error) {
	names, err := s.records.List()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", kerrors.ErrStoreRead, err)
	}

	staged := make(map[string]string, len(names))
	for _, name := range names {
		encoded, found, err := s.records.Read(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", kerrors.ErrStoreRead, err)
		}
		if !found {
			// Deleted between List and Read; nothing to rotate.
			continue
		}

		blob, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return 0, fmt.Errorf("%w: record %s is not valid base64", kerrors.ErrDecryptFailed, name)
		}

		reencoded, err := s.reseal(blob, next)
		if err != nil {
			return 0, fmt.Errorf("record %s: %w", name, err)
		}
		staged[name] = reencoded
	}

	if commit != nil {
		if err := commit(); err != nil {
			return 0, fmt.Errorf("rotation aborted before any write: %w", err)
		}
	}

	for name, encoded := range staged {
		if err := s.records.Write(name, encoded); err != nil {
			return 0, fmt.Errorf("%w: %v", kerrors.ErrStoreWrite, err)
		}
	}

	s.protector = next
	return len(staged), nil
}

// reseal decrypts one blob with the current protector and re-encrypts
// it with next, zeroing the intermediate plaintext on every exit path.
func (s *Store) reseal(blob []byte, next Protector) (string, error) {
	plaintext, err := s.protector.Unprotect(blob)
	defer wipe(plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrDecryptFailed, err)
	}

	newBlob, err := next.Protect(plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	return base64.StdEncoding.EncodeToString(newBlob), nil
}

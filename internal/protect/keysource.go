package protect

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/99designs/keyring"

	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
)

const keyringItemKey = "master-key"

// KeySource loads and saves the per-user master key. The OS keyring is
// preferred; when it is unavailable (headless machines, CI) the key
// falls back to a 0600 file under the user data directory.
type KeySource struct {
	// ServiceName is the keyring service the key is stored under.
	ServiceName string

	// FallbackPath is the key file used when the keyring is unavailable.
	FallbackPath string

	// DisableKeyring forces the file fallback. Used by tests and the
	// LOCKBOX_NO_KEYRING environment variable.
	DisableKeyring bool
}

func (k *KeySource) openRing() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName: k.ServiceName,
	})
}

// Load returns the master key, or ErrMasterKeyNotFound if none has
// been provisioned yet.
func (k *KeySource) Load() ([]byte, error) {
	if !k.DisableKeyring {
		if ring, err := k.openRing(); err == nil {
			item, err := ring.Get(keyringItemKey)
			if err == nil {
				if len(item.Data) == MasterKeySize {
					return item.Data, nil
				}
				return nil, fmt.Errorf("keyring holds a master key of unexpected length %d", len(item.Data))
			}
			// Fall through to the key file on ErrKeyNotFound or any
			// backend failure; the file is the source of truth on
			// machines without a usable keyring.
		}
	}

	return k.loadFile()
}

func (k *KeySource) loadFile() ([]byte, error) {
	data, err := os.ReadFile(k.FallbackPath)
	if os.IsNotExist(err) {
		return nil, kerrors.ErrMasterKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("key file is not valid hex: %w", err)
	}
	if len(key) != MasterKeySize {
		return nil, fmt.Errorf("key file holds a master key of unexpected length %d", len(key))
	}

	return key, nil
}

// Save stores the master key, preferring the keyring and falling back
// to the key file.
func (k *KeySource) Save(key []byte) error {
	if len(key) != MasterKeySize {
		return errInvalidKeyLength
	}

	if !k.DisableKeyring {
		if ring, err := k.openRing(); err == nil {
			err := ring.Set(keyring.Item{
				Key:   keyringItemKey,
				Data:  key,
				Label: "lockbox master key",
			})
			if err == nil {
				return nil
			}
			// Backend refused the write; fall back to the key file.
		}
	}

	return k.saveFile(key)
}

func (k *KeySource) saveFile(key []byte) error {
	if err := os.MkdirAll(filepath.Dir(k.FallbackPath), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	encoded := hex.EncodeToString(key) + "\n"
	if err := os.WriteFile(k.FallbackPath, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	return nil
}

// Exists reports whether a master key has been provisioned.
func (k *KeySource) Exists() bool {
	_, err := k.Load()
	return err == nil
}
